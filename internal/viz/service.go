// Package viz provides the AI-visualization surface of the API. The upstream
// model integration is intentionally mocked: every operation returns a fully
// shaped response the dashboard can render, flagged with a mock status so
// clients can tell generated output from canned output.
package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"retailpulse/pkg/contracts/domain"
)

// StatusMock marks responses produced by the canned implementation
const StatusMock = "mock_implementation"

// Status reports availability of the visualization backend
type Status struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
	Status    string `json:"status"`
}

// Goal is one suggested analysis question for a dataset
type Goal struct {
	ID            string `json:"id"`
	Index         int    `json:"index"`
	Question      string `json:"question"`
	Visualization string `json:"visualization"`
	Rationale     string `json:"rationale"`
}

// VisualizeRequest asks for chart code for a goal against a dataset
type VisualizeRequest struct {
	Dataset string `json:"dataset" validate:"required"`
	Goal    string `json:"goal" validate:"required"`
	Library string `json:"library"`
}

// Visualization is generated chart code plus provenance metadata
type Visualization struct {
	Code      string    `json:"code"`
	Library   string    `json:"library"`
	Goal      string    `json:"goal"`
	Dataset   string    `json:"dataset"`
	Generated bool      `json:"lida_generated"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Service produces mocked visualization responses
type Service struct {
	logger *slog.Logger
}

// NewService creates a visualization service
func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger.With(slog.String("service", "viz"))}
}

// Status reports that the real model backend is not wired up
func (s *Service) Status() Status {
	return Status{
		Available: false,
		Message:   "Visualization backend running in mock mode",
		Status:    StatusMock,
	}
}

// goalTemplates drive the suggested questions. Column names from the dataset
// summary are substituted in where a template references one.
var goalTemplates = []struct {
	question      string
	visualization string
	rationale     string
}{
	{
		question:      "What is the trend of %s over time?",
		visualization: "line chart",
		rationale:     "Line charts reveal direction and seasonality in a time-ordered measure",
	},
	{
		question:      "How is %s distributed across categories?",
		visualization: "bar chart",
		rationale:     "Bar charts make categorical comparisons immediate",
	},
	{
		question:      "What is the distribution of %s?",
		visualization: "histogram",
		rationale:     "Histograms expose skew and outliers in a numeric measure",
	},
	{
		question:      "Which categories contribute most to total %s?",
		visualization: "pie chart",
		rationale:     "Proportional charts show each category's share of the whole",
	},
}

// Goals suggests up to n analysis questions for the profiled dataset
func (s *Service) Goals(summary domain.DatasetSummary, n int) []Goal {
	measure := firstColumnOfType(summary, "number")
	if measure == "" {
		measure = "value"
	}

	if n <= 0 || n > len(goalTemplates) {
		n = len(goalTemplates)
	}

	goals := make([]Goal, 0, n)
	for i := 0; i < n; i++ {
		tpl := goalTemplates[i]
		goals = append(goals, Goal{
			ID:            uuid.New().String(),
			Index:         i,
			Question:      fmt.Sprintf(tpl.question, measure),
			Visualization: tpl.visualization,
			Rationale:     tpl.rationale,
		})
	}

	s.logger.Debug("generated goals", "dataset", summary.Name, "count", len(goals))
	return goals
}

// Visualize returns canned chart code for the requested goal
func (s *Service) Visualize(req VisualizeRequest) Visualization {
	library := req.Library
	if library == "" {
		library = "plotly"
	}

	return Visualization{
		Code:      chartCode(req, library),
		Library:   library,
		Goal:      req.Goal,
		Dataset:   req.Dataset,
		Generated: false,
		Status:    StatusMock,
		Timestamp: time.Now().UTC(),
	}
}

// OperationResult is the response for visualization operations that are
// acknowledged but not implemented in mock mode.
type OperationResult struct {
	Operation string `json:"operation"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	Available bool   `json:"available"`
}

// Edit acknowledges a chart-edit request without performing it
func (s *Service) Edit() OperationResult {
	return mockOperation("edit")
}

// Explain acknowledges a chart-explain request without performing it
func (s *Service) Explain() OperationResult {
	return mockOperation("explain")
}

// Evaluate acknowledges a chart-evaluate request without performing it
func (s *Service) Evaluate() OperationResult {
	return mockOperation("evaluate")
}

func mockOperation(name string) OperationResult {
	return OperationResult{
		Operation: name,
		Message:   fmt.Sprintf("Visualization %s is not available in mock mode", name),
		Status:    StatusMock,
		Available: false,
	}
}

func firstColumnOfType(summary domain.DatasetSummary, dtype string) string {
	for _, col := range summary.Columns {
		if col.DType == dtype {
			return col.Column
		}
	}
	return ""
}

func chartCode(req VisualizeRequest, library string) string {
	goal := strings.ToLower(req.Goal)

	chart := "bar"
	switch {
	case strings.Contains(goal, "trend") || strings.Contains(goal, "time"):
		chart = "line"
	case strings.Contains(goal, "distribution"):
		chart = "histogram"
	case strings.Contains(goal, "share") || strings.Contains(goal, "contribute"):
		chart = "pie"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s chart for: %s\n", chart, req.Goal)
	fmt.Fprintf(&b, "import %s.express as px\n", libraryModule(library))
	fmt.Fprintf(&b, "fig = px.%s(df, title=%q)\n", chart, req.Goal)
	b.WriteString("fig.show()\n")
	return b.String()
}

func libraryModule(library string) string {
	if library == "plotly" {
		return "plotly"
	}
	return library
}
