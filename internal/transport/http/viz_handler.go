package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "retailpulse/internal/errors"
	"retailpulse/internal/viz"
)

// VizHandler serves the AI-visualization endpoints. Chart generation runs in
// mock mode; dataset profiling behind summarize and goals is real.
type VizHandler struct {
	viz          *viz.Service
	datasets     DatasetServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewVizHandler creates a visualization handler
func NewVizHandler(vizService *viz.Service, datasets DatasetServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *VizHandler {
	return &VizHandler{
		viz:          vizService,
		datasets:     datasets,
		logger:       logger.With(slog.String("component", "viz_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the visualization routes
func (h *VizHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/status", h.GetStatus)
	r.Post("/summarize", h.Summarize)
	r.Post("/goals", h.Goals)
	r.Post("/visualize", h.Visualize)
	r.Post("/edit", h.Edit)
	r.Post("/explain", h.Explain)
	r.Post("/evaluate", h.Evaluate)

	return r
}

// GetStatus handles GET /api/viz/status
func (h *VizHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.viz.Status())
}

// datasetRequest selects the dataset for summarize and goals
type datasetRequest struct {
	Dataset string `json:"dataset" validate:"required"`
	N       int    `json:"n"`
}

// Summarize handles POST /api/viz/summarize
func (h *VizHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDatasetRequest(w, r)
	if !ok {
		return
	}

	summary, err := h.datasets.ProfileDataset(r.Context(), req.Dataset)
	if err != nil {
		h.errorHandler.HandleError(w, r, datasetError(err, req.Dataset))
		return
	}

	render.JSON(w, r, summary)
}

// Goals handles POST /api/viz/goals
func (h *VizHandler) Goals(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDatasetRequest(w, r)
	if !ok {
		return
	}

	summary, err := h.datasets.ProfileDataset(r.Context(), req.Dataset)
	if err != nil {
		h.errorHandler.HandleError(w, r, datasetError(err, req.Dataset))
		return
	}

	goals := h.viz.Goals(summary, req.N)
	render.JSON(w, r, map[string]interface{}{
		"dataset": req.Dataset,
		"goals":   goals,
		"count":   len(goals),
	})
}

// Visualize handles POST /api/viz/visualize
func (h *VizHandler) Visualize(w http.ResponseWriter, r *http.Request) {
	var req viz.VisualizeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "dataset and goal are required"))
		return
	}

	render.JSON(w, r, h.viz.Visualize(req))
}

// Edit handles POST /api/viz/edit
func (h *VizHandler) Edit(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.viz.Edit())
}

// Explain handles POST /api/viz/explain
func (h *VizHandler) Explain(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.viz.Explain())
}

// Evaluate handles POST /api/viz/evaluate
func (h *VizHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.viz.Evaluate())
}

func (h *VizHandler) decodeDatasetRequest(w http.ResponseWriter, r *http.Request) (datasetRequest, bool) {
	var req datasetRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("dataset", "dataset is required"))
		return req, false
	}
	return req, true
}
