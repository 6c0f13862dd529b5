package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "retailpulse/internal/errors"
	"retailpulse/pkg/contracts/domain"
)

// InsightsServiceInterface defines the aggregate figures the handler needs
type InsightsServiceInterface interface {
	Summary(ctx context.Context) (domain.SalesSummary, error)
	StorePerformance(ctx context.Context) (domain.StorePerformance, error)
	DeptBreakdown(ctx context.Context) (domain.DeptBreakdown, error)
}

// InsightsHandler serves the dashboard headline figure endpoints
type InsightsHandler struct {
	service      InsightsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewInsightsHandler creates an insights handler
func NewInsightsHandler(service InsightsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *InsightsHandler {
	return &InsightsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "insights_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the insights routes
func (h *InsightsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/stores", h.GetStorePerformance)
	r.Get("/categories", h.GetDeptBreakdown)

	return r
}

// GetSummary handles GET /api/insights/summary
func (h *InsightsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, queryError(err, ""))
		return
	}

	render.JSON(w, r, summary)
}

// GetStorePerformance handles GET /api/insights/stores
func (h *InsightsHandler) GetStorePerformance(w http.ResponseWriter, r *http.Request) {
	perf, err := h.service.StorePerformance(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, queryError(err, ""))
		return
	}

	render.JSON(w, r, perf)
}

// GetDeptBreakdown handles GET /api/insights/categories
func (h *InsightsHandler) GetDeptBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.service.DeptBreakdown(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, queryError(err, ""))
		return
	}

	render.JSON(w, r, breakdown)
}
