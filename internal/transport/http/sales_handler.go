package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"retailpulse/internal/analytics"
	"retailpulse/internal/dataset"
	apierrors "retailpulse/internal/errors"
	"retailpulse/internal/exporter"
	"retailpulse/pkg/contracts/domain"
)

// SalesServiceInterface defines the sales query operations the handler needs
type SalesServiceInterface interface {
	Query(ctx context.Context, req analytics.ViewRequest) (interface{}, error)
	Stores(ctx context.Context) ([]domain.StoreID, error)
}

// SalesHandler serves the analytics query endpoints
type SalesHandler struct {
	service      SalesServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewSalesHandler creates a sales handler
func NewSalesHandler(service SalesServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *SalesHandler {
	return &SalesHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "sales_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the sales routes
func (h *SalesHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetSales)
	r.Get("/export", h.ExportSales)

	return r
}

// GetSales handles GET /api/sales
func (h *SalesHandler) GetSales(w http.ResponseWriter, r *http.Request) {
	req, err := analytics.ParseViewRequest(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, requestError(err, r.URL.Query().Get("view")))
		return
	}

	result, err := h.service.Query(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, queryError(err, req.View))
		return
	}

	render.JSON(w, r, result)
}

// ExportSales handles GET /api/sales/export, streaming the view result as a
// CSV download.
func (h *SalesHandler) ExportSales(w http.ResponseWriter, r *http.Request) {
	req, err := analytics.ParseViewRequest(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, requestError(err, r.URL.Query().Get("view")))
		return
	}

	result, err := h.service.Query(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, queryError(err, req.View))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.FileName(req.View)))

	if err := exporter.WriteCSV(w, result); err != nil {
		// Headers are already sent; log rather than attempt a problem response
		h.logger.ErrorContext(r.Context(), "csv export failed mid-stream",
			slog.String("view", req.View),
			slog.String("error", err.Error()))
	}
}

// GetStores handles GET /api/stores
func (h *SalesHandler) GetStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.Stores(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, queryError(err, ""))
		return
	}

	render.JSON(w, r, map[string]interface{}{"stores": stores})
}

// requestError maps query-string parse failures to API errors
func requestError(err error, view string) error {
	switch {
	case errors.Is(err, analytics.ErrUnknownView):
		return apierrors.UnknownViewError(view)
	case errors.Is(err, analytics.ErrInvalidWindow):
		return apierrors.ErrValidation("window", err.Error())
	case errors.Is(err, analytics.ErrInvalidDate):
		return apierrors.ErrValidation("start/end", err.Error())
	}
	return apierrors.InvalidRequestWithError(err)
}

// queryError maps engine and dataset failures to API errors
func queryError(err error, view string) error {
	switch {
	case errors.Is(err, analytics.ErrUnknownView):
		return apierrors.UnknownViewError(view)
	case errors.Is(err, dataset.ErrSourceNotFound), errors.Is(err, dataset.ErrMissingColumn):
		return apierrors.DataUnavailableError(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return apierrors.ErrInternalServer
}
