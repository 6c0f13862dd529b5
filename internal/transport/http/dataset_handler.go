package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"retailpulse/internal/dataset"
	apierrors "retailpulse/internal/errors"
	"retailpulse/internal/services"
	"retailpulse/pkg/contracts/domain"
)

// DatasetServiceInterface defines the dataset browsing operations the
// handler needs.
type DatasetServiceInterface interface {
	ListDatasets(ctx context.Context) ([]domain.DatasetInfo, error)
	DatasetData(ctx context.Context, name string, limit, offset int) (services.DatasetPage, error)
	ProfileDataset(ctx context.Context, name string) (domain.DatasetSummary, error)
}

// DatasetHandler serves the dataset browsing endpoints
type DatasetHandler struct {
	service      DatasetServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDatasetHandler creates a dataset handler
func NewDatasetHandler(service DatasetServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dataset_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset routes
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.ListDatasets)
	r.Route("/{name}", func(r chi.Router) {
		r.Get("/data", h.GetDatasetData)
		r.Get("/summary", h.GetDatasetSummary)
	})

	return r
}

// ListDatasets handles GET /api/datasets
func (h *DatasetHandler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	infos, err := h.service.ListDatasets(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, datasetError(err, ""))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"datasets": infos,
		"count":    len(infos),
	})
}

// GetDatasetData handles GET /api/datasets/{name}/data
func (h *DatasetHandler) GetDatasetData(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	limit, err := queryInt(r, "limit", services.DefaultPageLimit)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "limit must be a non-negative integer"))
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("offset", "offset must be a non-negative integer"))
		return
	}

	page, err := h.service.DatasetData(r.Context(), name, limit, offset)
	if err != nil {
		h.errorHandler.HandleError(w, r, datasetError(err, name))
		return
	}

	render.JSON(w, r, page)
}

// GetDatasetSummary handles GET /api/datasets/{name}/summary
func (h *DatasetHandler) GetDatasetSummary(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	summary, err := h.service.ProfileDataset(r.Context(), name)
	if err != nil {
		h.errorHandler.HandleError(w, r, datasetError(err, name))
		return
	}

	render.JSON(w, r, summary)
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("not a non-negative integer")
	}
	return n, nil
}

// datasetError maps dataset service failures to API errors
func datasetError(err error, name string) error {
	switch {
	case errors.Is(err, services.ErrDatasetNotFound):
		return apierrors.DatasetNotFoundError(name)
	case errors.Is(err, services.ErrInvalidDatasetName):
		return apierrors.ErrValidation("name", err.Error())
	case errors.Is(err, dataset.ErrSourceNotFound):
		return apierrors.DatasetNotFoundError(name)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return apierrors.FileSystemError("dataset read", err)
}
