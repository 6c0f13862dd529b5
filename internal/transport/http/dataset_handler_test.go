package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"retailpulse/internal/services"
	"retailpulse/pkg/contracts/domain"
)

// MockDatasetService is a mock implementation of DatasetServiceInterface
type MockDatasetService struct {
	mock.Mock
}

func (m *MockDatasetService) ListDatasets(ctx context.Context) ([]domain.DatasetInfo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DatasetInfo), args.Error(1)
}

func (m *MockDatasetService) DatasetData(ctx context.Context, name string, limit, offset int) (services.DatasetPage, error) {
	args := m.Called(name, limit, offset)
	return args.Get(0).(services.DatasetPage), args.Error(1)
}

func (m *MockDatasetService) ProfileDataset(ctx context.Context, name string) (domain.DatasetSummary, error) {
	args := m.Called(name)
	return args.Get(0).(domain.DatasetSummary), args.Error(1)
}

func newDatasetRig(t *testing.T) (*MockDatasetService, chi.Router) {
	t.Helper()
	svc := new(MockDatasetService)
	handler := NewDatasetHandler(svc, testLogger(), testErrorHandler())

	r := chi.NewRouter()
	r.Mount("/api/datasets", handler.Routes())
	return svc, r
}

func TestDatasetHandler_ListDatasets(t *testing.T) {
	svc, router := newDatasetRig(t)
	svc.On("ListDatasets").Return([]domain.DatasetInfo{
		{Name: "sales.csv", Size: 1024},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"sales.csv"`)
	assert.Contains(t, rec.Body.String(), `"count":1`)
}

func TestDatasetHandler_GetDatasetData(t *testing.T) {
	svc, router := newDatasetRig(t)
	svc.On("DatasetData", "sales.csv", 2, 1).Return(services.DatasetPage{
		Dataset: "sales.csv",
		Columns: []string{"Store", "Date"},
		Rows:    [][]string{{"1", "2024-01-08"}},
		Total:   3,
		Limit:   2,
		Offset:  1,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/sales.csv/data?limit=2&offset=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":3`)
	assert.Contains(t, rec.Body.String(), `"2024-01-08"`)
	svc.AssertExpectations(t)
}

func TestDatasetHandler_GetDatasetDataBadPagination(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"non-numeric limit", "/api/datasets/sales.csv/data?limit=abc"},
		{"negative offset", "/api/datasets/sales.csv/data?offset=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := newDatasetRig(t)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "/errors/validation")
		})
	}
}

func TestDatasetHandler_GetDatasetDataNotFound(t *testing.T) {
	svc, router := newDatasetRig(t)
	svc.On("DatasetData", "absent.csv", mock.Anything, mock.Anything).
		Return(services.DatasetPage{}, services.ErrDatasetNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/absent.csv/data", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/errors/data/not-found")
}

func TestDatasetHandler_GetDatasetDataInvalidName(t *testing.T) {
	svc, router := newDatasetRig(t)
	svc.On("DatasetData", "notes.txt", mock.Anything, mock.Anything).
		Return(services.DatasetPage{}, services.ErrInvalidDatasetName)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/notes.txt/data", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDatasetHandler_GetDatasetSummary(t *testing.T) {
	svc, router := newDatasetRig(t)
	svc.On("ProfileDataset", "sales.csv").Return(domain.DatasetSummary{
		Name:     "sales.csv",
		RowCount: 3,
		Columns: []domain.ColumnProfile{
			{Column: "Store", DType: "number"},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/sales.csv/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dtype":"number"`)
}
