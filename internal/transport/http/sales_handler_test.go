package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"retailpulse/internal/analytics"
	"retailpulse/internal/dataset"
	apierrors "retailpulse/internal/errors"
	"retailpulse/pkg/contracts/domain"
)

// MockSalesService is a mock implementation of SalesServiceInterface
type MockSalesService struct {
	mock.Mock
}

func (m *MockSalesService) Query(ctx context.Context, req analytics.ViewRequest) (interface{}, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0), args.Error(1)
}

func (m *MockSalesService) Stores(ctx context.Context) ([]domain.StoreID, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoreID), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func testErrorHandler() *apierrors.ErrorHandler {
	return apierrors.NewErrorHandler(testLogger(), false)
}

func newSalesRig(t *testing.T) (*MockSalesService, *SalesHandler) {
	t.Helper()
	svc := new(MockSalesService)
	return svc, NewSalesHandler(svc, testLogger(), testErrorHandler())
}

func TestSalesHandler_GetSales(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockSalesService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "default view",
			url:  "/api/sales",
			setupMock: func(m *MockSalesService) {
				m.On("Query", mock.MatchedBy(func(req analytics.ViewRequest) bool {
					return req.View == analytics.ViewTimeSeries && req.Window == analytics.DefaultWindow
				})).Return([]analytics.DatePoint{{Date: "2024-01-01", WeeklySales: 100}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"date":"2024-01-01"`,
		},
		{
			name: "explicit view with filters",
			url:  "/api/sales?view=by_dept&store=1&start=2024-01-01&end=2024-02-01",
			setupMock: func(m *MockSalesService) {
				m.On("Query", mock.MatchedBy(func(req analytics.ViewRequest) bool {
					return req.View == analytics.ViewByDept &&
						req.Store == "1" &&
						req.Start != nil && req.End != nil
				})).Return([]analytics.DeptPoint{{Dept: "Grocery", WeeklySales: 10}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"dept":"Grocery"`,
		},
		{
			name:           "unknown view",
			url:            "/api/sales?view=pivot",
			setupMock:      func(m *MockSalesService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `/errors/query/unknown-view`,
		},
		{
			name:           "bad window",
			url:            "/api/sales?window=0",
			setupMock:      func(m *MockSalesService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `/errors/validation`,
		},
		{
			name:           "bad date",
			url:            "/api/sales?start=01-01-2024",
			setupMock:      func(m *MockSalesService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `/errors/validation`,
		},
		{
			name: "dataset unavailable",
			url:  "/api/sales",
			setupMock: func(m *MockSalesService) {
				m.On("Query", mock.Anything).Return(nil, dataset.ErrSourceNotFound)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `/errors/data/unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, handler := newSalesRig(t)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			handler.GetSales(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestSalesHandler_GetStores(t *testing.T) {
	svc, handler := newSalesRig(t)
	svc.On("Stores").Return([]domain.StoreID{
		{Num: 1, Numeric: true},
		{Str: "outlet-9"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	rec := httptest.NewRecorder()
	handler.GetStores(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stores":[1,"outlet-9"]`)
}

func TestSalesHandler_ExportSales(t *testing.T) {
	svc, handler := newSalesRig(t)
	svc.On("Query", mock.Anything).Return([]analytics.MonthPoint{
		{YearMonth: "2024-01", WeeklySales: 300},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/sales/export?view=monthly", nil)
	rec := httptest.NewRecorder()
	handler.ExportSales(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "retailpulse_monthly.csv")
	assert.Equal(t, "year_month,weekly_sales\n2024-01,300\n", rec.Body.String())
}

func TestSalesHandler_ExportSalesUnknownView(t *testing.T) {
	_, handler := newSalesRig(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sales/export?view=pivot", nil)
	rec := httptest.NewRecorder()
	handler.ExportSales(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
