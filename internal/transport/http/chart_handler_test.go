package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Xin-10/Netflix-Data-Visualization/internal/errors"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/exporter"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/services"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/shared/testutil"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

// MockChartService is a mock implementation of ChartServiceInterface
type MockChartService struct {
	mock.Mock
}

func (m *MockChartService) Info(ctx context.Context) (services.BuildInfo, error) {
	args := m.Called()
	return args.Get(0).(services.BuildInfo), args.Error(1)
}

func (m *MockChartService) List(ctx context.Context) ([]services.ChartSummary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.ChartSummary), args.Error(1)
}

func (m *MockChartService) Chart(ctx context.Context, id string) (services.ChartData, error) {
	args := m.Called(id)
	return args.Get(0).(services.ChartData), args.Error(1)
}

func (m *MockChartService) SVG(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockChartService) Page(ctx context.Context) ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockChartService) Export(ctx context.Context, id, format string) (*services.ExportFile, error) {
	args := m.Called(id, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ExportFile), args.Error(1)
}

func newChartRouter(t *testing.T, svc ChartServiceInterface) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	h := NewChartHandler(svc, logger, apierrors.NewErrorHandler(logger, false))

	r := chi.NewRouter()
	r.Mount("/api/charts", h.Routes())
	return r
}

func get(handler http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

var (
	errNotReady = apierrors.NewUnavailableError("dashboard is still being built", services.ErrDashboardNotReady)
	errNoChart  = apierrors.NewNotFoundError("chart_not_found", `chart "nope"`, services.ErrChartNotFound).
			WithContext("chart_id", "nope")
)

func TestChartHandlerList(t *testing.T) {
	tests := []struct {
		name       string
		list       []services.ChartSummary
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "success",
			list:       []services.ChartSummary{{ID: "imdb_score_trend", Rows: 3}, {ID: "genre_trends", Rows: 10}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "not built",
			err:        errNotReady,
			wantStatus: http.StatusServiceUnavailable,
			wantType:   "/errors/service-unavailable",
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   "/errors/internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockChartService)
			svc.On("List").Return(tt.list, tt.err)

			rec := get(newChartRouter(t, svc), "/api/charts")
			assert.Equal(t, tt.wantStatus, rec.Code)

			body := decodeProblem(t, rec)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, body["type"])
			} else {
				assert.Equal(t, "success", body["status"])
				assert.Equal(t, float64(len(tt.list)), body["count"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestChartHandlerGet(t *testing.T) {
	table := &domain.YearValueTable{
		Chart:     "imdb_score_trend",
		ValueName: "imdb_score",
		Points: []domain.YearValue{
			{Year: 2018, Value: 7.0},
			{Year: 2019, Value: domain.NaN()},
		},
	}

	svc := new(MockChartService)
	svc.On("Chart", "imdb_score_trend").Return(services.ChartData{
		ChartSummary: services.ChartSummary{ID: "imdb_score_trend", Columns: table.Columns(), Rows: table.Len()},
		Table:        table,
		Data:         table.Rows(),
	}, nil)
	svc.On("Chart", "nope").Return(services.ChartData{}, errNoChart)

	router := newChartRouter(t, svc)

	rec := get(router, "/api/charts/imdb_score_trend")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		Data struct {
			ID    string `json:"id"`
			Table struct {
				Points []struct {
					Year  int      `json:"year"`
					Value *float64 `json:"value"`
				} `json:"points"`
			} `json:"table"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "imdb_score_trend", body.Data.ID)
	require.Len(t, body.Data.Table.Points, 2)
	require.NotNil(t, body.Data.Table.Points[0].Value)
	assert.Equal(t, 7.0, *body.Data.Table.Points[0].Value)
	assert.Nil(t, body.Data.Table.Points[1].Value, "undefined values are null")

	rec = get(router, "/api/charts/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, "/errors/chart/not-found", problem["type"])
	assert.Equal(t, "chart_not_found", problem["error_code"])
	assert.Equal(t, "nope", problem["chart_id"])
}

func TestChartHandlerSVG(t *testing.T) {
	svc := new(MockChartService)
	svc.On("SVG", "genre_trends").Return([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), nil)

	rec := get(newChartRouter(t, svc), "/api/charts/genre_trends/svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")
}

func TestChartHandlerExport(t *testing.T) {
	csvFile := &services.ExportFile{
		Format:      exporter.FormatCSV,
		Filename:    "genre_trends.csv",
		ContentType: exporter.FormatCSV.ContentType(),
		Data:        []byte("year,genre\n2019,drama\n"),
	}

	tests := []struct {
		name        string
		query       string
		mockFormat  string
		mockErr     error
		wantStatus  int
		wantProblem string
	}{
		{name: "csv", query: "format=csv", mockFormat: "csv", wantStatus: http.StatusOK},
		{name: "normalised format", query: "format=%20CSV%20", mockFormat: "csv", wantStatus: http.StatusOK},
		{name: "unsupported", query: "format=pdf", wantStatus: http.StatusBadRequest, wantProblem: "/errors/export/invalid-format"},
		{name: "missing", query: "", wantStatus: http.StatusBadRequest, wantProblem: "/errors/export/invalid-format"},
		{name: "unknown chart", query: "format=csv", mockFormat: "csv", mockErr: errNoChart,
			wantStatus: http.StatusNotFound, wantProblem: "/errors/chart/not-found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockChartService)
			if tt.mockFormat != "" {
				if tt.mockErr != nil {
					svc.On("Export", "genre_trends", tt.mockFormat).Return(nil, tt.mockErr)
				} else {
					svc.On("Export", "genre_trends", tt.mockFormat).Return(csvFile, nil)
				}
			}

			rec := get(newChartRouter(t, svc), "/api/charts/genre_trends/export?"+tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantProblem != "" {
				assert.Equal(t, tt.wantProblem, decodeProblem(t, rec)["type"])
			} else {
				assert.Equal(t, `attachment; filename="genre_trends.csv"`, rec.Header().Get("Content-Disposition"))
				assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
				assert.Equal(t, string(csvFile.Data), rec.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestChartHandlerRejectsLongID(t *testing.T) {
	svc := new(MockChartService)
	long := make([]byte, maxChartIDLength+1)
	for i := range long {
		long[i] = 'a'
	}

	rec := get(newChartRouter(t, svc), "/api/charts/"+string(long))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Chart", mock.Anything)
}
