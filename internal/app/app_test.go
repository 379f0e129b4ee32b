package app

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/config"
	apperrors "github.com/Xin-10/Netflix-Data-Visualization/internal/errors"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/shared/testutil"
)

const datasetCSV = `title,type,release_date,genres,country,imdb_score,imdb_votes,close,volatility
Stranger Things,SHOW,2016-07-15,"Sci-Fi & Fantasy, Drama",United States,8.7,1200000,91.25,0.031
Roma,MOVIE,2018-12-14,"dramas, International Movies","Mexico, United States",7.7,"150,000",267.66,0.045
The Crown,SHOW,2016-11-04,Dramas,United Kingdom,8.6,250000,117.0,0.028
Bird Box,MOVIE,2018-12-21,"Horror Movies, Thrillers",United States,6.6,300000,256.08,0.052
Sacred Games,SHOW,2018-07-06,"International TV Shows, Crime TV Shows",India,8.5,110000,407.22,0.047
House of Cards,SHOW,2013-02-01,"TV Dramas",United States,8.7,500000,23.6,0.061
Squid Game,SHOW,2021-09-17,"International TV Shows, Thrillers",South Korea,8.0,1900000,592.64,0.024
Untitled,MOVIE,,,Unknown,,,,
`

func testConfig(t *testing.T, withData bool) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if withData {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "netflix.csv"), []byte(datasetCSV), 0644))
	}

	cfg := config.Default()
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = 5 * time.Second
	cfg.Data.Dir = dir
	cfg.Data.File = "netflix.csv"
	cfg.Data.ExportDir = filepath.Join(dir, "exports")
	cfg.Dashboard.JitterSeed = 1
	cfg.Dashboard.ChartWidth = 400
	cfg.Dashboard.ChartHeight = 200
	cfg.Security.RateLimit.Enabled = false
	return cfg
}

func newTestApp(t *testing.T, withData bool) *Application {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	application, err := New(testConfig(t, withData), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		application.OTelProviders.Shutdown(context.Background())
	})
	return application
}

func serve(a *Application, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestApplicationRoutes(t *testing.T) {
	application := newTestApp(t, true)
	require.NoError(t, application.LoadDashboard(context.Background()))

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantType    string
		wantContain string
	}{
		{name: "page", target: "/", wantStatus: http.StatusOK, wantType: "text/html", wantContain: "Netflix Data Analysis Dashboard"},
		{name: "chart list", target: "/api/charts", wantStatus: http.StatusOK, wantType: "application/json", wantContain: "imdb_score_trend"},
		{name: "trailing slash", target: "/api/charts/", wantStatus: http.StatusOK, wantType: "application/json", wantContain: "genre_trends"},
		{name: "chart table", target: "/api/charts/genre_trends", wantStatus: http.StatusOK, wantType: "application/json", wantContain: `"columns"`},
		{name: "chart svg", target: "/api/charts/stock_vs_releases/svg", wantStatus: http.StatusOK, wantType: "image/svg+xml", wantContain: "<svg"},
		{name: "csv export", target: "/api/charts/genre_trends/export?format=csv", wantStatus: http.StatusOK, wantType: "text/csv", wantContain: "year"},
		{name: "xlsx export", target: "/api/charts/genre_trends/export?format=xlsx", wantStatus: http.StatusOK, wantType: "spreadsheetml"},
		{name: "bad format", target: "/api/charts/genre_trends/export?format=pdf", wantStatus: http.StatusBadRequest, wantContain: "invalid_export_format"},
		{name: "missing format", target: "/api/charts/genre_trends/export", wantStatus: http.StatusBadRequest, wantContain: "invalid_export_format"},
		{name: "unknown chart", target: "/api/charts/box_office", wantStatus: http.StatusNotFound, wantContain: "chart_not_found"},
		{name: "dashboard info", target: "/api/dashboard", wantStatus: http.StatusOK, wantContain: `"records":8`},
		{name: "health", target: "/api/health", wantStatus: http.StatusOK, wantContain: `"ok"`},
		{name: "ready", target: "/api/health/ready", wantStatus: http.StatusOK, wantContain: `"ready"`},
		{name: "live", target: "/api/health/live", wantStatus: http.StatusOK, wantContain: `"alive"`},
		{name: "version", target: "/api/version", wantStatus: http.StatusOK, wantContain: `"api_version"`},
		{name: "metrics", target: "/metrics", wantStatus: http.StatusOK, wantContain: "chart_builds_total"},
		{name: "unknown route", target: "/api/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(application, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantType != "" {
				assert.Contains(t, rec.Header().Get("Content-Type"), tt.wantType)
			}
			if tt.wantContain != "" {
				assert.Contains(t, rec.Body.String(), tt.wantContain)
			}
		})
	}
}

func TestApplicationExportHeaders(t *testing.T) {
	application := newTestApp(t, true)
	require.NoError(t, application.LoadDashboard(context.Background()))

	rec := serve(application, "/api/charts/imdb_score_trend/export?format=XLSX")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="imdb_score_trend.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestApplicationProblemDetails(t *testing.T) {
	application := newTestApp(t, true)
	require.NoError(t, application.LoadDashboard(context.Background()))

	rec := serve(application, "/api/charts/box_office/svg")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "/errors/chart/not-found", problem["type"])
	assert.Equal(t, "chart_not_found", problem["error_code"])
	assert.Equal(t, "box_office", problem["chart_id"])
	assert.Equal(t, float64(http.StatusNotFound), problem["status"])
	assert.NotEmpty(t, problem["trace_id"])
}

func TestApplicationNotReadyBeforeLoad(t *testing.T) {
	application := newTestApp(t, true)

	tests := []struct {
		target string
		want   int
	}{
		{target: "/", want: http.StatusServiceUnavailable},
		{target: "/api/charts", want: http.StatusServiceUnavailable},
		{target: "/api/health/ready", want: http.StatusServiceUnavailable},
		{target: "/api/health/live", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(strings.TrimPrefix(tt.target, "/"), func(t *testing.T) {
			assert.Equal(t, tt.want, serve(application, tt.target).Code)
		})
	}
}

func TestApplicationStartFailsWithoutDataset(t *testing.T) {
	application := newTestApp(t, false)

	err := application.Start(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeDataLoad, appErr.Type)
	assert.Equal(t, application.DatasetPath, appErr.Context["path"])
	assert.False(t, application.DashboardService.Ready())
}

func TestApplicationStartStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	logger, _ := testutil.NewTestLogger(t)
	application, err := New(testConfig(t, true), logger)
	require.NoError(t, err)

	require.NoError(t, application.Start(context.Background()))

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + application.Addr() + "/api/health/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	client.CloseIdleConnections()

	require.NoError(t, application.Stop(context.Background()))
}
