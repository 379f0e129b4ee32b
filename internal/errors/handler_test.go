package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/shared/testutil"
)

var errChartMissing = errors.New("chart not found")

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantCode   string
		wantDetail string
	}{
		{
			name:       "context deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "wrapped context canceled",
			err:        fmt.Errorf("failed to build: %w", context.Canceled),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "chart not found",
			err:        NewNotFoundError("chart_not_found", `chart "nope"`, errChartMissing),
			wantStatus: http.StatusNotFound,
			wantType:   TypeChartNotFound,
			wantCode:   "chart_not_found",
			wantDetail: `chart "nope" not found`,
		},
		{
			name:       "wrapped app error keeps its mapping",
			err:        fmt.Errorf("handler: %w", NewNotFoundError("chart_not_found", "chart", nil)),
			wantStatus: http.StatusNotFound,
			wantType:   TypeChartNotFound,
			wantCode:   "chart_not_found",
		},
		{
			name:       "invalid export format",
			err:        NewAppValidationError("invalid_export_format", "format must be csv or xlsx", nil),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeInvalidExportFormat,
			wantCode:   "invalid_export_format",
			wantDetail: "format must be csv or xlsx",
		},
		{
			name:       "generic validation",
			err:        NewAppValidationError("bad_input", "bad", nil),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantCode:   "bad_input",
		},
		{
			name:       "dashboard not ready",
			err:        NewUnavailableError("dashboard is still building", nil),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeServiceDown,
			wantCode:   "service_unavailable",
		},
		{
			name:       "data load",
			err:        NewDataLoadError("dataset unavailable", errors.New("missing column")),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeDataLoad,
			wantCode:   "data_load_failed",
		},
		{
			name:       "storage errors hide their detail",
			err:        NewStorageError("disk path /secret failed", nil),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantDetail: "An unexpected error occurred while processing your request",
		},
		{
			name:       "api error",
			err:        ErrValidation("format", "must be one of csv xlsx"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, false)

			req := httptest.NewRequest(http.MethodGet, "/api/charts/nope", nil)
			rec := httptest.NewRecorder()
			handler.HandleError(rec, req, tt.err)

			require.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "/api/charts/nope", body["instance"])
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error_code"])
			}
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, body["detail"])
			}
			assert.NotContains(t, body, "stack")
		})
	}
}

func TestErrorHandler_HandleNilError(t *testing.T) {
	logger, records := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	rec := httptest.NewRecorder()
	handler.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Zero(t, rec.Body.Len())
	assert.Zero(t, records.Count())
}

func TestErrorHandler_LogLevel(t *testing.T) {
	logger, records := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)
	req := httptest.NewRequest(http.MethodGet, "/api/charts/x", nil)

	handler.HandleError(httptest.NewRecorder(), req, NewNotFoundError("chart_not_found", "chart", nil))
	handler.HandleError(httptest.NewRecorder(), req, errors.New("boom"))

	warn := records.GetRecordsByLevel(slog.LevelWarn)
	errs := records.GetRecordsByLevel(slog.LevelError)
	require.Len(t, warn, 1)
	require.Len(t, errs, 1)
	assert.Equal(t, "error_handler", errs[0].Attrs["component"])
}

func TestErrorHandler_IncludeStack(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, true)

	rec := httptest.NewRecorder()
	handler.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "stack")
}

func TestAppErrorContextBecomesExtensions(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	err := NewNotFoundError("chart_not_found", "chart", nil).
		WithContext("chart_id", "nope").
		WithContext("status", 999)

	rec := httptest.NewRecorder()
	handler.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "nope", body["chart_id"])
	assert.Equal(t, float64(http.StatusNotFound), body["status"], "standard fields win over extensions")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	rec := httptest.NewRecorder()
	handler.NotFound(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPost, "/api/charts", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "POST")
}

func TestAppError(t *testing.T) {
	cause := errors.New("root")
	err := NewDataLoadError("load failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[DATA_LOAD] load failed: root", err.Error())
	assert.Equal(t, "[NOT_FOUND] chart not found", NewNotFoundError("x", "chart", nil).Error())

	var appErr *AppError
	require.ErrorAs(t, fmt.Errorf("wrap: %w", err), &appErr)
	assert.Equal(t, ErrTypeDataLoad, appErr.Type)
}
