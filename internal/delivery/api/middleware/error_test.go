package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskmanager/internal/delivery/api/response"
	domainerrors "taskmanager/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails any
	}{
		{
			name:        "app error",
			err:         errors.Wrap(domainerrors.ErrTaskNotFound, "failed to find task"),
			wantStatus:  http.StatusNotFound,
			wantCode:    "TASK_NOT_FOUND",
			wantMessage: "Task not found",
		},
		{
			name:        "validation error carries field details",
			err:         errors.WithStack(domainerrors.NewValidationError(map[string]string{"title": "is required"})),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_FAILED",
			wantMessage: "Input validation failed",
			wantDetails: map[string]any{"title": "is required"},
		},
		{
			name:        "echo http error",
			err:         echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			wantStatus:  http.StatusMethodNotAllowed,
			wantCode:    "METHOD_NOT_ALLOWED",
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "unknown error is hidden",
			err:         errors.New("pq: connection reset by peer"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "Internal server error, please try again later",
		},
		{
			name:        "database error details are hidden",
			err:         domainerrors.NewDatabaseExecuteError(errors.New("syntax error"), "SELECT * FROM tasks"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "DATABASE_EXECUTE_FAILED",
			wantMessage: "Database operation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			mw := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/tasks", nil), rec)

			mw.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
			assert.Equal(t, tt.wantDetails, body.Error.Details)
			assert.NotEmpty(t, body.Meta.RequestID)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestHandleAppError_ServerErrorsReachCentralHandler(t *testing.T) {
	var logs bytes.Buffer
	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(slog.New(slog.NewTextHandler(&logs, nil))).HandleHTTPError
	e.GET("/api/tasks", func(c echo.Context) error {
		return response.HandleAppError(c, domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "failed to list tasks"))
	})
	e.GET("/api/tasks/missing", func(c echo.Context) error {
		return response.HandleAppError(c, domainerrors.ErrTaskNotFound)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", body.Error.Code)
	assert.Nil(t, body.Error.Details)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Contains(t, logs.String(), "Request failed")
	assert.Contains(t, logs.String(), "connection refused")

	logs.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, logs.String())
}
