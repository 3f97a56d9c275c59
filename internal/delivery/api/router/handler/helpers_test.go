package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"taskmanager/internal/delivery/api/middleware"
	"taskmanager/internal/delivery/api/validator"
	"taskmanager/internal/domain/service"
	mockSvc "taskmanager/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testToken = "test.bearer.token"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(discardLogger()).HandleHTTPError

	return e
}

// authAs returns a middleware that authenticates testToken as userID.
func authAs(t *testing.T, userID uuid.UUID) echo.MiddlewareFunc {
	t.Helper()

	tokenService := mockSvc.NewMockTokenService(t)
	tokenService.EXPECT().Verify(testToken).Return(&service.Claims{Subject: userID, Email: "ada@example.com"}, nil).Maybe()

	return middleware.NewAuthMiddleware(tokenService).Authenticate
}

func doRequest(e *echo.Echo, method, target, body string, authenticated bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authenticated {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+testToken)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var data T
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))

	return data
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()

	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode(t, rec)
	require.NotNil(t, body.Error)
	require.Equal(t, code, body.Error.Code)

	return body
}
