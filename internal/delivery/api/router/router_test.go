package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskmanager/internal/delivery/api/middleware"
	"taskmanager/internal/delivery/api/router/handler"
	mockService "taskmanager/internal/mocks/service"
	mockUsecase "taskmanager/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	info := handler.NewServerInfo()

	r := NewRouter(RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			AuthUC:     mockUsecase.NewMockAuthUsecase(t),
			ServerInfo: info,
			Logger:     logger,
		}),
		TaskHandler: handler.NewTaskHandler(handler.TaskHandlerParams{
			TaskUC:     mockUsecase.NewMockTaskUsecase(t),
			ActivityUC: mockUsecase.NewMockTaskActivityUsecase(t),
			Logger:     logger,
		}),
		HealthHandler: handler.NewHealthHandler(handler.HealthHandlerParams{
			Checker:    mockService.NewMockHealthChecker(t),
			ServerInfo: info,
			Logger:     logger,
		}),
		AuthMiddleware:      middleware.NewAuthMiddleware(mockService.NewMockTokenService(t)),
		RateLimitMiddleware: middleware.NewRateLimitMiddleware(mockService.NewMockRateLimiter(t), logger),
	})

	e := echo.New()
	r.RegisterRoutes(e)

	return e
}

func TestRegisterRoutes(t *testing.T) {
	e := newTestRouter(t)

	registered := make(map[string]bool)
	for _, route := range e.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /api/health",
		"POST /api/auth/signup",
		"POST /api/auth/signin",
		"POST /api/auth/signout",
		"GET /api/auth/validate-session",
		"GET /api/tasks",
		"POST /api/tasks",
		"GET /api/tasks/:id",
		"PUT /api/tasks/:id",
		"DELETE /api/tasks/:id",
		"GET /api/tasks/:id/activity",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks/0190a1b2-0000-7000-8000-000000000001"},
		{http.MethodDelete, "/api/tasks/0190a1b2-0000-7000-8000-000000000001"},
		{http.MethodGet, "/api/tasks/0190a1b2-0000-7000-8000-000000000001/activity"},
		{http.MethodGet, "/api/auth/validate-session"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
