package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"taskmanager/internal/delivery/api/response"
	"taskmanager/internal/domain/service"
	"taskmanager/internal/util"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	Checker    service.HealthChecker
	ServerInfo *ServerInfo
	Logger     *slog.Logger
}

// HealthHandler reports process and database health.
type HealthHandler struct {
	checker    service.HealthChecker
	serverInfo *ServerInfo
	logger     *slog.Logger
	now        func() time.Time
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		checker:    params.Checker,
		serverInfo: params.ServerInfo,
		logger:     params.Logger,
		now:        time.Now,
	}
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status          string    `json:"status"`
	ServerStartTime time.Time `json:"serverStartTime"`
	Uptime          string    `json:"uptime"`
}

// Check handles GET /api/health. A failed database ping answers 503 "degraded".
func (h *HealthHandler) Check(c echo.Context) error {
	body := &HealthResponse{
		Status:          "ok",
		ServerStartTime: h.serverInfo.StartedAt,
		Uptime:          util.FormatDuration(h.now().Sub(h.serverInfo.StartedAt)),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.checker.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", slog.Any("error", err))
		body.Status = "degraded"

		return response.Success(c, http.StatusServiceUnavailable, body)
	}

	return response.Success(c, http.StatusOK, body)
}
