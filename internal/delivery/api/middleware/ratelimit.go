package middleware

import (
	"log/slog"
	"math"
	"strconv"

	"taskmanager/internal/delivery/api/response"
	deliverycontext "taskmanager/internal/delivery/context"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
)

// RateLimitMiddleware throttles requests per client IP.
type RateLimitMiddleware struct {
	limiter service.RateLimiter
	logger  *slog.Logger
}

// NewRateLimitMiddleware creates a rate limiting middleware backed by limiter.
func NewRateLimitMiddleware(limiter service.RateLimiter, logger *slog.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
	}
}

// Limit answers 429 with Retry-After once the client's bucket is empty.
// Limiter errors let the request through.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		result, err := m.limiter.Allow(ctx, c.RealIP())
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Warn("Rate limiter unavailable", slog.Any("error", err))
		}
		if result == nil {
			return next(c)
		}

		if result.Limit > 0 {
			header := c.Response().Header()
			header.Set(HeaderRateLimitLimit, strconv.Itoa(result.Limit))
			header.Set(HeaderRateLimitRemaining, strconv.Itoa(max(result.Remaining, 0)))
		}

		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(max(retryAfter, 1)))

			return response.TooManyRequests(c, domainerrors.ErrTooManyRequests.ErrorCode(), domainerrors.ErrTooManyRequests.Message())
		}

		return next(c)
	}
}
