package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskmanager/internal/domain/service"
	mockSvc "taskmanager/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serveLimited(t *testing.T, limiter service.RateLimiter) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	mw := NewRateLimitMiddleware(limiter, slog.Default())
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()

	called := false
	err := mw.Limit(func(c echo.Context) error {
		called = true

		return c.NoContent(http.StatusOK)
	})(e.NewContext(req, rec))
	require.NoError(t, err)

	return rec, called
}

func TestRateLimitMiddleware_Allows(t *testing.T) {
	limiter := mockSvc.NewMockRateLimiter(t)
	limiter.EXPECT().Allow(mock.Anything, "203.0.113.7").Return(&service.RateLimitResult{
		Allowed:   true,
		Limit:     5,
		Remaining: 4,
	}, nil)

	rec, called := serveLimited(t, limiter)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitMiddleware_Rejects(t *testing.T) {
	limiter := mockSvc.NewMockRateLimiter(t)
	limiter.EXPECT().Allow(mock.Anything, "203.0.113.7").Return(&service.RateLimitResult{
		Allowed:    false,
		Limit:      5,
		Remaining:  0,
		RetryAfter: 1500 * time.Millisecond,
	}, nil)

	rec, called := serveLimited(t, limiter)

	assert.False(t, called)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get(echo.HeaderRetryAfter))
	assert.Contains(t, rec.Body.String(), "TOO_MANY_REQUESTS")
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	limiter := mockSvc.NewMockRateLimiter(t)
	limiter.EXPECT().Allow(mock.Anything, mock.Anything).Return(&service.RateLimitResult{Allowed: true}, errors.New("dial tcp: connection refused"))

	rec, called := serveLimited(t, limiter)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}
