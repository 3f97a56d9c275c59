package service

import (
	"context"
	"time"
)

// RateLimitResult is the outcome of a single Allow call.
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter throttles requests per key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (*RateLimitResult, error)
}
