// Package ratelimit throttles credential endpoints with a Redis token bucket.
package ratelimit

import (
	"context"
	"log/slog"
	"math"
	"time"

	"taskmanager/config"
	"taskmanager/internal/domain/lifecycle"
	"taskmanager/internal/domain/service"
	"taskmanager/internal/errors"
	"taskmanager/internal/util"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	signInKeyPrefix = "ratelimit:signin:"
	minKeyTTL       = 10 * time.Second
)

// tokenBucketScript refills and consumes atomically.
// Returns {allowed, retry_after_seconds, remaining_tokens}.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])      -- tokens per second
	local burst = tonumber(ARGV[2])     -- bucket capacity
	local now = tonumber(ARGV[3])       -- current time in seconds
	local ttl = tonumber(ARGV[4])       -- key TTL in seconds

	local data = redis.call('HMGET', key, 'tokens', 'last_update')
	local tokens = tonumber(data[1]) or burst
	local last_update = tonumber(data[2]) or now

	local elapsed = math.max(0, now - last_update)
	tokens = math.min(burst, tokens + (elapsed * rate))

	local allowed = 0
	local retry_after = 0

	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after = math.ceil((1 - tokens) / rate)
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_update', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// redisLimiter is a per-key token bucket stored in Redis.
type redisLimiter struct {
	client redis.Scripter
	prefix string
	rate   float64 // tokens per second
	burst  int
	ttl    time.Duration
	now    func() time.Time
}

func newRedisLimiter(client redis.Scripter, prefix string, requestsPerMinute, burst int) *redisLimiter {
	if burst <= 0 {
		burst = 1
	}
	rate := float64(requestsPerMinute) / 60.0

	// Long enough for an empty bucket to refill completely.
	ttl := time.Duration(math.Ceil(float64(burst)/rate)) * time.Second
	if ttl < minKeyTTL {
		ttl = minKeyTTL
	}

	return &redisLimiter{
		client: client,
		prefix: prefix,
		rate:   rate,
		burst:  burst,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Allow consumes one token for key. On Redis errors the request is allowed
// and the error is returned for logging.
func (l *redisLimiter) Allow(ctx context.Context, key string) (*service.RateLimitResult, error) {
	res, err := tokenBucketScript.Run(ctx, l.client,
		[]string{l.prefix + util.Fingerprint(key)},
		l.rate, l.burst, l.now().Unix(), int(l.ttl.Seconds()),
	).Int64Slice()
	if err != nil {
		return &service.RateLimitResult{Allowed: true, Limit: l.burst, Remaining: l.burst}, errors.Wrap(err, "rate limit script")
	}
	if len(res) != 3 {
		return &service.RateLimitResult{Allowed: true, Limit: l.burst, Remaining: l.burst}, errors.Errorf("unexpected rate limit reply: %v", res)
	}

	return &service.RateLimitResult{
		Allowed:    res[0] == 1,
		Limit:      l.burst,
		Remaining:  int(res[2]),
		RetryAfter: time.Duration(res[1]) * time.Second,
	}, nil
}

// noopLimiter allows everything. Used when Redis is not configured.
type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) (*service.RateLimitResult, error) {
	return &service.RateLimitResult{Allowed: true}, nil
}

// Params holds dependencies for the sign-in limiter, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewSignInLimiter builds the limiter for sign-in and sign-up.
// Without redis.url or with the limit disabled it returns a pass-through limiter.
func NewSignInLimiter(params Params) (service.RateLimiter, error) {
	cfg := params.Config.Redis
	if cfg == nil || cfg.URL == "" || !cfg.SignInRateLimit.Enabled {
		params.Logger.Info("Sign-in rate limiting disabled")

		return noopLimiter{}, nil
	}
	if cfg.SignInRateLimit.RequestsPerMinute <= 0 {
		return nil, errors.New("redis.signInRateLimit.requestsPerMinute must be positive")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)

	params.Lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			// Requests fail open, so an unreachable Redis is not fatal.
			if err := client.Ping(ctx).Err(); err != nil {
				params.Logger.Warn("Redis unreachable, sign-in rate limiting will fail open", slog.Any("error", err))
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	params.Logger.Info("Sign-in rate limiting enabled",
		slog.Int("requests_per_minute", cfg.SignInRateLimit.RequestsPerMinute),
		slog.Int("burst", cfg.SignInRateLimit.Burst),
	)

	return newRedisLimiter(client, signInKeyPrefix, cfg.SignInRateLimit.RequestsPerMinute, cfg.SignInRateLimit.Burst), nil
}

