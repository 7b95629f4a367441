package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/review-api/internal/errs"
	"github.com/deppfellow/review-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	rateLimitKeyPrefix = "ratelimit"
	redisStoreTimeout  = 500 * time.Millisecond
)

// RedisRateLimiterStore is a fixed window counter shared by every
// instance of the API. It implements echo's middleware.RateLimiterStore.
type RedisRateLimiterStore struct {
	client   *redis.Client
	requests int
	window   time.Duration
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewRedisRateLimiterStore(client *redis.Client, requests int, window time.Duration, logger *zerolog.Logger) *RedisRateLimiterStore {
	return &RedisRateLimiterStore{
		client:   client,
		requests: requests,
		window:   window,
		logger:   logger,
		now:      time.Now,
	}
}

// Allow counts one request for identifier in the current window.
//
// Redis failures let the request through: losing the limiter must not
// take the API down with it.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisStoreTimeout)
	defer cancel()

	windowStart := s.now().Truncate(s.window).Unix()
	key := fmt.Sprintf("%s:%s:%d", rateLimitKeyPrefix, identifier, windowStart)

	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)

	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn().
			Err(err).
			Str("identifier", identifier).
			Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return count.Val() <= int64(s.requests), nil
}

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// RecordRateLimitHit records a RateLimitHit custom event in New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// Limit enforces the configured per-IP budget. It is a pass-through when
// rate limiting is disabled or no Redis client exists.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit
	if !cfg.Enabled || r.server.Redis == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	store := NewRedisRateLimiterStore(r.server.Redis, cfg.Requests, cfg.Window, r.server.Logger)

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			GetLogger(c).Warn().
				Str("identifier", identifier).
				Int("requests", cfg.Requests).
				Dur("window", cfg.Window).
				Msg("rate limit exceeded")

			return errs.NewTooManyRequestsError()
		},
	})
}
