package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-crm/internal/config"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

const rateLimitPrefix = "crm:ratelimit"

// NewRateLimiter builds the fixed-window per-IP limiter. The redis store is
// used when configured so that every instance shares one window.
func NewRateLimiter(cfg config.RateLimitConfig, client *redis.Client) (*limiter.Limiter, error) {
	rate := limiter.Rate{Period: cfg.Window, Limit: cfg.MaxRequests}
	if cfg.Store == config.RateLimitStoreRedis {
		if client == nil {
			return nil, fmt.Errorf("rate limit store %q requires a redis client", cfg.Store)
		}
		store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: rateLimitPrefix, MaxRetry: 3})
		if err != nil {
			return nil, fmt.Errorf("creating redis rate limit store: %w", err)
		}
		return limiter.New(store, rate), nil
	}
	store := memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	return limiter.New(store, rate), nil
}

// rateLimitMiddleware counts every request against the client address.
// Limiter store failures let the request through.
func rateLimitMiddleware(lim *limiter.Limiter, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, err := lim.Get(c.UserContext(), c.IP())
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))
		if ctx.Reached {
			return apperrors.NewTooManyRequests("Too many requests from this IP, please try again later.")
		}
		return c.Next()
	}
}
