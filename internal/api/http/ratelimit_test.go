package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-crm/internal/config"
)

func newLimitedApp(t *testing.T, cfg config.RateLimitConfig, client *redis.Client) *fiber.App {
	t.Helper()
	lim, err := NewRateLimiter(cfg, client)
	require.NoError(t, err)
	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{Logger: zap.NewNop(), RateLimiter: lim})
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app
}

func hit(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRateLimiter(t *testing.T) {
	cfg := config.RateLimitConfig{Window: time.Minute, MaxRequests: 2, Store: config.RateLimitStoreMemory}

	t.Run("Should reject requests past the window budget", func(t *testing.T) {
		app := newLimitedApp(t, cfg, nil)

		first := hit(t, app)
		assert.Equal(t, http.StatusOK, first.StatusCode)
		assert.Equal(t, "2", first.Header.Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", first.Header.Get("X-RateLimit-Remaining"))
		assert.Equal(t, http.StatusOK, hit(t, app).StatusCode)

		third := hit(t, app)
		assert.Equal(t, http.StatusTooManyRequests, third.StatusCode)
		assert.Equal(t, "0", third.Header.Get("X-RateLimit-Remaining"))
	})
	t.Run("Should share the window through redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		redisCfg := cfg
		redisCfg.Store = config.RateLimitStoreRedis

		// Two instances backed by the same store consume one budget.
		a := newLimitedApp(t, redisCfg, client)
		b := newLimitedApp(t, redisCfg, client)

		assert.Equal(t, http.StatusOK, hit(t, a).StatusCode)
		assert.Equal(t, http.StatusOK, hit(t, b).StatusCode)
		assert.Equal(t, http.StatusTooManyRequests, hit(t, a).StatusCode)
	})
	t.Run("Should refuse a redis store without a client", func(t *testing.T) {
		_, err := NewRateLimiter(config.RateLimitConfig{Window: time.Minute, MaxRequests: 1, Store: config.RateLimitStoreRedis}, nil)
		assert.Error(t, err)
	})
}
