package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	environment string
	version     string
	started     time.Time
	deps        map[string]Pinger
	logger      *zap.Logger
	now         func() time.Time
}

// NewHealthHandler returns a new handler instance. deps holds only the
// dependencies that are configured.
func NewHealthHandler(environment, version string, deps map[string]Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		version:     version,
		started:     time.Now(),
		deps:        deps,
		logger:      logger,
		now:         time.Now,
	}
}

// Live handles GET /health.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	now := h.now()
	return c.JSON(fiber.Map{
		"status":      "OK",
		"timestamp":   now.UTC().Format(time.RFC3339),
		"uptime":      now.Sub(h.started).Seconds(),
		"environment": h.environment,
		"version":     h.version,
	})
}

// Ready handles GET /health/ready by pinging every dependency.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", zap.String("dependency", name), zap.Error(err))
			depStatus[name] = "unavailable"
			ready = false
			continue
		}
		depStatus[name] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"success":      true,
			"status":       "ready",
			"dependencies": depStatus,
		})
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"success":      false,
		"message":      "One or more dependencies unavailable",
		"dependencies": depStatus,
	})
}
