package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Pinger is the one pool method the health probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers the liveness probe docker-compose and the deploy
// scripts poll. The probe is only as healthy as the database behind it.
type HealthHandler struct {
	pool Pinger
}

func NewHealthHandler(pool Pinger) *HealthHandler {
	return &HealthHandler{pool: pool}
}

// Check pings the database and reports 200 healthy or 503 unhealthy. The
// error detail stays in the log, not the response body.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := h.pool.Ping(c.Context()); err != nil {
		log.Error().Err(err).Msg("health check failed: database unreachable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  "database connection failed",
		})
	}
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "rebuild-studio-server",
	})
}
