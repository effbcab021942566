package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/health/live", h.Liveness)
	r.Get("/health/ready", h.Readiness)
	r.Get("/health/startup", h.Startup)
}

// Liveness проверяет, что приложение работает
func (h *HealthHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// Readiness проверяет доступность базы выгрузок
func (h *HealthHandler) Readiness(c fiber.Ctx) error {
	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			log.Printf("[HEALTH] Database not ready: %v", err)
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
				"error":  err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{
		"status": "ready",
	})
}

func (h *HealthHandler) Startup(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}
