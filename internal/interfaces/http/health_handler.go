package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger verifica la conectividad del almacén configurado.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler GET /health
type HealthHandler struct {
	service string
	driver  string
	store   Pinger
}

// NewHealthHandler construye el handler.
func NewHealthHandler(service, driver string, store Pinger) *HealthHandler {
	return &HealthHandler{service: service, driver: driver, store: store}
}

// Check responde 200 si el almacén responde al ping; 503 si no.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	body := fiber.Map{"status": "ok", "service": h.service, "store": h.driver}
	if h.store == nil {
		return c.JSON(body)
	}
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		body["status"] = "degraded"
		body["error"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(body)
	}
	return c.JSON(body)
}
