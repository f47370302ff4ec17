package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dairybook-api/internal/application/usecase"
)

// DashboardHandler expone el resumen del negocio del vendedor.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve ventas totales, saldo pendiente y conteos.
// GET /api/vendors/:vendorId/dashboard
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context(), c.Params("vendorId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
