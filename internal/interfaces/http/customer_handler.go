package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dairybook-api/internal/application/billing"
	"github.com/jhoicas/dairybook-api/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes del vendedor.
type CustomerHandler struct {
	uc *billing.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create POST /api/vendors/:vendorId/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(c.Context(), c.Params("vendorId"), in.Name, in.Phone)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(billing.ToCustomerResponse(customer))
}

// List GET /api/vendors/:vendorId/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Params("vendorId"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, customer := range list {
		out = append(out, billing.ToCustomerResponse(customer))
	}
	return c.JSON(out)
}

// GetByID GET /api/vendors/:vendorId/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.Get(c.Context(), c.Params("vendorId"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(billing.ToCustomerResponse(customer))
}
