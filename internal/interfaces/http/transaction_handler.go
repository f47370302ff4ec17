package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dairybook-api/internal/application/dto"
	"github.com/jhoicas/dairybook-api/internal/application/usecase"
)

// TransactionHandler maneja el registro y consulta de ventas.
type TransactionHandler struct {
	uc *usecase.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Record POST /api/vendors/:vendorId/transactions
func (h *TransactionHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	txn, err := h.uc.Record(c.Context(), c.Params("vendorId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(txn)
}

// ListAll GET /api/vendors/:vendorId/transactions
func (h *TransactionHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.uc.ListAll(c.Context(), c.Params("vendorId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListByCustomer GET /api/vendors/:vendorId/customers/:id/transactions
func (h *TransactionHandler) ListByCustomer(c *fiber.Ctx) error {
	out, err := h.uc.ListByCustomer(c.Context(), c.Params("vendorId"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
