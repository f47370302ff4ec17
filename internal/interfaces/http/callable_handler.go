package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dairybook-api/internal/application/billing"
	"github.com/jhoicas/dairybook-api/internal/application/dto"
	"github.com/jhoicas/dairybook-api/internal/domain"
)

// CallableHandler expone generateBill y sendWhatsApp como funciones invocables:
// body JSON camelCase, respuesta {success: true, ...} o {success: false, code, message}.
type CallableHandler struct {
	generate     *billing.GenerateBillUseCase
	notification *billing.NotificationUseCase
}

// NewCallableHandler construye el handler.
func NewCallableHandler(generate *billing.GenerateBillUseCase, notification *billing.NotificationUseCase) *CallableHandler {
	return &CallableHandler{generate: generate, notification: notification}
}

// GenerateBill POST /api/functions/generateBill
func (h *CallableHandler) GenerateBill(c *fiber.Ctx) error {
	var in dto.GenerateBillCallRequest
	if err := c.BodyParser(&in); err != nil {
		return respondCallableError(c, domain.ErrInvalidInput)
	}
	if in.VendorID == "" || in.CustomerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CallableErrorResponse{
			Success: false, Code: codeInvalidArgument, Message: "Missing vendorId or customerId",
		})
	}
	if !vendorAllowed(c, in.VendorID) {
		return respondCallableError(c, domain.ErrForbidden)
	}

	bill, err := h.generate.GenerateBill(c.Context(), in.VendorID, in.CustomerID)
	if err != nil {
		return respondCallableError(c, err)
	}
	return c.JSON(dto.GenerateBillCallResponse{
		Success:          true,
		BillID:           bill.ID,
		TotalAmount:      json.Number(bill.TotalAmount.String()),
		TransactionCount: bill.TransactionCount,
		CustomerName:     bill.CustomerName,
	})
}

// SendWhatsApp POST /api/functions/sendWhatsApp
func (h *CallableHandler) SendWhatsApp(c *fiber.Ctx) error {
	var in dto.SendWhatsAppCallRequest
	if err := c.BodyParser(&in); err != nil {
		return respondCallableError(c, domain.ErrInvalidInput)
	}
	if in.VendorID == "" || in.BillID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CallableErrorResponse{
			Success: false, Code: codeInvalidArgument, Message: "Missing vendorId or billId",
		})
	}
	if !vendorAllowed(c, in.VendorID) {
		return respondCallableError(c, domain.ErrForbidden)
	}

	n, err := h.notification.SendNotification(c.Context(), in.VendorID, in.BillID)
	if err != nil {
		return respondCallableError(c, err)
	}
	return c.JSON(dto.SendWhatsAppCallResponse{
		Success:        true,
		Message:        "Mock WhatsApp sent successfully",
		NotificationID: n.ID,
		PhoneNumber:    n.CustomerPhone,
		FullMessage:    n.Message,
	})
}
