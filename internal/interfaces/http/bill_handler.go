package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dairybook-api/internal/application/billing"
	"github.com/jhoicas/dairybook-api/internal/application/dto"
)

// BillHandler maneja la generación, consulta, PDF y envío de facturas mensuales.
type BillHandler struct {
	generate     *billing.GenerateBillUseCase
	bills        *billing.BillUseCase
	notification *billing.NotificationUseCase
	pdf          *billing.PDFUseCase
}

// NewBillHandler construye el handler.
func NewBillHandler(
	generate *billing.GenerateBillUseCase,
	bills *billing.BillUseCase,
	notification *billing.NotificationUseCase,
	pdf *billing.PDFUseCase,
) *BillHandler {
	return &BillHandler{generate: generate, bills: bills, notification: notification, pdf: pdf}
}

// Generate factura las ventas pendientes del mes en curso del cliente.
// POST /api/vendors/:vendorId/customers/:id/bills
func (h *BillHandler) Generate(c *fiber.Ctx) error {
	bill, err := h.generate.GenerateBill(c.Context(), c.Params("vendorId"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(billing.ToBillResponse(bill))
}

// ListByCustomer GET /api/vendors/:vendorId/customers/:id/bills?month=YYYY-MM
func (h *BillHandler) ListByCustomer(c *fiber.Ctx) error {
	list, err := h.bills.ListByCustomer(c.Context(), c.Params("vendorId"), c.Params("id"), c.Query("month"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BillResponse, 0, len(list))
	for _, b := range list {
		out = append(out, billing.ToBillResponse(b))
	}
	return c.JSON(out)
}

// GetByID GET /api/vendors/:vendorId/bills/:id
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	bill, err := h.bills.GetBill(c.Context(), c.Params("vendorId"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(billing.ToBillResponse(bill))
}

// DownloadPDF GET /api/vendors/:vendorId/bills/:id/pdf
func (h *BillHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadBillPDF(c.Context(), c.Params("vendorId"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// SendNotification envía (mock) la factura por WhatsApp y devuelve el registro.
// POST /api/vendors/:vendorId/bills/:id/notifications
func (h *BillHandler) SendNotification(c *fiber.Ctx) error {
	n, err := h.notification.SendNotification(c.Context(), c.Params("vendorId"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(billing.ToNotificationResponse(n))
}

// ListNotifications GET /api/vendors/:vendorId/bills/:id/notifications
func (h *BillHandler) ListNotifications(c *fiber.Ctx) error {
	list, err := h.notification.ListByBill(c.Context(), c.Params("vendorId"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, billing.ToNotificationResponse(n))
	}
	return c.JSON(out)
}
