package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dairybook-api/internal/domain"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
	"github.com/jhoicas/dairybook-api/pkg/logger"
)

// FormatBillMessage arma el texto de cobro que recibe el cliente.
func FormatBillMessage(bill *entity.Bill, currencySymbol string) string {
	return fmt.Sprintf("Hello %s,\n\n"+
		"Your monthly bill for %s is ready.\n"+
		"Total Amount: %s%s\n\n"+
		"Please pay at your earliest convenience.\n\n"+
		"Thank you for your business!",
		bill.CustomerName, bill.BillingMonth, currencySymbol, bill.TotalAmount.String())
}

// NotificationUseCase envía (simulado) una factura existente y deja registro del envío.
// Nunca modifica la factura ni sus transacciones; cada llamada crea una notificación nueva.
type NotificationUseCase struct {
	billRepo       repository.BillRepository
	notifRepo      repository.NotificationRepository
	sender         MessageSender
	currencySymbol string
	now            func() time.Time
	log            *logger.Logger
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(
	billRepo repository.BillRepository,
	notifRepo repository.NotificationRepository,
	sender MessageSender,
	currencySymbol string,
	log *logger.Logger,
) *NotificationUseCase {
	return &NotificationUseCase{
		billRepo:       billRepo,
		notifRepo:      notifRepo,
		sender:         sender,
		currencySymbol: currencySymbol,
		now:            time.Now,
		log:            log.Component("notification_recorder"),
	}
}

// SendNotification formatea el mensaje de la factura, lo entrega al sender y persiste la notificación.
func (uc *NotificationUseCase) SendNotification(ctx context.Context, vendorID, billID string) (*entity.Notification, error) {
	if vendorID == "" || billID == "" {
		return nil, domain.ErrInvalidInput
	}
	bill, err := uc.billRepo.GetByID(ctx, vendorID, billID)
	if err != nil {
		return nil, domain.StorageError("obtener factura", err)
	}
	if bill == nil {
		return nil, domain.ErrBillNotFound
	}

	message := FormatBillMessage(bill, uc.currencySymbol)
	if err := uc.sender.Send(ctx, bill.CustomerPhone, message); err != nil {
		uc.log.Error().Err(err).Str("bill_id", bill.ID).Msg("envío de mensaje fallido")
		return nil, fmt.Errorf("enviar mensaje: %w", err)
	}

	n := &entity.Notification{
		ID:            uuid.New().String(),
		VendorID:      vendorID,
		BillID:        bill.ID,
		CustomerID:    bill.CustomerID,
		CustomerName:  bill.CustomerName,
		CustomerPhone: bill.CustomerPhone,
		Message:       message,
		Type:          entity.NotificationTypeWhatsAppMock,
		SentAt:        uc.now(),
		Status:        entity.NotificationStatusMockSent,
	}
	if err := uc.notifRepo.Create(ctx, n); err != nil {
		return nil, domain.StorageError("guardar notificación", err)
	}

	uc.log.Info().
		Str("vendor_id", vendorID).
		Str("bill_id", bill.ID).
		Str("notification_id", n.ID).
		Msg("notificación registrada")
	return n, nil
}

// ListByBill devuelve las notificaciones enviadas para una factura.
func (uc *NotificationUseCase) ListByBill(ctx context.Context, vendorID, billID string) ([]*entity.Notification, error) {
	if vendorID == "" || billID == "" {
		return nil, domain.ErrInvalidInput
	}
	bill, err := uc.billRepo.GetByID(ctx, vendorID, billID)
	if err != nil {
		return nil, domain.StorageError("obtener factura", err)
	}
	if bill == nil {
		return nil, domain.ErrBillNotFound
	}
	list, err := uc.notifRepo.ListByBill(ctx, vendorID, billID)
	if err != nil {
		return nil, domain.StorageError("listar notificaciones", err)
	}
	return list, nil
}
