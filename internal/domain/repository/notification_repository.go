package repository

import (
	"context"

	"github.com/jhoicas/dairybook-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByBill(ctx context.Context, vendorID, billID string) ([]*entity.Notification, error)
}
