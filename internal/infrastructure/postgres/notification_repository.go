package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste el registro de envío.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, vendor_id, bill_id, customer_id, customer_name, customer_phone, message, type, status, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.VendorID, n.BillID, n.CustomerID, n.CustomerName, n.CustomerPhone,
		n.Message, n.Type, n.Status, n.SentAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByBill lista los envíos de una factura en orden cronológico.
func (r *NotificationRepo) ListByBill(ctx context.Context, vendorID, billID string) ([]*entity.Notification, error) {
	query := `
		SELECT id, vendor_id, bill_id, customer_id, customer_name, customer_phone, message, type, status, sent_at
		FROM notifications WHERE vendor_id = $1 AND bill_id = $2 ORDER BY sent_at`
	rows, err := r.q.Query(ctx, query, vendorID, billID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Notification, 0)
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(
			&n.ID, &n.VendorID, &n.BillID, &n.CustomerID, &n.CustomerName, &n.CustomerPhone,
			&n.Message, &n.Type, &n.Status, &n.SentAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
