package repository

import (
	"context"
	"time"

	"github.com/jhoicas/dairybook-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para Transaction.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	ListByCustomer(ctx context.Context, vendorID, customerID string) ([]*entity.Transaction, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*entity.Transaction, error)
	// ListUnpaidInRange devuelve las transacciones no pagadas del cliente con fecha en [from, to].
	// Dentro de una unidad atómica las filas quedan bloqueadas hasta el commit cuando el motor lo permite.
	ListUnpaidInRange(ctx context.Context, vendorID, customerID string, from, to time.Time) ([]*entity.Transaction, error)
	// MarkPaid marca como pagadas (con billID) las transacciones listadas que sigan sin pagar
	// y devuelve cuántas cambiaron.
	MarkPaid(ctx context.Context, vendorID, billID string, ids []string) (int64, error)
}
