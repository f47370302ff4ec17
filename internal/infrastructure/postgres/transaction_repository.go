package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/dairybook-api/internal/domain"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, vendor_id, customer_id, item_name, amount, date, is_paid, bill_id, created_at`

// TransactionRepo implementación de TransactionRepository (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.VendorID, t.CustomerID, t.ItemName, t.Amount, t.Date, t.IsPaid, nullIfEmpty(t.BillID), t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByCustomer lista las transacciones de un cliente.
func (r *TransactionRepo) ListByCustomer(ctx context.Context, vendorID, customerID string) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions WHERE vendor_id = $1 AND customer_id = $2 ORDER BY date, id`
	return r.list(ctx, "list transactions by customer", query, vendorID, customerID)
}

// ListByVendor lista todas las transacciones del vendedor.
func (r *TransactionRepo) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions WHERE vendor_id = $1 ORDER BY date, id`
	return r.list(ctx, "list transactions", query, vendorID)
}

// ListUnpaidInRange selecciona las pendientes del mes y las bloquea (FOR UPDATE) si se llama dentro de una tx.
func (r *TransactionRepo) ListUnpaidInRange(ctx context.Context, vendorID, customerID string, from, to time.Time) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE vendor_id = $1 AND customer_id = $2 AND is_paid = FALSE AND date >= $3 AND date <= $4
		ORDER BY date, id
		FOR UPDATE`
	return r.list(ctx, "list unpaid transactions", query, vendorID, customerID, from, to)
}

// MarkPaid marca como pagadas las transacciones que siguen pendientes y devuelve cuántas cambiaron.
func (r *TransactionRepo) MarkPaid(ctx context.Context, vendorID, billID string, ids []string) (int64, error) {
	query := `
		UPDATE transactions SET is_paid = TRUE, bill_id = $2
		WHERE vendor_id = $1 AND id = ANY($3) AND is_paid = FALSE`
	tag, err := r.q.Exec(ctx, query, vendorID, billID, ids)
	if err != nil {
		return 0, fmt.Errorf("mark transactions paid: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *TransactionRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var billID *string
	if err := row.Scan(
		&t.ID, &t.VendorID, &t.CustomerID, &t.ItemName, &t.Amount, &t.Date, &t.IsPaid, &billID, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	t.BillID = derefString(billID)
	return &t, nil
}
