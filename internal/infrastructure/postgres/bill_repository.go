package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/dairybook-api/internal/domain"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

const billColumns = `id, vendor_id, customer_id, customer_name, customer_phone, total_amount,
	transaction_count, transaction_ids, billing_month, is_paid, created_at`

// BillRepo implementación de BillRepository (usable con pool o tx). Las facturas no se actualizan.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persiste la factura.
func (r *BillRepo) Create(ctx context.Context, b *entity.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.VendorID, b.CustomerID, b.CustomerName, b.CustomerPhone, b.TotalAmount,
		b.TransactionCount, b.TransactionIDs, b.BillingMonth, b.IsPaid, b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// GetByID obtiene una factura del vendedor.
func (r *BillRepo) GetByID(ctx context.Context, vendorID, id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE vendor_id = $1 AND id = $2`
	b, err := scanBill(r.q.QueryRow(ctx, query, vendorID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

// ListByCustomer lista las facturas del cliente, la más reciente primero.
func (r *BillRepo) ListByCustomer(ctx context.Context, vendorID, customerID string) ([]*entity.Bill, error) {
	query := `SELECT ` + billColumns + `
		FROM bills WHERE vendor_id = $1 AND customer_id = $2 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, vendorID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Bill, 0)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// CountByVendor cuenta las facturas del vendedor.
func (r *BillRepo) CountByVendor(ctx context.Context, vendorID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bills WHERE vendor_id = $1`, vendorID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bills: %w", err)
	}
	return n, nil
}

func scanBill(row pgx.Row) (*entity.Bill, error) {
	var b entity.Bill
	if err := row.Scan(
		&b.ID, &b.VendorID, &b.CustomerID, &b.CustomerName, &b.CustomerPhone, &b.TotalAmount,
		&b.TransactionCount, &b.TransactionIDs, &b.BillingMonth, &b.IsPaid, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
