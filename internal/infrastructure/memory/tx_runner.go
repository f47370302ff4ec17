package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/dairybook-api/internal/application/billing"
	"github.com/jhoicas/dairybook-api/internal/domain"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta unidades atómicas sobre el Store en memoria.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// unit registro de escrituras pendientes de una unidad atómica.
type unit struct {
	s         *Store
	bills     map[string]*entity.Bill
	billOrder []string
	paid      map[string]string // transactionID -> billID
}

func (u *unit) addBill(b *entity.Bill) error {
	if _, exists := u.bills[b.ID]; exists {
		return fmt.Errorf("insert bill: id %s duplicado", b.ID)
	}
	u.s.mu.RLock()
	_, exists := u.s.bills[b.ID]
	u.s.mu.RUnlock()
	if exists {
		return fmt.Errorf("insert bill: id %s duplicado", b.ID)
	}
	u.bills[b.ID] = copyBill(b)
	u.billOrder = append(u.billOrder, b.ID)
	return nil
}

// markPaid registra el pago solo de las transacciones que siguen sin pagar (vigente + unidad).
func (u *unit) markPaid(vendorID, billID string, ids []string) int64 {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	var n int64
	for _, id := range ids {
		t, ok := u.s.transactions[id]
		if !ok || t.VendorID != vendorID || t.IsPaid {
			continue
		}
		if _, staged := u.paid[id]; staged {
			continue
		}
		u.paid[id] = billID
		n++
	}
	return n
}

// RunBilling ejecuta fn con repositorios atados a una unidad nueva y aplica sus escrituras
// solo si fn no retorna error. Las unidades se serializan entre sí.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	txnRepo repository.TransactionRepository,
	billRepo repository.BillRepository,
) error) error {
	r.s.unitMu.Lock()
	defer r.s.unitMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	u := &unit{
		s:     r.s,
		bills: make(map[string]*entity.Bill),
		paid:  make(map[string]string),
	}
	if err := fn(&TransactionRepo{s: r.s, u: u}, &BillRepo{s: r.s, u: u}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.commit(u)
}

func (r *TxRunner) commit(u *unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Verificar antes de escribir: el commit es todo o nada.
	for id := range u.paid {
		t, ok := r.s.transactions[id]
		if !ok || t.IsPaid {
			return fmt.Errorf("commit: transacción %s: %w", id, domain.ErrConcurrencyConflict)
		}
	}
	for _, id := range u.billOrder {
		r.s.bills[id] = u.bills[id]
	}
	for id, billID := range u.paid {
		t := r.s.transactions[id]
		t.IsPaid = true
		t.BillID = billID
	}
	return nil
}
