package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository     = (*CustomerRepo)(nil)
	_ repository.TransactionRepository  = (*TransactionRepo)(nil)
	_ repository.BillRepository         = (*BillRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
)

// ── Customers ─────────────────────────────────────────────────────────────────

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct {
	s *Store
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.customers[c.ID]; exists {
		return fmt.Errorf("insert customer: id %s duplicado", c.ID)
	}
	r.s.customers[c.ID] = copyCustomer(c)
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, vendorID, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok || c.VendorID != vendorID {
		return nil, nil
	}
	return copyCustomer(c), nil
}

func (r *CustomerRepo) ListByVendor(_ context.Context, vendorID string) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Customer, 0)
	for _, c := range r.s.customers {
		if c.VendorID == vendorID {
			list = append(list, copyCustomer(c))
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// ── Transactions ──────────────────────────────────────────────────────────────

// TransactionRepo implementación en memoria de TransactionRepository.
// Con u != nil opera dentro de una unidad atómica: lee el estado vigente más lo ya registrado
// en la unidad y solo registra escrituras.
type TransactionRepo struct {
	s *Store
	u *unit
}

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.transactions[t.ID]; exists {
		return fmt.Errorf("insert transaction: id %s duplicado", t.ID)
	}
	r.s.transactions[t.ID] = copyTransaction(t)
	return nil
}

func (r *TransactionRepo) ListByCustomer(_ context.Context, vendorID, customerID string) ([]*entity.Transaction, error) {
	return r.filter(func(t *entity.Transaction) bool {
		return t.VendorID == vendorID && t.CustomerID == customerID
	}), nil
}

func (r *TransactionRepo) ListByVendor(_ context.Context, vendorID string) ([]*entity.Transaction, error) {
	return r.filter(func(t *entity.Transaction) bool { return t.VendorID == vendorID }), nil
}

func (r *TransactionRepo) ListUnpaidInRange(_ context.Context, vendorID, customerID string, from, to time.Time) ([]*entity.Transaction, error) {
	return r.filter(func(t *entity.Transaction) bool {
		return t.VendorID == vendorID && t.CustomerID == customerID && !t.IsPaid && inRange(t.Date, from, to)
	}), nil
}

func (r *TransactionRepo) MarkPaid(_ context.Context, vendorID, billID string, ids []string) (int64, error) {
	if r.u != nil {
		return r.u.markPaid(vendorID, billID, ids), nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return markPaidLocked(r.s, vendorID, billID, ids), nil
}

// filter lee con el lock de lectura y aplica los pagos registrados en la unidad, si hay.
func (r *TransactionRepo) filter(keep func(*entity.Transaction) bool) []*entity.Transaction {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Transaction, 0)
	for _, t := range r.s.transactions {
		cp := copyTransaction(t)
		if r.u != nil {
			if billID, staged := r.u.paid[cp.ID]; staged {
				cp.IsPaid = true
				cp.BillID = billID
			}
		}
		if keep(cp) {
			list = append(list, cp)
		}
	}
	sortTransactions(list)
	return list
}

func markPaidLocked(s *Store, vendorID, billID string, ids []string) int64 {
	var n int64
	for _, id := range ids {
		t, ok := s.transactions[id]
		if !ok || t.VendorID != vendorID || t.IsPaid {
			continue
		}
		t.IsPaid = true
		t.BillID = billID
		n++
	}
	return n
}

// ── Bills ─────────────────────────────────────────────────────────────────────

// BillRepo implementación en memoria de BillRepository.
type BillRepo struct {
	s *Store
	u *unit
}

func (r *BillRepo) Create(_ context.Context, b *entity.Bill) error {
	if r.u != nil {
		return r.u.addBill(b)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.bills[b.ID]; exists {
		return fmt.Errorf("insert bill: id %s duplicado", b.ID)
	}
	r.s.bills[b.ID] = copyBill(b)
	return nil
}

func (r *BillRepo) GetByID(_ context.Context, vendorID, id string) (*entity.Bill, error) {
	if r.u != nil {
		if b, ok := r.u.bills[id]; ok && b.VendorID == vendorID {
			return copyBill(b), nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bills[id]
	if !ok || b.VendorID != vendorID {
		return nil, nil
	}
	return copyBill(b), nil
}

func (r *BillRepo) ListByCustomer(_ context.Context, vendorID, customerID string) ([]*entity.Bill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Bill, 0)
	for _, b := range r.s.bills {
		if b.VendorID == vendorID && b.CustomerID == customerID {
			list = append(list, copyBill(b))
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *BillRepo) CountByVendor(_ context.Context, vendorID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, b := range r.s.bills {
		if b.VendorID == vendorID {
			n++
		}
	}
	return n, nil
}

// ── Notifications ─────────────────────────────────────────────────────────────

// NotificationRepo implementación en memoria de NotificationRepository.
type NotificationRepo struct {
	s *Store
}

func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.notifications[n.ID]; exists {
		return fmt.Errorf("insert notification: id %s duplicado", n.ID)
	}
	r.s.notifications[n.ID] = copyNotification(n)
	return nil
}

func (r *NotificationRepo) ListByBill(_ context.Context, vendorID, billID string) ([]*entity.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Notification, 0)
	for _, n := range r.s.notifications {
		if n.VendorID == vendorID && n.BillID == billID {
			list = append(list, copyNotification(n))
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].SentAt.Before(list[j].SentAt) })
	return list, nil
}
