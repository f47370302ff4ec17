// Package memory implementa los repositorios del libro de ventas en memoria.
// Sirve para desarrollo local (STORE_DRIVER=memory) y para los tests de casos de uso.
//
// Las unidades atómicas (RunBilling) se serializan entre sí y acumulan sus escrituras en un
// registro que se aplica de una vez al hacer commit; si la función falla el registro se descarta.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/dairybook-api/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu     sync.RWMutex
	unitMu sync.Mutex

	customers     map[string]*entity.Customer
	transactions  map[string]*entity.Transaction
	bills         map[string]*entity.Bill
	notifications map[string]*entity.Notification
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{
		customers:     make(map[string]*entity.Customer),
		transactions:  make(map[string]*entity.Transaction),
		bills:         make(map[string]*entity.Bill),
		notifications: make(map[string]*entity.Notification),
	}
}

// Ping siempre responde; existe para homogeneizar el health check con los otros drivers.
func (s *Store) Ping(_ context.Context) error { return nil }

// Customers, Transactions, Bills y Notifications devuelven repositorios fuera de unidad atómica.
func (s *Store) Customers() *CustomerRepo         { return &CustomerRepo{s: s} }
func (s *Store) Transactions() *TransactionRepo   { return &TransactionRepo{s: s} }
func (s *Store) Bills() *BillRepo                 { return &BillRepo{s: s} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }

// ── copias ────────────────────────────────────────────────────────────────────

func copyCustomer(c *entity.Customer) *entity.Customer {
	cp := *c
	return &cp
}

func copyTransaction(t *entity.Transaction) *entity.Transaction {
	cp := *t
	return &cp
}

func copyBill(b *entity.Bill) *entity.Bill {
	cp := *b
	cp.TransactionIDs = append([]string(nil), b.TransactionIDs...)
	return &cp
}

func copyNotification(n *entity.Notification) *entity.Notification {
	cp := *n
	return &cp
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func sortTransactions(list []*entity.Transaction) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date.Equal(list[j].Date) {
			return list[i].ID < list[j].ID
		}
		return list[i].Date.Before(list[j].Date)
	})
}
