package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dairybook-api/internal/application/billing"
	"github.com/jhoicas/dairybook-api/internal/domain"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
	"github.com/jhoicas/dairybook-api/internal/infrastructure/memory"
	"github.com/jhoicas/dairybook-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testVendor   = "vendor-1"
	testCustomer = "cust-rajesh"
)

var kolkata = mustLoad("Asia/Kolkata")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// fixedNow 15 de junio de 2024 a media mañana en India.
func fixedNow() time.Time { return time.Date(2024, time.June, 15, 10, 30, 0, 0, kolkata) }

type fixture struct {
	store    *memory.Store
	runner   billing.BillingTxRunner
	generate *billing.GenerateBillUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	f := &fixture{store: store, runner: memory.NewTxRunner(store)}
	f.generate = f.useCase(f.runner)
	seedCustomer(t, store, testVendor, testCustomer, "Rajesh Kumar", "+919876543210")
	return f
}

func (f *fixture) useCase(runner billing.BillingTxRunner) *billing.GenerateBillUseCase {
	return billing.NewGenerateBillUseCase(
		runner, f.store.Customers(), billing.NewSettler(logger.Nop()), kolkata, logger.Nop(),
	).WithClock(fixedNow)
}

func seedCustomer(t *testing.T, store *memory.Store, vendorID, id, name, phone string) {
	t.Helper()
	require.NoError(t, store.Customers().Create(context.Background(), &entity.Customer{
		ID: id, VendorID: vendorID, Name: name, Phone: phone, CreatedAt: fixedNow(),
	}))
}

func seedTxn(t *testing.T, store *memory.Store, id, customerID string, amount int64, date time.Time) {
	t.Helper()
	require.NoError(t, store.Transactions().Create(context.Background(), &entity.Transaction{
		ID: id, VendorID: testVendor, CustomerID: customerID, ItemName: "Milk",
		Amount: decimal.NewFromInt(amount), Date: date, CreatedAt: date,
	}))
}

func txnsByID(t *testing.T, store *memory.Store, customerID string) map[string]*entity.Transaction {
	t.Helper()
	list, err := store.Transactions().ListByCustomer(context.Background(), testVendor, customerID)
	require.NoError(t, err)
	out := make(map[string]*entity.Transaction, len(list))
	for _, txn := range list {
		out[txn.ID] = txn
	}
	return out
}

func billCount(t *testing.T, store *memory.Store) int {
	t.Helper()
	n, err := store.Bills().CountByVendor(context.Background(), testVendor)
	require.NoError(t, err)
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GenerateBill
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateBill_SumaLasTransaccionesDelMes(t *testing.T) {
	f := newFixture(t)
	seedTxn(t, f.store, "t1", testCustomer, 100, time.Date(2024, 6, 1, 7, 0, 0, 0, kolkata))
	seedTxn(t, f.store, "t2", testCustomer, 80, time.Date(2024, 6, 10, 7, 0, 0, 0, kolkata))
	seedTxn(t, f.store, "t3", testCustomer, 40, time.Date(2024, 6, 15, 7, 0, 0, 0, kolkata))

	bill, err := f.generate.GenerateBill(context.Background(), testVendor, testCustomer)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(220).Equal(bill.TotalAmount), "total esperado 220, obtenido %s", bill.TotalAmount)
	assert.Equal(t, 3, bill.TransactionCount)
	assert.ElementsMatch(t, []string{"t1", "t2", "t3"}, bill.TransactionIDs)
	assert.Equal(t, "2024-06", bill.BillingMonth)
	assert.Equal(t, "Rajesh Kumar", bill.CustomerName)
	assert.Equal(t, "+919876543210", bill.CustomerPhone)
	assert.False(t, bill.IsPaid, "la factura nace sin pagar")

	for id, txn := range txnsByID(t, f.store, testCustomer) {
		assert.True(t, txn.IsPaid, "transacción %s debe quedar pagada", id)
		assert.Equal(t, bill.ID, txn.BillID, "transacción %s debe apuntar a la factura", id)
	}

	stored, err := f.store.Bills().GetByID(context.Background(), testVendor, bill.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, bill.TotalAmount.Equal(stored.TotalAmount))
}

func TestGenerateBill_ExcluyeOtrosMesesYPagadas(t *testing.T) {
	f := newFixture(t)
	seedTxn(t, f.store, "start", testCustomer, 10, time.Date(2024, 6, 1, 0, 0, 0, 0, kolkata))
	seedTxn(t, f.store, "may", testCustomer, 500, time.Date(2024, 5, 31, 23, 59, 59, 0, kolkata))
	seedTxn(t, f.store, "july", testCustomer, 700, time.Date(2024, 7, 1, 0, 0, 0, 0, kolkata))
	seedTxn(t, f.store, "june", testCustomer, 25, time.Date(2024, 6, 30, 23, 59, 59, 0, kolkata))

	seedTxn(t, f.store, "paid", testCustomer, 900, time.Date(2024, 6, 5, 8, 0, 0, 0, kolkata))
	_, err := f.store.Transactions().MarkPaid(context.Background(), testVendor, "old-bill", []string{"paid"})
	require.NoError(t, err)

	bill, err := f.generate.GenerateBill(context.Background(), testVendor, testCustomer)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"start", "june"}, bill.TransactionIDs)
	assert.True(t, decimal.NewFromInt(35).Equal(bill.TotalAmount))

	txns := txnsByID(t, f.store, testCustomer)
	assert.False(t, txns["may"].IsPaid, "mayo no se factura en junio")
	assert.False(t, txns["july"].IsPaid, "julio no se factura en junio")
	assert.Equal(t, "old-bill", txns["paid"].BillID, "una pagada conserva su factura original")
}

func TestGenerateBill_SoloMesAnterior_NoCreaFactura(t *testing.T) {
	f := newFixture(t)
	seedTxn(t, f.store, "may", testCustomer, 100, time.Date(2024, 5, 20, 7, 0, 0, 0, kolkata))

	bill, err := f.generate.GenerateBill(context.Background(), testVendor, testCustomer)
	require.Error(t, err)
	assert.Nil(t, bill)
	assert.ErrorIs(t, err, domain.ErrNoEligibleTransactions)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 0, billCount(t, f.store))
	txn := txnsByID(t, f.store, testCustomer)["may"]
	assert.False(t, txn.IsPaid)
	assert.Empty(t, txn.BillID)
}

func TestGenerateBill_NoTocaTransaccionesDeOtrosClientes(t *testing.T) {
	f := newFixture(t)
	seedCustomer(t, f.store, testVendor, "cust-other", "Anita", "")
	seedTxn(t, f.store, "mine", testCustomer, 60, time.Date(2024, 6, 3, 7, 0, 0, 0, kolkata))
	seedTxn(t, f.store, "theirs", "cust-other", 45, time.Date(2024, 6, 3, 7, 0, 0, 0, kolkata))

	_, err := f.generate.GenerateBill(context.Background(), testVendor, testCustomer)
	require.NoError(t, err)

	other := txnsByID(t, f.store, "cust-other")["theirs"]
	assert.False(t, other.IsPaid)
	assert.Empty(t, other.BillID)
}

func TestGenerateBill_SegundaLlamadaDelMesNoEncuentraPendientes(t *testing.T) {
	f := newFixture(t)
	seedTxn(t, f.store, "t1", testCustomer, 100, time.Date(2024, 6, 2, 7, 0, 0, 0, kolkata))

	_, err := f.generate.GenerateBill(context.Background(), testVendor, testCustomer)
	require.NoError(t, err)

	_, err = f.generate.GenerateBill(context.Background(), testVendor, testCustomer)
	assert.ErrorIs(t, err, domain.ErrNoEligibleTransactions)
	assert.Equal(t, 1, billCount(t, f.store))
}

func TestGenerateBill_ClienteInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.generate.GenerateBill(context.Background(), testVendor, "nobody")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Un cliente de otro vendedor tampoco es visible.
	_, err = f.generate.GenerateBill(context.Background(), "vendor-2", testCustomer)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestGenerateBill_EntradaInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.generate.GenerateBill(context.Background(), "", testCustomer)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.generate.GenerateBill(context.Background(), testVendor, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// shortMarkRunner envuelve un runner real y hace que MarkPaid solo marque parte de los ids,
// simulando que otra factura tomó una transacción entre la lectura y la escritura.
type shortMarkRunner struct {
	inner billing.BillingTxRunner
}

type shortMarkRepo struct {
	repository.TransactionRepository
}

func (r shortMarkRepo) MarkPaid(ctx context.Context, vendorID, billID string, ids []string) (int64, error) {
	return r.TransactionRepository.MarkPaid(ctx, vendorID, billID, ids[:len(ids)-1])
}

func (r shortMarkRunner) RunBilling(ctx context.Context, fn func(repository.TransactionRepository, repository.BillRepository) error) error {
	return r.inner.RunBilling(ctx, func(txnRepo repository.TransactionRepository, billRepo repository.BillRepository) error {
		return fn(shortMarkRepo{txnRepo}, billRepo)
	})
}

func TestGenerateBill_ConflictoDeLiquidacion_RevierteTodo(t *testing.T) {
	f := newFixture(t)
	seedTxn(t, f.store, "t1", testCustomer, 100, time.Date(2024, 6, 1, 7, 0, 0, 0, kolkata))
	seedTxn(t, f.store, "t2", testCustomer, 80, time.Date(2024, 6, 2, 7, 0, 0, 0, kolkata))

	uc := f.useCase(shortMarkRunner{inner: f.runner})
	bill, err := uc.GenerateBill(context.Background(), testVendor, testCustomer)
	require.Error(t, err)
	assert.Nil(t, bill)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	assert.Equal(t, 0, billCount(t, f.store), "la factura no debe persistir")
	for id, txn := range txnsByID(t, f.store, testCustomer) {
		assert.False(t, txn.IsPaid, "transacción %s debe seguir sin pagar", id)
		assert.Empty(t, txn.BillID)
	}
}

// failingRunner simula un fallo del almacén al abrir la unidad.
type failingRunner struct{}

func (failingRunner) RunBilling(context.Context, func(repository.TransactionRepository, repository.BillRepository) error) error {
	return errors.New("connection reset")
}

func TestGenerateBill_FalloDeAlmacen_EnvuelveErrStorage(t *testing.T) {
	f := newFixture(t)
	seedTxn(t, f.store, "t1", testCustomer, 100, time.Date(2024, 6, 1, 7, 0, 0, 0, kolkata))

	_, err := f.useCase(failingRunner{}).GenerateBill(context.Background(), testVendor, testCustomer)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, 0, billCount(t, f.store))
}

func TestGenerateBill_Concurrente_UnaSolaFacturaReclamaLasTransacciones(t *testing.T) {
	f := newFixture(t)
	seedTxn(t, f.store, "t1", testCustomer, 100, time.Date(2024, 6, 1, 7, 0, 0, 0, kolkata))
	seedTxn(t, f.store, "t2", testCustomer, 80, time.Date(2024, 6, 2, 7, 0, 0, 0, kolkata))

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		others    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.generate.GenerateBill(context.Background(), testVendor, testCustomer)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			others = append(others, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	for _, err := range others {
		assert.True(t,
			errors.Is(err, domain.ErrNoEligibleTransactions) || errors.Is(err, domain.ErrConcurrencyConflict),
			"error inesperado: %v", err)
	}
	assert.Equal(t, 1, billCount(t, f.store))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Settler
// ──────────────────────────────────────────────────────────────────────────────

func TestSettle_SinIDs_EntradaInvalida(t *testing.T) {
	s := billing.NewSettler(logger.Nop())
	err := s.Settle(context.Background(), memory.New().Transactions(), testVendor, "bill-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettle_IDsDuplicadosCuentanUnaVez(t *testing.T) {
	store := memory.New()
	seedTxn(t, store, "t1", testCustomer, 10, fixedNow())

	s := billing.NewSettler(logger.Nop())
	require.NoError(t, s.Settle(context.Background(), store.Transactions(), testVendor, "bill-1", []string{"t1", "t1"}))

	txn := txnsByID(t, store, testCustomer)["t1"]
	assert.True(t, txn.IsPaid)
	assert.Equal(t, "bill-1", txn.BillID)
}

func TestSettle_YaPagada_Conflicto(t *testing.T) {
	store := memory.New()
	seedTxn(t, store, "t1", testCustomer, 10, fixedNow())
	s := billing.NewSettler(logger.Nop())
	require.NoError(t, s.Settle(context.Background(), store.Transactions(), testVendor, "bill-1", []string{"t1"}))

	err := s.Settle(context.Background(), store.Transactions(), testVendor, "bill-2", []string{"t1"})
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.Equal(t, "bill-1", txnsByID(t, store, testCustomer)["t1"].BillID, "una transacción pagada no cambia de factura")
}
