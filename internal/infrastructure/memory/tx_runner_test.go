package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dairybook-api/internal/domain"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
	"github.com/jhoicas/dairybook-api/internal/infrastructure/memory"
)

const vendor = "vendor-1"

func seed(t *testing.T, s *memory.Store, ids ...string) {
	t.Helper()
	for i, id := range ids {
		d := time.Date(2024, time.June, i+1, 7, 0, 0, 0, time.UTC)
		require.NoError(t, s.Transactions().Create(context.Background(), &entity.Transaction{
			ID: id, VendorID: vendor, CustomerID: "c1", ItemName: "Milk",
			Amount: decimal.NewFromInt(10), Date: d, CreatedAt: d,
		}))
	}
}

func TestMarkPaid_CuentaSoloPendientes(t *testing.T) {
	s := memory.New()
	seed(t, s, "t1", "t2")
	ctx := context.Background()

	n, err := s.Transactions().MarkPaid(ctx, vendor, "b1", []string{"t1", "t2", "ghost"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = s.Transactions().MarkPaid(ctx, vendor, "b2", []string{"t1"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n, "una transacción pagada no se vuelve a marcar")

	n, err = s.Transactions().MarkPaid(ctx, "vendor-2", "b3", []string{"t2"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestRunBilling_Commit(t *testing.T) {
	s := memory.New()
	seed(t, s, "t1", "t2")
	ctx := context.Background()

	err := memory.NewTxRunner(s).RunBilling(ctx, func(txns repository.TransactionRepository, bills repository.BillRepository) error {
		if err := bills.Create(ctx, &entity.Bill{ID: "b1", VendorID: vendor, CustomerID: "c1"}); err != nil {
			return err
		}
		n, err := txns.MarkPaid(ctx, vendor, "b1", []string{"t1", "t2"})
		if err != nil {
			return err
		}
		assert.EqualValues(t, 2, n)

		// Dentro de la unidad las escrituras propias ya son visibles.
		unpaid, err := txns.ListUnpaidInRange(ctx, vendor, "c1",
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Empty(t, unpaid)
		return nil
	})
	require.NoError(t, err)

	bill, err := s.Bills().GetByID(ctx, vendor, "b1")
	require.NoError(t, err)
	require.NotNil(t, bill)

	list, err := s.Transactions().ListByCustomer(ctx, vendor, "c1")
	require.NoError(t, err)
	for _, txn := range list {
		assert.True(t, txn.IsPaid)
		assert.Equal(t, "b1", txn.BillID)
	}
}

func TestRunBilling_ErrorDescartaEscrituras(t *testing.T) {
	s := memory.New()
	seed(t, s, "t1")
	ctx := context.Background()
	boom := errors.New("boom")

	err := memory.NewTxRunner(s).RunBilling(ctx, func(txns repository.TransactionRepository, bills repository.BillRepository) error {
		require.NoError(t, bills.Create(ctx, &entity.Bill{ID: "b1", VendorID: vendor, CustomerID: "c1"}))
		_, err := txns.MarkPaid(ctx, vendor, "b1", []string{"t1"})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	bill, err := s.Bills().GetByID(ctx, vendor, "b1")
	require.NoError(t, err)
	assert.Nil(t, bill, "la factura no debe quedar persistida")

	list, err := s.Transactions().ListByCustomer(ctx, vendor, "c1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsPaid)
	assert.Empty(t, list[0].BillID)
}

func TestRunBilling_ConflictoAlConfirmar(t *testing.T) {
	s := memory.New()
	seed(t, s, "t1")
	ctx := context.Background()

	err := memory.NewTxRunner(s).RunBilling(ctx, func(txns repository.TransactionRepository, bills repository.BillRepository) error {
		require.NoError(t, bills.Create(ctx, &entity.Bill{ID: "b1", VendorID: vendor, CustomerID: "c1"}))
		_, err := txns.MarkPaid(ctx, vendor, "b1", []string{"t1"})
		require.NoError(t, err)
		// Una escritura fuera de la unidad paga la misma transacción antes del commit.
		_, err = s.Transactions().MarkPaid(ctx, vendor, "other", []string{"t1"})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	bill, err := s.Bills().GetByID(ctx, vendor, "b1")
	require.NoError(t, err)
	assert.Nil(t, bill)

	list, err := s.Transactions().ListByCustomer(ctx, vendor, "c1")
	require.NoError(t, err)
	assert.Equal(t, "other", list[0].BillID)
}

func TestRunBilling_ContextoCancelado(t *testing.T) {
	s := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := memory.NewTxRunner(s).RunBilling(ctx, func(repository.TransactionRepository, repository.BillRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestCustomerRepo_AisladoPorVendedor(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.Customers().Create(ctx, &entity.Customer{ID: "c1", VendorID: vendor, Name: "Rajesh"}))

	got, err := s.Customers().GetByID(ctx, "vendor-2", "c1")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Customers().GetByID(ctx, vendor, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	got.Name = "mutado"

	again, err := s.Customers().GetByID(ctx, vendor, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Rajesh", again.Name, "el repositorio devuelve copias")
}
