package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dairybook-api/internal/application/dto"
	"github.com/jhoicas/dairybook-api/internal/domain"
	dombilling "github.com/jhoicas/dairybook-api/internal/domain/billing"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

// TransactionUseCase registro y consulta de ventas/entregas.
type TransactionUseCase struct {
	repo         repository.TransactionRepository
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repo repository.TransactionRepository, customerRepo repository.CustomerRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo, customerRepo: customerRepo, now: time.Now}
}

// Record registra una venta sin pagar. Si la fecha no viene se usa la hora actual.
func (uc *TransactionUseCase) Record(ctx context.Context, vendorID string, in dto.RecordTransactionRequest) (*dto.TransactionResponse, error) {
	itemName := strings.TrimSpace(in.ItemName)
	if vendorID == "" || in.CustomerID == "" || itemName == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := dombilling.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, vendorID, in.CustomerID)
	if err != nil {
		return nil, domain.StorageError("obtener cliente", err)
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	now := uc.now()
	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}
	txn := &entity.Transaction{
		ID:         uuid.New().String(),
		VendorID:   vendorID,
		CustomerID: customer.ID,
		ItemName:   itemName,
		Amount:     in.Amount,
		Date:       date,
		IsPaid:     false,
		CreatedAt:  now,
	}
	if err := uc.repo.Create(ctx, txn); err != nil {
		return nil, domain.StorageError("registrar transacción", err)
	}
	resp := toTransactionResponse(txn)
	return &resp, nil
}

// ListByCustomer devuelve las transacciones del cliente (más recientes primero) y su saldo sin pagar.
func (uc *TransactionUseCase) ListByCustomer(ctx context.Context, vendorID, customerID string) (*dto.CustomerTransactionsResponse, error) {
	if vendorID == "" || customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(ctx, vendorID, customerID)
	if err != nil {
		return nil, domain.StorageError("obtener cliente", err)
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	list, err := uc.repo.ListByCustomer(ctx, vendorID, customerID)
	if err != nil {
		return nil, domain.StorageError("listar transacciones", err)
	}
	sortByDateDesc(list)

	out := &dto.CustomerTransactionsResponse{
		CustomerID:   customerID,
		UnpaidTotal:  UnpaidTotal(list),
		Transactions: make([]dto.TransactionResponse, 0, len(list)),
	}
	for _, t := range list {
		out.Transactions = append(out.Transactions, toTransactionResponse(t))
	}
	return out, nil
}

// ListAll devuelve todas las transacciones del vendedor, más recientes primero.
func (uc *TransactionUseCase) ListAll(ctx context.Context, vendorID string) ([]dto.TransactionResponse, error) {
	if vendorID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, domain.StorageError("listar transacciones", err)
	}
	sortByDateDesc(list)
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}
	return out, nil
}

// UnpaidTotal suma los montos aún sin facturar.
func UnpaidTotal(list []*entity.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range list {
		if !t.IsPaid {
			total = total.Add(t.Amount)
		}
	}
	return total
}

func sortByDateDesc(list []*entity.Transaction) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:         t.ID,
		CustomerID: t.CustomerID,
		ItemName:   t.ItemName,
		Amount:     t.Amount,
		Date:       t.Date,
		IsPaid:     t.IsPaid,
		BillID:     t.BillID,
		CreatedAt:  t.CreatedAt,
	}
}
