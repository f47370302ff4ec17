package billing

import (
	"context"

	"github.com/jhoicas/dairybook-api/internal/domain"
	dombilling "github.com/jhoicas/dairybook-api/internal/domain/billing"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

// BillUseCase consultas de facturas ya generadas.
type BillUseCase struct {
	billRepo     repository.BillRepository
	customerRepo repository.CustomerRepository
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(billRepo repository.BillRepository, customerRepo repository.CustomerRepository) *BillUseCase {
	return &BillUseCase{billRepo: billRepo, customerRepo: customerRepo}
}

// GetBill obtiene una factura del vendedor.
func (uc *BillUseCase) GetBill(ctx context.Context, vendorID, billID string) (*entity.Bill, error) {
	if vendorID == "" || billID == "" {
		return nil, domain.ErrInvalidInput
	}
	bill, err := uc.billRepo.GetByID(ctx, vendorID, billID)
	if err != nil {
		return nil, domain.StorageError("obtener factura", err)
	}
	if bill == nil {
		return nil, domain.ErrBillNotFound
	}
	return bill, nil
}

// ListByCustomer lista las facturas de un cliente, más recientes primero.
// month ("YYYY-MM") es opcional y restringe el listado a ese mes facturado.
func (uc *BillUseCase) ListByCustomer(ctx context.Context, vendorID, customerID, month string) ([]*entity.Bill, error) {
	if vendorID == "" || customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	monthKey := ""
	if month != "" {
		period, err := dombilling.ParseMonthKey(month, nil)
		if err != nil {
			return nil, err
		}
		monthKey = period.Key()
	}
	customer, err := uc.customerRepo.GetByID(ctx, vendorID, customerID)
	if err != nil {
		return nil, domain.StorageError("obtener cliente", err)
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	list, err := uc.billRepo.ListByCustomer(ctx, vendorID, customerID)
	if err != nil {
		return nil, domain.StorageError("listar facturas", err)
	}
	if monthKey == "" {
		return list, nil
	}
	filtered := make([]*entity.Bill, 0, len(list))
	for _, b := range list {
		if b.BillingMonth == monthKey {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}
