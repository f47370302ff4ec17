package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dairybook-api/internal/application/dto"
	"github.com/jhoicas/dairybook-api/internal/domain"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

// DashboardUseCase KPIs del vendedor. El conjunto de datos por vendedor es pequeño y se lee completo.
type DashboardUseCase struct {
	customerRepo repository.CustomerRepository
	txnRepo      repository.TransactionRepository
	billRepo     repository.BillRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	customerRepo repository.CustomerRepository,
	txnRepo repository.TransactionRepository,
	billRepo repository.BillRepository,
) *DashboardUseCase {
	return &DashboardUseCase{customerRepo: customerRepo, txnRepo: txnRepo, billRepo: billRepo}
}

// Summary calcula ventas totales, saldo sin facturar y conteos.
func (uc *DashboardUseCase) Summary(ctx context.Context, vendorID string) (*dto.DashboardResponse, error) {
	if vendorID == "" {
		return nil, domain.ErrInvalidInput
	}
	customers, err := uc.customerRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, domain.StorageError("dashboard: clientes", err)
	}
	txns, err := uc.txnRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, domain.StorageError("dashboard: transacciones", err)
	}
	bills, err := uc.billRepo.CountByVendor(ctx, vendorID)
	if err != nil {
		return nil, domain.StorageError("dashboard: facturas", err)
	}

	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount)
	}
	return &dto.DashboardResponse{
		VendorID:         vendorID,
		TotalSales:       total,
		UnpaidTotal:      UnpaidTotal(txns),
		CustomerCount:    len(customers),
		TransactionCount: len(txns),
		BillCount:        bills,
	}, nil
}
