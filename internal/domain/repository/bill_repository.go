package repository

import (
	"context"

	"github.com/jhoicas/dairybook-api/internal/domain/entity"
)

// BillRepository define el puerto de persistencia para Bill (solo inserción y lectura).
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, vendorID, id string) (*entity.Bill, error)
	ListByCustomer(ctx context.Context, vendorID, customerID string) ([]*entity.Bill, error)
	CountByVendor(ctx context.Context, vendorID string) (int, error)
}
