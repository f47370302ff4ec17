package repository

import (
	"context"

	"github.com/jhoicas/dairybook-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID devuelve (nil, nil) si el cliente no existe en el vendedor.
	GetByID(ctx context.Context, vendorID, id string) (*entity.Customer, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*entity.Customer, error)
}
