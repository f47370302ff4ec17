package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dairybook-api/internal/domain"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes del vendedor.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. El nombre es obligatorio.
func (uc *CustomerUseCase) Create(ctx context.Context, vendorID, name, phone string) (*entity.Customer, error) {
	name = strings.TrimSpace(name)
	if vendorID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		VendorID:  vendorID,
		Name:      name,
		Phone:     strings.TrimSpace(phone),
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, domain.StorageError("crear cliente", err)
	}
	return customer, nil
}

// Get obtiene un cliente del vendedor.
func (uc *CustomerUseCase) Get(ctx context.Context, vendorID, id string) (*entity.Customer, error) {
	if vendorID == "" || id == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(ctx, vendorID, id)
	if err != nil {
		return nil, domain.StorageError("obtener cliente", err)
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

// List lista todos los clientes del vendedor.
func (uc *CustomerUseCase) List(ctx context.Context, vendorID string) ([]*entity.Customer, error) {
	if vendorID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, domain.StorageError("listar clientes", err)
	}
	return list, nil
}
