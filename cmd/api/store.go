package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/dairybook-api/internal/application/billing"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
	"github.com/jhoicas/dairybook-api/internal/infrastructure/memory"
	mongostore "github.com/jhoicas/dairybook-api/internal/infrastructure/mongo"
	"github.com/jhoicas/dairybook-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/dairybook-api/internal/interfaces/http"
	"github.com/jhoicas/dairybook-api/pkg/config"
)

// ledgerStore agrupa los repositorios y el runner del driver elegido.
type ledgerStore struct {
	customers     repository.CustomerRepository
	transactions  repository.TransactionRepository
	bills         repository.BillRepository
	notifications repository.NotificationRepository
	txRunner      billing.BillingTxRunner
	pinger        httpRouter.Pinger
	close         func()
}

// openStore abre el almacén según STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (*ledgerStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &ledgerStore{
			customers:     postgres.NewCustomerRepository(pool),
			transactions:  postgres.NewTransactionRepository(pool),
			bills:         postgres.NewBillRepository(pool),
			notifications: postgres.NewNotificationRepository(pool),
			txRunner:      postgres.NewTxRunner(pool),
			pinger:        pool,
			close:         pool.Close,
		}, nil

	case config.StoreDriverMongo:
		store, err := mongostore.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("conexión a MongoDB: %w", err)
		}
		return &ledgerStore{
			customers:     store.Customers(),
			transactions:  store.Transactions(),
			bills:         store.Bills(),
			notifications: store.Notifications(),
			txRunner:      mongostore.NewTxRunner(store),
			pinger:        store,
			close:         func() { _ = store.Close(context.Background()) },
		}, nil

	case config.StoreDriverMemory:
		store := memory.New()
		return &ledgerStore{
			customers:     store.Customers(),
			transactions:  store.Transactions(),
			bills:         store.Bills(),
			notifications: store.Notifications(),
			txRunner:      memory.NewTxRunner(store),
			pinger:        store,
			close:         func() {},
		}, nil
	}
	return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
}
