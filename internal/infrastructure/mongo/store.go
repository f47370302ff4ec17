// Package mongo implementa los repositorios del libro de ventas sobre MongoDB.
// Las unidades atómicas usan transacciones multi-documento, así que el servidor debe correr
// como replica set (o sharded cluster).
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/jhoicas/dairybook-api/pkg/config"
)

// Nombres de colecciones.
const (
	colCustomers     = "customers"
	colTransactions  = "transactions"
	colBills         = "bills"
	colNotifications = "notifications"
)

// Store conexión a la base de datos del libro de ventas.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect abre el cliente, verifica conectividad y devuelve el Store.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// Ping verifica conectividad con el primario.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close cierra el cliente.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes crea los índices de todas las colecciones. Es idempotente.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for col, models := range indexModels() {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo: índices de %s: %w", col, err)
		}
	}
	return nil
}

// Customers, Transactions, Bills y Notifications devuelven repositorios fuera de transacción.
func (s *Store) Customers() *CustomerRepo         { return &CustomerRepo{col: s.db.Collection(colCustomers)} }
func (s *Store) Transactions() *TransactionRepo   { return &TransactionRepo{col: s.db.Collection(colTransactions)} }
func (s *Store) Bills() *BillRepo                 { return &BillRepo{col: s.db.Collection(colBills)} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{col: s.db.Collection(colNotifications)} }

func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colCustomers: {
			{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "name", Value: 1}}},
		},
		colTransactions: {
			{Keys: bson.D{
				{Key: "vendor_id", Value: 1},
				{Key: "customer_id", Value: 1},
				{Key: "is_paid", Value: 1},
				{Key: "date", Value: 1},
			}},
			{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "date", Value: 1}}},
		},
		colBills: {
			{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		colNotifications: {
			{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "bill_id", Value: 1}, {Key: "sent_at", Value: 1}}},
		},
	}
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
