// migrate prepara el almacén configurado en STORE_DRIVER:
// aplica el esquema SQL en PostgreSQL o crea los índices en MongoDB.
//
// Uso: go run ./cmd/migrate
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	mongostore "github.com/jhoicas/dairybook-api/internal/infrastructure/mongo"
	"github.com/jhoicas/dairybook-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dairybook-api/pkg/config"
	"github.com/jhoicas/dairybook-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Strs("aplicadas", applied).Msg("migración fallida")
		}
		log.Info().Strs("aplicadas", applied).Msg("esquema PostgreSQL al día")

	case config.StoreDriverMongo:
		store, err := mongostore.Connect(ctx, cfg.Mongo)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MongoDB")
		}
		defer func() { _ = store.Close(context.Background()) }()
		if err := store.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("creación de índices")
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("índices MongoDB creados")

	default:
		log.Info().Str("store", cfg.Store.Driver).Msg("el driver no requiere migraciones")
	}
}
