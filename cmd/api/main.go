package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/dairybook-api/internal/application/billing"
	"github.com/jhoicas/dairybook-api/internal/application/usecase"
	infranotify "github.com/jhoicas/dairybook-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/dairybook-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/dairybook-api/internal/interfaces/http"
	"github.com/jhoicas/dairybook-api/pkg/config"
	"github.com/jhoicas/dairybook-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("billing_tz", cfg.Billing.Timezone).
		Msg("iniciando aplicación")

	loc, err := cfg.Billing.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de facturación")
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("apertura del almacén")
	}
	defer store.close()

	customerUC := billing.NewCustomerUseCase(store.customers)
	transactionUC := usecase.NewTransactionUseCase(store.transactions, store.customers)
	dashboardUC := usecase.NewDashboardUseCase(store.customers, store.transactions, store.bills)

	settler := billing.NewSettler(log)
	generateBillUC := billing.NewGenerateBillUseCase(store.txRunner, store.customers, settler, loc, log)
	billUC := billing.NewBillUseCase(store.bills, store.customers)

	sender := infranotify.NewWhatsAppMockSender(log)
	notificationUC := billing.NewNotificationUseCase(store.bills, store.notifications, sender, cfg.Billing.CurrencySymbol, log)

	// PDF: factura mensual imprimible
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	billPDFUC := billing.NewPDFUseCase(store.bills, store.transactions, pdfGenerator, cfg.Billing.CurrencySymbol)

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: autenticación de vendedores desactivada")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs (solo si el archivo existe)
	if cfg.HTTP.DocsPath != "" {
		if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.DocsPath,
				Path:     "docs",
				Title:    "DairyBook API",
			}))
		} else {
			log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs desactivado")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:     customerUC,
		TransactionUC:  transactionUC,
		DashboardUC:    dashboardUC,
		GenerateBillUC: generateBillUC,
		BillUC:         billUC,
		NotificationUC: notificationUC,
		BillPDFUC:      billPDFUC,
		Health:         httpRouter.NewHealthHandler(cfg.App.Name, cfg.Store.Driver, store.pinger),
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
