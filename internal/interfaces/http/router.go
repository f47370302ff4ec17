package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dairybook-api/internal/application/billing"
	"github.com/jhoicas/dairybook-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC     *billing.CustomerUseCase
	TransactionUC  *usecase.TransactionUseCase
	DashboardUC    *usecase.DashboardUseCase
	GenerateBillUC *billing.GenerateBillUseCase
	BillUC         *billing.BillUseCase
	NotificationUC *billing.NotificationUseCase
	BillPDFUC      *billing.PDFUseCase
	Health         *HealthHandler
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.Check)
	}

	api := app.Group("/api")

	// Funciones invocables (vendorId en el body)
	callable := NewCallableHandler(deps.GenerateBillUC, deps.NotificationUC)
	functions := api.Group("/functions", callableAuthMiddleware(deps.JWTSecret))
	functions.Post("/generateBill", callable.GenerateBill)
	functions.Post("/sendWhatsApp", callable.SendWhatsApp)

	// REST por vendedor (vendorId en la ruta)
	vendor := api.Group("/vendors/:vendorId", AuthMiddleware(deps.JWTSecret), RequireVendor())

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	billHandler := NewBillHandler(deps.GenerateBillUC, deps.BillUC, deps.NotificationUC, deps.BillPDFUC)

	customers := vendor.Group("/customers")
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/transactions", transactionHandler.ListByCustomer)
	customers.Get("/:id/bills", billHandler.ListByCustomer)
	customers.Post("/:id/bills", billHandler.Generate)

	transactions := vendor.Group("/transactions")
	transactions.Post("/", transactionHandler.Record)
	transactions.Get("/", transactionHandler.ListAll)

	bills := vendor.Group("/bills")
	bills.Get("/:id", billHandler.GetByID)
	bills.Get("/:id/pdf", billHandler.DownloadPDF)
	bills.Get("/:id/notifications", billHandler.ListNotifications)
	bills.Post("/:id/notifications", billHandler.SendNotification)

	vendor.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).GetSummary)
}
