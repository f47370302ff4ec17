package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill agrupa las transacciones pendientes de un cliente en un mes.
// Nombre y teléfono son una copia del cliente al momento de facturar.
type Bill struct {
	ID               string
	VendorID         string
	CustomerID       string
	CustomerName     string
	CustomerPhone    string
	TotalAmount      decimal.Decimal
	TransactionCount int
	TransactionIDs   []string
	BillingMonth     string // YYYY-MM
	IsPaid           bool   // pago del cliente al vendedor; ninguna operación lo cambia todavía
	CreatedAt        time.Time
}
