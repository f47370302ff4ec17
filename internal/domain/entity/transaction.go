package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction es una venta/entrega registrada para un cliente.
// BillID solo tiene valor cuando IsPaid es verdadero.
type Transaction struct {
	ID         string
	VendorID   string
	CustomerID string
	ItemName   string
	Amount     decimal.Decimal
	Date       time.Time
	IsPaid     bool
	BillID     string
	CreatedAt  time.Time
}
