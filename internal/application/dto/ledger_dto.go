package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/vendors/:vendorId/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string    `json:"id"`
	VendorID  string    `json:"vendor_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordTransactionRequest body para POST /api/vendors/:vendorId/transactions.
// Date es opcional; si va vacío se usa la hora actual.
type RecordTransactionRequest struct {
	CustomerID string          `json:"customer_id"`
	ItemName   string          `json:"item_name"`
	Amount     decimal.Decimal `json:"amount"`
	Date       *time.Time      `json:"date,omitempty"`
}

// TransactionResponse transacción en respuestas.
type TransactionResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	ItemName   string          `json:"item_name"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	IsPaid     bool            `json:"is_paid"`
	BillID     string          `json:"bill_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CustomerTransactionsResponse listado de un cliente (fecha descendente) con su saldo pendiente.
type CustomerTransactionsResponse struct {
	CustomerID   string                `json:"customer_id"`
	UnpaidTotal  decimal.Decimal       `json:"unpaid_total"`
	Transactions []TransactionResponse `json:"transactions"`
}

// DashboardResponse respuesta de GET /api/vendors/:vendorId/dashboard.
type DashboardResponse struct {
	VendorID         string          `json:"vendor_id"`
	TotalSales       decimal.Decimal `json:"total_sales"`  // suma de todas las transacciones
	UnpaidTotal      decimal.Decimal `json:"unpaid_total"` // pendiente de facturar
	CustomerCount    int             `json:"customer_count"`
	TransactionCount int             `json:"transaction_count"`
	BillCount        int             `json:"bill_count"`
}
