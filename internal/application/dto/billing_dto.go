package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// BillResponse factura mensual en respuestas REST.
type BillResponse struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	CustomerPhone    string          `json:"customer_phone"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int             `json:"transaction_count"`
	TransactionIDs   []string        `json:"transaction_ids"`
	BillingMonth     string          `json:"billing_month"`
	IsPaid           bool            `json:"is_paid"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NotificationResponse notificación registrada.
type NotificationResponse struct {
	ID            string    `json:"id"`
	BillID        string    `json:"bill_id"`
	CustomerID    string    `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Message       string    `json:"message"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	SentAt        time.Time `json:"sent_at"`
}

// GenerateBillCallRequest body de POST /api/functions/generateBill.
type GenerateBillCallRequest struct {
	VendorID   string `json:"vendorId"`
	CustomerID string `json:"customerId"`
}

// GenerateBillCallResponse respuesta exitosa de generateBill.
// TotalAmount viaja como número JSON (no string) con los dígitos exactos del decimal.
type GenerateBillCallResponse struct {
	Success          bool        `json:"success"`
	BillID           string      `json:"billId"`
	TotalAmount      json.Number `json:"totalAmount"`
	TransactionCount int         `json:"transactionCount"`
	CustomerName     string      `json:"customerName"`
}

// SendWhatsAppCallRequest body de POST /api/functions/sendWhatsApp.
type SendWhatsAppCallRequest struct {
	VendorID string `json:"vendorId"`
	BillID   string `json:"billId"`
}

// SendWhatsAppCallResponse respuesta exitosa de sendWhatsApp.
type SendWhatsAppCallResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	NotificationID string `json:"notificationId"`
	PhoneNumber    string `json:"phoneNumber"`
	FullMessage    string `json:"fullMessage"`
}
