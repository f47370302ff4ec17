package entity

import "time"

// Tipo y estado de las notificaciones simuladas.
const (
	NotificationTypeWhatsAppMock = "whatsapp_mock"
	NotificationStatusMockSent   = "mock_sent"
)

// Notification registro de un envío (simulado) de una factura al cliente.
type Notification struct {
	ID            string
	VendorID      string
	BillID        string
	CustomerID    string
	CustomerName  string
	CustomerPhone string
	Message       string
	Type          string
	SentAt        time.Time
	Status        string
}
