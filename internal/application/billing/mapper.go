package billing

import (
	"github.com/jhoicas/dairybook-api/internal/application/dto"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
)

// ToBillResponse convierte la entidad a su DTO REST.
func ToBillResponse(b *entity.Bill) dto.BillResponse {
	ids := b.TransactionIDs
	if ids == nil {
		ids = []string{}
	}
	return dto.BillResponse{
		ID:               b.ID,
		CustomerID:       b.CustomerID,
		CustomerName:     b.CustomerName,
		CustomerPhone:    b.CustomerPhone,
		TotalAmount:      b.TotalAmount,
		TransactionCount: b.TransactionCount,
		TransactionIDs:   ids,
		BillingMonth:     b.BillingMonth,
		IsPaid:           b.IsPaid,
		CreatedAt:        b.CreatedAt,
	}
}

// ToNotificationResponse convierte la entidad a su DTO REST.
func ToNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:            n.ID,
		BillID:        n.BillID,
		CustomerID:    n.CustomerID,
		CustomerName:  n.CustomerName,
		CustomerPhone: n.CustomerPhone,
		Message:       n.Message,
		Type:          n.Type,
		Status:        n.Status,
		SentAt:        n.SentAt,
	}
}

// ToCustomerResponse convierte la entidad a su DTO REST.
func ToCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		VendorID:  c.VendorID,
		Name:      c.Name,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}
