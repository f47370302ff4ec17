package mongo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jhoicas/dairybook-api/internal/domain/entity"
)

type customerModel struct {
	ID        string    `bson:"_id"`
	VendorID  string    `bson:"vendor_id"`
	Name      string    `bson:"name"`
	Phone     string    `bson:"phone"`
	CreatedAt time.Time `bson:"created_at"`
}

type transactionModel struct {
	ID         string          `bson:"_id"`
	VendorID   string          `bson:"vendor_id"`
	CustomerID string          `bson:"customer_id"`
	ItemName   string          `bson:"item_name"`
	Amount     bson.Decimal128 `bson:"amount"`
	Date       time.Time       `bson:"date"`
	IsPaid     bool            `bson:"is_paid"`
	BillID     string          `bson:"bill_id,omitempty"`
	CreatedAt  time.Time       `bson:"created_at"`
}

type billModel struct {
	ID               string          `bson:"_id"`
	VendorID         string          `bson:"vendor_id"`
	CustomerID       string          `bson:"customer_id"`
	CustomerName     string          `bson:"customer_name"`
	CustomerPhone    string          `bson:"customer_phone"`
	TotalAmount      bson.Decimal128 `bson:"total_amount"`
	TransactionCount int             `bson:"transaction_count"`
	TransactionIDs   []string        `bson:"transaction_ids"`
	BillingMonth     string          `bson:"billing_month"`
	IsPaid           bool            `bson:"is_paid"`
	CreatedAt        time.Time       `bson:"created_at"`
}

type notificationModel struct {
	ID            string    `bson:"_id"`
	VendorID      string    `bson:"vendor_id"`
	BillID        string    `bson:"bill_id"`
	CustomerID    string    `bson:"customer_id"`
	CustomerName  string    `bson:"customer_name"`
	CustomerPhone string    `bson:"customer_phone"`
	Message       string    `bson:"message"`
	Type          string    `bson:"type"`
	Status        string    `bson:"status"`
	SentAt        time.Time `bson:"sent_at"`
}

// ==================== conversiones ====================

func toDecimal128(d decimal.Decimal) (bson.Decimal128, error) {
	v, err := bson.ParseDecimal128(d.String())
	if err != nil {
		return bson.Decimal128{}, fmt.Errorf("importe %s: %w", d.String(), err)
	}
	return v, nil
}

func fromDecimal128(v bson.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("importe %s: %w", v.String(), err)
	}
	return d, nil
}

func toCustomerModel(c *entity.Customer) *customerModel {
	return &customerModel{
		ID:        c.ID,
		VendorID:  c.VendorID,
		Name:      c.Name,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

func fromCustomerModel(m *customerModel) *entity.Customer {
	return &entity.Customer{
		ID:        m.ID,
		VendorID:  m.VendorID,
		Name:      m.Name,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
	}
}

func toTransactionModel(t *entity.Transaction) (*transactionModel, error) {
	amount, err := toDecimal128(t.Amount)
	if err != nil {
		return nil, err
	}
	return &transactionModel{
		ID:         t.ID,
		VendorID:   t.VendorID,
		CustomerID: t.CustomerID,
		ItemName:   t.ItemName,
		Amount:     amount,
		Date:       t.Date,
		IsPaid:     t.IsPaid,
		BillID:     t.BillID,
		CreatedAt:  t.CreatedAt,
	}, nil
}

func fromTransactionModel(m *transactionModel) (*entity.Transaction, error) {
	amount, err := fromDecimal128(m.Amount)
	if err != nil {
		return nil, err
	}
	return &entity.Transaction{
		ID:         m.ID,
		VendorID:   m.VendorID,
		CustomerID: m.CustomerID,
		ItemName:   m.ItemName,
		Amount:     amount,
		Date:       m.Date,
		IsPaid:     m.IsPaid,
		BillID:     m.BillID,
		CreatedAt:  m.CreatedAt,
	}, nil
}

func toBillModel(b *entity.Bill) (*billModel, error) {
	total, err := toDecimal128(b.TotalAmount)
	if err != nil {
		return nil, err
	}
	return &billModel{
		ID:               b.ID,
		VendorID:         b.VendorID,
		CustomerID:       b.CustomerID,
		CustomerName:     b.CustomerName,
		CustomerPhone:    b.CustomerPhone,
		TotalAmount:      total,
		TransactionCount: b.TransactionCount,
		TransactionIDs:   b.TransactionIDs,
		BillingMonth:     b.BillingMonth,
		IsPaid:           b.IsPaid,
		CreatedAt:        b.CreatedAt,
	}, nil
}

func fromBillModel(m *billModel) (*entity.Bill, error) {
	total, err := fromDecimal128(m.TotalAmount)
	if err != nil {
		return nil, err
	}
	return &entity.Bill{
		ID:               m.ID,
		VendorID:         m.VendorID,
		CustomerID:       m.CustomerID,
		CustomerName:     m.CustomerName,
		CustomerPhone:    m.CustomerPhone,
		TotalAmount:      total,
		TransactionCount: m.TransactionCount,
		TransactionIDs:   m.TransactionIDs,
		BillingMonth:     m.BillingMonth,
		IsPaid:           m.IsPaid,
		CreatedAt:        m.CreatedAt,
	}, nil
}

func toNotificationModel(n *entity.Notification) *notificationModel {
	return &notificationModel{
		ID:            n.ID,
		VendorID:      n.VendorID,
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

func fromNotificationModel(m *notificationModel) *entity.Notification {
	return &entity.Notification{
		ID:            m.ID,
		VendorID:      m.VendorID,
		BillID:        m.BillID,
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		CustomerPhone: m.CustomerPhone,
		Message:       m.Message,
		Type:          m.Type,
		Status:        m.Status,
		SentAt:        m.SentAt,
	}
}
