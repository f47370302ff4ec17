package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/jhoicas/dairybook-api/internal/domain"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository     = (*CustomerRepo)(nil)
	_ repository.TransactionRepository  = (*TransactionRepo)(nil)
	_ repository.BillRepository         = (*BillRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
)

// inSession ata ctx a la sesión de la transacción en curso, si la hay.
func inSession(ctx context.Context, sess *mongo.Session) context.Context {
	if sess == nil {
		return ctx
	}
	return mongo.NewSessionContext(ctx, sess)
}

// ==================== Customers ====================

// CustomerRepo implementación MongoDB de CustomerRepository.
type CustomerRepo struct {
	col *mongo.Collection
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if _, err := r.col.InsertOne(ctx, toCustomerModel(c)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("mongo: insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, vendorID, id string) (*entity.Customer, error) {
	var m customerModel
	err := r.col.FindOne(ctx, bson.M{"_id": id, "vendor_id": vendorID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongo: get customer: %w", err)
	}
	return fromCustomerModel(&m), nil
}

func (r *CustomerRepo) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Customer, error) {
	cur, err := r.col.Find(ctx, bson.M{"vendor_id": vendorID},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: list customers: %w", err)
	}
	var models []customerModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("mongo: decode customers: %w", err)
	}
	list := make([]*entity.Customer, 0, len(models))
	for i := range models {
		list = append(list, fromCustomerModel(&models[i]))
	}
	return list, nil
}

// ==================== Transactions ====================

// TransactionRepo implementación MongoDB de TransactionRepository.
// Con sess != nil todas las operaciones corren dentro de la transacción de la sesión.
type TransactionRepo struct {
	col  *mongo.Collection
	sess *mongo.Session
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	m, err := toTransactionModel(t)
	if err != nil {
		return err
	}
	if _, err := r.col.InsertOne(inSession(ctx, r.sess), m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("mongo: insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) ListByCustomer(ctx context.Context, vendorID, customerID string) ([]*entity.Transaction, error) {
	return r.find(ctx, "list transactions by customer", bson.M{"vendor_id": vendorID, "customer_id": customerID})
}

func (r *TransactionRepo) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Transaction, error) {
	return r.find(ctx, "list transactions", bson.M{"vendor_id": vendorID})
}

func (r *TransactionRepo) ListUnpaidInRange(ctx context.Context, vendorID, customerID string, from, to time.Time) ([]*entity.Transaction, error) {
	return r.find(ctx, "list unpaid transactions", bson.M{
		"vendor_id":   vendorID,
		"customer_id": customerID,
		"is_paid":     false,
		"date":        bson.M{"$gte": from, "$lte": to},
	})
}

func (r *TransactionRepo) MarkPaid(ctx context.Context, vendorID, billID string, ids []string) (int64, error) {
	res, err := r.col.UpdateMany(inSession(ctx, r.sess),
		bson.M{"vendor_id": vendorID, "_id": bson.M{"$in": ids}, "is_paid": false},
		bson.M{"$set": bson.M{"is_paid": true, "bill_id": billID}},
	)
	if err != nil {
		return 0, fmt.Errorf("mongo: mark transactions paid: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *TransactionRepo) find(ctx context.Context, op string, filter bson.M) ([]*entity.Transaction, error) {
	ctx = inSession(ctx, r.sess)
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: %s: %w", op, err)
	}
	var models []transactionModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("mongo: decode transactions: %w", err)
	}
	list := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		t, err := fromTransactionModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("mongo: transaction %s: %w", models[i].ID, err)
		}
		list = append(list, t)
	}
	return list, nil
}

// ==================== Bills ====================

// BillRepo implementación MongoDB de BillRepository.
type BillRepo struct {
	col  *mongo.Collection
	sess *mongo.Session
}

func (r *BillRepo) Create(ctx context.Context, b *entity.Bill) error {
	m, err := toBillModel(b)
	if err != nil {
		return err
	}
	if _, err := r.col.InsertOne(inSession(ctx, r.sess), m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("mongo: insert bill: %w", err)
	}
	return nil
}

func (r *BillRepo) GetByID(ctx context.Context, vendorID, id string) (*entity.Bill, error) {
	var m billModel
	err := r.col.FindOne(inSession(ctx, r.sess), bson.M{"_id": id, "vendor_id": vendorID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongo: get bill: %w", err)
	}
	return fromBillModel(&m)
}

func (r *BillRepo) ListByCustomer(ctx context.Context, vendorID, customerID string) ([]*entity.Bill, error) {
	ctx = inSession(ctx, r.sess)
	cur, err := r.col.Find(ctx, bson.M{"vendor_id": vendorID, "customer_id": customerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: list bills: %w", err)
	}
	var models []billModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("mongo: decode bills: %w", err)
	}
	list := make([]*entity.Bill, 0, len(models))
	for i := range models {
		b, err := fromBillModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("mongo: bill %s: %w", models[i].ID, err)
		}
		list = append(list, b)
	}
	return list, nil
}

func (r *BillRepo) CountByVendor(ctx context.Context, vendorID string) (int, error) {
	n, err := r.col.CountDocuments(inSession(ctx, r.sess), bson.M{"vendor_id": vendorID})
	if err != nil {
		return 0, fmt.Errorf("mongo: count bills: %w", err)
	}
	return int(n), nil
}

// ==================== Notifications ====================

// NotificationRepo implementación MongoDB de NotificationRepository.
type NotificationRepo struct {
	col *mongo.Collection
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	if _, err := r.col.InsertOne(ctx, toNotificationModel(n)); err != nil {
		return fmt.Errorf("mongo: insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) ListByBill(ctx context.Context, vendorID, billID string) ([]*entity.Notification, error) {
	cur, err := r.col.Find(ctx, bson.M{"vendor_id": vendorID, "bill_id": billID},
		options.Find().SetSort(bson.D{{Key: "sent_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: list notifications: %w", err)
	}
	var models []notificationModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("mongo: decode notifications: %w", err)
	}
	list := make([]*entity.Notification, 0, len(models))
	for i := range models {
		list = append(list, fromNotificationModel(&models[i]))
	}
	return list, nil
}
