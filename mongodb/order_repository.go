package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vividmart/storefront/domain"
	apperrors "github.com/vividmart/storefront/errors"
)

// OrderRepository implements domain.OrderRepository on MongoDB.
type OrderRepository struct {
	orders *mongo.Collection
}

// NewOrderRepository creates the repository and ensures indexes.
func NewOrderRepository(ctx context.Context, db *mongo.Database) (*OrderRepository, error) {
	orders := db.Collection(OrdersCollection)
	_, err := orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create order indexes: %w", err)
	}
	return &OrderRepository{orders: orders}, nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, o *domain.Order) error {
	_, err := r.orders.InsertOne(ctx, o)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: order number %s", apperrors.ErrDuplicate, o.OrderNumber)
	}
	return err
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	cursor, err := r.orders.Find(ctx, bson.M{"user_id": userID}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, page, perPage int) ([]*domain.Order, int64, error) {
	if perPage <= 0 {
		perPage = 20
	}
	var skip int64
	if page > 1 {
		skip = int64(page-1) * int64(perPage)
	}

	total, err := r.orders.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.orders.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(perPage)))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	res, err := r.orders.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	return nil
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
