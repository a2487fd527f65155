package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vividmart/storefront/domain"
	apperrors "github.com/vividmart/storefront/errors"
)

// CouponRepository implements domain.CouponRepository on MongoDB.
type CouponRepository struct {
	coupons *mongo.Collection
}

// NewCouponRepository creates the repository and ensures the unique code
// index.
func NewCouponRepository(ctx context.Context, db *mongo.Database) (*CouponRepository, error) {
	coupons := db.Collection(CouponsCollection)
	_, err := coupons.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create coupon index: %w", err)
	}
	return &CouponRepository{coupons: coupons}, nil
}

func (r *CouponRepository) CreateCoupon(ctx context.Context, c *domain.Coupon) error {
	_, err := r.coupons.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: coupon %s", apperrors.ErrDuplicate, c.Code)
	}
	return err
}

func (r *CouponRepository) GetCouponByID(ctx context.Context, id string) (*domain.Coupon, error) {
	var c domain.Coupon
	err := r.coupons.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: coupon %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var c domain.Coupon
	err := r.coupons.FindOne(ctx, bson.M{"code": code}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: coupon %s", apperrors.ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) ListCoupons(ctx context.Context) ([]*domain.Coupon, error) {
	cursor, err := r.coupons.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var coupons []*domain.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *CouponRepository) UpdateCoupon(ctx context.Context, c *domain.Coupon) error {
	res, err := r.coupons.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: coupon %s", apperrors.ErrDuplicate, c.Code)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: coupon %s", apperrors.ErrNotFound, c.ID)
	}
	return nil
}

func (r *CouponRepository) DeleteCoupon(ctx context.Context, id string) error {
	_, err := r.coupons.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *CouponRepository) IncrementUsage(ctx context.Context, id string) error {
	_, err := r.coupons.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"usage_count": 1},
	})
	return err
}

var _ domain.CouponRepository = (*CouponRepository)(nil)
