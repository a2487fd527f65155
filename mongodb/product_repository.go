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

// ProductRepository implements domain.ProductRepository on MongoDB.
type ProductRepository struct {
	products *mongo.Collection
}

// NewProductRepository creates the repository and ensures indexes.
func NewProductRepository(ctx context.Context, db *mongo.Database) (*ProductRepository, error) {
	products := db.Collection(ProductsCollection)
	_, err := products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create product indexes: %w", err)
	}
	return &ProductRepository{products: products}, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	_, err := r.products.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: sku %s", apperrors.ErrDuplicate, p.SKU)
	}
	return err
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}

	total, err := r.products.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.products.Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(filter.Skip()).
		SetLimit(filter.Limit()))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	res, err := r.products.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: sku %s", apperrors.ErrDuplicate, p.SKU)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, p.ID)
	}
	return nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	_, err := r.products.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DecrementQuantity reduces tracked stock after checkout. Products that do
// not track quantity are left untouched.
func (r *ProductRepository) DecrementQuantity(ctx context.Context, id string, by int) error {
	_, err := r.products.UpdateOne(ctx,
		bson.M{"_id": id, "track_quantity": true},
		bson.M{"$inc": bson.M{"quantity": -by}},
	)
	return err
}

var _ domain.ProductRepository = (*ProductRepository)(nil)
