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

// CategoryRepository implements domain.CategoryRepository on MongoDB.
type CategoryRepository struct {
	categories *mongo.Collection
}

// NewCategoryRepository creates the repository and ensures unique name and
// slug indexes.
func NewCategoryRepository(ctx context.Context, db *mongo.Database) (*CategoryRepository, error) {
	categories := db.Collection(CategoriesCollection)
	_, err := categories.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "sort_order", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create category indexes: %w", err)
	}
	return &CategoryRepository{categories: categories}, nil
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	_, err := r.categories.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: category %s", apperrors.ErrDuplicate, c.Name)
	}
	return err
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) ListCategories(ctx context.Context, activeOnly bool) ([]*domain.Category, error) {
	query := bson.M{}
	if activeOnly {
		query["is_active"] = true
	}
	cursor, err := r.categories.Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []*domain.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, c *domain.Category) error {
	res, err := r.categories.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: category %s", apperrors.ErrDuplicate, c.Name)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, c.ID)
	}
	return nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	_, err := r.categories.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

var _ domain.CategoryRepository = (*CategoryRepository)(nil)
