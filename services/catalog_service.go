package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vividmart/storefront/domain"
	"github.com/vividmart/storefront/internal/metrics"
)

// CatalogService serves product and category reads through the cache and
// keeps the cache coherent across admin writes.
type CatalogService struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	sessions   *SessionRegistry
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(products domain.ProductRepository, categories domain.CategoryRepository, sessions *SessionRegistry) *CatalogService {
	return &CatalogService{products: products, categories: categories, sessions: sessions}
}

// GetProduct reads a product, cache first. Cache failures degrade to the
// repository; cache fill failures are logged, not surfaced.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if cached, err := s.sessions.GetCachedProduct(ctx, id); err == nil && cached != nil {
		metrics.CacheHitsTotal.Inc()
		return cached, nil
	}
	metrics.CacheMissesTotal.Inc()

	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.CacheProduct(ctx, product); err != nil {
		log.Warn().Err(err).Str("product_id", id).Msg("failed to cache product")
	}
	return product, nil
}

// ListProducts reads the catalog directly; filtered listings are too varied
// to cache usefully.
func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	return s.products.ListProducts(ctx, filter)
}

// CreateProduct inserts a product.
func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = domain.ProductStatusDraft
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.products.CreateProduct(ctx, p)
}

// UpdateProduct writes a product and drops its cache entry.
func (s *CatalogService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()
	if err := s.products.UpdateProduct(ctx, p); err != nil {
		return err
	}
	if err := s.sessions.InvalidateProduct(ctx, p.ID); err != nil {
		log.Warn().Err(err).Str("product_id", p.ID).Msg("failed to invalidate product cache")
	}
	return nil
}

// DeleteProduct removes a product and drops its cache entry.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return err
	}
	if err := s.sessions.InvalidateProduct(ctx, id); err != nil {
		log.Warn().Err(err).Str("product_id", id).Msg("failed to invalidate product cache")
	}
	return nil
}

// ListCategories returns categories; the active-only listing is served from
// the categories:all cache entry.
func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]*domain.Category, error) {
	if activeOnly {
		if cached, err := s.sessions.GetCachedCategories(ctx); err == nil && cached != nil {
			metrics.CacheHitsTotal.Inc()
			return cached, nil
		}
		metrics.CacheMissesTotal.Inc()
	}

	categories, err := s.categories.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		if err := s.sessions.CacheCategories(ctx, categories); err != nil {
			log.Warn().Err(err).Msg("failed to cache categories")
		}
	}
	return categories, nil
}

// GetCategory reads one category directly; single-category reads are rare
// enough not to cache.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetCategoryByID(ctx, id)
}

// CreateCategory inserts a category, deriving the slug when absent, and
// drops the cached list.
func (s *CatalogService) CreateCategory(ctx context.Context, c *domain.Category) error {
	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Slug == "" {
		c.Slug = domain.Slugify(c.Name)
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.categories.CreateCategory(ctx, c); err != nil {
		return err
	}
	return s.invalidateCategories(ctx)
}

// UpdateCategory writes a category and drops the cached list.
func (s *CatalogService) UpdateCategory(ctx context.Context, c *domain.Category) error {
	c.UpdatedAt = time.Now().UTC()
	if c.Slug == "" {
		c.Slug = domain.Slugify(c.Name)
	}
	if err := s.categories.UpdateCategory(ctx, c); err != nil {
		return err
	}
	return s.invalidateCategories(ctx)
}

// DeleteCategory removes a category and drops the cached list.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return err
	}
	return s.invalidateCategories(ctx)
}

func (s *CatalogService) invalidateCategories(ctx context.Context) error {
	if err := s.sessions.InvalidateCategories(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate categories cache")
	}
	return nil
}
