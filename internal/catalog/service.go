package catalog

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/kristopher-lab/verdure-premium-plant-shop/pkg/errors"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/pagination"

	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/domain"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/store"
)

// relatedLimit caps the number of products returned by Related.
const relatedLimit = 4

// ProductDescriptor returns the store descriptor for the product entity type.
func ProductDescriptor() store.Descriptor[domain.Product] {
	return store.Descriptor[domain.Product]{
		Name:      "product",
		IndexName: "products",
		New: func(id string) domain.Product {
			return domain.Product{
				ID:       id,
				Images:   []string{},
				Category: domain.CategoryIndoor,
				Tags:     []string{},
				Variants: []domain.ProductVariant{},
			}
		},
	}
}

// Service implements read-only catalog queries over the product store and
// owns one-time seeding of the static dataset.
type Service struct {
	products *store.Store[domain.Product]
	logger   *slog.Logger
}

// NewService creates a new catalog service.
func NewService(products *store.Store[domain.Product], logger *slog.Logger) *Service {
	return &Service{
		products: products,
		logger:   logger,
	}
}

// EnsureSeed populates the product store from the static dataset exactly once.
// A non-empty index is the fast path; when two callers race past it, the
// store's idempotent Create absorbs the duplicate writes as no-ops, so the
// dataset is never seeded twice.
func (s *Service) EnsureSeed(ctx context.Context) error {
	count, err := s.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range seedProducts() {
		if _, err := s.products.Create(ctx, p.ID, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}

	s.logger.InfoContext(ctx, "product catalog seeded",
		slog.Int("count", len(seedProducts())),
	)

	return nil
}

// List returns one page of the catalog in index order. The catalog is seeded
// on first touch.
func (s *Service) List(ctx context.Context, cursor string, limit int) (pagination.Page[domain.Product], error) {
	if err := s.EnsureSeed(ctx); err != nil {
		return pagination.Page[domain.Product]{}, err
	}

	page, err := s.products.List(ctx, cursor, limit)
	if err != nil {
		return pagination.Page[domain.Product]{}, fmt.Errorf("list products: %w", err)
	}

	return page, nil
}

// GetByID retrieves a product by its id.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Product, error) {
	if err := s.EnsureSeed(ctx); err != nil {
		return domain.Product{}, err
	}

	product, err := s.products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product by id: %w", err)
	}

	return product, nil
}

// GetBySlug retrieves a product by its URL slug. Slugs are resolved with a
// linear scan over the full listed set, which is fine at catalog scale.
func (s *Service) GetBySlug(ctx context.Context, slug string) (domain.Product, error) {
	all, err := s.listAll(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	for _, p := range all {
		if p.Slug == slug {
			return p, nil
		}
	}

	return domain.Product{}, apperrors.NotFound("product", slug)
}

// Related returns up to four products sharing the target product's category,
// excluding the product itself, in index order. No relevance ranking.
func (s *Service) Related(ctx context.Context, id string) ([]domain.Product, error) {
	target, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	all, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	related := make([]domain.Product, 0, relatedLimit)
	for _, p := range all {
		if p.ID == target.ID || p.Category != target.Category {
			continue
		}
		related = append(related, p)
		if len(related) == relatedLimit {
			break
		}
	}

	return related, nil
}

// listAll walks the index cursor-by-cursor and returns the full catalog in
// index order.
func (s *Service) listAll(ctx context.Context) ([]domain.Product, error) {
	if err := s.EnsureSeed(ctx); err != nil {
		return nil, err
	}

	var all []domain.Product
	cursor := ""
	for {
		page, err := s.products.List(ctx, cursor, pagination.MaxLimit)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		all = append(all, page.Items...)
		if page.Next == nil {
			return all, nil
		}
		cursor = *page.Next
	}
}
