package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"golang.org/x/sync/singleflight"
)

type ProductRepo interface {
	// GetProductsByIDs returns the products that exist; unknown ids are skipped.
	GetProductsByIDs(ctx context.Context, ids []string) ([]entities.Product, error)
}

type ProductCache interface {
	Get(key string) (entities.Product, bool)
	Set(key string, value entities.Product)
	Delete(key string)
}

type catalogService struct {
	logger *slog.Logger
	repo   ProductRepo
	cache  ProductCache
	group  singleflight.Group
}

func NewCatalogService(logger *slog.Logger, repo ProductRepo, cache ProductCache) *catalogService {
	return &catalogService{
		logger: logger.With(slog.String("service", "catalog")),
		repo:   repo,
		cache:  cache,
	}
}

func (s *catalogService) GetProduct(ctx context.Context, productID string) (entities.Product, error) {
	if p, ok := s.cache.Get(productID); ok {
		catalogLookups.WithLabelValues("hit").Inc()
		return p, nil
	}
	catalogLookups.WithLabelValues("miss").Inc()

	v, err, _ := s.group.Do(productID, func() (any, error) {
		products, err := s.repo.GetProductsByIDs(ctx, []string{productID})
		if err != nil {
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		if len(products) == 0 {
			return nil, entities.ErrProductNotFound
		}
		s.cache.Set(productID, products[0])
		return products[0], nil
	})
	if err != nil {
		return entities.Product{}, err
	}
	return v.(entities.Product), nil
}

// GetProducts resolves ids in bulk. Ids missing from the catalog are absent
// from the result rather than an error.
func (s *catalogService) GetProducts(ctx context.Context, productIDs []string) (map[string]entities.Product, error) {
	result := make(map[string]entities.Product, len(productIDs))
	missing := make([]string, 0, len(productIDs))
	seen := make(map[string]struct{}, len(productIDs))

	for _, id := range productIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if p, ok := s.cache.Get(id); ok {
			catalogLookups.WithLabelValues("hit").Inc()
			result[id] = p
			continue
		}
		catalogLookups.WithLabelValues("miss").Inc()
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return result, nil
	}

	products, err := s.repo.GetProductsByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	for _, p := range products {
		s.cache.Set(p.ID, p)
		result[p.ID] = p
	}

	if len(products) < len(missing) {
		s.logger.DebugContext(ctx, "products missing from catalog", slog.Int("requested", len(missing)), slog.Int("found", len(products)))
	}
	return result, nil
}

// Invalidate drops a cached product so the next lookup reads the store.
func (s *catalogService) Invalidate(productID string) {
	s.cache.Delete(productID)
	s.logger.Debug("product invalidated", slog.String("product_id", productID))
}
