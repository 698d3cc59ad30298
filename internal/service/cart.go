package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-service/pkg/cache"
	"github.com/google/uuid"
)

type CartRepo interface {
	// GetCart returns entities.ErrCartNotFound when the owner has no cart.
	GetCart(ctx context.Context, owner string) (entities.Cart, error)
	// SaveCart inserts or replaces the owner's cart as a whole.
	SaveCart(ctx context.Context, cart entities.Cart) error
	// DeleteCart is a no-op when the owner has no cart.
	DeleteCart(ctx context.Context, owner string) error
}

type CartCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type ProductCatalog interface {
	GetProduct(ctx context.Context, productID string) (entities.Product, error)
	GetProducts(ctx context.Context, productIDs []string) (map[string]entities.Product, error)
}

// Locker serialises read-modify-write cycles per owner.
type Locker interface {
	Lock(key string) (unlock func())
}

type cartService struct {
	logger  *slog.Logger
	repo    CartRepo
	catalog ProductCatalog
	cache   CartCache
	locker  Locker
}

func NewCartService(logger *slog.Logger, repo CartRepo, catalog ProductCatalog, cache CartCache, locker Locker) *cartService {
	return &cartService{
		logger:  logger.With(slog.String("service", "cart")),
		repo:    repo,
		catalog: catalog,
		cache:   cache,
		locker:  locker,
	}
}

func (s *cartService) GetCart(ctx context.Context, p entities.Principal) (entities.ResolvedCart, error) {
	if err := requireCartOwner(p); err != nil {
		return entities.ResolvedCart{}, err
	}

	cart, err := s.loadCart(ctx, p.ID)
	if errors.Is(err, entities.ErrCartNotFound) {
		return resolveCart(entities.EmptyCart(p.ID), nil), nil
	}
	if err != nil {
		return entities.ResolvedCart{}, err
	}

	products, err := s.catalog.GetProducts(ctx, cart.ProductIDs())
	if err != nil {
		return entities.ResolvedCart{}, err
	}
	return resolveCart(cart, products), nil
}

func (s *cartService) AddItem(ctx context.Context, p entities.Principal, productID string, quantity int) (entities.ResolvedCart, error) {
	if err := requireCartOwner(p); err != nil {
		return entities.ResolvedCart{}, err
	}
	if quantity < 1 {
		return entities.ResolvedCart{}, entities.ErrInvalidQuantity
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return entities.ResolvedCart{}, err
	}

	unlock := s.locker.Lock(p.ID)
	defer unlock()

	now := time.Now().UTC()

	cart, err := s.repo.GetCart(ctx, p.ID)
	switch {
	case errors.Is(err, entities.ErrCartNotFound):
		cart = entities.Cart{
			ID:          uuid.NewString(),
			Owner:       p.ID,
			Items:       []entities.CartItem{{ProductID: productID, Quantity: quantity}},
			TotalAmount: product.Price.Mul(decimalQty(quantity)),
			CreatedAt:   now,
		}
	case err != nil:
		return entities.ResolvedCart{}, fmt.Errorf("failed to get cart: %w", err)
	default:
		if i, ok := cart.FindItem(productID); ok {
			if cart.Items[i].Quantity > math.MaxInt-quantity {
				return entities.ResolvedCart{}, entities.ErrInvalidQuantity
			}
			cart.Items[i].Quantity += quantity
		} else {
			cart.Items = append(cart.Items, entities.CartItem{ProductID: productID, Quantity: quantity})
		}
		// Every line is priced at the added product's price, not its own.
		cart.TotalAmount = uniformPriceTotal(cart.Items, product.Price)
	}
	cart.UpdatedAt = now

	if err := s.save(ctx, cart, "add_item"); err != nil {
		return entities.ResolvedCart{}, err
	}

	products, err := s.catalog.GetProducts(ctx, cart.ProductIDs())
	if err != nil {
		return entities.ResolvedCart{}, err
	}
	return resolveCart(cart, products), nil
}

func (s *cartService) UpdateItem(ctx context.Context, p entities.Principal, productID string, quantity int) (entities.ResolvedCart, error) {
	if err := requireCartOwner(p); err != nil {
		return entities.ResolvedCart{}, err
	}
	if quantity < 1 {
		return entities.ResolvedCart{}, entities.ErrInvalidQuantity
	}

	unlock := s.locker.Lock(p.ID)
	defer unlock()

	cart, err := s.getExistingCart(ctx, p.ID)
	if err != nil {
		return entities.ResolvedCart{}, err
	}

	i, ok := cart.FindItem(productID)
	if !ok {
		return entities.ResolvedCart{}, entities.ErrItemNotFound
	}
	cart.Items[i].Quantity = quantity

	return s.repriceAndSave(ctx, cart, "update_item")
}

func (s *cartService) RemoveItem(ctx context.Context, p entities.Principal, productID string) (entities.ResolvedCart, error) {
	if err := requireCartOwner(p); err != nil {
		return entities.ResolvedCart{}, err
	}

	unlock := s.locker.Lock(p.ID)
	defer unlock()

	cart, err := s.getExistingCart(ctx, p.ID)
	if err != nil {
		return entities.ResolvedCart{}, err
	}

	items := make([]entities.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	cart.Items = items

	return s.repriceAndSave(ctx, cart, "remove_item")
}

func (s *cartService) ClearCart(ctx context.Context, p entities.Principal) error {
	if err := requireCartOwner(p); err != nil {
		return err
	}

	unlock := s.locker.Lock(p.ID)
	defer unlock()

	if err := s.DeleteCart(ctx, p.ID); err != nil {
		return err
	}
	cartMutations.WithLabelValues("clear").Inc()
	return nil
}

// DeleteCart removes the owner's cart without taking the owner lock, so the
// order service can call it while holding that lock inside its transaction.
// Callers must hold the owner lock until the deletion is committed.
func (s *cartService) DeleteCart(ctx context.Context, owner string) error {
	if err := s.repo.DeleteCart(ctx, owner); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	s.invalidate(ctx, owner)
	return nil
}

func (s *cartService) getExistingCart(ctx context.Context, owner string) (entities.Cart, error) {
	cart, err := s.repo.GetCart(ctx, owner)
	if errors.Is(err, entities.ErrCartNotFound) {
		return entities.Cart{}, err
	}
	if err != nil {
		return entities.Cart{}, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) repriceAndSave(ctx context.Context, cart entities.Cart, op string) (entities.ResolvedCart, error) {
	products, err := s.catalog.GetProducts(ctx, cart.ProductIDs())
	if err != nil {
		return entities.ResolvedCart{}, err
	}

	cart.TotalAmount = lineTotal(cart.Items, products)
	cart.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, cart, op); err != nil {
		return entities.ResolvedCart{}, err
	}
	return resolveCart(cart, products), nil
}

// save reports store rejections as validation failures.
func (s *cartService) save(ctx context.Context, cart entities.Cart, op string) error {
	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return fmt.Errorf("%w: failed to save cart: %w", entities.ErrValidation, err)
	}
	s.invalidate(ctx, cart.Owner)
	cartMutations.WithLabelValues(op).Inc()
	s.logger.DebugContext(ctx, "cart saved", slog.String("owner", cart.Owner), slog.String("op", op))
	return nil
}

func (s *cartService) loadCart(ctx context.Context, owner string) (entities.Cart, error) {
	data, err := s.cache.Get(ctx, owner)
	if err == nil {
		var cart entities.Cart
		if err := cart.Unmarshal(data); err == nil {
			return cart, nil
		}
		s.logger.WarnContext(ctx, "failed to unmarshal cached cart", slog.String("owner", owner))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "cart cache get failed", slog.Any("error", err))
	}

	// Filling the cache under the owner lock keeps a read from caching a cart
	// that a concurrent mutation or order is about to replace or delete.
	unlock := s.locker.Lock(owner)
	defer unlock()

	cart, err := s.getExistingCart(ctx, owner)
	if err != nil {
		return entities.Cart{}, err
	}

	if data, err := cart.Marshal(); err == nil {
		if err := s.cache.Set(ctx, owner, data); err != nil {
			s.logger.WarnContext(ctx, "cart cache set failed", slog.Any("error", err))
		}
	}
	return cart, nil
}

func (s *cartService) invalidate(ctx context.Context, owner string) {
	if err := s.cache.Delete(ctx, owner); err != nil {
		s.logger.WarnContext(ctx, "cart cache invalidate failed", slog.Any("error", err), slog.String("owner", owner))
	}
}

func resolveCart(cart entities.Cart, products map[string]entities.Product) entities.ResolvedCart {
	items := make([]entities.ResolvedCartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		item := entities.ResolvedCartItem{CartItem: it}
		if p, ok := products[it.ProductID]; ok {
			item.Product = &p
		}
		items = append(items, item)
	}
	return entities.ResolvedCart{Cart: cart, Items: items}
}
