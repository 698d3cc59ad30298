package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-service/pkg/trm"
	"github.com/google/uuid"
)

type OrderRepo interface {
	SaveOrder(ctx context.Context, o entities.Order) error
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	// ListOrdersByOwner returns orders newest first.
	ListOrdersByOwner(ctx context.Context, owner string) ([]entities.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus, updatedAt time.Time) error
	DeleteOrder(ctx context.Context, orderID string) error
}

type CartRemover interface {
	DeleteCart(ctx context.Context, owner string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event entities.OrderEvent) error
}

type orderService struct {
	logger       *slog.Logger
	txManager    trm.Manager
	repo         OrderRepo
	carts        CartRemover
	catalog      ProductCatalog
	publisher    EventPublisher
	locker       Locker
	verifyPrices bool
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo OrderRepo,
	carts CartRemover,
	catalog ProductCatalog,
	publisher EventPublisher,
	locker Locker,
	verifyPrices bool,
) *orderService {
	return &orderService{
		logger:       logger.With(slog.String("service", "order")),
		txManager:    txManager,
		repo:         repo,
		carts:        carts,
		catalog:      catalog,
		publisher:    publisher,
		locker:       locker,
		verifyPrices: verifyPrices,
	}
}

// CreateOrder stores a priced snapshot of items and deletes the owner's cart in
// the same transaction. Line prices come from the caller unless price
// verification is enabled.
func (s *orderService) CreateOrder(ctx context.Context, p entities.Principal, items []entities.OrderItem, paymentMethod string) (entities.Order, error) {
	if err := requireBuyer(p); err != nil {
		return entities.Order{}, err
	}
	if err := validateOrderItems(items); err != nil {
		return entities.Order{}, err
	}

	items = slices.Clone(items)
	if s.verifyPrices {
		if err := s.applyCatalogPrices(ctx, items); err != nil {
			return entities.Order{}, err
		}
	}

	now := time.Now().UTC()
	order := entities.Order{
		ID:            uuid.NewString(),
		Owner:         p.ID,
		Products:      items,
		TotalAmount:   orderTotal(items),
		Status:        entities.OrderStatusPending,
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	unlock := s.locker.Lock(p.ID)
	defer unlock()

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.SaveOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
		if err := s.carts.DeleteCart(ctx, p.ID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return entities.Order{}, fmt.Errorf("%w: %w", entities.ErrValidation, err)
	}

	ordersCreated.Inc()
	s.logger.DebugContext(ctx, "order created", slog.String("order_id", order.ID), slog.String("owner", p.ID))
	s.publish(ctx, entities.OrderCreated, order)
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, p entities.Principal) ([]entities.ResolvedOrder, error) {
	if err := requireBuyer(p); err != nil {
		return nil, err
	}

	orders, err := s.repo.ListOrdersByOwner(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	var ids []string
	for _, o := range orders {
		ids = append(ids, o.ProductIDs()...)
	}
	products, err := s.catalog.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]entities.ResolvedOrder, 0, len(orders))
	for _, o := range orders {
		result = append(result, resolveOrder(o, products))
	}
	return result, nil
}

// UpdateOrderStatus applies patch to an order owned by p. Existence and
// ownership are checked before the patch itself. An empty patch returns the
// order unchanged.
func (s *orderService) UpdateOrderStatus(ctx context.Context, p entities.Principal, orderID string, patch entities.OrderPatch) (entities.Order, error) {
	order, err := s.getOwnedOrder(ctx, p, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if len(patch.Unknown) > 0 {
		return entities.Order{}, fmt.Errorf("%w: %v", entities.ErrInvalidUpdates, patch.Unknown)
	}
	if patch.Status == nil {
		return order, nil
	}
	if !patch.Status.Valid() {
		return entities.Order{}, entities.ErrInvalidStatus
	}

	order.Status = *patch.Status
	order.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateOrderStatus(ctx, order.ID, order.Status, order.UpdatedAt); err != nil {
		return entities.Order{}, fmt.Errorf("%w: failed to update order: %w", entities.ErrValidation, err)
	}

	orderStatusUpdates.WithLabelValues(string(order.Status)).Inc()
	s.publish(ctx, entities.OrderStatusUpdated, order)
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, p entities.Principal, orderID string) error {
	order, err := s.getOwnedOrder(ctx, p, orderID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteOrder(ctx, order.ID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	ordersDeleted.Inc()
	s.publish(ctx, entities.OrderDeleted, order)
	return nil
}

func (s *orderService) getOwnedOrder(ctx context.Context, p entities.Principal, orderID string) (entities.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if err := requireOrderOwner(p, order); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

func (s *orderService) applyCatalogPrices(ctx context.Context, items []entities.OrderItem) error {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	products, err := s.catalog.GetProducts(ctx, ids)
	if err != nil {
		return err
	}

	for i, it := range items {
		product, ok := products[it.ProductID]
		if !ok {
			return fmt.Errorf("%w: %s", entities.ErrProductNotFound, it.ProductID)
		}
		items[i].Price = product.Price
	}
	return nil
}

// publish is best effort: the order is already committed.
func (s *orderService) publish(ctx context.Context, eventType entities.OrderEventType, order entities.Order) {
	event := entities.OrderEvent{
		Type:       eventType,
		Order:      order,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order event",
			slog.Any("error", err),
			slog.String("type", string(eventType)),
			slog.String("order_id", order.ID),
		)
	}
}

func validateOrderItems(items []entities.OrderItem) error {
	if len(items) == 0 {
		return entities.ErrEmptyOrder
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return entities.ErrInvalidQuantity
		}
		if it.Price.IsNegative() {
			return entities.ErrInvalidPrice
		}
	}
	return nil
}

func resolveOrder(order entities.Order, products map[string]entities.Product) entities.ResolvedOrder {
	items := make([]entities.ResolvedOrderItem, 0, len(order.Products))
	for _, it := range order.Products {
		item := entities.ResolvedOrderItem{OrderItem: it}
		if p, ok := products[it.ProductID]; ok {
			item.Product = &p
		}
		items = append(items, item)
	}
	return entities.ResolvedOrder{Order: order, Products: items}
}
