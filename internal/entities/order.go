package entities

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	return slices.Contains(orderStatuses, s)
}

type OrderItem struct {
	ProductID string
	Quantity  int
	// Price is captured when the order is created and never recomputed.
	Price decimal.Decimal
}

type Order struct {
	ID            string
	Owner         string
	Products      []OrderItem
	TotalAmount   decimal.Decimal
	Status        OrderStatus
	PaymentMethod string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (o *Order) ProductIDs() []string {
	ids := make([]string, 0, len(o.Products))
	for _, it := range o.Products {
		ids = append(ids, it.ProductID)
	}
	return ids
}

// OrderPatch lists the only fields an owner may change after creation.
// Unknown holds any other keys the caller sent; a non-empty Unknown rejects
// the whole patch.
type OrderPatch struct {
	Status  *OrderStatus
	Unknown []string
}

type ResolvedOrderItem struct {
	OrderItem
	Product *Product
}

type ResolvedOrder struct {
	Order
	Products []ResolvedOrderItem
}

type OrderEventType string

const (
	OrderCreated       OrderEventType = "order.created"
	OrderStatusUpdated OrderEventType = "order.status_updated"
	OrderDeleted       OrderEventType = "order.deleted"
)

type OrderEvent struct {
	Type       OrderEventType
	Order      Order
	OccurredAt time.Time
}
