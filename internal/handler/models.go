package handler

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is the catalog view embedded in cart and order lines
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Photo       string          `json:"photo,omitempty"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	SellerID    string          `json:"sellerId"`
}

// CartItem is a cart line; product is null when the catalog no longer has it
type CartItem struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product"`
}

// Cart represents the caller's shopping cart
type Cart struct {
	ID          string          `json:"id,omitempty"`
	Owner       string          `json:"owner"`
	Items       []CartItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount" swaggertype:"number"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=10000"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=10000"`
}

type OrderItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gte=1,lte=10000"`
	Price     decimal.Decimal `json:"price" swaggertype:"number"`
}

type CreateOrderRequest struct {
	Products      []OrderItemRequest `json:"products" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"paymentMethod"`
}

// UpdateOrderRequest documents the PATCH body. The handler decodes it by
// exact key through OrderPatchFromFields.
type UpdateOrderRequest struct {
	Status *string `json:"status"`
}

// OrderItem is an order line with the price captured at creation
type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price" swaggertype:"number"`
	Product   *Product        `json:"product,omitempty"`
}

// Order represents a placed order
type Order struct {
	ID            string          `json:"id"`
	Owner         string          `json:"owner"`
	Products      []OrderItem     `json:"products"`
	TotalAmount   decimal.Decimal `json:"totalAmount" swaggertype:"number"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ProductEvent is consumed from the product events topic
type ProductEvent struct {
	Type      string          `json:"type" validate:"required,oneof=product.created product.updated product.deleted"`
	ProductID string          `json:"productId" validate:"required"`
	Price     decimal.Decimal `json:"price"`
}

func ProductEntityToJSON(p *entities.Product) *Product {
	if p == nil {
		return nil
	}
	return &Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Photo:       p.Photo,
		Price:       p.Price,
		SellerID:    p.SellerID,
	}
}

func CartEntityToJSON(c entities.ResolvedCart) Cart {
	cart := Cart{
		ID:          c.ID,
		Owner:       c.Owner,
		Items:       make([]CartItem, 0, len(c.Items)),
		TotalAmount: c.TotalAmount,
	}
	if !c.CreatedAt.IsZero() {
		cart.CreatedAt = &c.CreatedAt
	}
	if !c.UpdatedAt.IsZero() {
		cart.UpdatedAt = &c.UpdatedAt
	}

	for _, it := range c.Items {
		cart.Items = append(cart.Items, CartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Product:   ProductEntityToJSON(it.Product),
		})
	}
	return cart
}

func OrderEntityToJSON(o entities.Order) Order {
	order := Order{
		ID:            o.ID,
		Owner:         o.Owner,
		Products:      make([]OrderItem, 0, len(o.Products)),
		TotalAmount:   o.TotalAmount,
		Status:        string(o.Status),
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, it := range o.Products {
		order.Products = append(order.Products, OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return order
}

func ResolvedOrderEntityToJSON(o entities.ResolvedOrder) Order {
	order := OrderEntityToJSON(o.Order)
	for i, it := range o.Products {
		order.Products[i].Product = ProductEntityToJSON(it.Product)
	}
	return order
}

func OrderItemsJSONToEntity(items []OrderItemRequest) []entities.OrderItem {
	result := make([]entities.OrderItem, 0, len(items))
	for _, it := range items {
		result = append(result, entities.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return result
}

// OrderPatchFromFields builds a patch from raw body members. Keys match
// exactly, so "Status" is an unknown key.
func OrderPatchFromFields(fields map[string]json.RawMessage) (entities.OrderPatch, error) {
	var patch entities.OrderPatch
	for key, raw := range fields {
		if key != "status" {
			patch.Unknown = append(patch.Unknown, key)
			continue
		}

		var status *string
		if err := json.Unmarshal(raw, &status); err != nil {
			return entities.OrderPatch{}, err
		}
		if status != nil {
			s := entities.OrderStatus(*status)
			patch.Status = &s
		}
	}
	slices.Sort(patch.Unknown)
	return patch, nil
}
