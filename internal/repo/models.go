package repo

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Description sql.NullString  `db:"description"`
	Photo       sql.NullString  `db:"photo"`
	Price       decimal.Decimal `db:"price"`
	SellerID    string          `db:"seller_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type Cart struct {
	ID          string          `db:"id"`
	Owner       string          `db:"owner"`
	Items       []byte          `db:"items"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type Order struct {
	ID            string          `db:"id"`
	Owner         string          `db:"owner"`
	Products      []byte          `db:"products"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	Status        string          `db:"status"`
	PaymentMethod sql.NullString  `db:"payment_method"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// cartLine and orderLine are the JSONB element shapes.
type cartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type orderLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func ProductToEntity(p Product) entities.Product {
	return entities.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: nullStringToString(p.Description),
		Photo:       nullStringToString(p.Photo),
		Price:       p.Price,
		SellerID:    p.SellerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func CartToEntity(c Cart) (entities.Cart, error) {
	var lines []cartLine
	if err := json.Unmarshal(c.Items, &lines); err != nil {
		return entities.Cart{}, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	items := make([]entities.CartItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, entities.CartItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	return entities.Cart{
		ID:          c.ID,
		Owner:       c.Owner,
		Items:       items,
		TotalAmount: c.TotalAmount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}, nil
}

func marshalCartItems(items []entities.CartItem) (string, error) {
	lines := make([]cartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, cartLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cart items: %w", err)
	}
	return string(data), nil
}

func OrderToEntity(o Order) (entities.Order, error) {
	var lines []orderLine
	if err := json.Unmarshal(o.Products, &lines); err != nil {
		return entities.Order{}, fmt.Errorf("failed to unmarshal order products: %w", err)
	}

	products := make([]entities.OrderItem, 0, len(lines))
	for _, l := range lines {
		products = append(products, entities.OrderItem{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price})
	}

	return entities.Order{
		ID:            o.ID,
		Owner:         o.Owner,
		Products:      products,
		TotalAmount:   o.TotalAmount,
		Status:        entities.OrderStatus(o.Status),
		PaymentMethod: nullStringToString(o.PaymentMethod),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}, nil
}

func marshalOrderItems(items []entities.OrderItem) (string, error) {
	lines := make([]orderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, orderLine{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("failed to marshal order products: %w", err)
	}
	return string(data), nil
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
