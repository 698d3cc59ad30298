package entities

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
)

// Principal is the authenticated actor performing an operation.
type Principal struct {
	ID   string
	Role Role
}

func (p Principal) IsSeller() bool {
	return p.Role == RoleSeller
}

type Product struct {
	ID          string
	Name        string
	Description string
	Photo       string
	Price       decimal.Decimal
	SellerID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CartItem struct {
	ProductID string
	Quantity  int
}

type Cart struct {
	ID          string
	Owner       string
	Items       []CartItem
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EmptyCart is what a principal without a stored cart sees.
func EmptyCart(owner string) Cart {
	return Cart{
		Owner:       owner,
		Items:       []CartItem{},
		TotalAmount: decimal.Zero,
	}
}

func (c *Cart) FindItem(productID string) (int, bool) {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i, true
		}
	}
	return -1, false
}

func (c *Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

func (c *Cart) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Cart) Unmarshal(data []byte) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(c)
}

// ResolvedCartItem is a cart line with its product looked up in the catalog.
// Product is nil when the catalog no longer knows the product.
type ResolvedCartItem struct {
	CartItem
	Product *Product
}

type ResolvedCart struct {
	Cart
	Items []ResolvedCartItem
}
