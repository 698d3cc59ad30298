package service

import (
	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/shopspring/decimal"
)

// uniformPriceTotal prices every line at the same unit price. AddItem uses it
// with the price of the product being added, whatever the other lines hold.
func uniformPriceTotal(items []entities.CartItem, price decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(price.Mul(decimalQty(it.Quantity)))
	}
	return total
}

// lineTotal prices each line at its own catalog price. Lines whose product is
// gone from the catalog contribute nothing.
func lineTotal(items []entities.CartItem, products map[string]entities.Product) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		total = total.Add(p.Price.Mul(decimalQty(it.Quantity)))
	}
	return total
}

func orderTotal(items []entities.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimalQty(it.Quantity)))
	}
	return total
}

func decimalQty(quantity int) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity))
}
