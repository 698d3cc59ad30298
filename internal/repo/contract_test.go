//go:build integration

package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-service/pkg/trm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type store interface {
	GetProductsByIDs(ctx context.Context, ids []string) ([]entities.Product, error)

	GetCart(ctx context.Context, owner string) (entities.Cart, error)
	SaveCart(ctx context.Context, cart entities.Cart) error
	DeleteCart(ctx context.Context, owner string) error

	SaveOrder(ctx context.Context, o entities.Order) error
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListOrdersByOwner(ctx context.Context, owner string) ([]entities.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus, updatedAt time.Time) error
	DeleteOrder(ctx context.Context, orderID string) error
}

// seededProducts must be inserted by the backend setup before running the contract.
var seededProducts = []entities.Product{
	{ID: "P1", Name: "Mug", Price: decimal.RequireFromString("5.00"), SellerID: "seller-1"},
	{ID: "P2", Name: "Lamp", Price: decimal.RequireFromString("19.99"), SellerID: "seller-1"},
}

func newOrder(owner string, createdAt time.Time) entities.Order {
	return entities.Order{
		ID:    uuid.NewString(),
		Owner: owner,
		Products: []entities.OrderItem{
			{ProductID: "P1", Quantity: 2, Price: decimal.RequireFromString("5.00")},
			{ProductID: "P2", Quantity: 1, Price: decimal.RequireFromString("19.99")},
		},
		TotalAmount:   decimal.RequireFromString("29.99"),
		Status:        entities.OrderStatusPending,
		PaymentMethod: "card",
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func runStoreContract(t *testing.T, s store, tx trm.Manager) {
	ctx := context.Background()

	t.Run("products by ids skips unknown", func(t *testing.T) {
		got, err := s.GetProductsByIDs(ctx, []string{"P1", "P2", "nope"})
		require.NoError(t, err)
		require.Len(t, got, 2)

		byID := map[string]entities.Product{}
		for _, p := range got {
			byID[p.ID] = p
		}
		assert.Equal(t, "Mug", byID["P1"].Name)
		assert.True(t, decimal.RequireFromString("19.99").Equal(byID["P2"].Price))

		got, err = s.GetProductsByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("cart upsert keeps identity", func(t *testing.T) {
		owner := "cart-owner-" + uuid.NewString()

		_, err := s.GetCart(ctx, owner)
		assert.ErrorIs(t, err, entities.ErrCartNotFound)

		now := time.Now().UTC().Truncate(time.Millisecond)
		first := entities.Cart{
			ID:          uuid.NewString(),
			Owner:       owner,
			Items:       []entities.CartItem{{ProductID: "P1", Quantity: 2}},
			TotalAmount: decimal.NewFromInt(10),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		require.NoError(t, s.SaveCart(ctx, first))

		second := first
		second.ID = uuid.NewString()
		second.Items = []entities.CartItem{{ProductID: "P1", Quantity: 2}, {ProductID: "P2", Quantity: 1}}
		second.TotalAmount = decimal.RequireFromString("29.99")
		second.UpdatedAt = now.Add(time.Second)
		require.NoError(t, s.SaveCart(ctx, second))

		got, err := s.GetCart(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, second.Items, got.Items)
		assert.True(t, second.TotalAmount.Equal(got.TotalAmount))

		require.NoError(t, s.DeleteCart(ctx, owner))
		_, err = s.GetCart(ctx, owner)
		assert.ErrorIs(t, err, entities.ErrCartNotFound)

		// deleting twice is fine
		assert.NoError(t, s.DeleteCart(ctx, owner))
	})

	t.Run("empty cart keeps empty items", func(t *testing.T) {
		owner := "empty-" + uuid.NewString()
		now := time.Now().UTC()
		require.NoError(t, s.SaveCart(ctx, entities.Cart{
			ID: uuid.NewString(), Owner: owner, Items: []entities.CartItem{},
			TotalAmount: decimal.Zero, CreatedAt: now, UpdatedAt: now,
		}))

		got, err := s.GetCart(ctx, owner)
		require.NoError(t, err)
		assert.NotNil(t, got.Items)
		assert.Empty(t, got.Items)
	})

	t.Run("orders listed newest first", func(t *testing.T) {
		owner := "order-owner-" + uuid.NewString()
		base := time.Now().UTC().Truncate(time.Millisecond)

		older := newOrder(owner, base.Add(-time.Hour))
		newer := newOrder(owner, base)
		require.NoError(t, s.SaveOrder(ctx, older))
		require.NoError(t, s.SaveOrder(ctx, newer))
		require.NoError(t, s.SaveOrder(ctx, newOrder("someone-else", base)))

		got, err := s.ListOrdersByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newer.ID, got[0].ID)
		assert.Equal(t, older.ID, got[1].ID)

		assert.Equal(t, "card", got[0].PaymentMethod)
		require.Len(t, got[0].Products, 2)
		assert.True(t, decimal.RequireFromString("19.99").Equal(got[0].Products[1].Price))
		assert.True(t, decimal.RequireFromString("29.99").Equal(got[0].TotalAmount))
	})

	t.Run("totals keep sub-cent precision", func(t *testing.T) {
		owner := "precision-" + uuid.NewString()
		now := time.Now().UTC().Truncate(time.Millisecond)

		o := newOrder(owner, now)
		o.Products = []entities.OrderItem{{ProductID: "P1", Quantity: 1, Price: decimal.RequireFromString("0.125")}}
		o.TotalAmount = decimal.RequireFromString("0.125")
		require.NoError(t, s.SaveOrder(ctx, o))

		got, err := s.GetOrderByID(ctx, o.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("0.125").Equal(got.TotalAmount), "total %s", got.TotalAmount)
		assert.True(t, got.Products[0].Price.Equal(got.TotalAmount))

		require.NoError(t, s.SaveCart(ctx, entities.Cart{
			ID: uuid.NewString(), Owner: owner, Items: []entities.CartItem{{ProductID: "P1", Quantity: 1}},
			TotalAmount: decimal.RequireFromString("0.005"), CreatedAt: now, UpdatedAt: now,
		}))
		cart, err := s.GetCart(ctx, owner)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("0.005").Equal(cart.TotalAmount), "total %s", cart.TotalAmount)
	})

	t.Run("order status update and delete", func(t *testing.T) {
		o := newOrder("status-owner", time.Now().UTC())
		require.NoError(t, s.SaveOrder(ctx, o))

		later := time.Now().UTC().Add(time.Minute).Truncate(time.Millisecond)
		require.NoError(t, s.UpdateOrderStatus(ctx, o.ID, entities.OrderStatusShipped, later))

		got, err := s.GetOrderByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.OrderStatusShipped, got.Status)
		assert.WithinDuration(t, later, got.UpdatedAt, time.Millisecond)

		require.NoError(t, s.DeleteOrder(ctx, o.ID))

		_, err = s.GetOrderByID(ctx, o.ID)
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
		assert.ErrorIs(t, s.DeleteOrder(ctx, o.ID), entities.ErrOrderNotFound)
		assert.ErrorIs(t, s.UpdateOrderStatus(ctx, o.ID, entities.OrderStatusCancelled, later), entities.ErrOrderNotFound)
	})

	t.Run("transaction rolls back order and cart delete together", func(t *testing.T) {
		owner := "tx-owner-" + uuid.NewString()
		now := time.Now().UTC()
		require.NoError(t, s.SaveCart(ctx, entities.Cart{
			ID: uuid.NewString(), Owner: owner, Items: []entities.CartItem{{ProductID: "P1", Quantity: 1}},
			TotalAmount: decimal.NewFromInt(5), CreatedAt: now, UpdatedAt: now,
		}))

		o := newOrder(owner, now)
		boom := errors.New("boom")
		err := tx.Do(ctx, func(ctx context.Context) error {
			if err := s.SaveOrder(ctx, o); err != nil {
				return err
			}
			if err := s.DeleteCart(ctx, owner); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = s.GetOrderByID(ctx, o.ID)
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
		_, err = s.GetCart(ctx, owner)
		assert.NoError(t, err)

		err = tx.Do(ctx, func(ctx context.Context) error {
			if err := s.SaveOrder(ctx, o); err != nil {
				return err
			}
			return s.DeleteCart(ctx, owner)
		})
		require.NoError(t, err)

		_, err = s.GetOrderByID(ctx, o.ID)
		assert.NoError(t, err)
		_, err = s.GetCart(ctx, owner)
		assert.ErrorIs(t, err, entities.ErrCartNotFound)
	})
}
