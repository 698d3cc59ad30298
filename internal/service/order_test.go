package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-service/internal/service"
	mocks "github.com/SergeyBogomolovv/shop-service/internal/service/mocks"
	"github.com/SergeyBogomolovv/shop-service/pkg/keymutex"
	txMocks "github.com/SergeyBogomolovv/shop-service/pkg/trm/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderMocks struct {
	tx        *txMocks.MockManager
	repo      *mocks.MockOrderRepo
	carts     *mocks.MockCartRemover
	catalog   *mocks.MockProductCatalog
	publisher *mocks.MockEventPublisher
}

func newOrderMocks(t *testing.T) orderMocks {
	return orderMocks{
		tx:        txMocks.NewMockManager(t),
		repo:      mocks.NewMockOrderRepo(t),
		carts:     mocks.NewMockCartRemover(t),
		catalog:   mocks.NewMockProductCatalog(t),
		publisher: mocks.NewMockEventPublisher(t),
	}
}

type orderService interface {
	CreateOrder(ctx context.Context, p entities.Principal, items []entities.OrderItem, paymentMethod string) (entities.Order, error)
	ListOrders(ctx context.Context, p entities.Principal) ([]entities.ResolvedOrder, error)
	UpdateOrderStatus(ctx context.Context, p entities.Principal, orderID string, patch entities.OrderPatch) (entities.Order, error)
	DeleteOrder(ctx context.Context, p entities.Principal, orderID string) error
}

func (m orderMocks) service(verifyPrices bool) orderService {
	return service.NewOrderService(discardLogger(), m.tx, m.repo, m.carts, m.catalog, m.publisher, keymutex.New(), verifyPrices)
}

func (m orderMocks) runTx() {
	m.tx.EXPECT().Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, callback func(context.Context) error) error {
			return callback(ctx)
		}).Once()
}

func statusPtr(s entities.OrderStatus) *entities.OrderStatus {
	return &s
}

func TestOrderService_CreateOrder(t *testing.T) {
	items := []entities.OrderItem{
		{ProductID: "P1", Quantity: 2, Price: decimal.NewFromInt(5)},
		{ProductID: "P2", Quantity: 1, Price: decimal.RequireFromString("19.99")},
	}

	t.Run("stores snapshot and clears cart", func(t *testing.T) {
		m := newOrderMocks(t)
		m.runTx()

		var saved entities.Order
		m.repo.EXPECT().SaveOrder(mock.Anything, mock.Anything).
			Run(func(_ context.Context, o entities.Order) { saved = o }).
			Return(nil).Once()
		m.carts.EXPECT().DeleteCart(mock.Anything, "user-1").Return(nil).Once()
		m.publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e entities.OrderEvent) bool {
			return e.Type == entities.OrderCreated && e.Order.Owner == "user-1"
		})).Return(nil).Once()

		got, err := m.service(false).CreateOrder(context.Background(), buyer, items, "card")
		require.NoError(t, err)

		assert.NotEmpty(t, got.ID)
		assert.Equal(t, got.ID, saved.ID)
		assert.Equal(t, entities.OrderStatusPending, got.Status)
		assert.Equal(t, "card", got.PaymentMethod)
		assert.Equal(t, items, got.Products)
		assertAmount(t, "29.99", got.TotalAmount)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("seller forbidden", func(t *testing.T) {
		m := newOrderMocks(t)
		_, err := m.service(false).CreateOrder(context.Background(), seller, items, "card")
		assert.ErrorIs(t, err, entities.ErrSellerOrders)
	})

	t.Run("empty products", func(t *testing.T) {
		m := newOrderMocks(t)
		_, err := m.service(false).CreateOrder(context.Background(), buyer, nil, "card")
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("invalid line", func(t *testing.T) {
		m := newOrderMocks(t)
		bad := []entities.OrderItem{{ProductID: "P1", Quantity: 0, Price: decimal.NewFromInt(5)}}
		_, err := m.service(false).CreateOrder(context.Background(), buyer, bad, "card")
		assert.ErrorIs(t, err, entities.ErrInvalidQuantity)

		bad = []entities.OrderItem{{ProductID: "P1", Quantity: 1, Price: decimal.NewFromInt(-1)}}
		_, err = m.service(false).CreateOrder(context.Background(), buyer, bad, "card")
		assert.ErrorIs(t, err, entities.ErrInvalidPrice)
	})

	t.Run("save failure leaves cart alone", func(t *testing.T) {
		m := newOrderMocks(t)
		m.runTx()
		m.repo.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(errors.New("write conflict")).Once()

		_, err := m.service(false).CreateOrder(context.Background(), buyer, items, "card")
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("cart delete failure aborts", func(t *testing.T) {
		m := newOrderMocks(t)
		m.runTx()
		m.repo.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(nil).Once()
		m.carts.EXPECT().DeleteCart(mock.Anything, "user-1").Return(errors.New("db down")).Once()

		_, err := m.service(false).CreateOrder(context.Background(), buyer, items, "card")
		assert.Error(t, err)
	})

	t.Run("publish failure does not fail the order", func(t *testing.T) {
		m := newOrderMocks(t)
		m.runTx()
		m.repo.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(nil).Once()
		m.carts.EXPECT().DeleteCart(mock.Anything, "user-1").Return(nil).Once()
		m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

		_, err := m.service(false).CreateOrder(context.Background(), buyer, items, "card")
		assert.NoError(t, err)
	})

	t.Run("verified prices replace caller prices", func(t *testing.T) {
		m := newOrderMocks(t)
		m.catalog.EXPECT().GetProducts(mock.Anything, []string{"P1", "P2"}).
			Return(map[string]entities.Product{"P1": p1, "P2": p2}, nil).Once()
		m.runTx()
		m.repo.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(nil).Once()
		m.carts.EXPECT().DeleteCart(mock.Anything, "user-1").Return(nil).Once()
		m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

		got, err := m.service(true).CreateOrder(context.Background(), buyer, items, "card")
		require.NoError(t, err)

		assertAmount(t, "5", got.Products[0].Price)
		assertAmount(t, "20", got.Products[1].Price)
		assertAmount(t, "30", got.TotalAmount)
		// caller's slice untouched
		assertAmount(t, "19.99", items[1].Price)
	})

	t.Run("verified prices reject unknown product", func(t *testing.T) {
		m := newOrderMocks(t)
		m.catalog.EXPECT().GetProducts(mock.Anything, mock.Anything).
			Return(map[string]entities.Product{"P1": p1}, nil).Once()

		_, err := m.service(true).CreateOrder(context.Background(), buyer, items, "card")
		assert.ErrorIs(t, err, entities.ErrProductNotFound)
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	t.Run("resolves products and keeps stored prices", func(t *testing.T) {
		m := newOrderMocks(t)
		stored := []entities.Order{
			{ID: "o2", Owner: "user-1", Products: []entities.OrderItem{{ProductID: "P1", Quantity: 1, Price: decimal.NewFromInt(3)}}},
			{ID: "o1", Owner: "user-1", Products: []entities.OrderItem{{ProductID: "gone", Quantity: 1, Price: decimal.NewFromInt(7)}}},
		}
		m.repo.EXPECT().ListOrdersByOwner(mock.Anything, "user-1").Return(stored, nil).Once()
		m.catalog.EXPECT().GetProducts(mock.Anything, []string{"P1", "gone"}).
			Return(map[string]entities.Product{"P1": p1}, nil).Once()

		got, err := m.service(false).ListOrders(context.Background(), buyer)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "o2", got[0].ID)
		require.NotNil(t, got[0].Products[0].Product)
		assert.Equal(t, "Mug", got[0].Products[0].Product.Name)
		// catalog price is 5; the order keeps what was paid
		assertAmount(t, "3", got[0].Products[0].Price)
		assert.Nil(t, got[1].Products[0].Product)
	})

	t.Run("no orders", func(t *testing.T) {
		m := newOrderMocks(t)
		m.repo.EXPECT().ListOrdersByOwner(mock.Anything, "user-1").Return(nil, nil).Once()
		m.catalog.EXPECT().GetProducts(mock.Anything, mock.Anything).Return(map[string]entities.Product{}, nil).Once()

		got, err := m.service(false).ListOrders(context.Background(), buyer)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("seller forbidden", func(t *testing.T) {
		m := newOrderMocks(t)
		_, err := m.service(false).ListOrders(context.Background(), seller)
		assert.ErrorIs(t, err, entities.ErrPermissionDenied)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	owned := entities.Order{ID: "o1", Owner: "user-1", Status: entities.OrderStatusPending}
	foreign := entities.Order{ID: "o2", Owner: "user-2", Status: entities.OrderStatusPending}

	type MockBehavior func(m orderMocks)

	testCases := []struct {
		name         string
		orderID      string
		patch        entities.OrderPatch
		mockBehavior MockBehavior
		wantErr      error
		wantStatus   entities.OrderStatus
	}{
		{
			name:    "OK",
			orderID: "o1",
			patch:   entities.OrderPatch{Status: statusPtr(entities.OrderStatusShipped)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(owned, nil).Once()
				m.repo.EXPECT().UpdateOrderStatus(mock.Anything, "o1", entities.OrderStatusShipped, mock.Anything).Return(nil).Once()
				m.publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e entities.OrderEvent) bool {
					return e.Type == entities.OrderStatusUpdated
				})).Return(nil).Once()
			},
			wantStatus: entities.OrderStatusShipped,
		},
		{
			name:    "empty patch is a no-op",
			orderID: "o1",
			patch:   entities.OrderPatch{},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(owned, nil).Once()
			},
			wantStatus: entities.OrderStatusPending,
		},
		{
			name:    "not owner",
			orderID: "o2",
			patch:   entities.OrderPatch{Status: statusPtr(entities.OrderStatusCancelled)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, "o2").Return(foreign, nil).Once()
			},
			wantErr: entities.ErrPermissionDenied,
		},
		{
			name:    "not found",
			orderID: "missing",
			patch:   entities.OrderPatch{Status: statusPtr(entities.OrderStatusCancelled)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, "missing").Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrNotFound,
		},
		{
			name:    "extra keys on owned order",
			orderID: "o1",
			patch:   entities.OrderPatch{Status: statusPtr(entities.OrderStatusShipped), Unknown: []string{"owner"}},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(owned, nil).Once()
			},
			wantErr: entities.ErrInvalidUpdates,
		},
		{
			name:    "extra keys on missing order",
			orderID: "missing",
			patch:   entities.OrderPatch{Status: statusPtr(entities.OrderStatusShipped), Unknown: []string{"owner"}},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, "missing").Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrNotFound,
		},
		{
			name:    "extra keys on foreign order",
			orderID: "o2",
			patch:   entities.OrderPatch{Unknown: []string{"totalAmount"}},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, "o2").Return(foreign, nil).Once()
			},
			wantErr: entities.ErrPermissionDenied,
		},
		{
			name:    "unknown status",
			orderID: "o1",
			patch:   entities.OrderPatch{Status: statusPtr("teleported")},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(owned, nil).Once()
			},
			wantErr: entities.ErrValidation,
		},
		{
			name:    "store failure",
			orderID: "o1",
			patch:   entities.OrderPatch{Status: statusPtr(entities.OrderStatusDelivered)},
			mockBehavior: func(m orderMocks) {
				m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(owned, nil).Once()
				m.repo.EXPECT().UpdateOrderStatus(mock.Anything, "o1", entities.OrderStatusDelivered, mock.Anything).
					Return(errors.New("db down")).Once()
			},
			wantErr: entities.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newOrderMocks(t)
			tc.mockBehavior(m)

			got, err := m.service(false).UpdateOrderStatus(context.Background(), buyer, tc.orderID, tc.patch)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, got.Status)
			assert.Equal(t, tc.orderID, got.ID)
		})
	}
}

func TestOrderService_DeleteOrder(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		m := newOrderMocks(t)
		m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").
			Return(entities.Order{ID: "o1", Owner: "user-1"}, nil).Once()
		m.repo.EXPECT().DeleteOrder(mock.Anything, "o1").Return(nil).Once()
		m.publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e entities.OrderEvent) bool {
			return e.Type == entities.OrderDeleted && e.Order.ID == "o1"
		})).Return(nil).Once()

		assert.NoError(t, m.service(false).DeleteOrder(context.Background(), buyer, "o1"))
	})

	t.Run("not owner", func(t *testing.T) {
		m := newOrderMocks(t)
		m.repo.EXPECT().GetOrderByID(mock.Anything, "o2").
			Return(entities.Order{ID: "o2", Owner: "user-2"}, nil).Once()

		err := m.service(false).DeleteOrder(context.Background(), buyer, "o2")
		assert.ErrorIs(t, err, entities.ErrNotOrderOwner)
	})

	t.Run("not found", func(t *testing.T) {
		m := newOrderMocks(t)
		m.repo.EXPECT().GetOrderByID(mock.Anything, "missing").
			Return(entities.Order{}, entities.ErrOrderNotFound).Once()

		err := m.service(false).DeleteOrder(context.Background(), buyer, "missing")
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})
}
