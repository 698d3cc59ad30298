package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-service/internal/handler"
	mocks "github.com/SergeyBogomolovv/shop-service/internal/handler/mocks"
	"github.com/SergeyBogomolovv/shop-service/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	user   = entities.Principal{ID: "user-1", Role: entities.RoleUser}
	seller = entities.Principal{ID: "seller-1", Role: entities.RoleSeller}
)

func newRouter(t *testing.T, principal *entities.Principal) (http.Handler, *mocks.MockCartService, *mocks.MockOrderService) {
	carts := mocks.NewMockCartService(t)
	orders := mocks.NewMockOrderService(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewHTTPHandler(logger, carts, orders)

	r := chi.NewRouter()
	if principal != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middleware.WithPrincipal(req.Context(), *principal)))
			})
		})
	}
	h.Init(r)
	return r, carts, orders
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	res := rr.Result()
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(data)
}

func TestHTTPHandler_GetCart(t *testing.T) {
	product := entities.Product{ID: "P1", Name: "Mug", Price: decimal.NewFromInt(5)}

	testCases := []struct {
		name         string
		principal    entities.Principal
		mockBehavior func(svc *mocks.MockCartService)
		wantStatus   int
		wantBody     []string
	}{
		{
			name:      "empty cart",
			principal: user,
			mockBehavior: func(svc *mocks.MockCartService) {
				svc.EXPECT().GetCart(mock.Anything, user).
					Return(entities.ResolvedCart{
						Cart:  entities.EmptyCart("user-1"),
						Items: []entities.ResolvedCartItem{},
					}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"items":[]`, `"totalAmount":0`},
		},
		{
			name:      "resolved items",
			principal: user,
			mockBehavior: func(svc *mocks.MockCartService) {
				svc.EXPECT().GetCart(mock.Anything, user).
					Return(entities.ResolvedCart{
						Cart: entities.Cart{ID: "c1", Owner: "user-1", TotalAmount: decimal.NewFromInt(10)},
						Items: []entities.ResolvedCartItem{
							{CartItem: entities.CartItem{ProductID: "P1", Quantity: 2}, Product: &product},
						},
					}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"productId":"P1"`, `"quantity":2`, `"name":"Mug"`, `"price":5`, `"totalAmount":10`},
		},
		{
			name:      "seller",
			principal: seller,
			mockBehavior: func(svc *mocks.MockCartService) {
				svc.EXPECT().GetCart(mock.Anything, seller).
					Return(entities.ResolvedCart{}, entities.ErrSellerCart).Once()
			},
			wantStatus: http.StatusForbidden,
			wantBody:   []string{`sellers cannot have a cart`},
		},
		{
			name:      "internal error",
			principal: user,
			mockBehavior: func(svc *mocks.MockCartService) {
				svc.EXPECT().GetCart(mock.Anything, user).
					Return(entities.ResolvedCart{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{`"internal server error"`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, carts, _ := newRouter(t, &tc.principal)
			tc.mockBehavior(carts)

			status, body := do(t, h, http.MethodGet, "/cart", "")

			assert.Equal(t, tc.wantStatus, status)
			for _, want := range tc.wantBody {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestHTTPHandler_Unauthenticated(t *testing.T) {
	h, _, _ := newRouter(t, nil)

	status, _ := do(t, h, http.MethodGet, "/cart", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, h, http.MethodGet, "/orders", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHTTPHandler_AddItem(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mocks.MockCartService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "OK",
			body: `{"productId":"P1","quantity":2}`,
			mockBehavior: func(svc *mocks.MockCartService) {
				svc.EXPECT().AddItem(mock.Anything, user, "P1", 2).
					Return(entities.ResolvedCart{
						Cart: entities.Cart{Owner: "user-1", TotalAmount: decimal.NewFromInt(10)},
						Items: []entities.ResolvedCartItem{
							{CartItem: entities.CartItem{ProductID: "P1", Quantity: 2}},
						},
					}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"totalAmount":10`,
		},
		{
			name: "product not found",
			body: `{"productId":"nope","quantity":1}`,
			mockBehavior: func(svc *mocks.MockCartService) {
				svc.EXPECT().AddItem(mock.Anything, user, "nope", 1).
					Return(entities.ResolvedCart{}, entities.ErrProductNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"product not found"`,
		},
		{
			name: "store rejection is a bad request",
			body: `{"productId":"P1","quantity":1}`,
			mockBehavior: func(svc *mocks.MockCartService) {
				svc.EXPECT().AddItem(mock.Anything, user, "P1", 1).
					Return(entities.ResolvedCart{}, fmt.Errorf("%w: failed to save cart: disk full", entities.ErrValidation)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"validation failed"`,
		},
		{
			name:         "missing product id",
			body:         `{"quantity":1}`,
			mockBehavior: func(*mocks.MockCartService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"ProductID":"required"`,
		},
		{
			name:         "zero quantity",
			body:         `{"productId":"P1","quantity":0}`,
			mockBehavior: func(*mocks.MockCartService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"Quantity"`,
		},
		{
			name:         "quantity above limit",
			body:         `{"productId":"P1","quantity":10001}`,
			mockBehavior: func(*mocks.MockCartService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"Quantity":"lte"`,
		},
		{
			name:         "malformed body",
			body:         `{"productId":`,
			mockBehavior: func(*mocks.MockCartService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request body"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, carts, _ := newRouter(t, &user)
			tc.mockBehavior(carts)

			status, body := do(t, h, http.MethodPost, "/cart/items", tc.body)

			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

func TestHTTPHandler_UpdateAndRemoveItem(t *testing.T) {
	t.Run("update", func(t *testing.T) {
		h, carts, _ := newRouter(t, &user)
		carts.EXPECT().UpdateItem(mock.Anything, user, "P1", 4).
			Return(entities.ResolvedCart{Cart: entities.Cart{Owner: "user-1", TotalAmount: decimal.NewFromInt(20)}}, nil).Once()

		status, body := do(t, h, http.MethodPatch, "/cart/items/P1", `{"quantity":4}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `"totalAmount":20`)
	})

	t.Run("update missing item", func(t *testing.T) {
		h, carts, _ := newRouter(t, &user)
		carts.EXPECT().UpdateItem(mock.Anything, user, "P9", 1).
			Return(entities.ResolvedCart{}, entities.ErrItemNotFound).Once()

		status, _ := do(t, h, http.MethodPatch, "/cart/items/P9", `{"quantity":1}`)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("remove", func(t *testing.T) {
		h, carts, _ := newRouter(t, &user)
		carts.EXPECT().RemoveItem(mock.Anything, user, "P1").
			Return(entities.ResolvedCart{Cart: entities.EmptyCart("user-1"), Items: []entities.ResolvedCartItem{}}, nil).Once()

		status, body := do(t, h, http.MethodDelete, "/cart/items/P1", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `"items":[]`)
	})

	t.Run("remove without cart", func(t *testing.T) {
		h, carts, _ := newRouter(t, &user)
		carts.EXPECT().RemoveItem(mock.Anything, user, "P1").
			Return(entities.ResolvedCart{}, entities.ErrCartNotFound).Once()

		status, body := do(t, h, http.MethodDelete, "/cart/items/P1", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, body, "cart not found")
	})

	t.Run("clear", func(t *testing.T) {
		h, carts, _ := newRouter(t, &user)
		carts.EXPECT().ClearCart(mock.Anything, user).Return(nil).Once()

		status, _ := do(t, h, http.MethodDelete, "/cart", "")
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestHTTPHandler_CreateOrder(t *testing.T) {
	created := entities.Order{
		ID:    "o1",
		Owner: "user-1",
		Products: []entities.OrderItem{
			{ProductID: "P1", Quantity: 2, Price: decimal.RequireFromString("5.5")},
		},
		TotalAmount:   decimal.NewFromInt(11),
		Status:        entities.OrderStatusPending,
		PaymentMethod: "card",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	t.Run("created", func(t *testing.T) {
		h, _, orders := newRouter(t, &user)
		orders.EXPECT().CreateOrder(mock.Anything, user, mock.MatchedBy(func(items []entities.OrderItem) bool {
			return len(items) == 1 && items[0].ProductID == "P1" && items[0].Quantity == 2 &&
				items[0].Price.Equal(decimal.RequireFromString("5.5"))
		}), "card").Return(created, nil).Once()

		status, body := do(t, h, http.MethodPost, "/orders",
			`{"products":[{"productId":"P1","quantity":2,"price":5.5}],"paymentMethod":"card"}`)

		assert.Equal(t, http.StatusCreated, status)

		var resp map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &resp))
		assert.Equal(t, "o1", resp["id"])
		assert.Equal(t, "pending", resp["status"])
		assert.EqualValues(t, 11, resp["totalAmount"])
	})

	t.Run("no products", func(t *testing.T) {
		h, _, _ := newRouter(t, &user)

		status, _ := do(t, h, http.MethodPost, "/orders", `{"products":[],"paymentMethod":"card"}`)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("seller", func(t *testing.T) {
		h, _, orders := newRouter(t, &seller)
		orders.EXPECT().CreateOrder(mock.Anything, seller, mock.Anything, "card").
			Return(entities.Order{}, entities.ErrSellerOrders).Once()

		status, body := do(t, h, http.MethodPost, "/orders",
			`{"products":[{"productId":"P1","quantity":1,"price":1}],"paymentMethod":"card"}`)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Contains(t, body, "sellers cannot place orders")
	})
}

func TestHTTPHandler_ListOrders(t *testing.T) {
	product := entities.Product{ID: "P1", Name: "Mug", Price: decimal.NewFromInt(7)}

	h, _, orders := newRouter(t, &user)
	orders.EXPECT().ListOrders(mock.Anything, user).Return([]entities.ResolvedOrder{
		{
			Order: entities.Order{
				ID:       "o2",
				Products: []entities.OrderItem{{ProductID: "P1", Quantity: 1, Price: decimal.NewFromInt(5)}},
			},
			Products: []entities.ResolvedOrderItem{
				{OrderItem: entities.OrderItem{ProductID: "P1", Quantity: 1, Price: decimal.NewFromInt(5)}, Product: &product},
			},
		},
		{Order: entities.Order{ID: "o1"}},
	}, nil).Once()

	status, body := do(t, h, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, status)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "o2", resp[0]["id"])

	line := resp[0]["products"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 5, line["price"])
	assert.Equal(t, "Mug", line["product"].(map[string]any)["name"])
}

func TestHTTPHandler_UpdateOrderStatus(t *testing.T) {
	shipped := entities.OrderStatusShipped

	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "OK",
			body: `{"status":"shipped"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateOrderStatus(mock.Anything, user, "o1", entities.OrderPatch{Status: &shipped}).
					Return(entities.Order{ID: "o1", Status: shipped}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"shipped"`,
		},
		{
			name: "extra key alongside status",
			body: `{"status":"shipped","totalAmount":0}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateOrderStatus(mock.Anything, user, "o1",
					entities.OrderPatch{Status: &shipped, Unknown: []string{"totalAmount"}}).
					Return(entities.Order{}, entities.ErrInvalidUpdates).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"invalid operation: invalid updates"`,
		},
		{
			name: "only foreign key",
			body: `{"owner":"user-2"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateOrderStatus(mock.Anything, user, "o1", entities.OrderPatch{Unknown: []string{"owner"}}).
					Return(entities.Order{}, entities.ErrInvalidUpdates).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `invalid updates`,
		},
		{
			name: "key differing only in case is not status",
			body: `{"Status":"shipped"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateOrderStatus(mock.Anything, user, "o1", entities.OrderPatch{Unknown: []string{"Status"}}).
					Return(entities.Order{}, entities.ErrInvalidUpdates).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `invalid updates`,
		},
		{
			name: "missing order with extra keys",
			body: `{"status":"shipped","owner":"x"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateOrderStatus(mock.Anything, user, "o1", mock.Anything).
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
		{
			name: "foreign order with extra keys",
			body: `{"status":"shipped","owner":"x"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateOrderStatus(mock.Anything, user, "o1", mock.Anything).
					Return(entities.Order{}, entities.ErrNotOrderOwner).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:         "status of the wrong type",
			body:         `{"status":5}`,
			mockBehavior: func(*mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request body"`,
		},
		{
			name: "unknown status",
			body: `{"status":"lost"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateOrderStatus(mock.Anything, user, "o1", mock.Anything).
					Return(entities.Order{}, entities.ErrInvalidStatus).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `unknown order status`,
		},
		{
			name: "not owner",
			body: `{"status":"cancelled"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateOrderStatus(mock.Anything, user, "o1", mock.Anything).
					Return(entities.Order{}, entities.ErrNotOrderOwner).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "not found",
			body: `{"status":"cancelled"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateOrderStatus(mock.Anything, user, "o1", mock.Anything).
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, _, orders := newRouter(t, &user)
			tc.mockBehavior(orders)

			status, body := do(t, h, http.MethodPatch, "/orders/o1", tc.body)

			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

func TestHTTPHandler_DeleteOrder(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		h, _, orders := newRouter(t, &user)
		orders.EXPECT().DeleteOrder(mock.Anything, user, "o1").Return(nil).Once()

		status, body := do(t, h, http.MethodDelete, "/orders/o1", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `"message":"Order deleted successfully"`)
	})

	t.Run("not owner", func(t *testing.T) {
		h, _, orders := newRouter(t, &user)
		orders.EXPECT().DeleteOrder(mock.Anything, user, "o1").Return(entities.ErrNotOrderOwner).Once()

		status, _ := do(t, h, http.MethodDelete, "/orders/o1", "")
		assert.Equal(t, http.StatusForbidden, status)
	})
}
