package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-service/internal/middleware"
	"github.com/SergeyBogomolovv/shop-service/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CartService interface {
	GetCart(ctx context.Context, p entities.Principal) (entities.ResolvedCart, error)
	AddItem(ctx context.Context, p entities.Principal, productID string, quantity int) (entities.ResolvedCart, error)
	UpdateItem(ctx context.Context, p entities.Principal, productID string, quantity int) (entities.ResolvedCart, error)
	RemoveItem(ctx context.Context, p entities.Principal, productID string) (entities.ResolvedCart, error)
	ClearCart(ctx context.Context, p entities.Principal) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, p entities.Principal, items []entities.OrderItem, paymentMethod string) (entities.Order, error)
	ListOrders(ctx context.Context, p entities.Principal) ([]entities.ResolvedOrder, error)
	UpdateOrderStatus(ctx context.Context, p entities.Principal, orderID string, patch entities.OrderPatch) (entities.Order, error)
	DeleteOrder(ctx context.Context, p entities.Principal, orderID string) error
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	carts    CartService
	orders   OrderService
}

func NewHTTPHandler(logger *slog.Logger, carts CartService, orders OrderService) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validator.New(),
		carts:    carts,
		orders:   orders,
	}
}

// Init mounts the API routes. The router is expected to run the auth middleware.
func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{productId}", h.UpdateItem)
		r.Delete("/items/{productId}", h.RemoveItem)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Patch("/{id}", h.UpdateOrderStatus)
		r.Delete("/{id}", h.DeleteOrder)
	})
}

// GetCart returns the caller's cart.
// @Summary      Get cart
// @Description  Returns the caller's cart with products resolved; an empty cart when none exists
// @Tags         cart
// @Security     BearerAuth
// @Success      200  {object}  Cart
// @Failure      401  {object}  utils.ErrorResponse "Missing or invalid token"
// @Failure      403  {object}  utils.ErrorResponse "Sellers cannot have a cart"
// @Failure      500  {object}  utils.ErrorResponse "Internal server error"
// @Router       /cart [get]
func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.GetCart(ctx, p)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to get cart")
		return
	}

	utils.WriteJSON(w, CartEntityToJSON(cart), http.StatusOK)
}

// AddItem adds a product to the caller's cart.
// @Summary      Add item to cart
// @Description  Adds quantity of a product, creating the cart on first use
// @Tags         cart
// @Security     BearerAuth
// @Accept       json
// @Param        body  body      AddItemRequest  true  "Product and quantity"
// @Success      200   {object}  Cart
// @Failure      400   {object}  utils.ValidationErrorResponse "Invalid request"
// @Failure      403   {object}  utils.ErrorResponse "Sellers cannot have a cart"
// @Failure      404   {object}  utils.ErrorResponse "Product not found"
// @Failure      500   {object}  utils.ErrorResponse "Internal server error"
// @Router       /cart/items [post]
func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.AddItem(ctx, p, req.ProductID, req.Quantity)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to add item")
		return
	}

	utils.WriteJSON(w, CartEntityToJSON(cart), http.StatusOK)
}

// UpdateItem sets the quantity of a cart line.
// @Summary      Update cart item
// @Tags         cart
// @Security     BearerAuth
// @Accept       json
// @Param        productId  path      string             true  "Product ID"
// @Param        body       body      UpdateItemRequest  true  "New quantity"
// @Success      200        {object}  Cart
// @Failure      400        {object}  utils.ValidationErrorResponse "Invalid request"
// @Failure      403        {object}  utils.ErrorResponse "Sellers cannot have a cart"
// @Failure      404        {object}  utils.ErrorResponse "Cart or item not found"
// @Failure      500        {object}  utils.ErrorResponse "Internal server error"
// @Router       /cart/items/{productId} [patch]
func (h *HTTPHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "productId")

	var req UpdateItemRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.UpdateItem(ctx, p, productID, req.Quantity)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to update item")
		return
	}

	utils.WriteJSON(w, CartEntityToJSON(cart), http.StatusOK)
}

// RemoveItem removes a product from the caller's cart.
// @Summary      Remove cart item
// @Description  Removing a product that is not in the cart succeeds
// @Tags         cart
// @Security     BearerAuth
// @Param        productId  path      string  true  "Product ID"
// @Success      200        {object}  Cart
// @Failure      403        {object}  utils.ErrorResponse "Sellers cannot have a cart"
// @Failure      404        {object}  utils.ErrorResponse "Cart not found"
// @Failure      500        {object}  utils.ErrorResponse "Internal server error"
// @Router       /cart/items/{productId} [delete]
func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(ctx, p, chi.URLParam(r, "productId"))
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to remove item")
		return
	}

	utils.WriteJSON(w, CartEntityToJSON(cart), http.StatusOK)
}

// ClearCart deletes the caller's cart.
// @Summary      Clear cart
// @Tags         cart
// @Security     BearerAuth
// @Success      200  {object}  utils.MessageResponse
// @Failure      403  {object}  utils.ErrorResponse "Sellers cannot have a cart"
// @Failure      500  {object}  utils.ErrorResponse "Internal server error"
// @Router       /cart [delete]
func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	if err := h.carts.ClearCart(ctx, p); err != nil {
		h.writeServiceError(ctx, w, err, "failed to clear cart")
		return
	}

	utils.WriteMessage(w, "Cart cleared successfully", http.StatusOK)
}

// ListOrders returns the caller's orders, newest first.
// @Summary      List orders
// @Tags         orders
// @Security     BearerAuth
// @Success      200  {array}   Order
// @Failure      403  {object}  utils.ErrorResponse "Sellers cannot view orders"
// @Failure      500  {object}  utils.ErrorResponse "Internal server error"
// @Router       /orders [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.ListOrders(ctx, p)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to list orders")
		return
	}

	res := make([]Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, ResolvedOrderEntityToJSON(o))
	}
	utils.WriteJSON(w, res, http.StatusOK)
}

// CreateOrder places an order and deletes the caller's cart.
// @Summary      Create order
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Param        body  body      CreateOrderRequest  true  "Priced line items and payment method"
// @Success      201   {object}  Order
// @Failure      400   {object}  utils.ValidationErrorResponse "Invalid request"
// @Failure      403   {object}  utils.ErrorResponse "Sellers cannot create orders"
// @Failure      404   {object}  utils.ErrorResponse "Product not found"
// @Failure      500   {object}  utils.ErrorResponse "Internal server error"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.CreateOrder(ctx, p, OrderItemsJSONToEntity(req.Products), req.PaymentMethod)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to create order")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// UpdateOrderStatus changes the status of an order owned by the caller.
// @Summary      Update order status
// @Description  Only status may be changed; any other key is rejected
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Param        id    path      string              true  "Order ID"
// @Param        body  body      UpdateOrderRequest  true  "New status"
// @Success      200   {object}  Order
// @Failure      400   {object}  utils.ErrorResponse "Invalid updates"
// @Failure      403   {object}  utils.ErrorResponse "Not the order owner"
// @Failure      404   {object}  utils.ErrorResponse "Order not found"
// @Failure      500   {object}  utils.ErrorResponse "Internal server error"
// @Router       /orders/{id} [patch]
func (h *HTTPHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	fields, err := utils.DecodeFields(r)
	if err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	patch, err := OrderPatchFromFields(fields)
	if err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.orders.UpdateOrderStatus(ctx, p, chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to update order")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// DeleteOrder deletes an order owned by the caller.
// @Summary      Delete order
// @Tags         orders
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  utils.MessageResponse
// @Failure      403  {object}  utils.ErrorResponse "Not the order owner"
// @Failure      404  {object}  utils.ErrorResponse "Order not found"
// @Failure      500  {object}  utils.ErrorResponse "Internal server error"
// @Router       /orders/{id} [delete]
func (h *HTTPHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(ctx, p, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(ctx, w, err, "failed to delete order")
		return
	}

	utils.WriteMessage(w, "Order deleted successfully", http.StatusOK)
}

func (h *HTTPHandler) principal(w http.ResponseWriter, r *http.Request) (entities.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
	}
	return p, ok
}

// writeServiceError maps error kinds to status codes. Only unclassified errors are logged.
func (h *HTTPHandler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, entities.ErrPermissionDenied):
		utils.WriteError(w, publicMessage(err, entities.ErrPermissionDenied), http.StatusForbidden)
	case errors.Is(err, entities.ErrNotFound):
		utils.WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, entities.ErrInvalidOperation):
		utils.WriteError(w, publicMessage(err, entities.ErrInvalidOperation), http.StatusBadRequest)
	case errors.Is(err, entities.ErrValidation):
		utils.WriteError(w, publicMessage(err, entities.ErrValidation), http.StatusBadRequest)
	default:
		h.logger.ErrorContext(ctx, msg, slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

// publicMessage drops wrapped store details from validation failures.
func publicMessage(err, kind error) string {
	for _, known := range publicErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return kind.Error()
}

var publicErrors = []error{
	entities.ErrSellerCart,
	entities.ErrSellerOrders,
	entities.ErrNotOrderOwner,
	entities.ErrInvalidUpdates,
	entities.ErrInvalidStatus,
	entities.ErrInvalidQuantity,
	entities.ErrInvalidPrice,
	entities.ErrEmptyOrder,
}
