package entities

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers classify with errors.Is against these.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrValidation       = errors.New("validation failed")
)

var (
	ErrSellerCart    = fmt.Errorf("%w: sellers cannot have a cart", ErrPermissionDenied)
	ErrSellerOrders  = fmt.Errorf("%w: sellers cannot place orders", ErrPermissionDenied)
	ErrNotOrderOwner = fmt.Errorf("%w: not authorized to modify this order", ErrPermissionDenied)

	ErrCartNotFound    = fmt.Errorf("cart %w", ErrNotFound)
	ErrItemNotFound    = fmt.Errorf("item %w in cart", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrOrderNotFound   = fmt.Errorf("order %w", ErrNotFound)

	ErrInvalidUpdates = fmt.Errorf("%w: invalid updates", ErrInvalidOperation)

	ErrInvalidStatus   = fmt.Errorf("%w: unknown order status", ErrValidation)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity out of range", ErrValidation)
	ErrInvalidPrice    = fmt.Errorf("%w: price must not be negative", ErrValidation)
	ErrEmptyOrder      = fmt.Errorf("%w: order must contain products", ErrValidation)
)
