package orders

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrCustomerNotFound  = errors.New("customer not exists")
	ErrUnknownProduct    = errors.New("order contains an unknown product")
	ErrDuplicateProduct  = errors.New("order lists the same product more than once")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidQuantity   = errors.New("item quantity must be positive")
	ErrInsufficientStock = errors.New("requested quantity exceeds stock")
	ErrStockUpdate       = errors.New("stock update failed")
)

// Store persists orders. Create must persist the order and decrement the
// ordered products' stock atomically: both commit or neither does. A stock
// shortage detected at commit time surfaces as ErrInsufficientStock.
type Store interface {
	Create(ctx context.Context, customerID string, items []Item) (*Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
}
