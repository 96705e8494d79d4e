package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrNameTaken         = errors.New("product name already used")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNegativeQuantity  = errors.New("quantity must not be negative")
)

// Store persists products. FindAllByID returns only the products that
// exist, in no guaranteed order. UpdateQuantity applies all updates in one
// transactional call or none of them.
type Store interface {
	Create(ctx context.Context, name string, price decimal.Decimal, quantity int) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindAllByID(ctx context.Context, ids []string) ([]Product, error)
	UpdateQuantity(ctx context.Context, updates []QuantityUpdate) error
	List(ctx context.Context) ([]Product, error)
}
