package customers

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("customer not found")
	ErrEmailTaken = errors.New("email already used")
)

// Store persists customer records. FindByEmail and FindByID return
// ErrNotFound for absent rows, never a nil customer with a nil error.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	FindByID(ctx context.Context, id string) (*Customer, error)
	Create(ctx context.Context, name, email string) (*Customer, error)
}
