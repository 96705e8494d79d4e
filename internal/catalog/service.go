package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Service implements the catalog workflows: product creation and restock.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateProduct persists a new product after checking the name is free.
func (s *Service) CreateProduct(ctx context.Context, name string, price decimal.Decimal, quantity int) (*Product, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeQuantity, name)
	}
	_, err := s.store.FindByName(ctx, name)
	if err == nil {
		return nil, ErrNameTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("create product: %w", err)
	}

	p, err := s.store.Create(ctx, name, price, quantity)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Restock sets new absolute quantities for a batch of products.
func (s *Service) Restock(ctx context.Context, updates []QuantityUpdate) error {
	for _, u := range updates {
		if u.Quantity < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeQuantity, u.ID)
		}
	}
	if err := s.store.UpdateQuantity(ctx, updates); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("restock: %w", err)
	}
	return nil
}

func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.store.List(ctx)
}
