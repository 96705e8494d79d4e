package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ariefcatur/go-commerce-api/internal/catalog"
	"github.com/ariefcatur/go-commerce-api/internal/customers"
)

// Service implements the order placement workflow: validate the customer,
// resolve the requested products in one bulk lookup, check stock, snapshot
// prices and hand the result to the order store for the atomic commit.
type Service struct {
	customers customers.Store
	products  catalog.Store
	orders    Store
}

func NewService(c customers.Store, p catalog.Store, o Store) *Service {
	return &Service{customers: c, products: p, orders: o}
}

// Place creates an order for the given customer.
//
// The stock check here is a fast pre-check over a snapshot read; the order
// store re-checks under row locks before committing, so a request that
// loses a race for the last units still fails with ErrInsufficientStock
// rather than driving stock negative.
func (s *Service) Place(ctx context.Context, customerID string, reqs []ItemRequest) (*Order, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyOrder
	}
	seen := make(map[string]bool, len(reqs))
	ids := make([]string, 0, len(reqs))
	for _, req := range reqs {
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, req.ProductID)
		}
		if seen[req.ProductID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, req.ProductID)
		}
		seen[req.ProductID] = true
		ids = append(ids, req.ProductID)
	}

	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, customers.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	found, err := s.products.FindAllByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	byID := make(map[string]catalog.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	if len(byID) != len(ids) {
		var missing []string
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, strings.Join(missing, ", "))
	}

	// aggregate check: report every shorted item, not just the first
	var short []string
	for _, req := range reqs {
		if p := byID[req.ProductID]; req.Quantity > p.Quantity {
			short = append(short, fmt.Sprintf("%s (want %d, have %d)", req.ProductID, req.Quantity, p.Quantity))
		}
	}
	if len(short) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, strings.Join(short, "; "))
	}

	items := make([]Item, 0, len(reqs))
	for _, req := range reqs {
		p := byID[req.ProductID]
		items = append(items, Item{ProductID: p.ID, Price: p.Price, Quantity: req.Quantity})
	}

	order, err := s.orders.Create(ctx, customerID, items)
	if err != nil {
		if errors.Is(err, ErrUnknownProduct) || errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrStockUpdate) {
			return nil, err
		}
		return nil, fmt.Errorf("place order: %w", err)
	}
	return order, nil
}

// Get returns a persisted order with its items.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}
