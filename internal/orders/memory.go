package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ariefcatur/go-commerce-api/internal/catalog"
)

// MemoryStore is the in-memory Store used in tests. It shares the catalog
// MemoryStore so the atomic order-plus-decrement contract holds the same
// way it does in Postgres.
type MemoryStore struct {
	mu       sync.Mutex
	products *catalog.MemoryStore
	byID     map[string]Order
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(products *catalog.MemoryStore) *MemoryStore {
	return &MemoryStore{products: products, byID: make(map[string]Order)}
}

func (m *MemoryStore) Create(ctx context.Context, customerID string, items []Item) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	takes := make(map[string]int, len(items))
	for _, it := range items {
		takes[it.ProductID] += it.Quantity
	}
	if err := m.products.TakeStock(takes); err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			return nil, fmt.Errorf("%w: %v", ErrUnknownProduct, err)
		case errors.Is(err, catalog.ErrInsufficientStock):
			return nil, fmt.Errorf("%w: %v", ErrInsufficientStock, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrStockUpdate, err)
		}
	}

	o := Order{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Items:      append([]Item(nil), items...),
		Total:      itemsTotal(items),
		CreatedAt:  time.Now().UTC(),
	}
	m.byID[o.ID] = o
	out := o
	return &out, nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := o
	out.Items = append([]Item(nil), o.Items...)
	return &out, nil
}

// Len reports how many orders are stored.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}
