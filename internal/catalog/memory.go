package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemoryStore is the in-memory Store used in tests.
type MemoryStore struct {
	mu   sync.Mutex
	byID map[string]Product
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]Product)}
}

func (m *MemoryStore) Create(ctx context.Context, name string, price decimal.Decimal, quantity int) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.Name == name {
			return nil, ErrNameTaken
		}
	}
	now := time.Now().UTC()
	p := Product{ID: uuid.NewString(), Name: name, Price: price, Quantity: quantity, CreatedAt: now, UpdatedAt: now}
	m.byID[p.ID] = p
	out := p
	return &out, nil
}

func (m *MemoryStore) FindByName(ctx context.Context, name string) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.Name == name {
			out := p
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindAllByID(ctx context.Context, ids []string) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateQuantity(ctx context.Context, updates []QuantityUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range updates {
		if _, ok := m.byID[u.ID]; !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, u.ID)
		}
	}
	for _, u := range updates {
		p := m.byID[u.ID]
		p.Quantity = u.Quantity
		p.UpdatedAt = time.Now().UTC()
		m.byID[u.ID] = p
	}
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Product, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// TakeStock checks and decrements quantities in one atomic step. Either
// every take applies or none does. Used by the in-memory order store to
// mirror the transactional decrement of the pgx order store.
func (m *MemoryStore) TakeStock(takes map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, qty := range takes {
		p, ok := m.byID[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if p.Quantity < qty {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, id)
		}
	}
	for id, qty := range takes {
		p := m.byID[id]
		p.Quantity -= qty
		p.UpdatedAt = time.Now().UTC()
		m.byID[id] = p
	}
	return nil
}
