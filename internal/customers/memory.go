package customers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the in-memory Store used in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]Customer
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]Customer)}
}

func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.byID {
		if c.Email == email {
			out := c
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindByID(ctx context.Context, id string) (*Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := c
	return &out, nil
}

func (m *MemoryStore) Create(ctx context.Context, name, email string) (*Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if c.Email == email {
			return nil, ErrEmailTaken
		}
	}
	c := Customer{ID: uuid.NewString(), Name: name, Email: email, CreatedAt: time.Now().UTC()}
	m.byID[c.ID] = c
	out := c
	return &out, nil
}

// Len reports how many customers are stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}
