package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct_DuplicateName(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)

	_, err := svc.CreateProduct(context.Background(), "Keyboard", decimal.NewFromFloat(49.90), 10)
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), "Keyboard", decimal.NewFromFloat(59.90), 3)

	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestCreateProduct_NegativeQuantity(t *testing.T) {
	svc := NewService(NewMemoryStore())

	_, err := svc.CreateProduct(context.Background(), "Mouse", decimal.NewFromFloat(19.90), -1)

	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestRestock_SetsAbsoluteQuantity(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)

	p, err := svc.CreateProduct(context.Background(), "Keyboard", decimal.NewFromFloat(49.90), 2)
	require.NoError(t, err)

	err = svc.Restock(context.Background(), []QuantityUpdate{{ID: p.ID, Quantity: 20}})
	require.NoError(t, err)

	got, err := store.FindAllByID(context.Background(), []string{p.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 20, got[0].Quantity)
}

func TestRestock_UnknownID_AppliesNothing(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)

	p, err := svc.CreateProduct(context.Background(), "Keyboard", decimal.NewFromFloat(49.90), 2)
	require.NoError(t, err)

	err = svc.Restock(context.Background(), []QuantityUpdate{
		{ID: p.ID, Quantity: 20},
		{ID: "missing", Quantity: 7},
	})

	assert.ErrorIs(t, err, ErrNotFound)

	got, _ := store.FindAllByID(context.Background(), []string{p.ID})
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Quantity, "batch with an unknown id must not apply partially")
}

func TestTakeStock_AllOrNothing(t *testing.T) {
	store := NewMemoryStore()
	a, _ := store.Create(context.Background(), "A", decimal.NewFromInt(1), 10)
	b, _ := store.Create(context.Background(), "B", decimal.NewFromInt(1), 1)

	err := store.TakeStock(map[string]int{a.ID: 5, b.ID: 2})

	assert.ErrorIs(t, err, ErrInsufficientStock)

	got, _ := store.FindAllByID(context.Background(), []string{a.ID, b.ID})
	for _, p := range got {
		switch p.ID {
		case a.ID:
			assert.Equal(t, 10, p.Quantity)
		case b.ID:
			assert.Equal(t, 1, p.Quantity)
		}
	}
}

func TestFindAllByID_SkipsUnknown(t *testing.T) {
	store := NewMemoryStore()
	p, _ := store.Create(context.Background(), "A", decimal.NewFromInt(1), 10)

	got, err := store.FindAllByID(context.Background(), []string{p.ID, "missing"})

	require.NoError(t, err)
	assert.Len(t, got, 1)
}
