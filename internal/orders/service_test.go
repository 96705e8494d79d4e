package orders

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-commerce-api/internal/catalog"
	"github.com/ariefcatur/go-commerce-api/internal/customers"
)

type fixture struct {
	customers *customers.MemoryStore
	products  *catalog.MemoryStore
	orders    *MemoryStore
	svc       *Service
}

func newFixture() *fixture {
	c := customers.NewMemoryStore()
	p := catalog.NewMemoryStore()
	o := NewMemoryStore(p)
	return &fixture{customers: c, products: p, orders: o, svc: NewService(c, p, o)}
}

func (f *fixture) customer(t *testing.T) *customers.Customer {
	t.Helper()
	c, err := f.customers.Create(context.Background(), "Ana", "ana@example.com")
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, name string, price float64, qty int) *catalog.Product {
	t.Helper()
	p, err := f.products.Create(context.Background(), name, decimal.NewFromFloat(price), qty)
	require.NoError(t, err)
	return p
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	got, err := f.products.FindAllByID(context.Background(), []string{id})
	require.NoError(t, err)
	require.Len(t, got, 1)
	return got[0].Quantity
}

func TestPlace_HappyPath_SnapshotsPriceAndDecrementsStock(t *testing.T) {
	f := newFixture()
	c := f.customer(t)
	p := f.product(t, "Keyboard", 5.00, 10)

	order, err := f.svc.Place(context.Background(), c.ID, []ItemRequest{{ProductID: p.ID, Quantity: 3}})

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, c.ID, order.CustomerID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, p.ID, order.Items[0].ProductID)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromFloat(5.00)), "item price must be the product price at order time")
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(15.00)))

	assert.Equal(t, 7, f.stock(t, p.ID))
	assert.Equal(t, 1, f.orders.Len())

	got, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestPlace_PriceSnapshotSurvivesLaterPriceChange(t *testing.T) {
	f := newFixture()
	c := f.customer(t)
	p := f.product(t, "Keyboard", 5.00, 10)

	order, err := f.svc.Place(context.Background(), c.ID, []ItemRequest{{ProductID: p.ID, Quantity: 1}})
	require.NoError(t, err)

	// restock does not touch price, but re-reading the order must return
	// the captured price, not whatever the catalog currently says
	require.NoError(t, f.products.UpdateQuantity(context.Background(), []catalog.QuantityUpdate{{ID: p.ID, Quantity: 99}}))

	got, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromFloat(5.00)))
}

func TestPlace_UnknownCustomer(t *testing.T) {
	f := newFixture()
	p := f.product(t, "Keyboard", 5.00, 10)

	_, err := f.svc.Place(context.Background(), "nope", []ItemRequest{{ProductID: p.ID, Quantity: 1}})

	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Equal(t, 0, f.orders.Len())
	assert.Equal(t, 10, f.stock(t, p.ID))
}

func TestPlace_UnknownProduct(t *testing.T) {
	f := newFixture()
	c := f.customer(t)
	p := f.product(t, "Keyboard", 5.00, 10)

	_, err := f.svc.Place(context.Background(), c.ID, []ItemRequest{
		{ProductID: p.ID, Quantity: 1},
		{ProductID: "missing", Quantity: 1},
	})

	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.ErrorContains(t, err, "missing")
	assert.Equal(t, 0, f.orders.Len())
	assert.Equal(t, 10, f.stock(t, p.ID))
}

func TestPlace_InsufficientStock_ReportsEveryShortedItem(t *testing.T) {
	f := newFixture()
	c := f.customer(t)
	p1 := f.product(t, "Keyboard", 5.00, 2)
	p2 := f.product(t, "Mouse", 3.00, 1)
	p3 := f.product(t, "Cable", 1.00, 50)

	_, err := f.svc.Place(context.Background(), c.ID, []ItemRequest{
		{ProductID: p1.ID, Quantity: 3},
		{ProductID: p2.ID, Quantity: 4},
		{ProductID: p3.ID, Quantity: 1},
	})

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.ErrorContains(t, err, p1.ID)
	assert.ErrorContains(t, err, p2.ID)
	assert.Equal(t, 0, f.orders.Len())
	assert.Equal(t, 2, f.stock(t, p1.ID))
	assert.Equal(t, 1, f.stock(t, p2.ID))
	assert.Equal(t, 50, f.stock(t, p3.ID))
}

func TestPlace_ExactStockIsAllowed(t *testing.T) {
	f := newFixture()
	c := f.customer(t)
	p := f.product(t, "Keyboard", 5.00, 2)

	_, err := f.svc.Place(context.Background(), c.ID, []ItemRequest{{ProductID: p.ID, Quantity: 2}})

	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t, p.ID))
}

func TestPlace_DuplicateProductIDsRejected(t *testing.T) {
	f := newFixture()
	c := f.customer(t)
	p := f.product(t, "Keyboard", 5.00, 10)

	_, err := f.svc.Place(context.Background(), c.ID, []ItemRequest{
		{ProductID: p.ID, Quantity: 1},
		{ProductID: p.ID, Quantity: 2},
	})

	assert.ErrorIs(t, err, ErrDuplicateProduct)
	assert.Equal(t, 0, f.orders.Len())
	assert.Equal(t, 10, f.stock(t, p.ID))
}

func TestPlace_InvalidQuantity(t *testing.T) {
	f := newFixture()
	c := f.customer(t)
	p := f.product(t, "Keyboard", 5.00, 10)

	for _, qty := range []int{0, -1} {
		_, err := f.svc.Place(context.Background(), c.ID, []ItemRequest{{ProductID: p.ID, Quantity: qty}})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Equal(t, 0, f.orders.Len())
}

func TestPlace_EmptyOrder(t *testing.T) {
	f := newFixture()
	c := f.customer(t)

	_, err := f.svc.Place(context.Background(), c.ID, nil)

	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestGet_UnknownOrder(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrNotFound)
}

// Concurrent requests racing for the same product must never oversell: the
// store-level check-and-decrement is atomic, so exactly stock/qty requests
// can win.
func TestPlace_ConcurrentOrders_NeverOversell(t *testing.T) {
	f := newFixture()
	c := f.customer(t)
	p := f.product(t, "Keyboard", 5.00, 10)

	const attempts = 25
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Place(context.Background(), c.ID, []ItemRequest{{ProductID: p.ID, Quantity: 1}})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var okCount, shortCount int
	for err := range results {
		switch {
		case err == nil:
			okCount++
		default:
			assert.ErrorIs(t, err, ErrInsufficientStock)
			shortCount++
		}
	}

	assert.Equal(t, 10, okCount)
	assert.Equal(t, attempts-10, shortCount)
	assert.Equal(t, 0, f.stock(t, p.ID))
	assert.Equal(t, 10, f.orders.Len())
}
