package stockwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ariefcatur/go-commerce-api/internal/catalog"
)

func TestLowStock(t *testing.T) {
	products := []catalog.Product{
		{ID: "a", Quantity: 0},
		{ID: "b", Quantity: 5},
		{ID: "c", Quantity: 6},
		{ID: "d", Quantity: 100},
	}

	got := lowStock(products, 5)

	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestLowStock_NoneLow(t *testing.T) {
	got := lowStock([]catalog.Product{{ID: "a", Quantity: 10}}, 5)

	assert.Empty(t, got)
}
