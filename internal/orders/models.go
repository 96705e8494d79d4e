package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Items      []Item          `json:"items"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Item is one order line: product reference, price snapshot taken at order
// time and the requested quantity.
type Item struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// ItemRequest is the inbound shape of one requested order line.
type ItemRequest struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
}

// itemsTotal sums price*quantity over the given items.
func itemsTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
