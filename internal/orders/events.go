package orders

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventCustomerRegistered = "CustomerRegistered"
	EventOrderPlaced        = "OrderPlaced"
	EventStockLow           = "StockLow"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type CustomerRegisteredPayload struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

type OrderPlacedItem struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type OrderPlacedPayload struct {
	OrderID    string            `json:"order_id"`
	CustomerID string            `json:"customer_id"`
	Items      []OrderPlacedItem `json:"items"`
	Total      decimal.Decimal   `json:"total"`
}

type StockLowPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
	Threshold int    `json:"threshold"`
}

// PlacedItems converts order items into the event payload shape.
func PlacedItems(items []Item) []OrderPlacedItem {
	out := make([]OrderPlacedItem, 0, len(items))
	for _, it := range items {
		out = append(out, OrderPlacedItem{ProductID: it.ProductID, Price: it.Price, Quantity: it.Quantity})
	}
	return out
}
