package redisx

import "time"

const (
	// Full order document cache: order:{order_id} -> order JSON
	KeyOrder = "order:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Low stock marker: stock:low:{product_id} -> remaining quantity
	KeyStockLow = "stock:low:%s"
)

var (
	TTLOrderCache = 5 * time.Minute
	TTLDedup      = 48 * time.Hour
	TTLStockLow   = 24 * time.Hour
)
