package orders

const (
	TopicCustomerRegistered = "customer.registered"
	TopicOrderPlaced        = "order.placed"
	TopicStockLow           = "stock.low"
)

// Partition key = order_id so all events for one order keep their ordering.
func PartitionKey(id string) []byte { return []byte(id) }
