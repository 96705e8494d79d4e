package stockwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-commerce-api/internal/catalog"
	kafkax "github.com/ariefcatur/go-commerce-api/internal/kafka"
	"github.com/ariefcatur/go-commerce-api/internal/orders"
	"github.com/ariefcatur/go-commerce-api/internal/redisx"
)

// Service projects low-stock state from order.placed events. The stock
// decrement itself already happened inside the placement transaction; this
// worker only observes the result and raises stock.low.
type Service struct {
	Products    catalog.Store
	Redis       *redis.Client
	Producer    *kafkax.Producer // stock.low
	Threshold   int
	ServiceName string
}

// HandleOrderPlaced is installed as the consumer handler.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}

	// dedup by event id so redeliveries stay idempotent
	dkey := fmt.Sprintf(redisx.KeyDedup, "stockwatch", env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Products.FindAllByID(ctx, ids)
	if err != nil {
		return err
	}

	for _, prod := range lowStock(products, s.Threshold) {
		s.markLow(ctx, prod, env.TraceID)
	}
	return nil
}

// lowStock filters products at or below the threshold.
func lowStock(products []catalog.Product, threshold int) []catalog.Product {
	var out []catalog.Product
	for _, p := range products {
		if p.Quantity <= threshold {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) markLow(ctx context.Context, p catalog.Product, trace string) {
	key := fmt.Sprintf(redisx.KeyStockLow, p.ID)
	_ = s.Redis.Set(ctx, key, p.Quantity, redisx.TTLStockLow).Err()

	log.Warn().
		Str("product_id", p.ID).
		Str("name", p.Name).
		Int("remaining", p.Quantity).
		Int("threshold", s.Threshold).
		Msg("stock low")

	if s.Producer == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventStockLow,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: p.ID,
		Payload: kafkax.MustMarshal(orders.StockLowPayload{
			ProductID: p.ID,
			Name:      p.Name,
			Remaining: p.Quantity,
			Threshold: s.Threshold,
		}),
	}
	s.Producer.Publish(orders.PartitionKey(p.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventStockLow)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
