package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-commerce-api/internal/kafka"
	"github.com/ariefcatur/go-commerce-api/internal/orders"
	"github.com/ariefcatur/go-commerce-api/internal/redisx"
)

type OrdersHandler struct {
	Orders   *orders.Service
	Producer *kafkax.Producer // nil disables event publishing
	Redis    *redis.Client    // nil disables the read cache
	Service  string
}

type CreateOrderReq struct {
	CustomerID string               `json:"customer_id"`
	Products   []orders.ItemRequest `json:"products"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.create)
	r.Get("/orders/{id}", h.show)
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.CustomerID == "" || len(req.Products) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Orders.Place(ctx, req.CustomerID, req.Products)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrder, order.ID)
		_ = h.Redis.Set(ctx, key, kafkax.MustMarshal(order), redisx.TTLOrderCache).Err()
	}

	if h.Producer != nil {
		ev := orders.Envelope{
			EventID:       uuid.NewString(),
			EventType:     orders.EventOrderPlaced,
			EventVersion:  1,
			OccurredAt:    time.Now().UTC(),
			Producer:      h.Service,
			TraceID:       r.Header.Get("X-Request-Id"),
			CorrelationID: order.ID,
			Payload: kafkax.MustMarshal(orders.OrderPlacedPayload{
				OrderID:    order.ID,
				CustomerID: order.CustomerID,
				Items:      orders.PlacedItems(order.Items),
				Total:      order.Total,
			}),
		}
		h.Producer.Publish(orders.PartitionKey(order.ID), kafkax.MustMarshal(ev),
			kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
			kafkago.Header{Key: "x-event-version", Value: []byte("1")},
		)
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *OrdersHandler) show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	var key string
	if h.Redis != nil {
		key = fmt.Sprintf(redisx.KeyOrder, id)
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	order, err := h.Orders.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, kafkax.MustMarshal(order), redisx.TTLOrderCache).Err()
	}
	writeJSON(w, http.StatusOK, order)
}
