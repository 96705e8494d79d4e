package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-commerce-api/internal/kafka"
	"github.com/ariefcatur/go-commerce-api/internal/customers"
	"github.com/ariefcatur/go-commerce-api/internal/orders"
)

type CustomersHandler struct {
	Customers *customers.Service
	Producer  *kafkax.Producer // nil disables event publishing
	Service   string
}

type CreateCustomerReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *CustomersHandler) Register(r *chi.Mux) {
	r.Post("/customers", h.create)
}

func (h *CustomersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Name == "" || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.Customers.Register(ctx, req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.Producer != nil {
		ev := orders.Envelope{
			EventID:       uuid.NewString(),
			EventType:     orders.EventCustomerRegistered,
			EventVersion:  1,
			OccurredAt:    time.Now().UTC(),
			Producer:      h.Service,
			TraceID:       r.Header.Get("X-Request-Id"),
			CorrelationID: c.ID,
			Payload: kafkax.MustMarshal(orders.CustomerRegisteredPayload{
				CustomerID: c.ID, Name: c.Name, Email: c.Email,
			}),
		}
		h.Producer.Publish(orders.PartitionKey(c.ID), kafkax.MustMarshal(ev),
			kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventCustomerRegistered)},
			kafkago.Header{Key: "x-event-version", Value: []byte("1")},
		)
	}

	writeJSON(w, http.StatusCreated, c)
}
