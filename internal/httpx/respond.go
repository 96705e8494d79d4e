package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/go-commerce-api/internal/catalog"
	"github.com/ariefcatur/go-commerce-api/internal/customers"
	"github.com/ariefcatur/go-commerce-api/internal/orders"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps workflow sentinels onto HTTP status codes. Anything not
// recognized is an internal store failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, orders.ErrNotFound),
		errors.Is(err, orders.ErrCustomerNotFound),
		errors.Is(err, customers.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, customers.ErrEmailTaken),
		errors.Is(err, catalog.ErrNameTaken),
		errors.Is(err, orders.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, orders.ErrUnknownProduct):
		return http.StatusUnprocessableEntity
	case errors.Is(err, orders.ErrDuplicateProduct),
		errors.Is(err, orders.ErrEmptyOrder),
		errors.Is(err, orders.ErrInvalidQuantity),
		errors.Is(err, catalog.ErrNegativeQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
