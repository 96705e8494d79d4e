package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

// Create persists the order header + items and decrements stock in one
// transaction. Product rows are locked FOR UPDATE in sorted id order to
// avoid lock-order deadlocks between concurrent orders, and stock is
// re-checked under the lock, so two orders racing for the same product can
// never both commit past the available quantity.
func (r *Repo) Create(ctx context.Context, customerID string, items []Item) (*Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	for _, it := range sorted {
		var onHand int
		err := tx.QueryRow(ctx, `SELECT quantity FROM products WHERE id=$1 FOR UPDATE`, it.ProductID).Scan(&onHand)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, it.ProductID)
		}
		if err != nil {
			return nil, err
		}
		if onHand < it.Quantity {
			return nil, fmt.Errorf("%w: product %s (want %d, have %d)", ErrInsufficientStock, it.ProductID, it.Quantity, onHand)
		}
	}

	o := Order{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Items:      items,
		Total:      itemsTotal(items),
		CreatedAt:  time.Now().UTC(),
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, customer_id, total, created_at)
		VALUES ($1, $2, $3, $4)`,
		o.ID, o.CustomerID, o.Total, o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, price, quantity)
			VALUES ($1, $2, $3, $4)`,
			o.ID, it.ProductID, it.Price, it.Quantity,
		)
		if err != nil {
			return nil, err
		}
	}

	for _, it := range sorted {
		ct, err := tx.Exec(ctx, `
			UPDATE products SET quantity = quantity - $2, updated_at = now() WHERE id=$1`,
			it.ProductID, it.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStockUpdate, err)
		}
		if ct.RowsAffected() != 1 {
			return nil, fmt.Errorf("%w: product %s", ErrStockUpdate, it.ProductID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, customer_id, total, created_at FROM orders WHERE id=$1`, id,
	).Scan(&o.ID, &o.CustomerID, &o.Total, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT product_id, price, quantity FROM order_items WHERE order_id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}
