package customers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

func (r *Repo) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	return r.findOne(ctx, `SELECT id, name, email, created_at FROM customers WHERE email=$1`, email)
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Customer, error) {
	return r.findOne(ctx, `SELECT id, name, email, created_at FROM customers WHERE id=$1`, id)
}

func (r *Repo) findOne(ctx context.Context, query, arg string) (*Customer, error) {
	var c Customer
	err := r.DB.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Create(ctx context.Context, name, email string) (*Customer, error) {
	c := Customer{ID: uuid.NewString(), Name: name, Email: email, CreatedAt: time.Now().UTC()}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO customers(id, name, email, created_at)
		VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Email, c.CreatedAt,
	)
	if err != nil {
		// unique index on email is the backstop for a lost registration race
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &c, nil
}
