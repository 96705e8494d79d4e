package customers

import (
	"context"
	"errors"
	"fmt"
)

// Service implements the customer registration workflow.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a customer after checking the email is not on file.
// A taken email fails with ErrEmailTaken; store failures are wrapped.
func (s *Service) Register(ctx context.Context, name, email string) (*Customer, error) {
	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("register customer: %w", err)
	}

	c, err := s.store.Create(ctx, name, email)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register customer: %w", err)
	}
	return c, nil
}
