package order

import (
	"context"

	"wreathworks/internal/domain"
)

type Repository interface {
	// Create durably writes the order and its items in one transaction.
	// A duplicate order number surfaces as domain.ErrConflict.
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
