package cart

import (
	"context"

	"wreathworks/internal/domain"
)

type CreateItemInput struct {
	SessionID      string
	CustomerID     *string
	ProductID      string
	Quantity       int
	Customizations []domain.Customization
	UnitPriceCents int64
	Currency       string
	PriceBreakdown []domain.PriceLine
}

type UpdateItemInput struct {
	Quantity       int
	Customizations []domain.Customization
	UnitPriceCents int64
	PriceBreakdown []domain.PriceLine
}

// CleanupResult reports what a best-effort post-order deletion removed.
type CleanupResult struct {
	RemovedItems          int
	RemovedCustomizations int
}

type Repository interface {
	CreateItem(ctx context.Context, in CreateItemInput) (*domain.CartItem, error)
	GetItem(ctx context.Context, sessionID, itemID string) (*domain.CartItem, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	ListByIDs(ctx context.Context, sessionID string, ids []string) ([]domain.CartItem, error)
	UpdateItem(ctx context.Context, sessionID, itemID string, in UpdateItemInput) (*domain.CartItem, error)
	DeleteItem(ctx context.Context, sessionID, itemID string) error
	DeleteItems(ctx context.Context, ids []string) (CleanupResult, error)
}
