package catalog

import (
	"context"

	"wreathworks/internal/domain"
)

type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetCustomizationOptions(ctx context.Context, productID string) ([]domain.CustomizationOption, error)
}
