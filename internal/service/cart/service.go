package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"wreathworks/internal/cache"
	"wreathworks/internal/domain"
	"wreathworks/internal/pricing"
	cartrepo "wreathworks/internal/repository/cart"
	"wreathworks/internal/validation"
)

// ErrProductNotFound distinguishes a bad product reference from a missing
// cart item.
var ErrProductNotFound = errors.New("product not found")

// ValidationError carries the itemized validation result across the service
// boundary so handlers can render field-level codes.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid customizations: %d error(s)", len(e.Result.Errors))
}

type Service struct {
	repo    cartRepo
	catalog catalogRepo
	cache   cache.Invalidator
	logger  *log.Logger
}

type cartRepo interface {
	CreateItem(ctx context.Context, in cartrepo.CreateItemInput) (*domain.CartItem, error)
	GetItem(ctx context.Context, sessionID, itemID string) (*domain.CartItem, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	UpdateItem(ctx context.Context, sessionID, itemID string, in cartrepo.UpdateItemInput) (*domain.CartItem, error)
	DeleteItem(ctx context.Context, sessionID, itemID string) error
}

type catalogRepo interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetCustomizationOptions(ctx context.Context, productID string) ([]domain.CustomizationOption, error)
}

func New(repo cartRepo, catalog catalogRepo, invalidator cache.Invalidator, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if invalidator == nil {
		invalidator = cache.Noop{}
	}
	return &Service{repo: repo, catalog: catalog, cache: invalidator, logger: logger}
}

type CustomizationInput struct {
	OptionID    string   `json:"optionId"`
	ChoiceIDs   []string `json:"choiceIds"`
	CustomValue string   `json:"customValue,omitempty"`
}

type CreateItemInput struct {
	ProductID      string               `json:"productId"`
	Quantity       int                  `json:"quantity"`
	Customizations []CustomizationInput `json:"customizations"`
	Locale         string               `json:"-"`
}

type UpdateItemInput struct {
	Quantity       *int                  `json:"quantity,omitempty"`
	Customizations *[]CustomizationInput `json:"customizations,omitempty"`
	Locale         string                `json:"-"`
}

// CreateItem validates a candidate configuration, prices it, and persists a
// new cart item for the session.
func (s *Service) CreateItem(ctx context.Context, sessionID string, customerID *string, in CreateItemInput) (*domain.CartItem, error) {
	if in.Quantity < 1 {
		return nil, errors.New("quantity must be positive")
	}
	product, options, err := s.loadCatalog(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	selections := toSelections(in.Customizations, options)
	result := validation.Validate(selections, options, validation.Options{Locale: in.Locale})
	if !result.IsValid {
		return nil, &ValidationError{Result: result}
	}

	quote := pricing.Calculate(product.BasePriceCents, selections, options, in.Quantity)
	item, err := s.repo.CreateItem(ctx, cartrepo.CreateItemInput{
		SessionID:      sessionID,
		CustomerID:     customerID,
		ProductID:      product.ID,
		Quantity:       in.Quantity,
		Customizations: selections,
		UnitPriceCents: quote.UnitPriceCents,
		Currency:       product.Currency,
		PriceBreakdown: quote.Breakdown,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, sessionID)
	return item, nil
}

// UpdateItem applies a partial patch: absent fields keep the stored value.
func (s *Service) UpdateItem(ctx context.Context, sessionID, itemID string, in UpdateItemInput) (*domain.CartItem, error) {
	item, err := s.repo.GetItem(ctx, sessionID, itemID)
	if err != nil {
		return nil, err
	}
	product, options, err := s.loadCatalog(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}

	quantity := item.Quantity
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return nil, errors.New("quantity must be positive")
		}
		quantity = *in.Quantity
	}
	selections := item.Customizations
	if in.Customizations != nil {
		selections = toSelections(*in.Customizations, options)
	}

	result := validation.Validate(selections, options, validation.Options{Locale: in.Locale})
	if !result.IsValid {
		return nil, &ValidationError{Result: result}
	}

	quote := pricing.Calculate(product.BasePriceCents, selections, options, quantity)
	updated, err := s.repo.UpdateItem(ctx, sessionID, itemID, cartrepo.UpdateItemInput{
		Quantity:       quantity,
		Customizations: selections,
		UnitPriceCents: quote.UnitPriceCents,
		PriceBreakdown: quote.Breakdown,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, sessionID)
	return updated, nil
}

func (s *Service) DeleteItem(ctx context.Context, sessionID, itemID string) error {
	if err := s.repo.DeleteItem(ctx, sessionID, itemID); err != nil {
		return err
	}
	s.invalidate(ctx, sessionID)
	return nil
}

func (s *Service) List(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

// QuoteResult pairs live-editing validation feedback with a best-effort
// price, which is computed even for invalid configurations.
type QuoteResult struct {
	Validation validation.Result `json:"validation"`
	Quote      pricing.Quote     `json:"quote"`
}

// Quote runs non-strict validation plus pricing without persisting anything.
func (s *Service) Quote(ctx context.Context, productID string, customizations []CustomizationInput, quantity int, locale string) (*QuoteResult, error) {
	product, options, err := s.loadCatalog(ctx, productID)
	if err != nil {
		return nil, err
	}
	selections := toSelections(customizations, options)
	return &QuoteResult{
		Validation: validation.Validate(selections, options, validation.Options{Locale: locale}),
		Quote:      pricing.Calculate(product.BasePriceCents, selections, options, quantity),
	}, nil
}

func (s *Service) loadCatalog(ctx context.Context, productID string) (*domain.Product, []domain.CustomizationOption, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, ErrProductNotFound
		}
		return nil, nil, err
	}
	options, err := s.catalog.GetCustomizationOptions(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	return product, options, nil
}

// invalidate drops the session's cached cart view. Advisory: failure is
// logged and never propagated.
func (s *Service) invalidate(ctx context.Context, sessionID string) {
	if err := s.cache.Invalidate(ctx, cache.SessionKey(sessionID)); err != nil {
		s.logger.Printf("cart service: cache invalidate session=%s error=%v", sessionID, err)
	}
}

// toSelections converts raw inputs into model entries with the denormalized
// modifier recomputed from the catalog.
func toSelections(inputs []CustomizationInput, options []domain.CustomizationOption) []domain.Customization {
	selections := make([]domain.Customization, 0, len(inputs))
	for _, in := range inputs {
		sel := domain.Customization{
			OptionID:    in.OptionID,
			ChoiceIDs:   append([]string(nil), in.ChoiceIDs...),
			CustomValue: in.CustomValue,
		}
		selections = append(selections, pricing.ApplyTo(sel, options))
	}
	return selections
}
