// Package order carries a customization set from a mutable cart item into an
// immutable order record. Each item moves through
// draft -> integrity_checked -> transferred -> cart_cleaned, with failed as
// the only terminal error state; a transferred item always proceeds to an
// attempted cleanup.
package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"wreathworks/internal/delivery"
	"wreathworks/internal/domain"
	"wreathworks/internal/pricing"
	cartrepo "wreathworks/internal/repository/cart"
	"wreathworks/internal/validation"
)

var (
	ErrEmptyCart        = errors.New("cart has no items to order")
	ErrTermsNotAccepted = errors.New("terms must be accepted")
)

// IntegrityError aborts order creation: repair left an independent required
// option unsatisfied and there is no safe default.
type IntegrityError struct {
	ItemID         string
	MissingOptions []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("cart item %s: required options unsatisfied after repair: %s",
		e.ItemID, strings.Join(e.MissingOptions, ", "))
}

type transferState string

const (
	stateDraft            transferState = "draft"
	stateIntegrityChecked transferState = "integrity_checked"
	stateTransferred      transferState = "transferred"
	stateCartCleaned      transferState = "cart_cleaned"
	stateFailed           transferState = "failed"
)

type Service struct {
	orders   orderRepo
	cart     cartRepo
	catalog  catalogRepo
	delivery delivery.Calculator
	logger   *log.Logger

	// injectable for deterministic tests
	now       func() time.Time
	newNumber func() string
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
}

type cartRepo interface {
	ListBySession(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	ListByIDs(ctx context.Context, sessionID string, ids []string) ([]domain.CartItem, error)
	DeleteItems(ctx context.Context, ids []string) (cartrepo.CleanupResult, error)
}

type catalogRepo interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetCustomizationOptions(ctx context.Context, productID string) ([]domain.CustomizationOption, error)
}

func New(orders orderRepo, cart cartRepo, catalog catalogRepo, deliveryCalc delivery.Calculator, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		orders:   orders,
		cart:     cart,
		catalog:  catalog,
		delivery: deliveryCalc,
		logger:   logger,
		now:      time.Now,
		newNumber: func() string {
			return "WR-" + strings.ToUpper(uuid.NewString()[:8])
		},
	}
}

type CreateOrderInput struct {
	SessionID     string
	ItemIDs       []string // empty means the whole session cart
	CustomerInfo  domain.CustomerInfo
	DeliveryInfo  domain.DeliveryInfo
	PaymentMethod string
	AgreeToTerms  bool
	Locale        string
}

// CartCleanup reports the best-effort post-order deletion. CleanupSuccess
// being false never implies the order failed.
type CartCleanup struct {
	RemovedItems          int    `json:"removedItems"`
	RemovedCustomizations int    `json:"removedCustomizations"`
	CleanupSuccess        bool   `json:"cleanupSuccess"`
	Error                 string `json:"error,omitempty"`
}

// IntegrityIssue records entries stripped from one cart item during repair.
type IntegrityIssue struct {
	CartItemID string                    `json:"cartItemId"`
	Removed    []validation.RemovedEntry `json:"removed"`
}

type CreateOrderResult struct {
	Order           *domain.Order    `json:"order"`
	CartCleanup     CartCleanup      `json:"cartCleanup"`
	IntegrityIssues []IntegrityIssue `json:"integrityIssues,omitempty"`
}

// CreateOrder re-validates the persisted selection sets (never the
// client-echoed ones), repairs what it can, freezes the survivors with a
// transfer timestamp, durably writes the order, and only then attempts cart
// cleanup.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	if !in.AgreeToTerms {
		return nil, ErrTermsNotAccepted
	}

	items, err := s.loadItems(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	res := &CreateOrderResult{}
	transferredAt := s.now().UTC()
	order := domain.Order{
		Number:        s.newNumber(),
		CustomerInfo:  in.CustomerInfo,
		DeliveryInfo:  in.DeliveryInfo,
		PaymentMethod: in.PaymentMethod,
	}

	transferredIDs := make([]string, 0, len(items))
	for _, item := range items {
		s.logState(item.ID, stateDraft)

		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			s.logState(item.ID, stateFailed)
			return nil, fmt.Errorf("load product %s: %w", item.ProductID, err)
		}
		options, err := s.catalog.GetCustomizationOptions(ctx, item.ProductID)
		if err != nil {
			s.logState(item.ID, stateFailed)
			return nil, fmt.Errorf("load options for %s: %w", item.ProductID, err)
		}

		fixed, removed := validation.Repair(item.Customizations, options)
		if len(removed) > 0 {
			res.IntegrityIssues = append(res.IntegrityIssues, IntegrityIssue{CartItemID: item.ID, Removed: removed})
			s.logger.Printf("order service: item=%s repaired removed=%d", item.ID, len(removed))
		}
		if missing := validation.MissingRequired(fixed, options); len(missing) > 0 {
			s.logState(item.ID, stateFailed)
			return nil, &IntegrityError{ItemID: item.ID, MissingOptions: missing}
		}
		s.logState(item.ID, stateIntegrityChecked)

		quote := pricing.Calculate(product.BasePriceCents, fixed, options, item.Quantity)
		frozen := make([]domain.FrozenCustomization, 0, len(fixed))
		for _, c := range fixed {
			frozen = append(frozen, domain.FrozenCustomization{
				Customization: pricing.ApplyTo(c, options),
				TransferredAt: transferredAt,
			})
		}

		order.Items = append(order.Items, domain.OrderItem{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			Customizations:  frozen,
			UnitPriceCents:  quote.UnitPriceCents,
			TotalPriceCents: quote.TotalPriceCents,
			Currency:        product.Currency,
		})
		order.ItemsTotalCents += quote.TotalPriceCents
		if order.Currency == "" {
			order.Currency = product.Currency
		}
		transferredIDs = append(transferredIDs, item.ID)
		s.logState(item.ID, stateTransferred)
	}

	cost, err := s.delivery.CalculateDeliveryCost(ctx, in.DeliveryInfo.Address, in.DeliveryInfo.Urgency, in.DeliveryInfo.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("delivery cost: %w", err)
	}
	order.DeliveryCostCents = cost.TotalCostCents
	order.TotalCents = order.ItemsTotalCents + cost.TotalCostCents
	order.EstimatedDelivery = cost.EstimatedDelivery

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		// domain.ErrConflict passes through as-is: retryable for the caller.
		return nil, err
	}
	res.Order = created

	// The order row is durable; from here cleanup is at most once, best
	// effort, and never rolls anything back.
	res.CartCleanup = s.cleanup(ctx, transferredIDs)
	return res, nil
}

func (s *Service) loadItems(ctx context.Context, in CreateOrderInput) ([]domain.CartItem, error) {
	if len(in.ItemIDs) > 0 {
		return s.cart.ListByIDs(ctx, in.SessionID, in.ItemIDs)
	}
	return s.cart.ListBySession(ctx, in.SessionID)
}

func (s *Service) cleanup(ctx context.Context, ids []string) CartCleanup {
	result, err := s.cart.DeleteItems(ctx, ids)
	if err != nil {
		s.logger.Printf("order service: cart cleanup failed items=%d error=%v", len(ids), err)
		return CartCleanup{Error: err.Error()}
	}
	for _, id := range ids {
		s.logState(id, stateCartCleaned)
	}
	return CartCleanup{
		RemovedItems:          result.RemovedItems,
		RemovedCustomizations: result.RemovedCustomizations,
		CleanupSuccess:        true,
	}
}

func (s *Service) logState(itemID string, state transferState) {
	s.logger.Printf("order service: item=%s state=%s", itemID, state)
}
