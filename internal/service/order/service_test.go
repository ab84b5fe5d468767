package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"wreathworks/internal/delivery"
	"wreathworks/internal/domain"
	cartrepo "wreathworks/internal/repository/cart"
)

type stubOrderRepo struct {
	created   *domain.Order
	createErr error
}

func (s *stubOrderRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	copied := o
	copied.ID = "order-1"
	s.created = &copied
	return &copied, nil
}

type stubCartRepo struct {
	items       []domain.CartItem
	listErr     error
	lastListIDs []string
	deletedIDs  []string
	deleteRes   cartrepo.CleanupResult
	deleteErr   error
}

func (s *stubCartRepo) ListBySession(_ context.Context, _ string) ([]domain.CartItem, error) {
	return s.items, s.listErr
}

func (s *stubCartRepo) ListByIDs(_ context.Context, _ string, ids []string) ([]domain.CartItem, error) {
	s.lastListIDs = ids
	return s.items, s.listErr
}

func (s *stubCartRepo) DeleteItems(_ context.Context, ids []string) (cartrepo.CleanupResult, error) {
	s.deletedIDs = ids
	return s.deleteRes, s.deleteErr
}

type stubCatalogRepo struct {
	product *domain.Product
	options []domain.CustomizationOption
	err     error
}

func (s *stubCatalogRepo) GetProduct(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogRepo) GetCustomizationOptions(_ context.Context, _ string) ([]domain.CustomizationOption, error) {
	return s.options, s.err
}

type stubDelivery struct {
	cost delivery.Cost
	err  error
}

func (s *stubDelivery) CalculateDeliveryCost(_ context.Context, _ domain.Address, _, _ string) (delivery.Cost, error) {
	return s.cost, s.err
}

func wreathOptions() []domain.CustomizationOption {
	return []domain.CustomizationOption{
		{
			ID:       "size",
			Name:     map[string]string{"en": "Size"},
			Required: true,
			Choices: []domain.CustomizationChoice{
				{ID: "size_120", Available: true},
				{ID: "size_150", PriceModifierCents: 500, Available: true},
			},
		},
		{
			ID:   "ribbon",
			Name: map[string]string{"en": "Ribbon"},
			Choices: []domain.CustomizationChoice{
				{ID: "ribbon_yes", PriceModifierCents: 15000, Available: true},
				{ID: "ribbon_no", Available: true},
			},
		},
		{
			ID:        "ribbon_color",
			Name:      map[string]string{"en": "Ribbon color"},
			Required:  true,
			DependsOn: &domain.Dependency{OptionID: "ribbon", RequiredChoiceIDs: []string{"ribbon_yes"}},
			Choices: []domain.CustomizationChoice{
				{ID: "color_black", Available: true},
			},
		},
		{
			ID:        "ribbon_text",
			Name:      map[string]string{"en": "Ribbon text"},
			Required:  true,
			DependsOn: &domain.Dependency{OptionID: "ribbon", RequiredChoiceIDs: []string{"ribbon_yes"}},
			Choices: []domain.CustomizationChoice{
				{ID: "text_custom", Available: true, AllowCustomInput: true, MaxLength: 50},
			},
		},
	}
}

func fullItem() domain.CartItem {
	return domain.CartItem{
		ID:        "item-1",
		SessionID: "sess-1",
		ProductID: "wreath-1",
		Quantity:  1,
		Customizations: []domain.Customization{
			{OptionID: "size", ChoiceIDs: []string{"size_150"}},
			{OptionID: "ribbon", ChoiceIDs: []string{"ribbon_yes"}},
			{OptionID: "ribbon_color", ChoiceIDs: []string{"color_black"}},
			{OptionID: "ribbon_text", ChoiceIDs: []string{"text_custom"}, CustomValue: "in loving memory"},
		},
	}
}

func newTestService(orders *stubOrderRepo, cart *stubCartRepo, catalog *stubCatalogRepo, at time.Time) *Service {
	svc := New(orders, cart, catalog, &stubDelivery{cost: delivery.Cost{TotalCostCents: 9900}}, nil)
	svc.now = func() time.Time { return at }
	svc.newNumber = func() string { return "WR-TEST0001" }
	return svc
}

func validInput() CreateOrderInput {
	return CreateOrderInput{
		SessionID:    "sess-1",
		CustomerInfo: domain.CustomerInfo{Email: "jana@example.com", FirstName: "Jana", LastName: "Novak"},
		DeliveryInfo: domain.DeliveryInfo{
			Address: domain.Address{StreetName: "Hlavni 1", City: "Praha", PostalCode: "11000", Country: "CZ"},
			Urgency: "standard",
		},
		PaymentMethod: "card",
		AgreeToTerms:  true,
	}
}

func TestCreateOrder_FreezesCustomizations(t *testing.T) {
	at := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	orders := &stubOrderRepo{}
	cart := &stubCartRepo{items: []domain.CartItem{fullItem()}, deleteRes: cartrepo.CleanupResult{RemovedItems: 1, RemovedCustomizations: 4}}
	catalog := &stubCatalogRepo{
		product: &domain.Product{ID: "wreath-1", BasePriceCents: 149900, Currency: "CZK"},
		options: wreathOptions(),
	}
	svc := newTestService(orders, cart, catalog, at)

	res, err := svc.CreateOrder(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Order == nil || len(res.Order.Items) != 1 {
		t.Fatalf("expected one order item, got %+v", res.Order)
	}

	item := res.Order.Items[0]
	if len(item.Customizations) != 4 {
		t.Fatalf("expected 4 frozen customizations, got %d", len(item.Customizations))
	}
	for _, frozen := range item.Customizations {
		if !frozen.TransferredAt.Equal(at) {
			t.Fatalf("expected transferredAt %v, got %v", at, frozen.TransferredAt)
		}
	}
	// 149900 + 500 (size_150) + 15000 (ribbon_yes).
	if item.UnitPriceCents != 165400 {
		t.Fatalf("expected unit price 165400, got %d", item.UnitPriceCents)
	}
	if res.Order.TotalCents != 165400+9900 {
		t.Fatalf("expected total %d, got %d", 165400+9900, res.Order.TotalCents)
	}
	if res.Order.Number != "WR-TEST0001" {
		t.Fatalf("expected fixed order number, got %s", res.Order.Number)
	}
	if !res.CartCleanup.CleanupSuccess || res.CartCleanup.RemovedItems != 1 {
		t.Fatalf("expected successful cleanup, got %+v", res.CartCleanup)
	}
	if len(cart.deletedIDs) != 1 || cart.deletedIDs[0] != "item-1" {
		t.Fatalf("expected item-1 cleaned up, got %v", cart.deletedIDs)
	}
}

func TestCreateOrder_FrozenCopiesDoNotAliasCartSlices(t *testing.T) {
	at := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	item := fullItem()
	orders := &stubOrderRepo{}
	cart := &stubCartRepo{items: []domain.CartItem{item}}
	catalog := &stubCatalogRepo{
		product: &domain.Product{ID: "wreath-1", BasePriceCents: 149900, Currency: "CZK"},
		options: wreathOptions(),
	}
	svc := newTestService(orders, cart, catalog, at)

	res, err := svc.CreateOrder(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A later cart edit must not reach into the recorded order.
	cart.items[0].Customizations[0].ChoiceIDs[0] = "size_120"
	if got := res.Order.Items[0].Customizations[0].ChoiceIDs[0]; got != "size_150" {
		t.Fatalf("order customization changed after cart edit: %s", got)
	}
}

func TestCreateOrder_CleanupFailureStillSucceeds(t *testing.T) {
	at := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	orders := &stubOrderRepo{}
	cart := &stubCartRepo{items: []domain.CartItem{fullItem()}, deleteErr: errors.New("db gone")}
	catalog := &stubCatalogRepo{
		product: &domain.Product{ID: "wreath-1", BasePriceCents: 149900, Currency: "CZK"},
		options: wreathOptions(),
	}
	svc := newTestService(orders, cart, catalog, at)

	res, err := svc.CreateOrder(context.Background(), validInput())
	if err != nil {
		t.Fatalf("expected order to succeed despite cleanup failure, got %v", err)
	}
	if res.Order == nil {
		t.Fatalf("expected order in result")
	}
	if res.CartCleanup.CleanupSuccess {
		t.Fatalf("expected cleanup failure to be reported")
	}
	if res.CartCleanup.Error == "" {
		t.Fatalf("expected cleanup error message")
	}
}

func TestCreateOrder_RepairsDanglingDependency(t *testing.T) {
	at := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	item := fullItem()
	// Ribbon switched off but the dependent entries were left behind.
	item.Customizations[1].ChoiceIDs = []string{"ribbon_no"}
	orders := &stubOrderRepo{}
	cart := &stubCartRepo{items: []domain.CartItem{item}}
	catalog := &stubCatalogRepo{
		product: &domain.Product{ID: "wreath-1", BasePriceCents: 149900, Currency: "CZK"},
		options: wreathOptions(),
	}
	svc := newTestService(orders, cart, catalog, at)

	res, err := svc.CreateOrder(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Order.Items[0].Customizations) != 2 {
		t.Fatalf("expected size and ribbon only, got %d entries", len(res.Order.Items[0].Customizations))
	}
	if len(res.IntegrityIssues) != 1 || res.IntegrityIssues[0].CartItemID != "item-1" {
		t.Fatalf("expected integrity issue for item-1, got %v", res.IntegrityIssues)
	}
	if len(res.IntegrityIssues[0].Removed) != 2 {
		t.Fatalf("expected two removed entries, got %v", res.IntegrityIssues[0].Removed)
	}
	// Repricing drops the ribbon surcharge but keeps size_150.
	if res.Order.Items[0].UnitPriceCents != 150400 {
		t.Fatalf("expected repriced item at 150400, got %d", res.Order.Items[0].UnitPriceCents)
	}
}

func TestCreateOrder_FailsWhenRequiredMissingAfterRepair(t *testing.T) {
	at := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	item := fullItem()
	// The stored size choice vanished from the catalog; repair removes the
	// entry and there is no safe default.
	item.Customizations[0].ChoiceIDs = []string{"size_90"}
	orders := &stubOrderRepo{}
	cart := &stubCartRepo{items: []domain.CartItem{item}}
	catalog := &stubCatalogRepo{
		product: &domain.Product{ID: "wreath-1", BasePriceCents: 149900, Currency: "CZK"},
		options: wreathOptions(),
	}
	svc := newTestService(orders, cart, catalog, at)

	_, err := svc.CreateOrder(context.Background(), validInput())
	var integrityErr *IntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if integrityErr.ItemID != "item-1" {
		t.Fatalf("expected item-1, got %s", integrityErr.ItemID)
	}
	if len(integrityErr.MissingOptions) != 1 || integrityErr.MissingOptions[0] != "size" {
		t.Fatalf("expected missing size, got %v", integrityErr.MissingOptions)
	}
	if orders.created != nil {
		t.Fatalf("expected no order to be written")
	}
	if cart.deletedIDs != nil {
		t.Fatalf("expected no cleanup, got %v", cart.deletedIDs)
	}
}

func TestCreateOrder_ConflictPassesThrough(t *testing.T) {
	at := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	orders := &stubOrderRepo{createErr: domain.ErrConflict}
	cart := &stubCartRepo{items: []domain.CartItem{fullItem()}}
	catalog := &stubCatalogRepo{
		product: &domain.Product{ID: "wreath-1", BasePriceCents: 149900, Currency: "CZK"},
		options: wreathOptions(),
	}
	svc := newTestService(orders, cart, catalog, at)

	_, err := svc.CreateOrder(context.Background(), validInput())
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if cart.deletedIDs != nil {
		t.Fatalf("expected no cleanup after failed write, got %v", cart.deletedIDs)
	}
}

func TestCreateOrder_TermsRequired(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, &stubCartRepo{}, &stubCatalogRepo{}, time.Now())

	in := validInput()
	in.AgreeToTerms = false
	if _, err := svc.CreateOrder(context.Background(), in); !errors.Is(err, ErrTermsNotAccepted) {
		t.Fatalf("expected ErrTermsNotAccepted, got %v", err)
	}
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, &stubCartRepo{}, &stubCatalogRepo{}, time.Now())

	if _, err := svc.CreateOrder(context.Background(), validInput()); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCreateOrder_SelectedItemsOnly(t *testing.T) {
	at := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	orders := &stubOrderRepo{}
	cart := &stubCartRepo{items: []domain.CartItem{fullItem()}}
	catalog := &stubCatalogRepo{
		product: &domain.Product{ID: "wreath-1", BasePriceCents: 149900, Currency: "CZK"},
		options: wreathOptions(),
	}
	svc := newTestService(orders, cart, catalog, at)

	in := validInput()
	in.ItemIDs = []string{"item-1"}
	if _, err := svc.CreateOrder(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.lastListIDs) != 1 || cart.lastListIDs[0] != "item-1" {
		t.Fatalf("expected load by ids, got %v", cart.lastListIDs)
	}
}
