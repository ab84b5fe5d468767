package pricing

import (
	"reflect"
	"testing"

	"wreathworks/internal/domain"
)

func testOptions() []domain.CustomizationOption {
	return []domain.CustomizationOption{
		{
			ID:   "size",
			Name: map[string]string{"en": "Size"},
			Choices: []domain.CustomizationChoice{
				{ID: "size_120", Available: true},
				{ID: "size_150", PriceModifierCents: 500, Available: true},
			},
		},
		{
			ID:   "flowers",
			Name: map[string]string{"en": "Flowers"},
			Choices: []domain.CustomizationChoice{
				{ID: "lilies", PriceModifierCents: 20000, Available: true},
				{ID: "roses", PriceModifierCents: 25000, Available: true},
			},
		},
		{
			ID:   "discount",
			Name: map[string]string{"en": "Discount"},
			Choices: []domain.CustomizationChoice{
				{ID: "clearance", PriceModifierCents: -200000, Available: true},
			},
		},
	}
}

func TestCalculate_BasePlusModifier(t *testing.T) {
	selections := []domain.Customization{
		{OptionID: "size", ChoiceIDs: []string{"size_150"}},
	}
	q := Calculate(149900, selections, testOptions(), 1)

	if q.UnitPriceCents != 149900+500 {
		t.Fatalf("expected unit price %d, got %d", 149900+500, q.UnitPriceCents)
	}
	if q.CustomizationModifierCents != 500 {
		t.Fatalf("expected modifier 500, got %d", q.CustomizationModifierCents)
	}
	if q.TotalPriceCents != q.UnitPriceCents {
		t.Fatalf("expected total to equal unit price for quantity 1, got %d", q.TotalPriceCents)
	}
	if q.Clamped {
		t.Fatalf("did not expect clamping")
	}
}

func TestCalculate_MultiSelectSumsWithinOption(t *testing.T) {
	selections := []domain.Customization{
		{OptionID: "flowers", ChoiceIDs: []string{"lilies", "roses"}},
	}
	q := Calculate(100000, selections, testOptions(), 2)

	if q.CustomizationModifierCents != 45000 {
		t.Fatalf("expected modifier 45000, got %d", q.CustomizationModifierCents)
	}
	if q.TotalPriceCents != (100000+45000)*2 {
		t.Fatalf("expected total %d, got %d", (100000+45000)*2, q.TotalPriceCents)
	}
	if len(q.Breakdown) != 1 || q.Breakdown[0].AmountCents != 45000 {
		t.Fatalf("expected one breakdown line of 45000, got %v", q.Breakdown)
	}
}

func TestCalculate_UnknownReferencesContributeNothing(t *testing.T) {
	selections := []domain.Customization{
		{OptionID: "size", ChoiceIDs: []string{"size_999"}},
		{OptionID: "glitter", ChoiceIDs: []string{"extra"}},
	}
	q := Calculate(100000, selections, testOptions(), 1)

	if q.UnitPriceCents != 100000 {
		t.Fatalf("expected base price only, got %d", q.UnitPriceCents)
	}
	// The known option still gets a breakdown line, at zero.
	if len(q.Breakdown) != 1 || q.Breakdown[0].OptionID != "size" || q.Breakdown[0].AmountCents != 0 {
		t.Fatalf("unexpected breakdown %v", q.Breakdown)
	}
}

func TestCalculate_ClampsAtZero(t *testing.T) {
	selections := []domain.Customization{
		{OptionID: "discount", ChoiceIDs: []string{"clearance"}},
	}
	q := Calculate(100000, selections, testOptions(), 3)

	if q.UnitPriceCents != 0 {
		t.Fatalf("expected clamped unit price 0, got %d", q.UnitPriceCents)
	}
	if !q.Clamped {
		t.Fatalf("expected Clamped flag")
	}
	if q.TotalPriceCents != 0 {
		t.Fatalf("expected total 0, got %d", q.TotalPriceCents)
	}
}

func TestCalculate_QuantityFloor(t *testing.T) {
	q := Calculate(100000, nil, testOptions(), 0)
	if q.TotalPriceCents != 100000 {
		t.Fatalf("expected quantity floor of 1, got total %d", q.TotalPriceCents)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	selections := []domain.Customization{
		{OptionID: "size", ChoiceIDs: []string{"size_150"}},
		{OptionID: "flowers", ChoiceIDs: []string{"lilies"}},
	}
	first := Calculate(149900, selections, testOptions(), 2)
	second := Calculate(149900, selections, testOptions(), 2)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical quotes, got %+v vs %+v", first, second)
	}
}

func TestCalculateBatch(t *testing.T) {
	rows := []Row{
		{BasePriceCents: 149900, Selections: []domain.Customization{{OptionID: "size", ChoiceIDs: []string{"size_150"}}}, Options: testOptions(), Quantity: 1},
		{BasePriceCents: 89900, Options: testOptions(), Quantity: 2},
	}
	quotes := CalculateBatch(rows)

	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].UnitPriceCents != 150400 {
		t.Fatalf("expected 150400, got %d", quotes[0].UnitPriceCents)
	}
	if quotes[1].TotalPriceCents != 179800 {
		t.Fatalf("expected 179800, got %d", quotes[1].TotalPriceCents)
	}
}

func TestApplyTo_RecomputesModifier(t *testing.T) {
	// A tampered stored modifier is overwritten from the catalog.
	sel := domain.Customization{
		OptionID:           "flowers",
		ChoiceIDs:          []string{"lilies", "roses"},
		PriceModifierCents: 1,
	}
	out := ApplyTo(sel, testOptions())

	if out.PriceModifierCents != 45000 {
		t.Fatalf("expected 45000, got %d", out.PriceModifierCents)
	}
	if sel.PriceModifierCents != 1 {
		t.Fatalf("expected input untouched, got %d", sel.PriceModifierCents)
	}

	unknown := ApplyTo(domain.Customization{OptionID: "glitter", PriceModifierCents: 7}, testOptions())
	if unknown.PriceModifierCents != 0 {
		t.Fatalf("expected 0 for unknown option, got %d", unknown.PriceModifierCents)
	}
}
