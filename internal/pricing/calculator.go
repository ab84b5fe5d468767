// Package pricing computes deterministic unit and total prices for a
// configured product. All amounts are integer minor currency units; the
// calculator performs no validation and no I/O.
package pricing

import "wreathworks/internal/domain"

// Quote is the result of pricing one configured item.
type Quote struct {
	BasePriceCents             int64              `json:"basePriceCents"`
	CustomizationModifierCents int64              `json:"customizationModifierCents"`
	UnitPriceCents             int64              `json:"unitPriceCents"`
	TotalPriceCents            int64              `json:"totalPriceCents"`
	Breakdown                  []domain.PriceLine `json:"breakdown"`
	// Clamped is set when summed modifiers would have driven the unit
	// price below zero. Modifiers should never be able to do that; the
	// flag lets callers surface the catalog misconfiguration upstream.
	Clamped bool `json:"clamped,omitempty"`
}

// Row is one input to the batch form.
type Row struct {
	BasePriceCents int64
	Selections     []domain.Customization
	Options        []domain.CustomizationOption
	Quantity       int
}

// Calculate prices one item. It trusts its caller to have validated, or to
// accept a best-effort price for an invalid configuration: selections that
// reference unknown options or choices simply contribute nothing.
func Calculate(basePriceCents int64, selections []domain.Customization, options []domain.CustomizationOption, quantity int) Quote {
	if quantity < 1 {
		quantity = 1
	}
	q := Quote{BasePriceCents: basePriceCents}

	for _, sel := range selections {
		opt := domain.FindOption(options, sel.OptionID)
		if opt == nil {
			continue
		}
		var entry int64
		for _, choiceID := range sel.ChoiceIDs {
			if choice := opt.Choice(choiceID); choice != nil {
				entry += choice.PriceModifierCents
			}
		}
		q.CustomizationModifierCents += entry
		q.Breakdown = append(q.Breakdown, domain.PriceLine{
			OptionID:    opt.ID,
			OptionName:  opt.Name["en"],
			ChoiceIDs:   append([]string(nil), sel.ChoiceIDs...),
			AmountCents: entry,
		})
	}

	q.UnitPriceCents = basePriceCents + q.CustomizationModifierCents
	if q.UnitPriceCents < 0 {
		q.UnitPriceCents = 0
		q.Clamped = true
	}
	q.TotalPriceCents = q.UnitPriceCents * int64(quantity)
	return q
}

// CalculateBatch prices many cart rows in one pass.
func CalculateBatch(rows []Row) []Quote {
	quotes := make([]Quote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, Calculate(row.BasePriceCents, row.Selections, row.Options, row.Quantity))
	}
	return quotes
}

// ApplyTo recomputes an entry's denormalized modifier sum from the catalog.
// Returns a copy; the stored value is never hand-edited.
func ApplyTo(sel domain.Customization, options []domain.CustomizationOption) domain.Customization {
	out := sel.Clone()
	out.PriceModifierCents = 0
	if opt := domain.FindOption(options, sel.OptionID); opt != nil {
		for _, choiceID := range sel.ChoiceIDs {
			if choice := opt.Choice(choiceID); choice != nil {
				out.PriceModifierCents += choice.PriceModifierCents
			}
		}
	}
	return out
}
