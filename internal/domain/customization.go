package domain

import "time"

// Customization is one entry per option the customer has touched.
// PriceModifierCents is denormalized by the price calculator and never
// hand-edited.
type Customization struct {
	OptionID           string   `json:"optionId"`
	ChoiceIDs          []string `json:"choiceIds"`
	CustomValue        string   `json:"customValue,omitempty"`
	PriceModifierCents int64    `json:"priceModifier"`
}

// Selects reports whether the entry currently selects the given choice.
func (c Customization) Selects(choiceID string) bool {
	for _, id := range c.ChoiceIDs {
		if id == choiceID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so order records never share slices with cart rows.
func (c Customization) Clone() Customization {
	out := c
	out.ChoiceIDs = append([]string(nil), c.ChoiceIDs...)
	return out
}

// CloneCustomizations deep-copies a selection set.
func CloneCustomizations(in []Customization) []Customization {
	if in == nil {
		return nil
	}
	out := make([]Customization, 0, len(in))
	for _, c := range in {
		out = append(out, c.Clone())
	}
	return out
}

// FrozenCustomization is a customization as recorded on an order: the same
// payload plus the transfer timestamp. Immutable once written.
type FrozenCustomization struct {
	Customization
	TransferredAt time.Time `json:"transferredAt"`
}
