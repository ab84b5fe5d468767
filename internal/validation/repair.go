package validation

import (
	"fmt"

	"wreathworks/internal/domain"
)

// RemovedEntry records one customization dropped during integrity repair,
// kept for the order audit trail.
type RemovedEntry struct {
	OptionID string `json:"optionId"`
	Reason   string `json:"reason"`
}

// Repair strips invalid entries from a persisted selection set: entries for
// unknown options, entries selecting unknown choices, and dependent entries
// whose dependency is unmet. It never mutates its input and it is
// idempotent: repairing an already-repaired set removes nothing.
//
// Removal can break another entry's dependency, so the pass iterates until
// no entry is dropped.
func Repair(selections []domain.Customization, options []domain.CustomizationOption) ([]domain.Customization, []RemovedEntry) {
	fixed := domain.CloneCustomizations(selections)
	var removed []RemovedEntry

	for {
		kept := fixed[:0]
		dropped := false
		for _, sel := range fixed {
			if reason := invalidReason(sel, fixed, options); reason != "" {
				removed = append(removed, RemovedEntry{OptionID: sel.OptionID, Reason: reason})
				dropped = true
				continue
			}
			kept = append(kept, sel)
		}
		fixed = kept
		if !dropped {
			break
		}
	}
	return fixed, removed
}

func invalidReason(sel domain.Customization, selections []domain.Customization, options []domain.CustomizationOption) string {
	opt := domain.FindOption(options, sel.OptionID)
	if opt == nil {
		return "option no longer exists in catalog"
	}
	for _, choiceID := range sel.ChoiceIDs {
		if opt.Choice(choiceID) == nil {
			return fmt.Sprintf("choice %s no longer exists", choiceID)
		}
	}
	if len(sel.ChoiceIDs) > 0 && opt.DependsOn != nil && !dependencySatisfied(selections, *opt.DependsOn) {
		return fmt.Sprintf("dependency on %s is not satisfied", opt.DependsOn.OptionID)
	}
	return ""
}

// MissingRequired reports independent required options that a repaired
// selection set leaves unsatisfied. A non-empty result means the repair has
// no safe default and order creation must fail.
func MissingRequired(selections []domain.Customization, options []domain.CustomizationOption) []string {
	var missing []string
	for _, opt := range options {
		if !opt.Required || opt.DependsOn != nil {
			continue
		}
		if sel := selectionFor(selections, opt.ID); sel == nil || len(sel.ChoiceIDs) == 0 {
			missing = append(missing, opt.ID)
		}
	}
	return missing
}
