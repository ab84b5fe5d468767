package validation

import (
	"reflect"
	"testing"

	"wreathworks/internal/domain"
)

func TestRepair_NothingToRemove(t *testing.T) {
	selections := []domain.Customization{
		sel("size", "size_120"),
		sel("ribbon", "ribbon_yes"),
		sel("ribbon_color", "color_black"),
	}
	fixed, removed := Repair(selections, wreathOptions())

	if len(removed) != 0 {
		t.Fatalf("expected nothing removed, got %v", removed)
	}
	if !reflect.DeepEqual(fixed, selections) {
		t.Fatalf("expected selections unchanged, got %v", fixed)
	}
}

func TestRepair_RemovesUnknownOption(t *testing.T) {
	selections := []domain.Customization{
		sel("size", "size_120"),
		sel("glitter", "extra"),
	}
	fixed, removed := Repair(selections, wreathOptions())

	if len(fixed) != 1 || fixed[0].OptionID != "size" {
		t.Fatalf("expected only size to survive, got %v", fixed)
	}
	if len(removed) != 1 || removed[0].OptionID != "glitter" {
		t.Fatalf("expected glitter removal, got %v", removed)
	}
}

func TestRepair_RemovesUnknownChoice(t *testing.T) {
	selections := []domain.Customization{
		sel("size", "size_120"),
		sel("flowers", "lilies", "orchids"),
	}
	fixed, removed := Repair(selections, wreathOptions())

	if len(fixed) != 1 {
		t.Fatalf("expected flowers entry removed, got %v", fixed)
	}
	if len(removed) != 1 || removed[0].OptionID != "flowers" {
		t.Fatalf("expected flowers removal, got %v", removed)
	}
}

func TestRepair_CascadesDependencyRemoval(t *testing.T) {
	// The ribbon entry selects a choice that no longer exists; dropping it
	// must also drop the color and text that depended on it.
	selections := []domain.Customization{
		sel("size", "size_120"),
		sel("ribbon", "ribbon_deluxe"),
		sel("ribbon_color", "color_black"),
		{OptionID: "ribbon_text", ChoiceIDs: []string{"text_custom"}, CustomValue: "rest in peace"},
	}
	fixed, removed := Repair(selections, wreathOptions())

	if len(fixed) != 1 || fixed[0].OptionID != "size" {
		t.Fatalf("expected only size to survive, got %v", fixed)
	}
	if len(removed) != 3 {
		t.Fatalf("expected 3 removals, got %v", removed)
	}
}

func TestRepair_DoesNotMutateInput(t *testing.T) {
	selections := []domain.Customization{
		sel("size", "size_120"),
		sel("glitter", "extra"),
	}
	Repair(selections, wreathOptions())

	if len(selections) != 2 || selections[1].OptionID != "glitter" {
		t.Fatalf("expected input untouched, got %v", selections)
	}
}

func TestRepair_Idempotent(t *testing.T) {
	selections := []domain.Customization{
		sel("size", "size_120"),
		sel("ribbon", "ribbon_no"),
		sel("ribbon_color", "color_black"),
	}
	once, removed := Repair(selections, wreathOptions())
	if len(removed) == 0 {
		t.Fatalf("expected first pass to remove the dangling color")
	}

	twice, removedAgain := Repair(once, wreathOptions())
	if len(removedAgain) != 0 {
		t.Fatalf("expected second pass to remove nothing, got %v", removedAgain)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected stable result, got %v vs %v", once, twice)
	}
}

func TestMissingRequired(t *testing.T) {
	missing := MissingRequired(nil, wreathOptions())
	if len(missing) != 1 || missing[0] != "size" {
		t.Fatalf("expected [size], got %v", missing)
	}

	// Dependent required options never count: with no ribbon selected
	// there is nothing for color or text to satisfy.
	missing = MissingRequired([]domain.Customization{sel("size", "size_120")}, wreathOptions())
	if len(missing) != 0 {
		t.Fatalf("expected no missing options, got %v", missing)
	}
}
