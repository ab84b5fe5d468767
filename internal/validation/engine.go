// Package validation decides which customization combinations are legal.
// Validate is pure and accumulates every problem instead of stopping at the
// first, so the UI can surface all of them at once.
package validation

import (
	"regexp"
	"strings"

	"wreathworks/internal/domain"
	"wreathworks/internal/i18n"
)

// MinCustomTextLength is the shortest custom text accepted after trimming.
const MinCustomTextLength = 2

// nearLimitMargin is how close (in characters) a custom text may get to its
// MaxLength before a non-blocking warning fires.
const nearLimitMargin = 5

// denyPattern rejects markup and script-injection shapes in free text.
var denyPattern = regexp.MustCompile(`(?i)<\s*/?\s*script|javascript:|on[a-z]+\s*=|[<>]`)

// Issue is one field-level validation finding. Code is stable and
// machine-readable (e.g. "ribbonColorRequired"); Message is localized.
type Issue struct {
	OptionID string `json:"optionId"`
	ChoiceID string `json:"choiceId,omitempty"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// Options controls a validation pass.
type Options struct {
	Locale string
	// Strict promotes warnings to errors. Used for final checkout
	// validation, not live editing feedback.
	Strict bool
}

// Result is the outcome of one validation pass.
type Result struct {
	IsValid                    bool    `json:"isValid"`
	Errors                     []Issue `json:"errors"`
	Warnings                   []Issue `json:"warnings"`
	HasDependentOptionSelected bool    `json:"hasDependentOptionSelected"`
}

// Validate checks a candidate selection set against a product's catalog
// options. It is pure: identical inputs always yield identical results.
func Validate(selections []domain.Customization, options []domain.CustomizationOption, opts Options) Result {
	res := Result{}
	loc := opts.Locale

	// Rule 1: required options. Independent required options must always
	// have a selection; dependent required options only once their
	// dependency is currently satisfied.
	for _, opt := range options {
		if !opt.Required {
			continue
		}
		if opt.DependsOn != nil && !dependencySatisfied(selections, *opt.DependsOn) {
			continue
		}
		if sel := selectionFor(selections, opt.ID); sel == nil || len(sel.ChoiceIDs) == 0 {
			res.Errors = append(res.Errors, Issue{
				OptionID: opt.ID,
				Code:     fieldCode(opt.ID, "Required"),
				Message:  i18n.Message(loc, i18n.CodeRequired, optionName(opt, loc)),
			})
		}
	}

	for _, sel := range selections {
		opt := domain.FindOption(options, sel.OptionID)
		if opt == nil {
			// Stale or forged client state referencing an option the
			// catalog does not know.
			res.Errors = append(res.Errors, Issue{
				OptionID: sel.OptionID,
				Code:     fieldCode(sel.OptionID, "Invalid"),
				Message:  i18n.Message(loc, i18n.CodeInvalidSelection, strings.Join(sel.ChoiceIDs, ","), sel.OptionID),
			})
			continue
		}
		if len(sel.ChoiceIDs) > 0 && opt.DependsOn != nil {
			res.HasDependentOptionSelected = true
		}

		// Rule 2: choice membership and availability.
		for _, choiceID := range sel.ChoiceIDs {
			choice := opt.Choice(choiceID)
			if choice == nil || !choice.Available {
				res.Errors = append(res.Errors, Issue{
					OptionID: opt.ID,
					ChoiceID: choiceID,
					Code:     fieldCode(opt.ID, "InvalidSelection"),
					Message:  i18n.Message(loc, i18n.CodeInvalidSelection, choiceID, optionName(*opt, loc)),
				})
			}
		}

		// Selection-count bounds. MaxSelections of 0 means exactly one.
		maxSel := opt.MaxSelections
		if maxSel == 0 {
			maxSel = 1
		}
		if len(sel.ChoiceIDs) > maxSel {
			res.Errors = append(res.Errors, Issue{
				OptionID: opt.ID,
				Code:     fieldCode(opt.ID, "TooManySelections"),
				Message:  i18n.Message(loc, i18n.CodeInvalidSelection, strings.Join(sel.ChoiceIDs, ","), optionName(*opt, loc)),
			})
		}
		if opt.MinSelections > 0 && len(sel.ChoiceIDs) > 0 && len(sel.ChoiceIDs) < opt.MinSelections {
			res.Errors = append(res.Errors, Issue{
				OptionID: opt.ID,
				Code:     fieldCode(opt.ID, "TooFewSelections"),
				Message:  i18n.Message(loc, i18n.CodeRequired, optionName(*opt, loc)),
			})
		}

		// Rule 3: dependency. A selected dependent option is only valid
		// while the referenced option holds one of the qualifying choices.
		if len(sel.ChoiceIDs) > 0 && opt.DependsOn != nil && !dependencySatisfied(selections, *opt.DependsOn) {
			dependedName := opt.DependsOn.OptionID
			if depended := domain.FindOption(options, opt.DependsOn.OptionID); depended != nil {
				dependedName = optionName(*depended, loc)
			}
			res.Errors = append(res.Errors, Issue{
				OptionID: opt.ID,
				Code:     fieldCode(opt.ID, "DependencyUnmet"),
				Message:  i18n.Message(loc, i18n.CodeDependencyUnmet, optionName(*opt, loc), dependedName),
			})
		}

		// Rule 4: custom text, only for choices that allow it.
		for _, choiceID := range sel.ChoiceIDs {
			choice := opt.Choice(choiceID)
			if choice == nil || !choice.AllowCustomInput {
				continue
			}
			errs, warns := checkCustomText(*opt, *choice, sel.CustomValue, loc)
			res.Errors = append(res.Errors, errs...)
			res.Warnings = append(res.Warnings, warns...)
		}
	}

	// Rule 5: strict mode promotes warnings to errors.
	if opts.Strict && len(res.Warnings) > 0 {
		res.Errors = append(res.Errors, res.Warnings...)
		res.Warnings = nil
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

func checkCustomText(opt domain.CustomizationOption, choice domain.CustomizationChoice, value, loc string) (errs, warns []Issue) {
	name := optionName(opt, loc)
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "":
		errs = append(errs, Issue{
			OptionID: opt.ID,
			ChoiceID: choice.ID,
			Code:     fieldCode(opt.ID, "Empty"),
			Message:  i18n.Message(loc, i18n.CodeCustomTextEmpty, name),
		})
		return errs, warns
	case len([]rune(trimmed)) < MinCustomTextLength:
		errs = append(errs, Issue{
			OptionID: opt.ID,
			ChoiceID: choice.ID,
			Code:     fieldCode(opt.ID, "TooShort"),
			Message:  i18n.Message(loc, i18n.CodeCustomTextShort, name, MinCustomTextLength),
		})
	}

	if choice.MaxLength > 0 {
		n := len([]rune(trimmed))
		switch {
		case n >= choice.MaxLength:
			errs = append(errs, Issue{
				OptionID: opt.ID,
				ChoiceID: choice.ID,
				Code:     fieldCode(opt.ID, "TooLong"),
				Message:  i18n.Message(loc, i18n.CodeCustomTextLong, name, choice.MaxLength),
			})
		case n >= choice.MaxLength-nearLimitMargin:
			warns = append(warns, Issue{
				OptionID: opt.ID,
				ChoiceID: choice.ID,
				Code:     fieldCode(opt.ID, "NearLimit"),
				Message:  i18n.Message(loc, i18n.CodeCustomTextNearMax, name, choice.MaxLength),
			})
		}
	}

	if denyPattern.MatchString(trimmed) {
		errs = append(errs, Issue{
			OptionID: opt.ID,
			ChoiceID: choice.ID,
			Code:     fieldCode(opt.ID, "InvalidContent"),
			Message:  i18n.Message(loc, i18n.CodeCustomTextInvalid, name),
		})
	}
	return errs, warns
}

// dependencySatisfied reports whether the depended-on option currently
// selects one of the qualifying choices.
func dependencySatisfied(selections []domain.Customization, dep domain.Dependency) bool {
	sel := selectionFor(selections, dep.OptionID)
	if sel == nil {
		return false
	}
	for _, choiceID := range sel.ChoiceIDs {
		if dep.AllowsChoice(choiceID) {
			return true
		}
	}
	return false
}

func selectionFor(selections []domain.Customization, optionID string) *domain.Customization {
	for i := range selections {
		if selections[i].OptionID == optionID {
			return &selections[i]
		}
	}
	return nil
}

func optionName(opt domain.CustomizationOption, locale string) string {
	if name := i18n.Localized(opt.Name, locale); name != "" {
		return name
	}
	return opt.ID
}

// fieldCode builds a stable camelCase code from a snake_case option id,
// e.g. ("ribbon_color", "Required") -> "ribbonColorRequired".
func fieldCode(optionID, suffix string) string {
	parts := strings.FieldsFunc(optionID, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	for i, p := range parts {
		if i == 0 {
			b.WriteString(strings.ToLower(p))
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		if len(p) > 1 {
			b.WriteString(strings.ToLower(p[1:]))
		}
	}
	b.WriteString(suffix)
	return b.String()
}
