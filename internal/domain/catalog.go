package domain

// OptionType is the closed set of customization axes a product can carry.
// Rows with a type we do not know parse to OptionTypeUnknown instead of
// flowing through as raw strings.
type OptionType string

const (
	OptionTypeSize        OptionType = "size"
	OptionTypeRibbon      OptionType = "ribbon"
	OptionTypeRibbonColor OptionType = "ribbon_color"
	OptionTypeRibbonText  OptionType = "ribbon_text"
	OptionTypeFlowers     OptionType = "flowers"
	OptionTypeMessage     OptionType = "message"
	OptionTypeUnknown     OptionType = "unknown"
)

// ParseOptionType maps a stored type string onto the closed enumeration.
func ParseOptionType(s string) OptionType {
	switch OptionType(s) {
	case OptionTypeSize, OptionTypeRibbon, OptionTypeRibbonColor,
		OptionTypeRibbonText, OptionTypeFlowers, OptionTypeMessage:
		return OptionType(s)
	default:
		return OptionTypeUnknown
	}
}

// Dependency makes an option meaningful only while the referenced option
// currently selects one of RequiredChoiceIDs.
type Dependency struct {
	OptionID          string   `json:"optionId"`
	RequiredChoiceIDs []string `json:"requiredChoiceIds"`
}

// AllowsChoice reports whether the given selected choice satisfies the dependency.
func (d Dependency) AllowsChoice(choiceID string) bool {
	for _, id := range d.RequiredChoiceIDs {
		if id == choiceID {
			return true
		}
	}
	return false
}

// CustomizationOption defines one axis of configuration for a product.
type CustomizationOption struct {
	ID            string                `json:"id"`
	ProductID     string                `json:"productId"`
	Type          OptionType            `json:"type"`
	Name          map[string]string     `json:"name"`
	Description   map[string]string     `json:"description,omitempty"`
	Required      bool                  `json:"required"`
	MinSelections int                   `json:"minSelections"`
	MaxSelections int                   `json:"maxSelections"` // 0 means exactly one
	DependsOn     *Dependency           `json:"dependsOn,omitempty"`
	Choices       []CustomizationChoice `json:"choices"`
}

// Choice returns the choice with the given id, or nil when unknown.
func (o CustomizationOption) Choice(choiceID string) *CustomizationChoice {
	for i := range o.Choices {
		if o.Choices[i].ID == choiceID {
			return &o.Choices[i]
		}
	}
	return nil
}

// CustomizationChoice is one concrete value of an option.
type CustomizationChoice struct {
	ID                 string            `json:"id"`
	Value              string            `json:"value"`
	Label              map[string]string `json:"label"`
	PriceModifierCents int64             `json:"priceModifierCents"`
	Available          bool              `json:"available"`
	AllowCustomInput   bool              `json:"allowCustomInput"`
	MaxLength          int               `json:"maxLength,omitempty"`
}

// FindOption returns the option with the given id from a catalog slice.
func FindOption(options []CustomizationOption, optionID string) *CustomizationOption {
	for i := range options {
		if options[i].ID == optionID {
			return &options[i]
		}
	}
	return nil
}
