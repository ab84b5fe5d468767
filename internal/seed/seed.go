package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Key            string
	SKU            string
	Name           map[string]string
	Description    map[string]string
	BasePriceCents int64
	Currency       string
	Options        []optionSeed
}

type optionSeed struct {
	ID             string
	Type           string
	Name           map[string]string
	Required       bool
	MaxSelections  int
	DependsOn      string
	DependsChoices []string
	Choices        []choiceSeed
}

type choiceSeed struct {
	ID               string
	Value            string
	Label            map[string]string
	PriceCents       int64
	AllowCustomInput bool
	MaxLength        int
}

// Apply inserts a demonstration wreath catalog. Idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range wreaths() {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Key, err)
		}
	}
	return nil
}

func wreaths() []productSeed {
	return []productSeed{
		{
			Key:            "classic-memorial-wreath",
			SKU:            "WREATH-CLASSIC",
			Name:           map[string]string{"en": "Classic Memorial Wreath", "cs": "Klasický smuteční věnec"},
			Description:    map[string]string{"en": "Traditional round wreath of seasonal greenery"},
			BasePriceCents: 149900,
			Currency:       "CZK",
			Options: []optionSeed{
				{
					ID:       "size",
					Type:     "size",
					Name:     map[string]string{"en": "Size", "cs": "Velikost"},
					Required: true,
					Choices: []choiceSeed{
						{ID: "size_120", Value: "120", Label: map[string]string{"en": "120 cm", "cs": "120 cm"}},
						{ID: "size_150", Value: "150", Label: map[string]string{"en": "150 cm", "cs": "150 cm"}, PriceCents: 50000},
					},
				},
				{
					ID:       "ribbon",
					Type:     "ribbon",
					Name:     map[string]string{"en": "Ribbon", "cs": "Stuha"},
					Required: true,
					Choices: []choiceSeed{
						{ID: "ribbon_yes", Value: "yes", Label: map[string]string{"en": "With ribbon", "cs": "Se stuhou"}, PriceCents: 15000},
						{ID: "ribbon_no", Value: "no", Label: map[string]string{"en": "Without ribbon", "cs": "Bez stuhy"}},
					},
				},
				{
					ID:             "ribbon_color",
					Type:           "ribbon_color",
					Name:           map[string]string{"en": "Ribbon color", "cs": "Barva stuhy"},
					Required:       true,
					DependsOn:      "ribbon",
					DependsChoices: []string{"ribbon_yes"},
					Choices: []choiceSeed{
						{ID: "color_black", Value: "black", Label: map[string]string{"en": "Black", "cs": "Černá"}},
						{ID: "color_purple", Value: "purple", Label: map[string]string{"en": "Purple", "cs": "Fialová"}},
						{ID: "color_white", Value: "white", Label: map[string]string{"en": "White", "cs": "Bílá"}},
					},
				},
				{
					ID:             "ribbon_text",
					Type:           "ribbon_text",
					Name:           map[string]string{"en": "Ribbon text", "cs": "Text na stuze"},
					Required:       true,
					DependsOn:      "ribbon",
					DependsChoices: []string{"ribbon_yes"},
					Choices: []choiceSeed{
						{ID: "text_custom", Value: "custom", Label: map[string]string{"en": "Custom text", "cs": "Vlastní text"}, AllowCustomInput: true, MaxLength: 50},
					},
				},
				{
					ID:            "flowers",
					Type:          "flowers",
					Name:          map[string]string{"en": "Added flowers", "cs": "Přidané květiny"},
					MaxSelections: 3,
					Choices: []choiceSeed{
						{ID: "flowers_roses", Value: "roses", Label: map[string]string{"en": "White roses", "cs": "Bílé růže"}, PriceCents: 30000},
						{ID: "flowers_lilies", Value: "lilies", Label: map[string]string{"en": "Lilies", "cs": "Lilie"}, PriceCents: 35000},
						{ID: "flowers_carnations", Value: "carnations", Label: map[string]string{"en": "Carnations", "cs": "Karafiáty"}, PriceCents: 20000},
					},
				},
			},
		},
		{
			Key:            "heart-wreath",
			SKU:            "WREATH-HEART",
			Name:           map[string]string{"en": "Heart Wreath", "cs": "Věnec ve tvaru srdce"},
			Description:    map[string]string{"en": "Heart-shaped arrangement with fresh flowers"},
			BasePriceCents: 219900,
			Currency:       "CZK",
			Options: []optionSeed{
				{
					ID:       "size",
					Type:     "size",
					Name:     map[string]string{"en": "Size", "cs": "Velikost"},
					Required: true,
					Choices: []choiceSeed{
						{ID: "size_60", Value: "60", Label: map[string]string{"en": "60 cm"}},
						{ID: "size_80", Value: "80", Label: map[string]string{"en": "80 cm"}, PriceCents: 40000},
					},
				},
				{
					ID:   "message",
					Type: "message",
					Name: map[string]string{"en": "Card message", "cs": "Vzkaz na kartičce"},
					Choices: []choiceSeed{
						{ID: "message_custom", Value: "custom", Label: map[string]string{"en": "Custom message"}, AllowCustomInput: true, MaxLength: 120},
					},
				},
			},
		},
	}
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (key, sku, name, description, base_price_cents, currency, available)
VALUES ($1, $2, $3, $4, $5, $6, TRUE)
ON CONFLICT (key) DO UPDATE
SET sku = EXCLUDED.sku,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    base_price_cents = EXCLUDED.base_price_cents,
    currency = EXCLUDED.currency
RETURNING id::text
`
	var productID string
	if err := pool.QueryRow(ctx, q, p.Key, p.SKU, p.Name, p.Description, p.BasePriceCents, p.Currency).Scan(&productID); err != nil {
		return err
	}

	for pos, opt := range p.Options {
		if err := upsertOption(ctx, pool, productID, pos, opt); err != nil {
			return fmt.Errorf("option %s: %w", opt.ID, err)
		}
	}
	return nil
}

func upsertOption(ctx context.Context, pool *pgxpool.Pool, productID string, position int, opt optionSeed) error {
	var dependsChoices interface{}
	if len(opt.DependsChoices) > 0 {
		raw, err := json.Marshal(opt.DependsChoices)
		if err != nil {
			return err
		}
		dependsChoices = raw
	}
	var dependsOn interface{}
	if opt.DependsOn != "" {
		dependsOn = opt.DependsOn
	}

	const q = `
INSERT INTO customization_options (product_id, id, type, name, required, min_selections, max_selections, depends_on_option, depends_on_choices, position)
VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9)
ON CONFLICT (product_id, id) DO UPDATE
SET type = EXCLUDED.type,
    name = EXCLUDED.name,
    required = EXCLUDED.required,
    max_selections = EXCLUDED.max_selections,
    depends_on_option = EXCLUDED.depends_on_option,
    depends_on_choices = EXCLUDED.depends_on_choices,
    position = EXCLUDED.position
`
	if _, err := pool.Exec(ctx, q, productID, opt.ID, opt.Type, opt.Name, opt.Required,
		opt.MaxSelections, dependsOn, dependsChoices, position); err != nil {
		return err
	}

	for pos, choice := range opt.Choices {
		const cq = `
INSERT INTO customization_choices (product_id, option_id, id, value, label, price_modifier_cents, available, allow_custom_input, max_length, position)
VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, NULLIF($8, 0), $9)
ON CONFLICT (product_id, option_id, id) DO UPDATE
SET value = EXCLUDED.value,
    label = EXCLUDED.label,
    price_modifier_cents = EXCLUDED.price_modifier_cents,
    allow_custom_input = EXCLUDED.allow_custom_input,
    max_length = EXCLUDED.max_length,
    position = EXCLUDED.position
`
		if _, err := pool.Exec(ctx, cq, productID, opt.ID, choice.ID, choice.Value, choice.Label,
			choice.PriceCents, choice.AllowCustomInput, choice.MaxLength, pos); err != nil {
			return fmt.Errorf("choice %s: %w", choice.ID, err)
		}
	}
	return nil
}
