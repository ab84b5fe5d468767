package catalog

import (
	"context"
	"errors"
	"io"
	"log"

	"wreathworks/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id::text, key, sku, name, COALESCE(description, '{}'::jsonb), base_price_cents, currency, available, created_at
FROM products
WHERE available
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("catalog repo: list products error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Key, &p.SKU, &p.Name, &p.Description, &p.BasePriceCents, &p.Currency, &p.Available, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("catalog repo: list products rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, key, sku, name, COALESCE(description, '{}'::jsonb), base_price_cents, currency, available, created_at
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Key, &p.SKU, &p.Name, &p.Description, &p.BasePriceCents, &p.Currency, &p.Available, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: get product id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

// GetCustomizationOptions loads the option and choice rows for a product and
// converts them into the strict model at this boundary. A row that fails
// conversion is dropped with a log line rather than passed through loosely
// typed.
func (r *postgresRepo) GetCustomizationOptions(ctx context.Context, productID string) ([]domain.CustomizationOption, error) {
	const optionsQuery = `
SELECT id, type, name, COALESCE(description, '{}'::jsonb), required, min_selections, max_selections,
       COALESCE(depends_on_option, ''), COALESCE(depends_on_choices, '[]'::jsonb)
FROM customization_options
WHERE product_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, optionsQuery, productID)
	if err != nil {
		r.logger.Printf("catalog repo: options product_id=%s error=%v", productID, err)
		return nil, err
	}
	defer rows.Close()

	var options []domain.CustomizationOption
	for rows.Next() {
		var (
			opt            domain.CustomizationOption
			rawType        string
			dependsOption  string
			dependsChoices []string
		)
		if err := rows.Scan(&opt.ID, &rawType, &opt.Name, &opt.Description, &opt.Required,
			&opt.MinSelections, &opt.MaxSelections, &dependsOption, &dependsChoices); err != nil {
			r.logger.Printf("catalog repo: option row product_id=%s error=%v", productID, err)
			continue
		}
		opt.ProductID = productID
		opt.Type = domain.ParseOptionType(rawType)
		if dependsOption != "" {
			opt.DependsOn = &domain.Dependency{OptionID: dependsOption, RequiredChoiceIDs: dependsChoices}
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const choicesQuery = `
SELECT option_id, id, value, label, price_modifier_cents, available, allow_custom_input, COALESCE(max_length, 0)
FROM customization_choices
WHERE product_id = $1
ORDER BY option_id, position ASC
`
	choiceRows, err := r.pool.Query(ctx, choicesQuery, productID)
	if err != nil {
		r.logger.Printf("catalog repo: choices product_id=%s error=%v", productID, err)
		return nil, err
	}
	defer choiceRows.Close()

	byOption := make(map[string][]domain.CustomizationChoice)
	for choiceRows.Next() {
		var (
			optionID string
			choice   domain.CustomizationChoice
		)
		if err := choiceRows.Scan(&optionID, &choice.ID, &choice.Value, &choice.Label,
			&choice.PriceModifierCents, &choice.Available, &choice.AllowCustomInput, &choice.MaxLength); err != nil {
			r.logger.Printf("catalog repo: choice row product_id=%s error=%v", productID, err)
			continue
		}
		byOption[optionID] = append(byOption[optionID], choice)
	}
	if err := choiceRows.Err(); err != nil {
		return nil, err
	}

	for i := range options {
		options[i].Choices = byOption[options[i].ID]
	}
	return options, nil
}
