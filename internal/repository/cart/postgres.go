package cart

import (
	"context"
	"errors"
	"io"
	"log"

	"wreathworks/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const itemColumns = `
id::text, session_id, customer_id, product_id::text, quantity, unit_price_cents, total_price_cents,
currency, COALESCE(price_breakdown, '[]'::jsonb), created_at, updated_at
`

func (r *postgresRepo) CreateItem(ctx context.Context, in CreateItemInput) (*domain.CartItem, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	total := in.UnitPriceCents * int64(in.Quantity)
	var itemID string
	err = tx.QueryRow(ctx, `
INSERT INTO cart_items (session_id, customer_id, product_id, quantity, unit_price_cents, total_price_cents, currency, price_breakdown)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id::text
`, in.SessionID, in.CustomerID, in.ProductID, in.Quantity, in.UnitPriceCents, total, in.Currency, in.PriceBreakdown).Scan(&itemID)
	if err != nil {
		return nil, mapWriteError(err)
	}

	if err := replaceCustomizations(ctx, tx, itemID, in.Customizations); err != nil {
		return nil, mapWriteError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetItem(ctx, in.SessionID, itemID)
}

func (r *postgresRepo) GetItem(ctx context.Context, sessionID, itemID string) (*domain.CartItem, error) {
	const q = `
SELECT ` + itemColumns + `
FROM cart_items
WHERE session_id = $1 AND id = $2
`
	var item domain.CartItem
	if err := r.scanItem(r.pool.QueryRow(ctx, q, sessionID, itemID), &item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadCustomizations(ctx, []*domain.CartItem{&item}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	const q = `
SELECT ` + itemColumns + `
FROM cart_items
WHERE session_id = $1
ORDER BY created_at ASC
`
	return r.queryItems(ctx, q, sessionID)
}

func (r *postgresRepo) ListByIDs(ctx context.Context, sessionID string, ids []string) ([]domain.CartItem, error) {
	const q = `
SELECT ` + itemColumns + `
FROM cart_items
WHERE session_id = $1 AND id = ANY($2::uuid[])
ORDER BY created_at ASC
`
	return r.queryItems(ctx, q, sessionID, ids)
}

func (r *postgresRepo) UpdateItem(ctx context.Context, sessionID, itemID string, in UpdateItemInput) (*domain.CartItem, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	total := in.UnitPriceCents * int64(in.Quantity)
	cmd, err := tx.Exec(ctx, `
UPDATE cart_items
SET quantity = $1, unit_price_cents = $2, total_price_cents = $3, price_breakdown = $4, updated_at = now()
WHERE session_id = $5 AND id = $6
`, in.Quantity, in.UnitPriceCents, total, in.PriceBreakdown, sessionID, itemID)
	if err != nil {
		return nil, mapWriteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_item_customizations WHERE cart_item_id = $1`, itemID); err != nil {
		return nil, err
	}
	if err := replaceCustomizations(ctx, tx, itemID, in.Customizations); err != nil {
		return nil, mapWriteError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetItem(ctx, sessionID, itemID)
}

func (r *postgresRepo) DeleteItem(ctx context.Context, sessionID, itemID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE session_id = $1 AND id = $2
`, sessionID, itemID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItems removes transferred items and their customization child rows.
// Called best-effort after order creation; the caller logs failures instead
// of propagating them.
func (r *postgresRepo) DeleteItems(ctx context.Context, ids []string) (CleanupResult, error) {
	var res CleanupResult
	if len(ids) == 0 {
		return res, nil
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return res, err
	}
	defer tx.Rollback(ctx)

	custCmd, err := tx.Exec(ctx, `
DELETE FROM cart_item_customizations
WHERE cart_item_id = ANY($1::uuid[])
`, ids)
	if err != nil {
		return res, err
	}
	itemCmd, err := tx.Exec(ctx, `
DELETE FROM cart_items
WHERE id = ANY($1::uuid[])
`, ids)
	if err != nil {
		return res, err
	}
	if err := tx.Commit(ctx); err != nil {
		return res, err
	}
	res.RemovedCustomizations = int(custCmd.RowsAffected())
	res.RemovedItems = int(itemCmd.RowsAffected())
	return res, nil
}

func (r *postgresRepo) queryItems(ctx context.Context, q string, args ...interface{}) ([]domain.CartItem, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("cart repo: query error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := r.scanItem(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.CartItem, len(items))
	for i := range items {
		refs[i] = &items[i]
	}
	if err := r.loadCustomizations(ctx, refs); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) scanItem(row pgx.Row, item *domain.CartItem) error {
	return row.Scan(
		&item.ID,
		&item.SessionID,
		&item.CustomerID,
		&item.ProductID,
		&item.Quantity,
		&item.UnitPriceCents,
		&item.TotalPriceCents,
		&item.Currency,
		&item.PriceBreakdown,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
}

func (r *postgresRepo) loadCustomizations(ctx context.Context, items []*domain.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, 0, len(items))
	byID := make(map[string]*domain.CartItem, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		byID[item.ID] = item
	}

	const q = `
SELECT cart_item_id::text, option_id, choice_ids, COALESCE(custom_value, ''), price_modifier_cents
FROM cart_item_customizations
WHERE cart_item_id = ANY($1::uuid[])
ORDER BY cart_item_id, position ASC
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID string
			c      domain.Customization
		)
		if err := rows.Scan(&itemID, &c.OptionID, &c.ChoiceIDs, &c.CustomValue, &c.PriceModifierCents); err != nil {
			return err
		}
		if item, ok := byID[itemID]; ok {
			item.Customizations = append(item.Customizations, c)
		}
	}
	return rows.Err()
}

func replaceCustomizations(ctx context.Context, tx pgx.Tx, itemID string, customizations []domain.Customization) error {
	for i, c := range customizations {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_item_customizations (cart_item_id, option_id, choice_ids, custom_value, price_modifier_cents, position)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
`, itemID, c.OptionID, c.ChoiceIDs, c.CustomValue, c.PriceModifierCents, i); err != nil {
			return err
		}
	}
	return nil
}

// mapWriteError translates a unique violation into the retryable conflict
// sentinel so callers can re-fetch and retry.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrConflict
	}
	return err
}
