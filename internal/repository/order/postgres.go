package order

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

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	out := o
	err = tx.QueryRow(ctx, `
INSERT INTO orders (number, customer, delivery, payment_method, items_total_cents, delivery_cost_cents, total_cents, currency, estimated_delivery)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id::text, created_at
`, o.Number, o.CustomerInfo, o.DeliveryInfo, o.PaymentMethod, o.ItemsTotalCents,
		o.DeliveryCostCents, o.TotalCents, o.Currency, o.EstimatedDelivery).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Printf("order repo: create number=%s conflict", o.Number)
			return nil, domain.ErrConflict
		}
		r.logger.Printf("order repo: create number=%s error=%v", o.Number, err)
		return nil, err
	}

	out.Items = make([]domain.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		stored := item
		stored.OrderID = out.ID
		err := tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents, total_price_cents, currency, customizations)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id::text
`, out.ID, item.ProductID, item.Quantity, item.UnitPriceCents, item.TotalPriceCents,
			item.Currency, item.Customizations).Scan(&stored.ID)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, stored)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s number=%s items=%d", out.ID, out.Number, len(out.Items))
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, number, customer, delivery, payment_method, items_total_cents, delivery_cost_cents, total_cents, currency, estimated_delivery, created_at
FROM orders
WHERE id = $1
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(&o.ID, &o.Number, &o.CustomerInfo, &o.DeliveryInfo,
		&o.PaymentMethod, &o.ItemsTotalCents, &o.DeliveryCostCents, &o.TotalCents,
		&o.Currency, &o.EstimatedDelivery, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `
SELECT id::text, order_id::text, product_id::text, quantity, unit_price_cents, total_price_cents, currency, customizations
FROM order_items
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.UnitPriceCents, &item.TotalPriceCents, &item.Currency, &item.Customizations); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}
