package order

import (
	"context"
	"encoding/json"

	"citimart/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO orders (customer_id, items, total_cents, discount_cents, delivery_fee_cents, final_cents,
                    applied_offer, phone, address, payment_method, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id::text, created_at
`
	out := o
	if err := r.pool.QueryRow(ctx, q,
		o.CustomerID, items, o.TotalCents, o.DiscountCents, o.DeliveryFeeCents, o.FinalCents,
		o.AppliedOffer, o.Phone, o.Address, o.PaymentMethod, o.Status,
	).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, customer_id::text, items, total_cents, discount_cents, delivery_fee_cents, final_cents,
       COALESCE(applied_offer, ''), COALESCE(phone, ''), COALESCE(address, ''), payment_method, status, created_at
FROM orders
WHERE customer_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		var items []byte
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &items, &o.TotalCents, &o.DiscountCents, &o.DeliveryFeeCents, &o.FinalCents,
			&o.AppliedOffer, &o.Phone, &o.Address, &o.PaymentMethod, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
