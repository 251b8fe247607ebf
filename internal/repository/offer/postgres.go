package offer

import (
	"context"
	"errors"

	"citimart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const offerColumns = `id::text, code, title, type, amount_cents, percent, min_purchase_cents,
       COALESCE(category, ''), flat_price_cents, valid_till`

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Offer, error) {
	const q = `
SELECT ` + offerColumns + `
FROM offers
WHERE code = $1
`
	var o domain.Offer
	err := r.pool.QueryRow(ctx, q, code).Scan(
		&o.ID, &o.Code, &o.Title, &o.Type, &o.AmountCents, &o.Percent, &o.MinPurchaseCents,
		&o.Category, &o.FlatPriceCents, &o.ValidTill,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) ListValid(ctx context.Context) ([]domain.Offer, error) {
	const q = `
SELECT ` + offerColumns + `
FROM offers
WHERE valid_till >= now()
ORDER BY valid_till
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := []domain.Offer{}
	for rows.Next() {
		var o domain.Offer
		if err := rows.Scan(
			&o.ID, &o.Code, &o.Title, &o.Type, &o.AmountCents, &o.Percent, &o.MinPurchaseCents,
			&o.Category, &o.FlatPriceCents, &o.ValidTill,
		); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}
