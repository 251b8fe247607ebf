package wishlist

import (
	"context"

	"citimart/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]Item, error) {
	const q = `
SELECT p.id::text, p.name, COALESCE(p.description, ''), COALESCE(p.category, ''),
       p.price_cents, p.discount_percent, p.sizes, p.images, p.stock, p.active, p.created_at,
       we.size, we.added_at
FROM wishlist_entries we
JOIN products p ON p.id = we.product_id
WHERE we.customer_id = $1
ORDER BY we.added_at, p.id
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.Product.ID,
			&it.Product.Name,
			&it.Product.Description,
			&it.Product.Category,
			&it.Product.PriceCents,
			&it.Product.DiscountPercent,
			&it.Product.Sizes,
			&it.Product.Images,
			&it.Product.Stock,
			&it.Product.Active,
			&it.Product.CreatedAt,
			&it.Size,
			&it.AddedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) Add(ctx context.Context, customerID, productID, size string) error {
	const q = `
INSERT INTO wishlist_entries (customer_id, product_id, size)
VALUES ($1, $2, $3)
ON CONFLICT (customer_id, product_id, size) DO NOTHING
`
	_, err := r.pool.Exec(ctx, q, customerID, productID, size)
	return err
}

func (r *postgresRepo) Remove(ctx context.Context, customerID, productID, size string) error {
	const q = `
DELETE FROM wishlist_entries
WHERE customer_id = $1 AND product_id = $2 AND size = $3
`
	cmd, err := r.pool.Exec(ctx, q, customerID, productID, size)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
