package cart

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

func (r *postgresRepo) GetByCustomer(ctx context.Context, customerID string) ([]Item, error) {
	const q = `
SELECT p.id::text, p.name, COALESCE(p.description, ''), COALESCE(p.category, ''),
       p.price_cents, p.discount_percent, p.sizes, p.images, p.stock, p.active, p.created_at,
       cl.size, cl.quantity, cl.added_at
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.customer_id = $1
ORDER BY cl.added_at, p.id
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
			&it.Quantity,
			&it.AddedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) AddItem(ctx context.Context, customerID, productID, size string, quantity int) error {
	const q = `
INSERT INTO cart_lines (customer_id, product_id, size, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (customer_id, product_id, size)
DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
`
	_, err := r.pool.Exec(ctx, q, customerID, productID, size, quantity)
	return err
}

func (r *postgresRepo) UpdateQuantity(ctx context.Context, customerID, productID, size string, quantity int) error {
	const q = `
UPDATE cart_lines
SET quantity = $4
WHERE customer_id = $1 AND product_id = $2 AND size = $3
`
	cmd, err := r.pool.Exec(ctx, q, customerID, productID, size, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) RemoveItem(ctx context.Context, customerID, productID, size string) error {
	const q = `
DELETE FROM cart_lines
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

func (r *postgresRepo) Clear(ctx context.Context, customerID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE customer_id = $1`, customerID)
	return err
}
