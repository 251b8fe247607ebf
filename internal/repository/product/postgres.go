package product

import (
	"context"
	"errors"
	"io"
	"log"

	"citimart/internal/domain"
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

const productColumns = `id::text, name, COALESCE(description, ''), COALESCE(category, ''),
       price_cents, discount_percent, sizes, images, stock, active, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE active
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProductRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	row := r.pool.QueryRow(ctx, q, id)
	p, err := scanProductRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, category, price_cents, discount_percent, sizes, images, stock, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (name) DO UPDATE
SET description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    discount_percent = EXCLUDED.discount_percent,
    sizes = EXCLUDED.sizes,
    images = EXCLUDED.images,
    stock = EXCLUDED.stock,
    active = EXCLUDED.active
RETURNING ` + productColumns + `
`
	row := r.pool.QueryRow(ctx, q, p.Name, p.Description, p.Category, p.PriceCents, p.DiscountPercent, p.Sizes, p.Images, p.Stock, p.Active)
	out, err := scanProductRow(row)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%s error=%v", p.Name, err)
		return nil, err
	}
	return &out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProductRow(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.PriceCents,
		&p.DiscountPercent,
		&p.Sizes,
		&p.Images,
		&p.Stock,
		&p.Active,
		&p.CreatedAt,
	)
	return p, err
}
