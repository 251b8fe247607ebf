package customer

import (
	"context"
	"errors"
	"io"
	"log"

	"citimart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

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

const customerColumns = `id::text, name, email, password_hash, COALESCE(phone, ''), COALESCE(address, ''), created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (name, email, password_hash, phone, address)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + customerColumns + `
`
	row := r.pool.QueryRow(ctx, q, c.Name, c.Email, c.PasswordHash, c.Phone, c.Address)
	out, err := scanCustomer(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("customer repo: create email=%s error=%v", c.Email, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE email = $1
`
	return r.fetch(ctx, q, email)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE id = $1
`
	return r.fetch(ctx, q, id)
}

func (r *postgresRepo) fetch(ctx context.Context, q string, args ...any) (*domain.Customer, error) {
	out, err := scanCustomer(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Phone, &c.Address, &c.CreatedAt)
	return c, err
}
