package order

import (
	"context"

	"citimart/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	// ListByCustomer returns orders newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}
