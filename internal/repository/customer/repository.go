package customer

import (
	"context"

	"citimart/internal/domain"
)

type Repository interface {
	// Create inserts the customer. ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}
