package offer

import (
	"context"

	"citimart/internal/domain"
)

type Repository interface {
	// GetByCode looks up an offer by coupon code regardless of validity;
	// callers decide how to treat expiry.
	GetByCode(ctx context.Context, code string) (*domain.Offer, error)
	// ListValid returns offers whose valid_till has not passed.
	ListValid(ctx context.Context) ([]domain.Offer, error)
}
