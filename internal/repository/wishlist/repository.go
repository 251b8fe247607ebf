package wishlist

import (
	"context"
	"time"

	"citimart/internal/domain"
)

// Item is a wishlist entry joined with its product record.
type Item struct {
	Product domain.Product
	Size    string
	AddedAt time.Time
}

type Repository interface {
	// ListByCustomer returns entries in insertion order; empty slice when
	// the customer has no wishlist.
	ListByCustomer(ctx context.Context, customerID string) ([]Item, error)
	// Add records the (productID, size) tuple; duplicates are no-ops.
	Add(ctx context.Context, customerID, productID, size string) error
	// Remove deletes the tuple. ErrNotFound if it was not present.
	Remove(ctx context.Context, customerID, productID, size string) error
}
