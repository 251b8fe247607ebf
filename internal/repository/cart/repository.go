package cart

import (
	"context"
	"time"

	"citimart/internal/domain"
)

// Item is a cart line joined with its current product record. Unit prices are
// never stored on the line; they are resolved from the catalog at read time
// so a price change is reflected on the next fetch.
type Item struct {
	Product  domain.Product
	Size     string
	Quantity int
	AddedAt  time.Time
}

type Repository interface {
	// GetByCustomer returns the cart lines in insertion order. A customer
	// without a cart gets an empty slice, not an error.
	GetByCustomer(ctx context.Context, customerID string) ([]Item, error)
	// AddItem creates the (productID, size) line or folds the quantity into
	// an existing one.
	AddItem(ctx context.Context, customerID, productID, size string, quantity int) error
	// UpdateQuantity sets an existing line's quantity. ErrNotFound if the
	// line does not exist.
	UpdateQuantity(ctx context.Context, customerID, productID, size string, quantity int) error
	// RemoveItem deletes the line. ErrNotFound if it does not exist.
	RemoveItem(ctx context.Context, customerID, productID, size string) error
	// Clear removes every line for the customer.
	Clear(ctx context.Context, customerID string) error
}
