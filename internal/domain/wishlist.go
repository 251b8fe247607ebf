package domain

import "time"

// WishlistEntry is an independent (customerID, productID, size) aggregate.
// Its only relation to the cart is the move-to-cart flow.
type WishlistEntry struct {
	CustomerID string    `json:"customerId"`
	ProductID  string    `json:"productId"`
	Size       string    `json:"size"`
	AddedAt    time.Time `json:"addedAt"`
}
