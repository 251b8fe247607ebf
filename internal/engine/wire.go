package engine

import (
	"citimart/internal/domain"
)

// Wire schemas for the cart/wishlist service. One typed struct per endpoint;
// no duck-typed field access.

type cartResponse struct {
	Items []cartItemPayload `json:"items"`
}

type cartItemPayload struct {
	Product  productPayload `json:"product"`
	Size     string         `json:"size"`
	Quantity int            `json:"quantity"`
}

type productPayload struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"priceCents"`
	Images     []string `json:"images,omitempty"`
}

type cartMutationRequest struct {
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
	Size       string `json:"size"`
	Quantity   int    `json:"quantity,omitempty"`
}

type wishlistMutationRequest struct {
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
	Size       string `json:"size,omitempty"`
}

type wishlistResponse struct {
	Items []wishlistItemPayload `json:"items"`
}

type wishlistItemPayload struct {
	Product productPayload `json:"product"`
	Size    string         `json:"size"`
}

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (r cartResponse) toCart(customerID string) domain.Cart {
	cart := domain.Cart{CustomerID: customerID}
	for _, item := range r.Items {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID:      item.Product.ID,
			Size:           item.Size,
			UnitPriceCents: item.Product.PriceCents,
			Quantity:       item.Quantity,
		})
	}
	return cart
}

func (r wishlistResponse) toEntries(customerID string) []domain.WishlistEntry {
	entries := make([]domain.WishlistEntry, 0, len(r.Items))
	for _, item := range r.Items {
		entries = append(entries, domain.WishlistEntry{
			CustomerID: customerID,
			ProductID:  item.Product.ID,
			Size:       item.Size,
		})
	}
	return entries
}
