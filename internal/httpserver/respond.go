package httpserver

import (
	"citimart/internal/domain"
	cartrepo "citimart/internal/repository/cart"
	wishlistrepo "citimart/internal/repository/wishlist"
	"github.com/gin-gonic/gin"
)

// Wire schemas shared with the storefront client. The cart and wishlist
// bodies carry the joined product record so the client can render and price
// lines without extra lookups.

type productPayload struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"priceCents"`
	Images     []string `json:"images,omitempty"`
}

type cartItemPayload struct {
	Product  productPayload `json:"product"`
	Size     string         `json:"size"`
	Quantity int            `json:"quantity"`
}

type cartResponse struct {
	Items []cartItemPayload `json:"items"`
}

type wishlistItemPayload struct {
	Product productPayload `json:"product"`
	Size    string         `json:"size"`
}

type wishlistResponse struct {
	Items []wishlistItemPayload `json:"items"`
}

func toProductPayload(p domain.Product) productPayload {
	return productPayload{
		ID:         p.ID,
		Name:       p.Name,
		PriceCents: p.EffectivePriceCents(),
		Images:     p.Images,
	}
}

func toCartResponse(items []cartrepo.Item) cartResponse {
	resp := cartResponse{Items: make([]cartItemPayload, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, cartItemPayload{
			Product:  toProductPayload(it.Product),
			Size:     it.Size,
			Quantity: it.Quantity,
		})
	}
	return resp
}

func toWishlistResponse(items []wishlistrepo.Item) wishlistResponse {
	resp := wishlistResponse{Items: make([]wishlistItemPayload, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, wishlistItemPayload{
			Product: toProductPayload(it.Product),
			Size:    it.Size,
		})
	}
	return resp
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
