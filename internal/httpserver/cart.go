package httpserver

import (
	"errors"
	"net/http"

	cartsvc "citimart/internal/service/cart"
	"github.com/gin-gonic/gin"
)

type cartMutationRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	ProductID  string `json:"productId" binding:"required"`
	Size       string `json:"size"`
	Quantity   int    `json:"quantity"`
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customerID")
		if !ensureOwner(c, customerID) {
			return
		}
		items, err := svc.Get(c.Request.Context(), customerID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Could not load cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(items))
	}
}

func addToCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartMutationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "customerId and productId are required")
			return
		}
		if !ensureOwner(c, req.CustomerID) {
			return
		}
		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if err := svc.Add(c.Request.Context(), req.CustomerID, req.ProductID, req.Size, quantity); err != nil {
			writeCartError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "Item added to cart")
	}
}

func updateQuantityHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartMutationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "customerId and productId are required")
			return
		}
		if !ensureOwner(c, req.CustomerID) {
			return
		}
		if err := svc.UpdateQuantity(c.Request.Context(), req.CustomerID, req.ProductID, req.Size, req.Quantity); err != nil {
			writeCartError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "Quantity updated")
	}
}

func removeItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartMutationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "customerId and productId are required")
			return
		}
		if !ensureOwner(c, req.CustomerID) {
			return
		}
		if err := svc.Remove(c.Request.Context(), req.CustomerID, req.ProductID, req.Size); err != nil {
			writeCartError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "Item removed from cart")
	}
}

func clearCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customerID")
		if !ensureOwner(c, customerID) {
			return
		}
		if err := svc.Clear(c.Request.Context(), customerID); err != nil {
			respondError(c, http.StatusInternalServerError, "Could not clear cart")
			return
		}
		respondMessage(c, http.StatusOK, "Cart cleared")
	}
}

// writeCartError maps cart service errors onto the storefront's wire
// messages.
func writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cartsvc.ErrSizeRequired):
		respondError(c, http.StatusBadRequest, "Size is required")
	case errors.Is(err, cartsvc.ErrQuantityTooLow):
		respondError(c, http.StatusBadRequest, "Quantity must be at least 1")
	case errors.Is(err, cartsvc.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, cartsvc.ErrItemNotFound):
		respondError(c, http.StatusNotFound, "Item not found in cart")
	default:
		respondError(c, http.StatusInternalServerError, "Something went wrong")
	}
}
