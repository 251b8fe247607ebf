package httpserver

import (
	"errors"
	"net/http"

	cartsvc "citimart/internal/service/cart"
	wishlistsvc "citimart/internal/service/wishlist"
	"github.com/gin-gonic/gin"
)

type wishlistMutationRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	ProductID  string `json:"productId" binding:"required"`
	Size       string `json:"size"`
	Quantity   int    `json:"quantity"`
}

func getWishlistHandler(svc WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customerID")
		if !ensureOwner(c, customerID) {
			return
		}
		items, err := svc.List(c.Request.Context(), customerID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Could not load wishlist")
			return
		}
		c.JSON(http.StatusOK, toWishlistResponse(items))
	}
}

func addToWishlistHandler(svc WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req wishlistMutationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "customerId and productId are required")
			return
		}
		if !ensureOwner(c, req.CustomerID) {
			return
		}
		if err := svc.Add(c.Request.Context(), req.CustomerID, req.ProductID, req.Size); err != nil {
			writeWishlistError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "Item added to wishlist")
	}
}

func removeFromWishlistHandler(svc WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req wishlistMutationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "customerId and productId are required")
			return
		}
		if !ensureOwner(c, req.CustomerID) {
			return
		}
		if err := svc.Remove(c.Request.Context(), req.CustomerID, req.ProductID, req.Size); err != nil {
			writeWishlistError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "Item removed from wishlist")
	}
}

func moveToCartHandler(svc WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req wishlistMutationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "customerId and productId are required")
			return
		}
		if !ensureOwner(c, req.CustomerID) {
			return
		}
		if err := svc.MoveToCart(c.Request.Context(), req.CustomerID, req.ProductID, req.Size, req.Quantity); err != nil {
			writeWishlistError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "Item moved to cart")
	}
}

func writeWishlistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wishlistsvc.ErrSizeRequired), errors.Is(err, cartsvc.ErrSizeRequired):
		respondError(c, http.StatusBadRequest, "Size is required")
	case errors.Is(err, cartsvc.ErrQuantityTooLow):
		respondError(c, http.StatusBadRequest, "Quantity must be at least 1")
	case errors.Is(err, wishlistsvc.ErrProductNotFound), errors.Is(err, cartsvc.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, wishlistsvc.ErrEntryNotFound):
		respondError(c, http.StatusNotFound, "Item not found in wishlist")
	default:
		respondError(c, http.StatusInternalServerError, "Something went wrong")
	}
}
