package httpserver

import (
	"errors"
	"net/http"

	"citimart/internal/domain"
	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Could not load products")
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondError(c, http.StatusNotFound, "Product not found")
				return
			}
			respondError(c, http.StatusInternalServerError, "Could not load product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func listOffersHandler(offers OfferLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := offers.ListValid(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Could not load offers")
			return
		}
		c.JSON(http.StatusOK, gin.H{"offers": list})
	}
}
