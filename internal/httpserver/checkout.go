package httpserver

import (
	"errors"
	"net/http"

	checkoutsvc "citimart/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	CustomerID    string `json:"customerId" binding:"required"`
	CouponCode    string `json:"couponCode"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
}

func checkoutHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "customerId is required")
			return
		}
		if !ensureOwner(c, req.CustomerID) {
			return
		}
		order, err := svc.Checkout(c.Request.Context(), req.CustomerID, checkoutsvc.Input{
			CouponCode:    req.CouponCode,
			Phone:         req.Phone,
			Address:       req.Address,
			PaymentMethod: req.PaymentMethod,
		})
		if err != nil {
			if errors.Is(err, checkoutsvc.ErrEmptyCart) {
				respondError(c, http.StatusBadRequest, "Cart is empty")
				return
			}
			respondError(c, http.StatusInternalServerError, "Could not place order")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Order placed", "order": order})
	}
}

func listOrdersHandler(orders OrderLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customerID")
		if !ensureOwner(c, customerID) {
			return
		}
		list, err := orders.ListByCustomer(c.Request.Context(), customerID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Could not load orders")
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}
