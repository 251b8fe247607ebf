package httpserver

import (
	"errors"
	"net/http"

	customersvc "citimart/internal/service/customer"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func registerHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customersvc.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
		created, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, customersvc.ErrEmailTaken) {
				respondError(c, http.StatusConflict, "Email already registered")
				return
			}
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Account created", "customer": created})
	}
}

func loginHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "email and password are required")
			return
		}
		cust, token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, customersvc.ErrInvalidCredentials) {
				respondError(c, http.StatusUnauthorized, "Invalid email or password")
				return
			}
			respondError(c, http.StatusInternalServerError, "Could not log in")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token":     token,
			"expiresIn": svc.TokenTTLSeconds(),
			"customer":  cust,
		})
	}
}
