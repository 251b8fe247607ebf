package httpserver

import (
	"net/http"
	"strings"

	"citimart/internal/auth"
	"github.com/gin-gonic/gin"
)

const claimsKey = "authClaims"

// requireAuth validates the bearer token and stashes its claims on the
// request context.
func requireAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			respondError(c, http.StatusUnauthorized, "Authorization token required")
			c.Abort()
			return
		}
		claims, err := tokens.Parse(strings.TrimSpace(strings.TrimPrefix(header, prefix)))
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func claimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// ensureOwner returns false (and writes a 403) unless the token belongs to
// customerID.
func ensureOwner(c *gin.Context, customerID string) bool {
	claims := claimsFrom(c)
	if claims == nil || claims.CustomerID != customerID {
		respondError(c, http.StatusForbidden, "Forbidden")
		return false
	}
	return true
}
