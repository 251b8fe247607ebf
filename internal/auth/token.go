// Package auth issues and validates the HS256 bearer tokens carried by every
// customer-scoped request.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var signingMethod = jwt.SigningMethodHS256

// ErrInvalidToken indicates the token failed signature or claim validation.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the typed payload minted at login.
type Claims struct {
	CustomerID string `json:"user_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// Manager mints and parses access tokens with a shared secret.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewManager(secret, issuer string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

// Mint signs an access token for the customer.
func (m *Manager) Mint(customerID, role string, now time.Time) (string, error) {
	if customerID == "" {
		return "", errors.New("customer id is required")
	}
	claims := Claims{
		CustomerID: customerID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Parse validates the token string and returns its claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != signingMethod {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(m.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.CustomerID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTLSeconds reports the access token lifetime for login responses.
func (m *Manager) TTLSeconds() int {
	return int(m.ttl / time.Second)
}
