package sharetoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the quote a customer share link resolves to
type Claims struct {
	QuoteID uuid.UUID `json:"quote_id"`
	jwt.RegisteredClaims
}

// Manager signs and validates customer share tokens. A token is handed out
// when a quote is sent and lets the customer view and answer the quote
// without an account.
type Manager struct {
	secretKey []byte
	expiry    time.Duration
}

// NewManager creates a new share token manager
func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{
		secretKey: []byte(secret),
		expiry:    expiry,
	}
}

// Generate signs a new share token for a quote
func (m *Manager) Generate(quoteID uuid.UUID) (string, error) {
	claims := &Claims{
		QuoteID: quoteID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "hovenier-api",
			Subject:   quoteID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// Validate checks a share token and returns the quote it belongs to
func (m *Manager) Validate(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	return claims.QuoteID, nil
}
