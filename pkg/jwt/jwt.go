package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTypeSession = "session"

// Claims represents JWT claims structure
type Claims struct {
	Username  string `json:"username"`
	Authority string `json:"authority"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// SessionID is the token id; logout revokes it.
func (c *Claims) SessionID() string {
	return c.ID
}

// Manager handles JWT operations
type Manager struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates new JWT manager
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl, now: time.Now}
}

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// GenerateSessionToken issues a signed session token for a signed-in user.
func (m *Manager) GenerateSessionToken(username, authority string) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		Username:  username,
		Authority: authority,
		Type:      tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return signed, claims, nil
}

// ValidateToken validates and parses token
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// ValidateSessionToken validates session token specifically
func (m *Manager) ValidateSessionToken(tokenString string) (*Claims, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Type != tokenTypeSession {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", tokenTypeSession, claims.Type)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("session token has no id")
	}

	return claims, nil
}
