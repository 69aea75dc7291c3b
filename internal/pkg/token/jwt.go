// Package token encodes and verifies HS256 session tokens carrying the
// caller's user id and role.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/staynest/booking-api/internal/core/domain"
)

// DefaultTTL is the validity window of an issued token.
const DefaultTTL = time.Hour

// Claims is the signed payload. Field names match the public token format.
type Claims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies tokens with a process-wide shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a Manager.
type Option func(*Manager)

// WithClock overrides the time source. Tests use it to move past expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a Manager signing with secret. A non-positive ttl falls back to DefaultTTL.
func NewManager(secret string, ttl time.Duration, opts ...Option) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token: empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue signs a token for id that expires ttl from now.
func (m *Manager) Issue(id domain.Identity) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID: id.UserID,
		Role:   string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry, then decodes the identity.
// Every failure wraps domain.ErrInvalidToken.
func (m *Manager) Verify(raw string) (domain.Identity, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{UserID: claims.UserID, Role: domain.Role(claims.Role)}, nil
}

// TTL returns the validity window of issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
