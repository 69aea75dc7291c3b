package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staynest/booking-api/internal/core/domain"
)

func newTestManager(t *testing.T, now func() time.Time) *Manager {
	t.Helper()
	m, err := NewManager("secret", time.Hour, WithClock(now))
	require.NoError(t, err)
	return m
}

func TestManager_IssueAndVerify(t *testing.T) {
	m := newTestManager(t, time.Now)

	signed, err := m.Issue(domain.Identity{UserID: 42, Role: domain.RoleHost})
	require.NoError(t, err)
	assert.NotEmpty(t, signed)

	id, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.UserID)
	assert.Equal(t, domain.RoleHost, id.Role)
}

func TestManager_ClaimNames(t *testing.T) {
	m := newTestManager(t, time.Now)
	signed, err := m.Issue(domain.Identity{UserID: 7, Role: domain.RoleGuest})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(signed, claims)
	require.NoError(t, err)

	assert.EqualValues(t, 7, claims["userId"])
	assert.Equal(t, "guest", claims["role"])
	assert.Contains(t, claims, "exp")
}

func TestManager_ExpiresAfterOneHour(t *testing.T) {
	issuedAt := time.Now()
	clock := issuedAt
	m := newTestManager(t, func() time.Time { return clock })

	signed, err := m.Issue(domain.Identity{UserID: 1, Role: domain.RoleGuest})
	require.NoError(t, err)

	clock = issuedAt.Add(59 * time.Minute)
	_, err = m.Verify(signed)
	require.NoError(t, err)

	clock = issuedAt.Add(61 * time.Minute)
	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestManager_RejectsTamperedToken(t *testing.T) {
	m := newTestManager(t, time.Now)
	signed, err := m.Issue(domain.Identity{UserID: 1, Role: domain.RoleGuest})
	require.NoError(t, err)

	for i := 0; i < len(signed); i++ {
		if signed[i] == '.' {
			continue
		}
		b := []byte(signed)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		_, err := m.Verify(string(b))
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "byte %d altered", i)
	}
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	other, err := NewManager("other-secret", time.Hour)
	require.NoError(t, err)
	signed, err := other.Issue(domain.Identity{UserID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = newTestManager(t, time.Now).Verify(signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		UserID: 1,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	m := newTestManager(t, time.Now)
	for _, raw := range []string{hs384, none} {
		_, err := m.Verify(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	}
}

func TestManager_RejectsTokenWithoutExpiry(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1, Role: "guest"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestManager(t, time.Now).Verify(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := newTestManager(t, time.Now)
	for _, raw := range []string{"", "not-a-token", strings.Repeat("a.", 3)} {
		_, err := m.Verify(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	}
}

func TestNewManager_Defaults(t *testing.T) {
	_, err := NewManager("", time.Hour)
	assert.Error(t, err)

	m, err := NewManager("s", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, m.TTL())
}
