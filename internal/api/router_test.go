package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/staynest/booking-api/internal/core/service"
	"github.com/staynest/booking-api/internal/infrastructure/db/postgres"
	"github.com/staynest/booking-api/internal/infrastructure/db/redis"
	"github.com/staynest/booking-api/internal/pkg/password"
	"github.com/staynest/booking-api/internal/pkg/token"
)

func newTestRouter(t *testing.T, opts ...func(*Deps)) *echo.Echo {
	t.Helper()

	db, err := postgres.Open(sqlite.Open(":memory:"), zerolog.Nop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, postgres.Migrate(context.Background(), db))

	tokens, err := token.NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	users := postgres.NewUserRepository(db)
	log := zerolog.Nop()
	deps := Deps{
		Auth:     service.NewAuthService(users, password.NewHasherWithCost(bcrypt.MinCost), tokens, log),
		Users:    service.NewUserService(users),
		Bookings: service.NewBookingService(postgres.NewBookingRepository(db), log),
		Tokens:   tokens,
		Log:      log,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	return NewRouter(deps)
}

func do(e *echo.Echo, method, target, body, bearer string) *httptest.ResponseRecorder {
	return doWith(e, httptest.NewRequest(method, target, strings.NewReader(body)), body, bearer)
}

func doWith(e *echo.Echo, req *http.Request, body, bearer string) *httptest.ResponseRecorder {
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, email, pwd string) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/login", `{"email":"`+email+`","password":"`+pwd+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func TestRouter_RegisterLoginListScenario(t *testing.T) {
	e := newTestRouter(t)

	rec := do(e, http.MethodPost, "/users", `{"username":"a","email":"a@x.com","password":"p1","role":"guest"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "p1")

	tok := login(t, e, "a@x.com", "p1")

	rec = do(e, http.MethodGet, "/users", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "a@x.com", users[0]["email"])
	_, hasPassword := users[0]["password"]
	assert.False(t, hasPassword)

	rec = do(e, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Token is required"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/users", "", tok+"x")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid or expired token"}`, rec.Body.String())
}

func TestRouter_LoginFailures(t *testing.T) {
	e := newTestRouter(t)
	rec := do(e, http.MethodPost, "/users", `{"username":"a","email":"a@x.com","password":"p1"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPost, "/login", `{"email":"a@x.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/login", `{"email":"nobody@x.com","password":"p1"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())
}

func TestRouter_BookingsAreGated(t *testing.T) {
	e := newTestRouter(t)

	rec := do(e, http.MethodGet, "/bookings", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	do(e, http.MethodPost, "/users", `{"username":"h","email":"h@x.com","password":"pw","role":"host"}`, "")
	tok := login(t, e, "h@x.com", "pw")

	rec = do(e, http.MethodGet, "/bookings", "", tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(e, http.MethodGet, "/bookings/99", "", tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Booking not found"}`, rec.Body.String())

	rec = do(e, http.MethodDelete, "/bookings/99", "", tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Root(t *testing.T) {
	rec := do(newTestRouter(t), http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Server is running!", rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	e := newTestRouter(t)
	do(e, http.MethodGet, "/", "", "")

	rec := do(e, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "booking_requests_total")
}

func withLimiter(t *testing.T, maxAttempts int) func(*Deps) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	limiter := redis.NewLoginLimiter(client, redis.LimiterConfig{
		MaxAttempts:  maxAttempts,
		Window:       time.Minute,
		LockDuration: time.Minute,
	})
	return func(d *Deps) { d.Limiter = limiter }
}

func badLogins(e *echo.Echo, n int, forwardedFor func(i int) string) []int {
	codes := make([]int, 0, n)
	for i := 0; i < n; i++ {
		body := `{"email":"nobody@x.com","password":"guess"}`
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.RemoteAddr = "203.0.113.7:40000"
		if xff := forwardedFor(i); xff != "" {
			req.Header.Set(echo.HeaderXForwardedFor, xff)
			req.Header.Set(echo.HeaderXRealIP, xff)
		}
		codes = append(codes, doWith(e, req, body, "").Code)
	}
	return codes
}

func TestRouter_LoginLockIgnoresForwardedHeaders(t *testing.T) {
	e := newTestRouter(t, withLimiter(t, 3))

	codes := badLogins(e, 5, func(i int) string { return fmt.Sprintf("198.51.100.%d", i+1) })

	assert.Equal(t, []int{404, 404, 404, 429, 429}, codes)
}

func TestRouter_LoginLockWithoutForwardedHeaders(t *testing.T) {
	e := newTestRouter(t, withLimiter(t, 3))

	codes := badLogins(e, 5, func(int) string { return "" })

	assert.Equal(t, []int{404, 404, 404, 429, 429}, codes)
}

func TestRouter_TrustedProxyForwardsClientIP(t *testing.T) {
	e := newTestRouter(t, withLimiter(t, 2), func(d *Deps) {
		d.TrustedProxies = []string{"203.0.113.0/24"}
	})

	// Behind a trusted proxy each forwarded client has its own counter.
	first := badLogins(e, 3, func(int) string { return "198.51.100.1" })
	second := badLogins(e, 1, func(int) string { return "198.51.100.2" })

	assert.Equal(t, []int{404, 404, 429}, first)
	assert.Equal(t, []int{404}, second)
}
