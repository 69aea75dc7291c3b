package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staynest/booking-api/internal/core/domain"
)

func TestRBAC_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", domain.RoleAdmin)

	called := false
	mw := RBAC(domain.RoleAdmin, domain.RoleHost)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	cases := map[string]any{
		"other role":   domain.RoleGuest,
		"unknown role": domain.Role("root"),
		"plain string": "admin",
		"unset":        nil,
	}
	for name, role := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			if role != nil {
				c.Set("role", role)
			}

			handler := RBAC(domain.RoleAdmin, domain.RoleHost)(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}
