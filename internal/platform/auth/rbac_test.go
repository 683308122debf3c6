package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func requestWithRoles(t *testing.T, roles []string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), UserRolesKey, roles)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestRequireRole_Allows(t *testing.T) {
	c := requestWithRoles(t, []string{"clinician"})

	called := false
	err := RequireRole("clinician")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler not called")
	}
}

func TestRequireRole_AdminBypass(t *testing.T) {
	c := requestWithRoles(t, []string{"admin"})

	err := RequireRole("clinician")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("expected admin to pass any role check, got %v", err)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	c := requestWithRoles(t, []string{"viewer"})

	err := RequireRole("clinician")(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRequireRole_NoRoles(t *testing.T) {
	c := requestWithRoles(t, nil)

	err := RequireRole("clinician", "exporter")(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
