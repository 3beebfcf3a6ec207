package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sarangart/agrizen-gateway/pkg/config"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.Session.CookieName = "agrizen_session"
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	return NewRouter(cfg, logg, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterAnonymousShopperRedirectsToLogin(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/cart", "/api/v1/orders", "/api/v1/checkout/addresses"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}

func TestRouterShellIsPublic(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shell?path=/marketplace", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous shell fetch must succeed, got %d", rec.Code)
	}
}

func TestRouterAnonymousPanelRedirectsToLogin(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/admin/users", "/api/v1/admin/dashboard", "/api/v1/supplier/products", "/api/v1/supplier/categories"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}
