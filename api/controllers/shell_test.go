package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sarangart/agrizen-gateway/api/middleware"
	"github.com/sarangart/agrizen-gateway/internal/session"
	"github.com/sarangart/agrizen-gateway/pkg/enums"
	"github.com/sarangart/agrizen-gateway/pkg/types"
)

type stubSnapshotLoader struct {
	snapshot types.CartSnapshot
	err      error
}

func (s *stubSnapshotLoader) LoadCartSnapshot(ctx context.Context, sess *session.Session) (types.CartSnapshot, error) {
	return s.snapshot, s.err
}

func shellRequest(path string, role enums.Role) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shell?path="+path, nil)
	sess := &session.Session{ID: "jti-1", Profile: types.UserProfile{UserID: types.FlexInt(3), Role: role}}
	return req.WithContext(middleware.WithSession(req.Context(), sess))
}

func decodeShell(t *testing.T, rec *httptest.ResponseRecorder) shellResponse {
	t.Helper()
	var envelope struct {
		Data shellResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding shell response: %v", err)
	}
	return envelope.Data
}

func TestShellAdminDashboardChrome(t *testing.T) {
	handler := Shell(&stubSnapshotLoader{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, shellRequest("/admin/users", enums.RoleAdmin))

	resp := decodeShell(t, rec)
	if resp.Layout != "dashboard" {
		t.Fatalf("expected dashboard layout, got %q", resp.Layout)
	}
	if len(resp.Sidebar) == 0 || resp.Sidebar[0].Path != "/admin/dashboard" {
		t.Fatalf("expected admin sidebar, got %+v", resp.Sidebar)
	}
}

func TestShellSupplierSidebarIsScoped(t *testing.T) {
	handler := Shell(&stubSnapshotLoader{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, shellRequest("/supplier/products", enums.RoleSupplier))

	resp := decodeShell(t, rec)
	hasCategories := false
	for _, link := range resp.Sidebar {
		if link.Path == "/admin/users" {
			t.Fatal("supplier sidebar must not contain admin links")
		}
		if link.Path == "/supplier/categories" {
			hasCategories = true
		}
	}
	if !hasCategories {
		t.Fatal("supplier sidebar must link to category management")
	}
}

func TestShellStorefrontCartBadge(t *testing.T) {
	loader := &stubSnapshotLoader{snapshot: types.CartSnapshot{
		Items: []types.CartItem{
			{ProductID: types.FlexInt(1), Quantity: types.FlexInt(2), Price: decimal.NewFromInt(120)},
			{ProductID: types.FlexInt(2), Quantity: types.FlexInt(1), Price: decimal.NewFromInt(60)},
		},
		Count: 2,
	}}
	handler := Shell(loader, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, shellRequest("/marketplace", enums.RoleFarmer))

	resp := decodeShell(t, rec)
	if resp.Layout != "storefront" {
		t.Fatalf("expected storefront layout, got %q", resp.Layout)
	}
	if resp.CartCount != 2 {
		t.Fatalf("expected cart badge 2, got %d", resp.CartCount)
	}
}

func TestShellDashboardPathWithWrongRoleFallsBackToStorefront(t *testing.T) {
	handler := Shell(&stubSnapshotLoader{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, shellRequest("/admin/users", enums.RoleFarmer))

	resp := decodeShell(t, rec)
	if resp.Layout != "storefront" {
		t.Fatalf("farmer asking for admin chrome must get the storefront, got %q", resp.Layout)
	}
}

func TestShellAnonymousGetsStorefrontChrome(t *testing.T) {
	handler := Shell(&stubSnapshotLoader{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shell?path=/marketplace", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous visitor, got %d", rec.Code)
	}
	resp := decodeShell(t, rec)
	if resp.Layout != "storefront" {
		t.Fatalf("expected storefront layout, got %q", resp.Layout)
	}
	if len(resp.Navbar) == 0 {
		t.Fatal("anonymous visitor must still get the navbar")
	}
	if resp.CartCount != 0 || resp.Profile.UserID != 0 {
		t.Fatalf("anonymous chrome must carry no identity, got %+v", resp)
	}
}

func TestShellBadgeFailureDoesNotBreakPage(t *testing.T) {
	handler := Shell(&stubSnapshotLoader{err: errors.New("redis down")}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, shellRequest("/marketplace", enums.RoleFarmer))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite badge failure, got %d", rec.Code)
	}
	if resp := decodeShell(t, rec); resp.CartCount != 0 {
		t.Fatalf("expected zero badge on failure, got %d", resp.CartCount)
	}
}
