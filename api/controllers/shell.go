package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/sarangart/agrizen-gateway/api/middleware"
	"github.com/sarangart/agrizen-gateway/api/responses"
	"github.com/sarangart/agrizen-gateway/internal/session"
	"github.com/sarangart/agrizen-gateway/pkg/enums"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
	"github.com/sarangart/agrizen-gateway/pkg/types"
)

type snapshotLoader interface {
	LoadCartSnapshot(ctx context.Context, sess *session.Session) (types.CartSnapshot, error)
}

// NavLink is one sidebar or navbar entry.
type NavLink struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

type shellResponse struct {
	Layout    string            `json:"layout"`
	Profile   types.UserProfile `json:"profile"`
	Sidebar   []NavLink         `json:"sidebar,omitempty"`
	Navbar    []NavLink         `json:"navbar,omitempty"`
	CartCount int               `json:"cart_count"`
}

var adminSidebar = []NavLink{
	{Icon: "dashboard", Label: "Dashboard", Path: "/admin/dashboard"},
	{Icon: "orders", Label: "Orders", Path: "/admin/orders"},
	{Icon: "products", Label: "Products", Path: "/admin/products"},
	{Icon: "categories", Label: "Categories", Path: "/admin/categories"},
	{Icon: "crops", Label: "Crops", Path: "/admin/crops"},
	{Icon: "users", Label: "Users", Path: "/admin/users"},
	{Icon: "bell", Label: "Notifications", Path: "/admin/notifications"},
}

var supplierSidebar = []NavLink{
	{Icon: "dashboard", Label: "Dashboard", Path: "/supplier/dashboard"},
	{Icon: "products", Label: "My Products", Path: "/supplier/products"},
	{Icon: "categories", Label: "Categories", Path: "/supplier/categories"},
}

var publicNavbar = []NavLink{
	{Icon: "home", Label: "Home", Path: "/"},
	{Icon: "store", Label: "Marketplace", Path: "/marketplace"},
	{Icon: "cart", Label: "Cart", Path: "/cart"},
	{Icon: "receipt", Label: "My Orders", Path: "/orders"},
	{Icon: "user", Label: "Profile", Path: "/profile"},
}

// Shell returns the chrome view model for the path the client is rendering:
// a role-keyed sidebar for the dashboard areas, the storefront navbar with
// the cart badge everywhere else. Anonymous visitors get the storefront
// chrome with an empty profile; the navbar renders before sign-in.
func Shell(sessions snapshotLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		path := strings.TrimSpace(r.URL.Query().Get("path"))

		var resp shellResponse
		if sess != nil {
			resp.Profile = sess.Profile
		}

		switch {
		case sess != nil && strings.HasPrefix(path, "/admin") && sess.Profile.Role == enums.RoleAdmin:
			resp.Layout = "dashboard"
			resp.Sidebar = adminSidebar
		case sess != nil && strings.HasPrefix(path, "/supplier") && sess.Profile.Role == enums.RoleSupplier:
			resp.Layout = "dashboard"
			resp.Sidebar = supplierSidebar
		default:
			resp.Layout = "storefront"
			resp.Navbar = publicNavbar
			if sess != nil {
				snapshot, err := sessions.LoadCartSnapshot(r.Context(), sess)
				if err != nil {
					// The badge is cosmetic; a store hiccup must not break the page.
					if logg != nil {
						logg.Warn(r.Context(), "shell.cart_badge.unavailable")
					}
				} else {
					resp.CartCount = snapshot.Count
				}
			}
		}

		responses.WriteSuccess(w, resp)
	}
}
