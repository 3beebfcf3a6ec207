package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sarangart/agrizen-gateway/api/controllers"
	"github.com/sarangart/agrizen-gateway/api/middleware"
	authsvc "github.com/sarangart/agrizen-gateway/internal/auth"
	cartsvc "github.com/sarangart/agrizen-gateway/internal/cart"
	catalogsvc "github.com/sarangart/agrizen-gateway/internal/catalog"
	checkoutsvc "github.com/sarangart/agrizen-gateway/internal/checkout"
	orderssvc "github.com/sarangart/agrizen-gateway/internal/orders"
	panelssvc "github.com/sarangart/agrizen-gateway/internal/panels"
	"github.com/sarangart/agrizen-gateway/internal/session"
	"github.com/sarangart/agrizen-gateway/pkg/config"
	"github.com/sarangart/agrizen-gateway/pkg/enums"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
	"github.com/sarangart/agrizen-gateway/pkg/metrics"
	redisclient "github.com/sarangart/agrizen-gateway/pkg/redis"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

// NewRouter wires the full route tree: public storefront reads, the
// authenticated shopper surface, and the role-guarded admin and supplier
// panels.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	redisClient *redisclient.Client,
	upstreamClient *upstream.Client,
	sessions *session.Manager,
	authService *authsvc.Service,
	catalogService *catalogsvc.Service,
	cartService *cartsvc.Service,
	checkoutService *checkoutsvc.Service,
	ordersService *orderssvc.Service,
	panelsService *panelssvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(),
		middleware.Auth(cfg.Session, sessions, logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(redisClient, upstreamClient, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(authService, cfg.Session, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.Register(authService, logg))
			r.Post("/logout", controllers.Logout(authService, cfg.Session, logg))
		})

		// Storefront reads are public; the marketplace is browsable before
		// signing in.
		r.Get("/marketplace", controllers.Marketplace(catalogService, logg))
		r.Get("/categories", controllers.Categories(catalogService, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(catalogService, logg))
		r.Get("/crops", controllers.CropDirectory(panelsService, logg))
		r.Get("/shell", controllers.Shell(sessions, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth())

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", controllers.Profile(logg))
				r.Put("/", controllers.UpdateProfile(authService, logg))
				r.Put("/password", controllers.ChangePassword(authService, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(cartService, logg))
				r.Post("/items", controllers.CartAdd(cartService, logg))
				r.Delete("/items/{cartId}", controllers.CartRemove(cartService, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Route("/addresses", func(r chi.Router) {
					r.Get("/", controllers.AddressList(checkoutService, logg))
					r.Post("/", controllers.AddressAdd(checkoutService, logg))
					r.Put("/{addressId}", controllers.AddressUpdate(checkoutService, logg))
					r.Delete("/{addressId}", controllers.AddressRemove(checkoutService, logg))
					r.Post("/{addressId}/select", controllers.AddressSelect(checkoutService, logg))
				})
				r.Post("/order", controllers.PlaceOrder(checkoutService, logg))
			})

			r.Get("/orders", controllers.OrderHistory(ordersService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin))

			r.Get("/dashboard", controllers.AdminDashboard(panelsService, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrders(ordersService, logg))
				r.Put("/{orderId}/status", controllers.AdminOrderStatus(ordersService, logg))
				r.Delete("/{orderId}", controllers.AdminOrderDelete(ordersService, logg))
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.AdminUsers(panelsService, logg))
				r.Post("/", controllers.AdminUserSave(panelsService, logg))
				r.Delete("/{userId}", controllers.AdminUserDelete(panelsService, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.AdminCategories(panelsService, logg))
				r.Post("/", controllers.AdminCategorySave(panelsService, logg))
				r.Delete("/{categoryId}", controllers.AdminCategoryDelete(panelsService, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.PanelProducts(panelsService, logg))
				r.Post("/", controllers.ProductSave(panelsService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(panelsService, logg))
			})

			r.Route("/crops", func(r chi.Router) {
				r.Get("/", controllers.AdminCrops(panelsService, logg))
				r.Post("/", controllers.CropSave(panelsService, logg))
				r.Delete("/{cropId}", controllers.CropDelete(panelsService, logg))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.AdminNotifications(panelsService, logg))
				r.Put("/{notificationId}/read", controllers.NotificationRead(panelsService, logg))
				r.Delete("/{notificationId}", controllers.NotificationDelete(panelsService, logg))
			})
		})

		r.Route("/supplier", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleSupplier))

			r.Get("/dashboard", controllers.AdminDashboard(panelsService, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.PanelProducts(panelsService, logg))
				r.Post("/", controllers.ProductSave(panelsService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(panelsService, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.AdminCategories(panelsService, logg))
				r.Post("/", controllers.AdminCategorySave(panelsService, logg))
				r.Delete("/{categoryId}", controllers.AdminCategoryDelete(panelsService, logg))
			})
		})
	})

	return r
}
