package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/scent-storefront/api/controllers"
	"github.com/angelmondragon/scent-storefront/api/middleware"
	product "github.com/angelmondragon/scent-storefront/internal/products"
	"github.com/angelmondragon/scent-storefront/pkg/config"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/redis"
)

// Deps are the collaborators the router hands to controllers. Cache and Limiter are
// nil when redis is disabled.
type Deps struct {
	Workspaces middleware.WorkspaceSource
	Products   product.Service
	Cache      redis.Pinger
	Limiter    redis.RateLimiter
	Metrics    http.Handler
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	metricsHandler := deps.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Cache))
	})
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	checkoutPolicy := middleware.NewRateLimitPolicy(
		"checkout",
		cfg.RateLimit.CheckoutWindow,
		cfg.RateLimit.CheckoutLimit,
	)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.BackendToken)

			r.Get("/", controllers.ProductList(deps.Products, logg))
			r.Get("/search", controllers.ProductSearch(deps.Products, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.Products, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Workspace(deps.Workspaces, middleware.CookieOptions{
				Name:   cfg.Session.CookieName,
				Secure: cfg.Session.CookieSecure,
				MaxAge: cfg.Session.IdleTTL,
			}, logg))

			r.Get("/session", controllers.SessionFetch(logg))
			r.Put("/session/profile", controllers.SessionUpdateProfile(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(logg))
				r.Post("/items", controllers.CartAddItem(logg))
				r.Patch("/items/{itemId}/quantity", controllers.CartChangeQuantity(logg))
				r.Delete("/items/{itemId}", controllers.CartRemoveItem(logg))
				r.Put("/selection", controllers.CartSelectAll(logg))
				r.Put("/selection/{itemId}", controllers.CartSelectItem(logg))
				r.Post("/checkout", controllers.CartProceed(logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", controllers.CheckoutInit(logg))
				r.With(middleware.WorkspaceRateLimit(checkoutPolicy, deps.Limiter, logg)).Post("/", controllers.CheckoutSubmit(logg))
			})
			r.Get("/payment/verify", controllers.PaymentVerify(logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.MyOrders(logg))
				r.Get("/{orderId}", controllers.OrderDetail(logg))
				r.Delete("/{orderId}/view", controllers.OrderDetailLeave(logg))
			})

			r.Route("/search", func(r chi.Router) {
				r.Get("/", controllers.SearchState(logg))
				r.Post("/", controllers.SearchRun(logg))
				r.Delete("/", controllers.SearchClear(logg))
				r.Put("/query", controllers.SearchSetQuery(logg))
				r.Post("/keys", controllers.SearchKey(logg))
				r.Post("/suggestions/select", controllers.SearchSelectSuggestion(logg))
				r.Post("/focus", controllers.SearchFocus(logg))
				r.Post("/dismiss", controllers.SearchDismiss(logg))
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))

				r.Route("/users", func(r chi.Router) {
					r.Get("/", controllers.AdminUserList(logg))
					r.Post("/", controllers.AdminUserCreate(logg))
					r.Get("/{userId}", controllers.AdminUserDetail(logg))
					r.Put("/{userId}", controllers.AdminUserUpdate(logg))
					r.Put("/{userId}/active", controllers.AdminUserSetActive(logg))
					r.Delete("/{userId}", controllers.AdminUserDelete(logg))
				})
				r.Route("/variants", func(r chi.Router) {
					r.Post("/", controllers.AdminVariantCreate(logg))
					r.Get("/{variantId}", controllers.AdminVariantDetail(logg))
					r.Put("/{variantId}", controllers.AdminVariantUpdate(logg))
					r.Delete("/{variantId}", controllers.AdminVariantDelete(logg))
				})
				r.Route("/orders", func(r chi.Router) {
					r.Get("/", controllers.AdminOrdersDashboard(logg))
					r.Get("/status-counts", controllers.AdminOrderStatusCounts(logg))
					r.Put("/{orderId}/status", controllers.AdminOrderUpdateStatus(logg))
				})
			})
		})
	})

	return r
}
