package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/health"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/middleware"

	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/cart"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/catalog"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/checkout"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/user"
)

// catalogCacheSeconds is the Cache-Control max-age for catalog reads. The
// dataset is static, so a short client-side cache is safe.
const catalogCacheSeconds = 300

// RouterConfig holds the dependencies and settings for the HTTP router.
type RouterConfig struct {
	Catalog    *catalog.Service
	Carts      *cart.Service
	Checkout   *checkout.Service
	Users      *user.Service
	Health     *health.Handler
	Logger     *slog.Logger
	CORS       middleware.CORSConfig
	PprofCIDRs []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(cfg.Logger))

	// Health check endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, cfg.Logger)

	productHandler := NewProductHandler(cfg.Catalog, cfg.Logger)
	cartHandler := NewCartHandler(cfg.Carts, cfg.Logger)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout, cfg.Logger)
	authHandler := NewAuthHandler(cfg.Users, cfg.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogCacheSeconds))

			r.Get("/", productHandler.List)
			r.Get("/slug/{slug}", productHandler.GetBySlug)
			r.Get("/{id}", productHandler.GetByID)
			r.Get("/{id}/related", productHandler.Related)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", cartHandler.GetOrCreate)
			r.Post("/merge", cartHandler.Merge)

			r.Route("/{cartId}", func(r chi.Router) {
				r.Get("/", cartHandler.Get)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{itemId}", cartHandler.UpdateQuantity)
				r.Delete("/items/{itemId}", cartHandler.RemoveItem)
			})
		})

		r.Post("/checkout", checkoutHandler.Checkout)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", checkoutHandler.ListOrders)
			r.Get("/{id}", checkoutHandler.GetOrder)
		})

		r.Post("/auth/login", authHandler.Login)
	})

	return r
}
