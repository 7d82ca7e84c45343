package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hoangnd-dev/storefront/api/controllers"
	"github.com/hoangnd-dev/storefront/api/middleware"
	"github.com/hoangnd-dev/storefront/internal/catalog"
	ordersvc "github.com/hoangnd-dev/storefront/internal/orders"
	"github.com/hoangnd-dev/storefront/pkg/config"
	"github.com/hoangnd-dev/storefront/pkg/db"
	"github.com/hoangnd-dev/storefront/pkg/logger"
)

// NewRouter wires the REST surface served by cmd/api.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	catalogStore catalog.Store,
	ordersService ordersvc.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogStore, logg))
			r.Get("/{id}", controllers.GetProduct(catalogStore, logg))
			r.Get("/category/{category}", controllers.ProductsByCategory(catalogStore, logg))
		})
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(ordersService, logg))
			r.Get("/", controllers.ListOrders(ordersService, logg))
		})
	})

	return r
}
