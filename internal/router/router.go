package router

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/admin"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/apikey"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/logger"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/metrics"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/middleware"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/settings"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/stats"
)

func NewRouter(
	statsH *stats.Handler,
	adminH *admin.Handler,
	settingsH *settings.Handler,
	keyH *apikey.Handler,
	gate *apikey.Service,
	adminSvc *admin.Service,
) chi.Router {
	r := chi.NewRouter()

	r.Use(logger.WithLogging)
	r.Use(chiMiddleware.Recoverer)

	r.Use(middleware.GzipHandler)

	r.Handle("/metrics", metrics.Handler())

	// Unknown period strings fail the route pattern and 404 before any auth
	// or data access happens.
	r.Route("/wc-order-stats/v1", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(gate))
		r.Get("/{period:(?:yesterday|last-week|last-month)}", statsH.GetOrderStats)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", adminH.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(adminSvc))
			r.Get("/settings", settingsH.GetSettings)
			r.Put("/settings", settingsH.UpdateSettings)
			r.Post("/api-key", keyH.GenerateKey)
		})
	})

	return r
}
