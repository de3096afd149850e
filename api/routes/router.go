package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/tastybytes-dashboard/api/controllers"
	dashboardcontrollers "github.com/angelmondragon/tastybytes-dashboard/api/controllers/dashboard"
	"github.com/angelmondragon/tastybytes-dashboard/api/middleware"
	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/config"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	warehouse controllers.Pinger,
	dashboardService dashboard.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.Origins),
	)

	r.Get("/", dashboardcontrollers.Page(dashboardService, logg))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, warehouse))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/dashboard", func(r chi.Router) {
		r.Get("/top-products", dashboardcontrollers.TopProducts(dashboardService, logg))
		r.Get("/daily-metrics", dashboardcontrollers.DailyMetrics(dashboardService, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
