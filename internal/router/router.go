package router

import (
	"net/http"

	"github.com/evyataryagoni/issflyover/internal/handler"
	"github.com/evyataryagoni/issflyover/internal/logger"
	"github.com/evyataryagoni/issflyover/internal/metrics"
	custommiddleware "github.com/evyataryagoni/issflyover/internal/middleware"
	v1 "github.com/evyataryagoni/issflyover/internal/router/v1"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates and configures the Chi router with all middleware and routes
//
// Parameters:
//   - passHandler: the lookup handler
//   - m: metrics collector
//   - gatherer: where /metrics reads from (usually prometheus.DefaultGatherer)
//   - log: structured logger
func SetupRouter(passHandler *handler.PassHandler, m *metrics.Metrics, gatherer prometheus.Gatherer, log *logger.Logger) chi.Router {
	r := chi.NewRouter()

	// Order matters: RequestID first so the logger can pick it up
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.LoggingMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(custommiddleware.MetricsMiddleware(m))

	r.Mount("/v1", v1.SetupRoutes(passHandler))

	r.Get("/health", healthCheckHandler)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}

// healthCheckHandler returns 200 OK if the service is running
// It does not probe the upstream APIs
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
