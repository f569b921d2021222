package router

import (
	"encoding/json"
	"net/http"

	_ "github.com/evyataryagoni/travelgeo/docs" // Swagger docs
	"github.com/evyataryagoni/travelgeo/internal/limiter"
	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/evyataryagoni/travelgeo/internal/metrics"
	custommiddleware "github.com/evyataryagoni/travelgeo/internal/middleware"
	"github.com/evyataryagoni/travelgeo/internal/models"
	v1 "github.com/evyataryagoni/travelgeo/internal/router/v1"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Handlers groups the v1 API handlers
type Handlers = v1.Handlers

// HealthReporter supplies the resolver state shown on /health
type HealthReporter interface {
	Status() models.ResolverStatus
}

// Options carries the cross-cutting pieces the router wires in
type Options struct {
	Limiter limiter.Limiter
	Metrics *metrics.Metrics
	Logger  *logger.Logger

	// Gatherer backs /metrics; nil means the default registry
	Gatherer prometheus.Gatherer

	// Health adds resolver state to /health; nil keeps the plain "OK"
	Health HealthReporter
}

// SetupRouter creates and configures the Chi router with all middleware and routes
//
// Middleware order: RequestID, RealIP, logging, Recoverer, rate limiting, metrics.
// Rate limiting is skipped when opts.Limiter is nil.
func SetupRouter(h Handlers, opts Options) chi.Router {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefault()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.LoggingMiddleware(opts.Logger))
	r.Use(middleware.Recoverer)
	if opts.Limiter != nil {
		r.Use(custommiddleware.RateLimitMiddleware(opts.Limiter))
	}
	r.Use(custommiddleware.MetricsMiddleware(opts.Metrics))

	// Versioned API
	r.Mount("/v1", v1.SetupRoutes(h))

	// Health check endpoint - used by load balancers and monitoring
	r.Get("/health", healthCheckHandler(opts.Health))

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Swagger UI: http://localhost:3000/swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

// healthCheckHandler returns 200 while the process is serving. A loaded but
// empty index is reported as "degraded": lookups can only return no match.
func healthCheckHandler(health HealthReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health == nil {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
			return
		}

		status := health.Status()
		status.Status = "ok"
		if status.BoxesLoaded && status.Boxes == 0 {
			status.Status = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(status)
	}
}
