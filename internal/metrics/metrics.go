package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Geo data fetch metrics (bounding boxes and country features)
	GeoFetchesTotal   *prometheus.CounterVec
	GeoFetchDuration  *prometheus.HistogramVec
	GeoCacheHits      *prometheus.CounterVec
	GeoFeaturesLoaded prometheus.Gauge

	// Country resolution metrics
	CountryLookupsTotal  *prometheus.CounterVec
	CountryLookupsErrors *prometheus.CounterVec

	// Gallery layout metrics
	LayoutRequestsTotal *prometheus.CounterVec
	LayoutRows          prometheus.Histogram
}

// New creates and registers all Prometheus metrics on the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all metrics on the given registerer.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "endpoint"},
		),

		HTTPResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "endpoint", "status"},
		),

		GeoFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geo_fetches_total",
				Help: "Total number of geo dataset fetches",
			},
			[]string{"dataset", "status"},
		),

		GeoFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "geo_fetch_duration_seconds",
				Help:    "Geo dataset fetch latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"dataset"},
		),

		GeoCacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geo_cache_hits_total",
				Help: "Total number of geo cache hits vs misses",
			},
			[]string{"cache", "result"},
		),

		GeoFeaturesLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "geo_features_loaded",
				Help: "Number of country features held in memory",
			},
		),

		CountryLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "country_lookups_total",
				Help: "Total number of coordinate to country lookups",
			},
			[]string{"result"},
		),

		CountryLookupsErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "country_lookups_errors_total",
				Help: "Total number of country lookup errors",
			},
			[]string{"error_type"},
		),

		LayoutRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gallery_layout_requests_total",
				Help: "Total number of justified layout computations",
			},
			[]string{"result"},
		),

		LayoutRows: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gallery_layout_rows",
				Help:    "Number of rows produced per layout",
				Buckets: prometheus.LinearBuckets(1, 2, 10),
			},
		),
	}
}
