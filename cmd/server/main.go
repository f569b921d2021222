package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evyataryagoni/travelgeo/internal/bbox"
	"github.com/evyataryagoni/travelgeo/internal/config"
	"github.com/evyataryagoni/travelgeo/internal/feature"
	"github.com/evyataryagoni/travelgeo/internal/handler"
	"github.com/evyataryagoni/travelgeo/internal/limiter"
	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/evyataryagoni/travelgeo/internal/metrics"
	"github.com/evyataryagoni/travelgeo/internal/notify"
	"github.com/evyataryagoni/travelgeo/internal/resolver"
	"github.com/evyataryagoni/travelgeo/internal/router"
	"github.com/evyataryagoni/travelgeo/internal/service"
	"github.com/evyataryagoni/travelgeo/internal/source"
	"github.com/redis/go-redis/v9"
)

// @title           TravelGeo API
// @version         1.0
// @description     Resolves blog-post coordinates to countries and computes justified gallery layouts.

// @contact.name   Evyatar Yagoni
// @contact.email  evyatar@example.com

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /
func main() {
	// Load configuration
	appConfig := config.Load()

	// Initialize components
	appLogger := setupLogger(appConfig)
	metricsCollector := setupMetrics(appLogger)

	redisClient := setupRedis(appConfig, appLogger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	sources := setupSources(appConfig, redisClient, appLogger)
	defer sources.Close()

	rateLimiter := setupRateLimiter(appConfig, redisClient, appLogger)
	defer rateLimiter.Close()

	// Load failures go to the log and to /v1/alerts
	alerts := notify.NewAlertBoard(appConfig.AlertTTL)
	notifier := notify.Multi{alerts, notify.NewLogNotifier(appLogger)}

	// Build application layers
	index := bbox.NewIndex(sources.Boxes, bbox.Options{
		Notifier: notifier,
		Metrics:  metricsCollector,
		Logger:   appLogger,
		Timeout:  appConfig.FetchTimeout,
	})
	if appConfig.WarmIndex {
		go index.Load(context.Background())
	}
	loader := feature.NewLoader(sources.Features, feature.Options{
		Notifier: notifier,
		Metrics:  metricsCollector,
		Logger:   appLogger,
		Timeout:  appConfig.FetchTimeout,
	})

	resolverOpts := resolver.Options{Metrics: metricsCollector, Logger: appLogger}
	if redisClient != nil && appConfig.GeoCache == "redis" {
		resolverOpts.ResultCache = source.NewRedisResultCache(redisClient)
	}
	countryResolver := resolver.New(index, loader, resolverOpts)

	countryService := service.NewCountryService(countryResolver, appConfig.BatchConcurrency, metricsCollector, appLogger)
	galleryService := service.NewGalleryService(metricsCollector, appLogger)

	appRouter := router.SetupRouter(router.Handlers{
		Country: handler.NewCountryHandler(countryService),
		Layout:  handler.NewLayoutHandler(galleryService),
		Alerts:  handler.NewAlertHandler(alerts),
	}, router.Options{
		Limiter: rateLimiter,
		Metrics: metricsCollector,
		Logger:  appLogger,
		Health:  countryResolver,
	})

	// Start server
	startServer(appConfig, appRouter, appLogger)
}

// setupLogger initializes the structured logger
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:      appConfig.LogLevel,
		Pretty:     appConfig.LogPretty,
		OutputFile: appConfig.LogFile,
	})

	appLogger.Info().Msg("Starting TravelGeo Server...")
	appLogger.Info().
		Str("port", appConfig.Port).
		Str("rate_limiter_type", appConfig.RateLimitType).
		Int("rate_limit", appConfig.RateLimit).
		Int("rate_limit_window", appConfig.RateLimitWindow).
		Str("datasource_type", appConfig.DatasourceType).
		Str("geo_cache", appConfig.GeoCache).
		Dur("fetch_timeout", appConfig.FetchTimeout).
		Msg("Configuration loaded")

	return appLogger
}

// setupRedis connects to Redis when the feature cache or the rate limiter needs it
func setupRedis(appConfig *config.Config, log *logger.Logger) *redis.Client {
	if appConfig.GeoCache != "redis" && appConfig.RateLimitType != "redis" {
		return nil
	}

	client, err := source.NewRedisClient(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Str("addr", appConfig.RedisAddr).Msg("Failed to connect to Redis")
	}

	log.Info().Str("addr", appConfig.RedisAddr).Msg("Redis connected")
	return client
}

// setupSources initializes the dataset backend based on configuration
// Supports a local directory, the static HTTP host, and MySQL
func setupSources(appConfig *config.Config, redisClient *redis.Client, log *logger.Logger) *source.Sources {
	sources, err := source.NewSources(source.Config{
		Type:       appConfig.DatasourceType,
		BaseURL:    appConfig.GeoBaseURL,
		DataDir:    appConfig.GeoDataDir,
		DSN:        appConfig.MySQLDSN,
		Cache:      appConfig.GeoCache,
		Redis:      redisClient,
		HTTPClient: &http.Client{Timeout: appConfig.FetchTimeout},
	}, log)
	if err != nil {
		log.Fatal().Err(err).Str("type", appConfig.DatasourceType).Msg("Failed to initialize datasource")
	}

	log.Info().Str("type", appConfig.DatasourceType).Msg("Datasource initialized")
	return sources
}

// setupRateLimiter initializes the rate limiter
// Supports in-memory and Redis-based rate limiting
func setupRateLimiter(appConfig *config.Config, redisClient *redis.Client, log *logger.Logger) limiter.Limiter {
	window := time.Duration(appConfig.RateLimitWindow) * time.Second

	rateLimiter, err := limiter.NewLimiter(limiter.Config{
		Type:   appConfig.RateLimitType,
		Limit:  appConfig.RateLimit,
		Window: window,
		Redis:  redisClient,
		Logger: log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize rate limiter")
	}

	log.Info().
		Str("type", appConfig.RateLimitType).
		Int("limit", appConfig.RateLimit).
		Dur("window", window).
		Msg("Rate limiter initialized")

	return rateLimiter
}

// setupMetrics initializes the Prometheus metrics collector
func setupMetrics(log *logger.Logger) *metrics.Metrics {
	metricsCollector := metrics.New()
	log.Info().Msg("Metrics initialized")
	return metricsCollector
}

// startServer serves until SIGINT/SIGTERM, then drains in-flight requests
func startServer(appConfig *config.Config, appRouter http.Handler, log *logger.Logger) {
	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           appRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("port", appConfig.Port).
		Str("api_endpoint", "http://localhost:"+appConfig.Port+"/v1/find-country?lon=<lon>&lat=<lat>").
		Str("health_check", "http://localhost:"+appConfig.Port+"/health").
		Str("metrics", "http://localhost:"+appConfig.Port+"/metrics").
		Str("swagger", "http://localhost:"+appConfig.Port+"/swagger/index.html").
		Msg("Server is running")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}
}
