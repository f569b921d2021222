// Package feature loads country border geometry on demand and keeps every
// successfully loaded feature for the lifetime of the Loader.
package feature

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/evyataryagoni/travelgeo/internal/metrics"
	"github.com/evyataryagoni/travelgeo/internal/notify"
	"github.com/evyataryagoni/travelgeo/internal/source"
	"golang.org/x/sync/singleflight"
)

// Loader fetches per-country features, sharing in-flight fetches per code.
// Failures are not cached: the next call for the same code fetches again.
type Loader struct {
	source   source.FeatureSource
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *logger.Logger
	timeout  time.Duration

	mu    sync.RWMutex
	cache map[string]*geometry.CountryFeature

	flight singleflight.Group
}

// Options configures a Loader; zero values are valid
type Options struct {
	Notifier notify.Notifier
	Metrics  *metrics.Metrics
	Logger   *logger.Logger
	Timeout  time.Duration // per fetch, default 10s
}

// NewLoader creates a loader backed by src
func NewLoader(src source.FeatureSource, opts Options) *Loader {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefault()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Loader{
		source:   src,
		notifier: opts.Notifier,
		metrics:  opts.Metrics,
		logger:   opts.Logger.WithComponent("CountryFeatureLoader"),
		timeout:  opts.Timeout,
		cache:    make(map[string]*geometry.CountryFeature),
	}
}

// Load returns the feature for code, fetching it if it is not cached yet.
// If ctx ends first, Load returns ctx.Err() and the fetch continues for other waiters.
func (l *Loader) Load(ctx context.Context, code string) (*geometry.CountryFeature, error) {
	if f, ok := l.Cached(code); ok {
		l.countCache("hit")
		return f, nil
	}
	l.countCache("miss")

	ch := l.flight.DoChan(code, func() (interface{}, error) {
		if f, ok := l.Cached(code); ok {
			return f, nil
		}
		return l.fetch(code)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*geometry.CountryFeature), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cached returns the feature for code without fetching
func (l *Loader) Cached(code string) (*geometry.CountryFeature, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	f, ok := l.cache[code]
	return f, ok
}

// Len returns the number of cached features
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cache)
}

// fetch runs on its own context bounded by the loader timeout
func (l *Loader) fetch(code string) (*geometry.CountryFeature, error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	log := l.logger.WithCountry(code)
	start := time.Now()

	f, err := l.source.LoadFeature(ctx, code)
	if l.metrics != nil {
		l.metrics.GeoFetchDuration.WithLabelValues("country_feature").Observe(time.Since(start).Seconds())
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to load country data")
		l.notifier.Notify(fmt.Sprintf("Failed to load country data for %s", code))
		if l.metrics != nil {
			l.metrics.GeoFetchesTotal.WithLabelValues("country_feature", "error").Inc()
		}
		return nil, err
	}

	l.mu.Lock()
	l.cache[code] = f
	size := len(l.cache)
	l.mu.Unlock()

	log.Debug().Dur("duration", time.Since(start)).Msg("Country data loaded")
	if l.metrics != nil {
		l.metrics.GeoFetchesTotal.WithLabelValues("country_feature", "success").Inc()
		l.metrics.GeoFeaturesLoaded.Set(float64(size))
	}

	return f, nil
}

func (l *Loader) countCache(result string) {
	if l.metrics != nil {
		l.metrics.GeoCacheHits.WithLabelValues("country_feature", result).Inc()
	}
}
