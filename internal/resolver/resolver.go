// Package resolver maps coordinates to country codes using the bounding-box
// pre-filter and exact border geometry, memoizing every answer.
package resolver

import (
	"context"
	"sync"

	"github.com/evyataryagoni/travelgeo/internal/bbox"
	"github.com/evyataryagoni/travelgeo/internal/feature"
	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/evyataryagoni/travelgeo/internal/metrics"
	"github.com/evyataryagoni/travelgeo/internal/models"
	"golang.org/x/sync/errgroup"
)

// ResultCache is a second-level store for resolutions, consulted on an
// in-memory miss. source.RedisResultCache implements it.
type ResultCache interface {
	Get(ctx context.Context, key string) (models.Resolution, bool, error)
	Set(ctx context.Context, key string, res models.Resolution) error
}

// Resolver resolves coordinates to countries. Safe for concurrent use.
type Resolver struct {
	index   *bbox.Index
	loader  *feature.Loader
	l2      ResultCache
	metrics *metrics.Metrics
	logger  *logger.Logger

	mu    sync.RWMutex
	cache map[string]models.Resolution
}

// Options configures a Resolver; zero values are valid
type Options struct {
	ResultCache ResultCache
	Metrics     *metrics.Metrics
	Logger      *logger.Logger
}

// New creates a resolver over the given index and loader
func New(index *bbox.Index, loader *feature.Loader, opts Options) *Resolver {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefault()
	}
	return &Resolver{
		index:   index,
		loader:  loader,
		l2:      opts.ResultCache,
		metrics: opts.Metrics,
		logger:  opts.Logger.WithComponent("CountryResolver"),
		cache:   make(map[string]models.Resolution),
	}
}

// ResolveCountry returns the code of the first candidate country whose border
// contains point. A point outside every country, or one whose candidates all
// failed to load, resolves to ok == false. Both outcomes are cached.
//
// If ctx ends mid-resolution the partial answer is returned but not cached.
func (r *Resolver) ResolveCountry(ctx context.Context, point models.GeoPoint) (string, bool) {
	key := point.Key()

	if res, ok := r.lookup(ctx, key); ok {
		return res.Code, res.Found
	}

	log := r.logger.WithPoint(point.Lon, point.Lat)

	for _, code := range r.index.Candidates(ctx, point) {
		f, err := r.loader.Load(ctx, code)
		if err != nil {
			log.Debug().Err(err).Str("candidate", code).Msg("Skipping candidate")
			continue
		}
		if geometry.Contains(f.Geometry, point) {
			res := models.Resolution{Code: f.CountryCode(), Found: true}
			r.store(ctx, key, res)
			log.Debug().Str("country", res.Code).Msg("Coordinate resolved")
			return res.Code, true
		}
	}

	if ctx.Err() != nil {
		return "", false
	}

	r.store(ctx, key, models.Resolution{})
	log.Debug().Msg("No country matched")
	return "", false
}

// ResolveMany resolves points concurrently with at most limit resolutions in
// flight. Results are aligned with points.
func (r *Resolver) ResolveMany(ctx context.Context, points []models.GeoPoint, limit int) []models.Resolution {
	results := make([]models.Resolution, len(points))
	if limit <= 0 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, p := range points {
		i, p := i, p
		g.Go(func() error {
			code, ok := r.ResolveCountry(gctx, p)
			results[i] = models.Resolution{Code: code, Found: ok}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Feature returns the border geometry for code
func (r *Resolver) Feature(ctx context.Context, code string) (*geometry.CountryFeature, error) {
	return r.loader.Load(ctx, code)
}

// Resolved returns a snapshot of every matched coordinate key and its code
func (r *Resolver) Resolved() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.cache))
	for k, v := range r.cache {
		if v.Found {
			out[k] = v.Code
		}
	}
	return out
}

// Status reports dataset and cache sizes for the health endpoint
func (r *Resolver) Status() models.ResolverStatus {
	r.mu.RLock()
	resolved := len(r.cache)
	r.mu.RUnlock()

	return models.ResolverStatus{
		BoxesLoaded:    r.index.Loaded(),
		Boxes:          r.index.Len(),
		FeaturesCached: r.loader.Len(),
		Resolved:       resolved,
	}
}

func (r *Resolver) lookup(ctx context.Context, key string) (models.Resolution, bool) {
	r.mu.RLock()
	res, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		r.countCache("memory", "hit")
		return res, true
	}
	r.countCache("memory", "miss")

	if r.l2 == nil {
		return models.Resolution{}, false
	}

	res, ok, err := r.l2.Get(ctx, key)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("Result cache read failed")
		return models.Resolution{}, false
	}
	if !ok {
		r.countCache("redis", "miss")
		return models.Resolution{}, false
	}
	r.countCache("redis", "hit")

	r.mu.Lock()
	r.cache[key] = res
	r.mu.Unlock()
	return res, true
}

func (r *Resolver) store(ctx context.Context, key string, res models.Resolution) {
	r.mu.Lock()
	r.cache[key] = res
	r.mu.Unlock()

	if r.l2 != nil {
		if err := r.l2.Set(ctx, key, res); err != nil {
			r.logger.Warn().Err(err).Str("key", key).Msg("Result cache write failed")
		}
	}
}

func (r *Resolver) countCache(cache, result string) {
	if r.metrics != nil {
		r.metrics.GeoCacheHits.WithLabelValues(cache, result).Inc()
	}
}
