package feature

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/evyataryagoni/travelgeo/internal/metrics"
	"github.com/evyataryagoni/travelgeo/internal/notify"
	"github.com/evyataryagoni/travelgeo/internal/source"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
)

func squareFeature(code string) *geometry.CountryFeature {
	return &geometry.CountryFeature{
		Code:     code,
		ISOA2:    code,
		Geometry: geometry.Polygon{orb.Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}},
	}
}

func newTestLoader(src source.FeatureSource, n notify.Notifier) *Loader {
	return NewLoader(src, Options{Notifier: n, Logger: logger.Nop(), Timeout: time.Second})
}

// TestLoader_CachesSuccess tests that a loaded feature is never fetched again
func TestLoader_CachesSuccess(t *testing.T) {
	src := source.NewMockSource()
	src.SetFeature(squareFeature("SE"))
	loader := newTestLoader(src, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f, err := loader.Load(ctx, "SE")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Code != "SE" {
			t.Errorf("expected SE, got %s", f.Code)
		}
	}

	if src.FeatureCalls("SE") != 1 {
		t.Errorf("expected 1 fetch, got %d", src.FeatureCalls("SE"))
	}
	if _, ok := loader.Cached("SE"); !ok {
		t.Error("expected SE to be cached")
	}
	if loader.Len() != 1 {
		t.Errorf("expected 1 cached feature, got %d", loader.Len())
	}
}

// TestLoader_FailureNotCached tests retry on the next call after a failure
func TestLoader_FailureNotCached(t *testing.T) {
	src := source.NewMockSource()
	src.SetFeature(squareFeature("SE"))
	src.SetFeatureError("SE", errors.New("502 Bad Gateway"))
	notifier := notify.NewMockNotifier()
	loader := newTestLoader(src, notifier)
	ctx := context.Background()

	if _, err := loader.Load(ctx, "SE"); err == nil {
		t.Fatal("expected error, got nil")
	}
	if notifier.Last() != "Failed to load country data for SE" {
		t.Errorf("unexpected notification: %q", notifier.Last())
	}
	if _, ok := loader.Cached("SE"); ok {
		t.Error("expected failure not to be cached")
	}

	src.SetFeatureError("SE", nil)

	if _, err := loader.Load(ctx, "SE"); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if src.FeatureCalls("SE") != 2 {
		t.Errorf("expected 2 fetches, got %d", src.FeatureCalls("SE"))
	}
}

// TestLoader_NotFound tests that a missing feature is reported
func TestLoader_NotFound(t *testing.T) {
	src := source.NewMockSource()
	notifier := notify.NewMockNotifier()
	loader := newTestLoader(src, notifier)

	_, err := loader.Load(context.Background(), "ZZ")
	if !errors.Is(err, source.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if notifier.Count() != 1 {
		t.Errorf("expected 1 notification, got %d", notifier.Count())
	}
}

// TestLoader_SingleFlight tests that concurrent loads of one code share a fetch
func TestLoader_SingleFlight(t *testing.T) {
	src := source.NewMockSource()
	src.SetFeature(squareFeature("SE"))
	src.SetFeature(squareFeature("NO"))
	src.Gate = make(chan struct{})
	loader := newTestLoader(src, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		for _, code := range []string{"SE", "NO"} {
			wg.Add(1)
			go func(code string) {
				defer wg.Done()
				f, err := loader.Load(context.Background(), code)
				if err == nil && f.Code != code {
					err = errors.New("wrong feature for " + code)
				}
				errs <- err
			}(code)
		}
	}

	time.Sleep(50 * time.Millisecond)
	close(src.Gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if src.FeatureCalls("SE") != 1 || src.FeatureCalls("NO") != 1 {
		t.Errorf("expected 1 fetch per code, got SE=%d NO=%d", src.FeatureCalls("SE"), src.FeatureCalls("NO"))
	}
}

// TestLoader_CallerCancellation tests that an abandoned wait still populates the cache
func TestLoader_CallerCancellation(t *testing.T) {
	src := source.NewMockSource()
	src.SetFeature(squareFeature("SE"))
	src.Gate = make(chan struct{})
	loader := newTestLoader(src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.Load(ctx, "SE"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	close(src.Gate)
	if _, err := loader.Load(context.Background(), "SE"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.FeatureCalls("SE") != 1 {
		t.Errorf("expected the abandoned fetch to be reused, got %d fetches", src.FeatureCalls("SE"))
	}
}

// TestLoader_Metrics tests cache metrics with a private registry
func TestLoader_Metrics(t *testing.T) {
	src := source.NewMockSource()
	src.SetFeature(squareFeature("SE"))
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	loader := NewLoader(src, Options{Metrics: m, Logger: logger.Nop()})
	ctx := context.Background()

	loader.Load(ctx, "SE")
	loader.Load(ctx, "SE")

	if _, err := m.GeoCacheHits.GetMetricWithLabelValues("country_feature", "hit"); err != nil {
		t.Errorf("expected hit counter, got %v", err)
	}
}
