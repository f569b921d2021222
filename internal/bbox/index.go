// Package bbox holds the country bounding-box list used as a cheap
// pre-filter before exact polygon tests.
package bbox

import (
	"context"
	"sync"
	"time"

	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/evyataryagoni/travelgeo/internal/metrics"
	"github.com/evyataryagoni/travelgeo/internal/models"
	"github.com/evyataryagoni/travelgeo/internal/notify"
	"github.com/evyataryagoni/travelgeo/internal/source"
	"golang.org/x/sync/singleflight"
)

// LoadFailedMessage is shown to users when the dataset cannot be loaded
const LoadFailedMessage = "Failed to load data."

// Index is the lazily loaded, ordered bounding-box list.
//
// The dataset is fetched at most once per Index. A failed fetch leaves the
// index empty for the rest of its lifetime.
type Index struct {
	source   source.BoxSource
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *logger.Logger
	timeout  time.Duration

	mu      sync.RWMutex
	loaded  bool
	entries []models.BoundingBoxEntry

	flight singleflight.Group
}

// Options configures an Index; zero values are valid
type Options struct {
	Notifier notify.Notifier
	Metrics  *metrics.Metrics
	Logger   *logger.Logger
	Timeout  time.Duration // per fetch, default 10s
}

// NewIndex creates an index backed by src; nothing is fetched until first use
func NewIndex(src source.BoxSource, opts Options) *Index {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefault()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Index{
		source:   src,
		notifier: opts.Notifier,
		metrics:  opts.Metrics,
		logger:   opts.Logger.WithComponent("BoundingBoxIndex"),
		timeout:  opts.Timeout,
	}
}

// Candidates returns the codes whose box contains point, in dataset order
func (idx *Index) Candidates(ctx context.Context, point models.GeoPoint) []string {
	entries := idx.Entries(ctx)

	var codes []string
	for _, e := range entries {
		if e.Bounds.Contains(point) {
			codes = append(codes, e.Code)
		}
	}
	return codes
}

// Entries returns the loaded list, loading it first if needed.
// If ctx ends while waiting for the load, the result is empty for this call only.
func (idx *Index) Entries(ctx context.Context) []models.BoundingBoxEntry {
	if entries, ok := idx.snapshot(); ok {
		return entries
	}

	ch := idx.flight.DoChan("boxes", func() (interface{}, error) {
		// A load that finished between snapshot() and DoChan must not be repeated
		if entries, ok := idx.snapshot(); ok {
			return entries, nil
		}
		return idx.load(), nil
	})

	select {
	case res := <-ch:
		return res.Val.([]models.BoundingBoxEntry)
	case <-ctx.Done():
		return nil
	}
}

// Load forces the dataset load and reports whether any boxes are available
func (idx *Index) Load(ctx context.Context) bool {
	return len(idx.Entries(ctx)) > 0
}

// Loaded reports whether the single load attempt has completed
func (idx *Index) Loaded() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.loaded
}

// Len returns the number of boxes held; 0 before loading
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

func (idx *Index) snapshot() ([]models.BoundingBoxEntry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.entries, idx.loaded
}

// load runs on its own context so a cancelled caller cannot poison the index
func (idx *Index) load() []models.BoundingBoxEntry {
	ctx, cancel := context.WithTimeout(context.Background(), idx.timeout)
	defer cancel()

	start := time.Now()
	entries, err := idx.source.LoadBoxes(ctx)
	if idx.metrics != nil {
		idx.metrics.GeoFetchDuration.WithLabelValues("bounding_boxes").Observe(time.Since(start).Seconds())
	}

	if err != nil {
		idx.logger.Error().Err(err).Msg("Failed to load country bounding boxes")
		idx.notifier.Notify(LoadFailedMessage)
		if idx.metrics != nil {
			idx.metrics.GeoFetchesTotal.WithLabelValues("bounding_boxes", "error").Inc()
		}
		entries = []models.BoundingBoxEntry{}
	} else {
		idx.logger.Info().Int("boxes", len(entries)).Msg("Country bounding boxes loaded")
		if idx.metrics != nil {
			idx.metrics.GeoFetchesTotal.WithLabelValues("bounding_boxes", "success").Inc()
		}
		if entries == nil {
			entries = []models.BoundingBoxEntry{}
		}
	}

	idx.mu.Lock()
	idx.entries = entries
	idx.loaded = true
	idx.mu.Unlock()

	return entries
}
