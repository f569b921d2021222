package source

import (
	"context"
	"sync"

	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/models"
)

// MockSource is a test double for BoxSource and FeatureSource.
// It records calls and is safe for concurrent use.
type MockSource struct {
	mu sync.Mutex

	// Boxes is returned by LoadBoxes
	Boxes []models.BoundingBoxEntry

	// Features maps code -> feature returned by LoadFeature
	Features map[string]*geometry.CountryFeature

	// Control behavior for error scenarios
	BoxesError    error
	FeatureErrors map[string]error

	// Gate, when set, blocks every load until it is closed
	Gate chan struct{}

	// Track method calls for verification in tests
	LoadBoxesCalls    int
	LoadFeatureCalls  []string
	maxInFlightForKey map[string]int32
	inFlightForKey    map[string]int32
}

// NewMockSource creates an empty mock source
func NewMockSource() *MockSource {
	return &MockSource{
		Features:          map[string]*geometry.CountryFeature{},
		FeatureErrors:     map[string]error{},
		LoadFeatureCalls:  []string{},
		maxInFlightForKey: map[string]int32{},
		inFlightForKey:    map[string]int32{},
	}
}

// LoadBoxes implements BoxSource
func (m *MockSource) LoadBoxes(ctx context.Context) ([]models.BoundingBoxEntry, error) {
	m.mu.Lock()
	m.LoadBoxesCalls++
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BoxesError != nil {
		return nil, m.BoxesError
	}
	return append([]models.BoundingBoxEntry(nil), m.Boxes...), nil
}

// LoadFeature implements FeatureSource
func (m *MockSource) LoadFeature(ctx context.Context, code string) (*geometry.CountryFeature, error) {
	m.mu.Lock()
	m.LoadFeatureCalls = append(m.LoadFeatureCalls, code)
	m.inFlightForKey[code]++
	if m.inFlightForKey[code] > m.maxInFlightForKey[code] {
		m.maxInFlightForKey[code] = m.inFlightForKey[code]
	}
	gate := m.Gate
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlightForKey[code]--
		m.mu.Unlock()
	}()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FeatureErrors[code]; err != nil {
		return nil, err
	}
	f, ok := m.Features[code]
	if !ok {
		return nil, notFound(code)
	}
	return f, nil
}

// SetFeature adds or replaces a feature
func (m *MockSource) SetFeature(f *geometry.CountryFeature) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Features[f.Code] = f
}

// SetFeatureError makes LoadFeature fail for code; nil clears it
func (m *MockSource) SetFeatureError(code string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeatureErrors[code] = err
}

// FeatureCalls returns how many times LoadFeature was called for code
func (m *MockSource) FeatureCalls(code string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.LoadFeatureCalls {
		if c == code {
			n++
		}
	}
	return n
}

// TotalFeatureCalls returns the number of LoadFeature calls
func (m *MockSource) TotalFeatureCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.LoadFeatureCalls)
}

// BoxCalls returns the number of LoadBoxes calls
func (m *MockSource) BoxCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LoadBoxesCalls
}

// MaxConcurrentFeatureLoads returns the highest number of overlapping
// LoadFeature calls observed for code
func (m *MockSource) MaxConcurrentFeatureLoads(code string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int(m.maxInFlightForKey[code])
}
