package resolver

import (
	"context"
	"sync"

	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/models"
	"github.com/evyataryagoni/travelgeo/internal/source"
)

// MockResolver is a test double for code that depends on a Resolver
// It allows tests to control answers and verify interactions
type MockResolver struct {
	mu sync.Mutex

	// Codes maps GeoPoint.Key() -> country code; missing keys resolve to no match
	Codes map[string]string

	// Features maps code -> feature returned by Feature
	Features map[string]*geometry.CountryFeature

	// Control behavior for error scenarios
	FeatureError error

	// Track method calls for verification in tests
	ResolveCalls []models.GeoPoint
	FeatureCalls []string
}

// NewMockResolver creates a mock resolver that knows Stockholm and Oslo
func NewMockResolver() *MockResolver {
	return &MockResolver{
		Codes: map[string]string{
			models.GeoPoint{Lon: 18.07, Lat: 59.33}.Key(): "SE",
			models.GeoPoint{Lon: 10.75, Lat: 59.91}.Key(): "NO",
		},
		Features:     map[string]*geometry.CountryFeature{},
		ResolveCalls: []models.GeoPoint{},
		FeatureCalls: []string{},
	}
}

// ResolveCountry returns the configured code for point
func (m *MockResolver) ResolveCountry(ctx context.Context, point models.GeoPoint) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ResolveCalls = append(m.ResolveCalls, point)
	code, ok := m.Codes[point.Key()]
	return code, ok
}

// ResolveMany resolves each point in order
func (m *MockResolver) ResolveMany(ctx context.Context, points []models.GeoPoint, limit int) []models.Resolution {
	out := make([]models.Resolution, len(points))
	for i, p := range points {
		code, ok := m.ResolveCountry(ctx, p)
		out[i] = models.Resolution{Code: code, Found: ok}
	}
	return out
}

// Feature returns the configured feature, FeatureError, or source.ErrNotFound
func (m *MockResolver) Feature(ctx context.Context, code string) (*geometry.CountryFeature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FeatureCalls = append(m.FeatureCalls, code)
	if m.FeatureError != nil {
		return nil, m.FeatureError
	}
	f, ok := m.Features[code]
	if !ok {
		return nil, source.ErrNotFound
	}
	return f, nil
}

// Resolved returns the configured codes of every point resolved so far
func (m *MockResolver) Resolved() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := map[string]string{}
	for _, p := range m.ResolveCalls {
		if code, ok := m.Codes[p.Key()]; ok {
			out[p.Key()] = code
		}
	}
	return out
}
