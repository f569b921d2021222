package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/evyataryagoni/travelgeo/internal/metrics"
	"github.com/evyataryagoni/travelgeo/internal/models"
	"github.com/evyataryagoni/travelgeo/internal/source"
)

// CountryResolver is what CountryService needs from the resolver.
// *resolver.Resolver and resolver.MockResolver implement it.
type CountryResolver interface {
	ResolveCountry(ctx context.Context, point models.GeoPoint) (string, bool)
	ResolveMany(ctx context.Context, points []models.GeoPoint, limit int) []models.Resolution
	Feature(ctx context.Context, code string) (*geometry.CountryFeature, error)
	Resolved() map[string]string
}

// CountryService handles business logic for coordinate lookups
// This is the service layer - it sits between handlers and the resolver
//
// Responsibilities:
//   - Validate input (coordinate ranges, country codes)
//   - Call the resolver
//   - Turn "no match" into ErrCountryNotFound
//   - Track metrics
type CountryService struct {
	resolver    CountryResolver
	metrics     *metrics.Metrics
	logger      *logger.Logger
	concurrency int
}

// NewCountryService creates a new country service
//
// Parameters:
//   - r: the resolver
//   - concurrency: parallel resolutions per batch (values < 1 mean 1)
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewCountryService(r CountryResolver, concurrency int, m *metrics.Metrics, log *logger.Logger) *CountryService {
	if log == nil {
		log = logger.NewDefault()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &CountryService{
		resolver:    r,
		metrics:     m,
		logger:      log.WithComponent("CountryService"),
		concurrency: concurrency,
	}
}

// FindCountry resolves one coordinate
//
// Returns:
//   - ErrInvalidCoordinate when lon/lat are out of range or not finite
//   - ErrCountryNotFound when no country contains the point
func (s *CountryService) FindCountry(ctx context.Context, lon, lat float64) (*models.CountryResult, error) {
	point := models.GeoPoint{Lon: lon, Lat: lat}
	log := s.logger.WithPoint(lon, lat)

	if err := validate.Struct(point); err != nil {
		log.Warn().Msg("Invalid coordinate")
		s.countError("validation")
		return nil, fmt.Errorf("%w: lon must be in [-180,180] and lat in [-90,90]", ErrInvalidCoordinate)
	}

	code, ok := s.resolver.ResolveCountry(ctx, point)
	if !ok {
		log.Debug().Msg("No country at coordinate")
		s.countLookup("not_found")
		return nil, ErrCountryNotFound
	}

	log.Info().Str("country", code).Msg("Country lookup successful")
	s.countLookup("success")

	return &models.CountryResult{Code: code, Lon: lon, Lat: lat}, nil
}

// FindCountries resolves a batch of coordinates. The whole batch is rejected
// if any point is invalid.
func (s *CountryService) FindCountries(ctx context.Context, points []models.GeoPoint) (*models.BatchCountryResponse, error) {
	if len(points) == 0 || len(points) > MaxBatchPoints {
		s.countError("validation")
		return nil, fmt.Errorf("%w: expected 1 to %d points, got %d", ErrInvalidBatch, MaxBatchPoints, len(points))
	}
	for i, p := range points {
		if err := validate.Struct(p); err != nil {
			s.countError("validation")
			return nil, fmt.Errorf("%w: point %d is out of range", ErrInvalidCoordinate, i)
		}
	}

	resolutions := s.resolver.ResolveMany(ctx, points, s.concurrency)

	resp := &models.BatchCountryResponse{Results: make([]models.BatchCountryItem, len(points))}
	found := 0
	for i, res := range resolutions {
		resp.Results[i] = models.BatchCountryItem{
			Lon:   points[i].Lon,
			Lat:   points[i].Lat,
			Code:  res.Code,
			Found: res.Found,
		}
		if res.Found {
			found++
			s.countLookup("success")
		} else {
			s.countLookup("not_found")
		}
	}

	s.logger.Info().Int("points", len(points)).Int("found", found).Msg("Batch lookup complete")
	return resp, nil
}

// CountryFeature returns the border geometry for a two-letter country code
func (s *CountryService) CountryFeature(ctx context.Context, code string) (*geometry.CountryFeature, error) {
	code = strings.ToUpper(code)
	if err := validate.Var(code, "required,len=2,alpha"); err != nil {
		s.countError("validation")
		return nil, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}

	f, err := s.resolver.Feature(ctx, code)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			s.countError("not_found")
			return nil, ErrCountryNotFound
		}
		s.logger.WithCountry(code).Error().Err(err).Msg("Failed to load country feature")
		s.countError("load")
		return nil, fmt.Errorf("failed to load %s: %w", code, err)
	}

	return f, nil
}

// Resolved returns every coordinate matched to a country so far
func (s *CountryService) Resolved() *models.ResolvedResponse {
	points := s.resolver.Resolved()
	return &models.ResolvedResponse{Points: points, Count: len(points)}
}

func (s *CountryService) countLookup(result string) {
	if s.metrics != nil {
		s.metrics.CountryLookupsTotal.WithLabelValues(result).Inc()
	}
}

func (s *CountryService) countError(errorType string) {
	if s.metrics != nil {
		s.metrics.CountryLookupsErrors.WithLabelValues(errorType).Inc()
	}
}
