// Package source provides the datasets behind country resolution: the ordered
// bounding-box list and per-country border features. Backends are an HTTP host,
// a local directory, MySQL, and a Redis read-through cache.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/models"
)

// ErrNotFound is returned when no feature exists for a country code
var ErrNotFound = errors.New("country feature not found")

// BoxSource loads the bounding-box dataset
type BoxSource interface {
	LoadBoxes(ctx context.Context) ([]models.BoundingBoxEntry, error)
}

// FeatureSource loads the border feature of one country
type FeatureSource interface {
	LoadFeature(ctx context.Context, code string) (*geometry.CountryFeature, error)
}

// sanitizeBoxes drops entries without a code or with inverted bounds,
// keeping the order of the rest
func sanitizeBoxes(entries []models.BoundingBoxEntry) []models.BoundingBoxEntry {
	out := make([]models.BoundingBoxEntry, 0, len(entries))
	for _, e := range entries {
		if e.Code == "" || !e.Bounds.Valid() {
			continue
		}
		out = append(out, e)
	}
	return out
}

// validCode accepts the characters that appear in dataset codes (letters,
// digits, '-' and '_'), which also keeps codes safe to use in paths and keys
func validCode(code string) bool {
	if code == "" || len(code) > 16 {
		return false
	}
	for _, r := range code {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func notFound(code string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, code)
}
