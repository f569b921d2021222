package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/models"
)

// FileSource reads the datasets from a local directory with the same layout
// as the static host:
//
//	<dir>/geo_bounding_boxes.json
//	<dir>/geo/<code>.json
type FileSource struct {
	dir string
}

// NewFileSource creates a source rooted at dir; the directory must exist
func NewFileSource(dir string) (*FileSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open geo data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("geo data path %s is not a directory", dir)
	}
	return &FileSource{dir: dir}, nil
}

// LoadBoxes implements BoxSource
func (s *FileSource) LoadBoxes(ctx context.Context) ([]models.BoundingBoxEntry, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, "geo_bounding_boxes.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read country bounding boxes: %w", err)
	}

	var entries []models.BoundingBoxEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode country bounding boxes: %w", err)
	}

	return sanitizeBoxes(entries), nil
}

// LoadFeature implements FeatureSource
func (s *FileSource) LoadFeature(ctx context.Context, code string) (*geometry.CountryFeature, error) {
	if !validCode(code) {
		return nil, notFound(code)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, "geo", code+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(code)
		}
		return nil, fmt.Errorf("failed to read country data for %s: %w", code, err)
	}

	return geometry.DecodeFeature(code, data)
}

// Codes lists the country codes that have a feature file, in directory order
func (s *FileSource) Codes() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "geo"))
	if err != nil {
		return nil, fmt.Errorf("failed to list country data: %w", err)
	}

	var codes []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		codes = append(codes, name[:len(name)-len(".json")])
	}
	return codes, nil
}
