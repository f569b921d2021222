package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/models"
)

// maxFeatureBytes caps a single country document
const maxFeatureBytes = 64 << 20

// HTTPSource reads the datasets from the blog's static host:
//
//	GET {base}/json/geo_bounding_boxes.json
//	GET {base}/json/geo/{code}.json
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource creates a source for the given host; a nil client uses http.DefaultClient
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// LoadBoxes implements BoxSource
func (s *HTTPSource) LoadBoxes(ctx context.Context) ([]models.BoundingBoxEntry, error) {
	body, err := s.get(ctx, s.baseURL+"/json/geo_bounding_boxes.json")
	if err != nil {
		return nil, fmt.Errorf("failed to load country bounding boxes: %w", err)
	}
	defer body.Close()

	var entries []models.BoundingBoxEntry
	if err := json.NewDecoder(body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode country bounding boxes: %w", err)
	}

	return sanitizeBoxes(entries), nil
}

// LoadFeature implements FeatureSource
func (s *HTTPSource) LoadFeature(ctx context.Context, code string) (*geometry.CountryFeature, error) {
	if !validCode(code) {
		return nil, notFound(code)
	}

	body, err := s.get(ctx, s.baseURL+"/json/geo/"+code+".json")
	if err != nil {
		return nil, fmt.Errorf("failed to load country data for %s: %w", code, err)
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxFeatureBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read country data for %s: %w", code, err)
	}

	return geometry.DecodeFeature(code, data)
}

// get issues a GET and treats any non-2xx status as a failure
func (s *HTTPSource) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: GET %s", ErrNotFound, url)
		}
		return nil, fmt.Errorf("unexpected status %d from GET %s", resp.StatusCode, url)
	}

	return resp.Body, nil
}
