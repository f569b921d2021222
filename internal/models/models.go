package models

import "strconv"

// GeoPoint is a WGS84 coordinate taken from a blog post
// Order follows GeoJSON: longitude first
type GeoPoint struct {
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
}

// Key returns the stable "lon,lat" serialization used as a cache key.
// -0 and 0 share a key.
func (p GeoPoint) Key() string {
	return formatCoord(p.Lon) + "," + formatCoord(p.Lat)
}

func formatCoord(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Bounds is an axis-aligned longitude/latitude rectangle
type Bounds struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// Contains reports whether p lies inside the rectangle; all four edges are inclusive
func (b Bounds) Contains(p GeoPoint) bool {
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon &&
		p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}

// Valid reports whether min <= max on both axes
func (b Bounds) Valid() bool {
	return b.MinLon <= b.MaxLon && b.MinLat <= b.MaxLat
}

// BoundingBoxEntry is one row of the bounding-box dataset
type BoundingBoxEntry struct {
	Code   string `json:"code"`
	Bounds Bounds `json:"bounds"`
}

// CountryResult is the response for a resolved coordinate
type CountryResult struct {
	Code string  `json:"code"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
}

// BatchCountryRequest is the body of POST /v1/find-countries
type BatchCountryRequest struct {
	Points []GeoPoint `json:"points"`
}

// BatchCountryItem is one entry of a batch response; Code is empty when nothing matched
type BatchCountryItem struct {
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Code  string  `json:"code,omitempty"`
	Found bool    `json:"found"`
}

// BatchCountryResponse is the response of POST /v1/find-countries
type BatchCountryResponse struct {
	Results []BatchCountryItem `json:"results"`
}

// LayoutImage is one gallery image in a layout request
type LayoutImage struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// LayoutRequest is the body of POST /v1/layout
type LayoutRequest struct {
	Images         []LayoutImage `json:"images" validate:"dive"`
	ContainerWidth float64       `json:"container_width" validate:"gt=0"`
	TargetHeight   float64       `json:"target_height" validate:"gt=0"`
	Padding        *float64      `json:"padding,omitempty" validate:"omitempty,gte=0"`
	ByRow          bool          `json:"by_row"`
}

// ResolvedResponse lists every coordinate resolved to a country so far,
// keyed by "lon,lat"
type ResolvedResponse struct {
	Points map[string]string `json:"points"`
	Count  int               `json:"count"`
}

// AlertResponse carries the current transient notification
type AlertResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error string `json:"error"`
}

// Resolution is a cached country lookup outcome; Found is false for a cached "no match"
type Resolution struct {
	Code  string `json:"code,omitempty"`
	Found bool   `json:"found"`
}

// ResolverStatus is the body of GET /health when resolution is wired in
type ResolverStatus struct {
	Status         string `json:"status"`
	BoxesLoaded    bool   `json:"boxes_loaded"`
	Boxes          int    `json:"boxes"`
	FeaturesCached int    `json:"features_cached"`
	Resolved       int    `json:"resolved"`
}
