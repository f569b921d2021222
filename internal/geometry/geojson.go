package geometry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrUnsupportedGeometry is returned for features that are not Polygon or MultiPolygon
var ErrUnsupportedGeometry = errors.New("unsupported geometry type")

// DecodeFeature parses one country's GeoJSON Feature document
func DecodeFeature(code string, data []byte) (*CountryFeature, error) {
	f, err := geojson.UnmarshalFeature(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode feature for %s: %w", code, err)
	}

	return FromGeoJSON(code, f)
}

// FromGeoJSON converts an orb GeoJSON feature into a CountryFeature
func FromGeoJSON(code string, f *geojson.Feature) (*CountryFeature, error) {
	var geom Geometry
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		geom = Polygon(g)
	case orb.MultiPolygon:
		geom = MultiPolygon(g)
	case nil:
		return nil, fmt.Errorf("feature for %s has no geometry: %w", code, ErrUnsupportedGeometry)
	default:
		return nil, fmt.Errorf("feature for %s is %s: %w", code, g.GeoJSONType(), ErrUnsupportedGeometry)
	}

	return &CountryFeature{
		Code:     strings.ToUpper(code),
		Name:     stringProp(f.Properties, "ADMIN"),
		ISOA2:    stringProp(f.Properties, "ISO_A2"),
		Geometry: geom,
	}, nil
}

// ToGeoJSON encodes the feature back into a GeoJSON Feature document
func ToGeoJSON(cf *CountryFeature) ([]byte, error) {
	var g orb.Geometry
	switch geom := cf.Geometry.(type) {
	case Polygon:
		g = orb.Polygon(geom)
	case MultiPolygon:
		g = orb.MultiPolygon(geom)
	default:
		return nil, fmt.Errorf("feature for %s: %w", cf.Code, ErrUnsupportedGeometry)
	}

	f := geojson.NewFeature(g)
	f.Properties["ISO_A2"] = cf.ISOA2
	if cf.Name != "" {
		f.Properties["ADMIN"] = cf.Name
	}

	return f.MarshalJSON()
}

func stringProp(props geojson.Properties, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}
