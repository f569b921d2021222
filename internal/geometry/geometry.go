// Package geometry holds country border shapes and the point containment test
// used to confirm a bounding-box candidate.
//
// Geometry is a closed sum type: only Polygon and MultiPolygon implement it.
// Coordinates follow GeoJSON order (longitude, latitude) and are treated as planar.
package geometry

import (
	"github.com/evyataryagoni/travelgeo/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Geometry is either a Polygon or a MultiPolygon
type Geometry interface {
	// Bound returns the axis-aligned rectangle enclosing the geometry
	Bound() models.Bounds

	sealed()
}

// Polygon is an ordered list of linear rings: the first ring is the outer
// boundary, every following ring is a hole.
type Polygon orb.Polygon

// MultiPolygon is an ordered list of polygons
type MultiPolygon orb.MultiPolygon

func (Polygon) sealed()      {}
func (MultiPolygon) sealed() {}

// Bound implements Geometry
func (p Polygon) Bound() models.Bounds {
	return fromOrbBound(orb.Polygon(p).Bound())
}

// Bound implements Geometry
func (mp MultiPolygon) Bound() models.Bounds {
	return fromOrbBound(orb.MultiPolygon(mp).Bound())
}

// CountryFeature is the border geometry of one country
type CountryFeature struct {
	Code     string   // code the feature was requested under
	Name     string   // ADMIN property
	ISOA2    string   // ISO_A2 property, may be "-99" in Natural Earth data
	Geometry Geometry // Polygon or MultiPolygon
}

// CountryCode returns the ISO_A2 property when it is a real alpha-2 code,
// otherwise the code the feature was loaded under.
func (f *CountryFeature) CountryCode() string {
	if isAlpha2(f.ISOA2) {
		return f.ISOA2
	}
	return f.Code
}

// Contains reports whether point lies inside geom.
//
// Rings use the even-odd rule. A point on a ring's edge counts as inside that
// ring, so a point on an outer boundary is contained and a point on a hole's
// boundary is not. A MultiPolygon contains the point when any part does.
func Contains(geom Geometry, point models.GeoPoint) bool {
	pt := orb.Point{point.Lon, point.Lat}

	switch g := geom.(type) {
	case Polygon:
		return polygonContains(orb.Polygon(g), pt)
	case MultiPolygon:
		for _, poly := range g {
			if polygonContains(poly, pt) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func polygonContains(poly orb.Polygon, pt orb.Point) bool {
	if len(poly) == 0 || !ringContains(poly[0], pt) {
		return false
	}
	for _, hole := range poly[1:] {
		if ringContains(hole, pt) {
			return false
		}
	}
	return true
}

// ringContains skips degenerate rings, which enclose no area
func ringContains(ring orb.Ring, pt orb.Point) bool {
	if len(ring) < 3 {
		return false
	}
	return planar.RingContains(ring, pt)
}

func fromOrbBound(b orb.Bound) models.Bounds {
	return models.Bounds{
		MinLon: b.Min.Lon(),
		MinLat: b.Min.Lat(),
		MaxLon: b.Max.Lon(),
		MaxLat: b.Max.Lat(),
	}
}

func isAlpha2(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
