package geolbl

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature is one vector feature, already expressed in the raster's coordinate reference system.
type Feature struct {
	Index    int // Position of the feature in its source layer.
	Geometry orb.Geometry
}

// DecodeGeometry parses a GeoJSON geometry object. Coordinates beyond x and y are dropped.
func DecodeGeometry(data []byte) (orb.Geometry, error) {
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode GeoJSON geometry: %w", err)
	}
	return g.Geometry(), nil
}

// PixelRings maps the exterior ring of each polygon in g into pixel space using inv, the
// geodetic->pixel transform. A Polygon yields one ring, a MultiPolygon one ring per part. Other
// geometry types yield none.
func PixelRings(g orb.Geometry, inv GeoTransform) [][]orb.Point {
	switch g := g.(type) {
	case orb.Polygon:
		if ring := pixelRing(g, inv); ring != nil {
			return [][]orb.Point{ring}
		}
	case orb.MultiPolygon:
		rings := make([][]orb.Point, 0, len(g))
		for _, p := range g {
			if ring := pixelRing(p, inv); ring != nil {
				rings = append(rings, ring)
			}
		}
		return rings
	}
	return nil
}

// pixelRing maps the exterior ring of p, or returns nil if p has none.
func pixelRing(p orb.Polygon, inv GeoTransform) []orb.Point {
	if len(p) == 0 || len(p[0]) == 0 {
		return nil
	}
	ring := make([]orb.Point, len(p[0]))
	for i, pt := range p[0] {
		ring[i][0], ring[i][1] = inv.PixelOf(pt[:]...)
	}
	return ring
}
