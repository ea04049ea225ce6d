package geolbl

// Affine mapping between raster pixel coordinates and geodetic coordinates.

import "fmt"

// GeoTransform is a 6-parameter affine transform in GDAL order:
//
//	x = t[0] + col*t[1] + row*t[2]
//	y = t[3] + col*t[4] + row*t[5]
type GeoTransform [6]float64

// Apply maps (col, row) through t.
func (t GeoTransform) Apply(col, row float64) (x, y float64) {
	return t[0] + col*t[1] + row*t[2], t[3] + col*t[4] + row*t[5]
}

// Invert returns the transform mapping the output space of t back to its input space. The
// inverse of a pixel->geodetic transform maps geodetic coordinates to pixel coordinates.
func (t GeoTransform) Invert() (GeoTransform, error) {
	det := t[1]*t[5] - t[2]*t[4]
	if det == 0 {
		return GeoTransform{}, fmt.Errorf("%w: %v", ErrSingularTransform, [6]float64(t))
	}

	a := t[5] / det
	b := -t[2] / det
	d := -t[4] / det
	e := t[1] / det

	return GeoTransform{
		-t[0]*a - t[3]*b, a, b,
		-t[0]*d - t[3]*e, d, e,
	}, nil
}

// PixelOf applies t to the first two components of coord. Any further components (elevation,
// measure) are ignored, so (x, y, z) and (x, y) map to the same point.
func (t GeoTransform) PixelOf(coord ...float64) (col, row float64) {
	return t.Apply(coord[0], coord[1])
}
