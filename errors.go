package geolbl

import "errors"

var (
	ErrMissingInput      = errors.New("input file does not exist")
	ErrSingularTransform = errors.New("geotransform is not invertible")
	ErrEmptyRaster       = errors.New("raster has no pixels or bands")
	ErrNoLayer           = errors.New("vector dataset has no layer")
	ErrUnsupportedFormat = errors.New("unsupported label format")
	ErrMalformedLabel    = errors.New("malformed label line")
)
