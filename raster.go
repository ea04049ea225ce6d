package geolbl

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Raster is a geocoded image as needed by both pipelines.
type Raster struct {
	FilePath  string
	Width     int
	Height    int
	BandCount int
	Transform GeoTransform // Pixel -> geodetic.
	CRS       string       // WKT of the raster's coordinate reference system.
	Image     *image.NRGBA // Display image, see NormalizeBands.
}

// displayBands returns the indices of the bands that make up the display image. Sources with at
// least three bands are assumed to be stored BGR-like, so bands 2, 1, 0 become R, G, B. Anything
// else is shown as grayscale from the first band; the second band of a 2-band source is dropped.
func displayBands(bandCount int) []int {
	if bandCount >= 3 {
		return []int{2, 1, 0}
	}
	return []int{0}
}

// NormalizeBands builds the 8-bit display image from raw band data. bands holds one
// width*height row-major slice per raster band.
//
// Values are scaled to v/peak*255, where peak is the largest value across the selected bands,
// and truncated to uint8. Sources with fewer than three bands render band 1 as grayscale; other
// bands of a 2-band source take no part in the image or the peak. An image without positive values is black. This is a per-image
// normalization: a single bright outlier darkens the whole image.
func NormalizeBands(bands [][]float64, width, height int) (*image.NRGBA, error) {
	if len(bands) == 0 || width <= 0 || height <= 0 {
		return nil, ErrEmptyRaster
	}
	n := width * height
	for i, b := range bands {
		if len(b) != n {
			return nil, fmt.Errorf("band %d holds %d values, want %d", i, len(b), n)
		}
	}

	channels := make([][]float64, 0, 3)
	for _, i := range displayBands(len(bands)) {
		channels = append(channels, bands[i])
	}

	peak := math.Inf(-1)
	for _, c := range channels {
		for _, v := range c {
			if v > peak {
				peak = v
			}
		}
	}
	if peak <= 0 || math.IsInf(peak, 0) {
		peak = math.NaN()
	}

	toByte := func(v float64) uint8 {
		s := v / peak * 255
		switch {
		case math.IsNaN(s) || s <= 0:
			return 0
		case s >= 255:
			return 255
		}
		return uint8(s)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			var c color.NRGBA
			if len(channels) == 3 {
				c = color.NRGBA{toByte(channels[0][i]), toByte(channels[1][i]), toByte(channels[2][i]), 0xff}
			} else {
				g := toByte(channels[0][i])
				c = color.NRGBA{g, g, g, 0xff}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	return img, nil
}
