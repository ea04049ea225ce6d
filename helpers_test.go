package geolbl

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
)

// UTM-like transform with 0.5m pixels. Pixel (col, row) is at
// (500000 + col/2, 1700000 - row/2).
var testTransform = GeoTransform{500000, 0.5, 0, 1700000, 0, -0.5}

// geoOf returns the geodetic coordinates of a pixel under testTransform.
func geoOf(col, row float64) orb.Point {
	x, y := testTransform.Apply(col, row)
	return orb.Point{x, y}
}

// pixelSquare returns a polygon whose pixel-space bounds are (x1, y1)-(x2, y2).
func pixelSquare(x1, y1, x2, y2 float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		geoOf(x1, y1), geoOf(x2, y1), geoOf(x2, y2), geoOf(x1, y2), geoOf(x1, y1),
	}}
}

func testRaster(path string, width, height int) *Raster {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0x40, 0x40, 0x40, 0xff})
		}
	}
	return &Raster{
		FilePath:  path,
		Width:     width,
		Height:    height,
		BandCount: 3,
		Transform: testTransform,
		CRS:       "EPSG:32636",
		Image:     img,
	}
}

// fakeLoader serves a fixed raster and feature list.
type fakeLoader struct {
	raster   *Raster
	features []Feature

	rasterCalls  int
	featureCalls int
	gotCRS       string
}

func (l *fakeLoader) LoadRaster(path string) (*Raster, error) {
	l.rasterCalls++
	r := *l.raster
	r.FilePath = path
	return &r, nil
}

func (l *fakeLoader) LoadFeatures(path, crsWKT string) ([]Feature, error) {
	l.featureCalls++
	l.gotCRS = crsWKT
	return l.features, nil
}

func features(geoms ...orb.Geometry) []Feature {
	fs := make([]Feature, len(geoms))
	for i, g := range geoms {
		fs[i] = Feature{Index: i, Geometry: g}
	}
	return fs
}

// touch creates an empty file named name in dir and returns its path.
func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, nil, 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

// testConfig returns a configuration with existing (empty) input files in a temp dir.
func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.ImagePath = touch(t, dir, "RGB-PanSharpen_AOI_5_Khartoum_img1.tif")
	cfg.GeoJSONPath = touch(t, dir, "buildings_AOI_5_Khartoum_img1.geojson")
	cfg.OutputDir = filepath.Join(dir, "output")
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}
