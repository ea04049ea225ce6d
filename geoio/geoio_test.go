package geoio

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sensorable/geolbl"

	"github.com/airbusgeo/godal"
	"github.com/paulmach/orb"
)

// writeGeoTiff creates a byte raster with one band per entry of bands.
func writeGeoTiff(t *testing.T, path string, epsg int, gt [6]float64, w, h int, bands ...[]uint8) {
	t.Helper()
	NewLoader()
	ds, err := godal.Create(godal.GTiff, path, len(bands), godal.Byte, w, h)
	if err != nil {
		t.Fatal(err)
	}
	if err := ds.SetGeoTransform(gt); err != nil {
		t.Fatal(err)
	}
	sr, err := godal.NewSpatialRefFromEPSG(epsg)
	if err != nil {
		t.Fatal(err)
	}
	defer sr.Close()
	if err := ds.SetSpatialRef(sr); err != nil {
		t.Fatal(err)
	}
	for i, band := range ds.Bands() {
		if err := band.Write(0, 0, bands[i], w, h); err != nil {
			t.Fatal(err)
		}
	}
	if err := ds.Close(); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadRaster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img1.tif")
	gt := [6]float64{500000, 0.5, 0, 1700000, 0, -0.5}
	writeGeoTiff(t, path, 32636, gt, 2, 1,
		[]uint8{10, 0},  // B
		[]uint8{20, 0},  // G
		[]uint8{200, 0}, // R
	)

	r, err := NewLoader().LoadRaster(path)
	if err != nil {
		t.Fatal(err)
	}
	if r.Width != 2 || r.Height != 1 || r.BandCount != 3 || r.FilePath != path {
		t.Errorf("unexpected raster %+v", r)
	}
	if r.Transform != geolbl.GeoTransform(gt) {
		t.Errorf("got transform %v", r.Transform)
	}
	if r.CRS == "" {
		t.Error("missing CRS")
	}
	if got, want := r.Image.NRGBAAt(0, 0), (color.NRGBA{255, 25, 12, 255}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLoadRasterMissing(t *testing.T) {
	if _, err := NewLoader().LoadRaster(filepath.Join(t.TempDir(), "nope.tif")); err == nil {
		t.Error("expected an error")
	}
}

func TestLoadFeaturesSameCRS(t *testing.T) {
	dir := t.TempDir()
	raster := filepath.Join(dir, "img1.tif")
	writeGeoTiff(t, raster, 32636, [6]float64{500000, 0.5, 0, 1700000, 0, -0.5}, 1, 1, []uint8{1})
	vector := filepath.Join(dir, "buildings.geojson")
	writeFile(t, vector, `{"type":"FeatureCollection",
"crs":{"type":"name","properties":{"name":"urn:ogc:def:crs:EPSG::32636"}},
"features":[
{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[
  [500050,1699950,12],[500075,1699950,12],[500075,1699930,12],[500050,1699930,12],[500050,1699950,12]]]}},
{"type":"Feature","properties":{},"geometry":null},
{"type":"Feature","properties":{},"geometry":{"type":"MultiPolygon","coordinates":[[[
  [500000,1700000],[500010,1700000],[500010,1699990],[500000,1700000]]]]}}
]}`)

	l := NewLoader()
	r, err := l.LoadRaster(raster)
	if err != nil {
		t.Fatal(err)
	}
	fs, err := l.LoadFeatures(vector, r.CRS)
	if err != nil {
		t.Fatal(err)
	}

	if len(fs) != 2 {
		t.Fatalf("got %d features, want 2", len(fs))
	}
	if fs[0].Index != 0 || fs[1].Index != 2 {
		t.Errorf("got indices %d, %d", fs[0].Index, fs[1].Index)
	}
	poly, ok := fs[0].Geometry.(orb.Polygon)
	if !ok {
		t.Fatalf("got %T, want a polygon", fs[0].Geometry)
	}
	if b := poly.Bound(); b.Min != (orb.Point{500050, 1699930}) || b.Max != (orb.Point{500075, 1699950}) {
		t.Errorf("got bound %v", b)
	}
	if _, ok := fs[1].Geometry.(orb.MultiPolygon); !ok {
		t.Errorf("got %T, want a multipolygon", fs[1].Geometry)
	}
}

func TestLoadFeaturesReprojects(t *testing.T) {
	dir := t.TempDir()
	raster := filepath.Join(dir, "img1.tif")
	writeGeoTiff(t, raster, 3857, [6]float64{3600000, 1, 0, 1800000, 0, -1}, 1, 1, []uint8{1})
	vector := filepath.Join(dir, "buildings.geojson")
	writeFile(t, vector, `{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[
  [32.5,15.6],[32.6,15.6],[32.6,15.5],[32.5,15.6]]]}}
]}`)

	l := NewLoader()
	r, err := l.LoadRaster(raster)
	if err != nil {
		t.Fatal(err)
	}
	fs, err := l.LoadFeatures(vector, r.CRS)
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 1 {
		t.Fatalf("got %d features", len(fs))
	}

	// Spherical mercator.
	const radius = 6378137.0
	mercator := func(lon, lat float64) orb.Point {
		return orb.Point{
			radius * lon * math.Pi / 180,
			radius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360)),
		}
	}
	ring := fs[0].Geometry.(orb.Polygon)[0]
	want := []orb.Point{mercator(32.5, 15.6), mercator(32.6, 15.6), mercator(32.6, 15.5)}
	for i, w := range want {
		if math.Abs(ring[i][0]-w[0]) > 0.01 || math.Abs(ring[i][1]-w[1]) > 0.01 {
			t.Errorf("vertex %d: got %v, want %v", i, ring[i], w)
		}
	}
}

func TestLoadFeaturesErrors(t *testing.T) {
	l := NewLoader()
	if _, err := l.LoadFeatures("buildings.geojson", ""); !errors.Is(err, ErrNoCRS) {
		t.Errorf("got %v, want ErrNoCRS", err)
	}
	if _, err := l.LoadFeatures(filepath.Join(t.TempDir(), "nope.geojson"), "EPSG:4326"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestExportLabelsWithGDAL(t *testing.T) {
	dir := t.TempDir()
	cfg := geolbl.DefaultConfig()
	cfg.ImagePath = filepath.Join(dir, "img1.tif")
	cfg.GeoJSONPath = filepath.Join(dir, "buildings.geojson")
	cfg.OutputDir = filepath.Join(dir, "output")

	pix := make([]uint8, 20*10)
	writeGeoTiff(t, cfg.ImagePath, 32636, [6]float64{500000, 0.5, 0, 1700000, 0, -0.5}, 20, 10, pix, pix, pix)
	writeFile(t, cfg.GeoJSONPath, `{"type":"FeatureCollection",
"crs":{"type":"name","properties":{"name":"urn:ogc:def:crs:EPSG::32636"}},
"features":[
{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[
  [500001,1699999],[500003,1699999],[500003,1699998],[500001,1699998],[500001,1699999]]]}}
]}`)

	res, err := geolbl.ExportLabels(NewLoader(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(res.LabelPath)
	if err != nil {
		t.Fatal(err)
	}
	// Pixels (2, 2)-(6, 4) of a 20x10 raster.
	if want := "0 0.200000 0.300000 0.200000 0.200000\n"; string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
