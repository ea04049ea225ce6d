// Package geoio reads geocoded rasters and vector layers through GDAL.
package geoio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sensorable/geolbl"
	"github.com/sensorable/geolbl/log"

	"github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// GeoJSON coordinate precision, in digits after the decimal separator.
const geoJSONDigits = 10

var (
	ErrNoCRS = errors.New("raster has no coordinate reference system")

	registerOnce sync.Once
)

// Loader implements geolbl.SceneLoader on top of GDAL.
type Loader struct {
	logTag string
}

// NewLoader registers the GDAL drivers and returns a loader.
func NewLoader() *Loader {
	registerOnce.Do(godal.RegisterAll)
	return &Loader{logTag: "GdalLoader:"}
}

// LoadRaster opens the raster at path and reads all of its bands.
func (l *Loader) LoadRaster(path string) (*geolbl.Raster, error) {
	ds, err := godal.Open(path, godal.RasterOnly())
	if err != nil {
		log.Error(l.logTag+"open raster failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	defer ds.Close()

	st := ds.Structure()
	gt, err := ds.GeoTransform()
	if err != nil {
		return nil, fmt.Errorf("raster %q has no geotransform: %v", path, err)
	}
	r := &geolbl.Raster{
		FilePath:  path,
		Width:     st.SizeX,
		Height:    st.SizeY,
		BandCount: st.NBands,
		Transform: geolbl.GeoTransform(gt),
		CRS:       ds.Projection(),
	}
	log.Debug(l.logTag+"raster structure", zap.Int("width", r.Width), zap.Int("height", r.Height),
		zap.Int("bands", r.BandCount), zap.String("dataType", st.DataType.String()))

	bands := ds.Bands()
	buf := make([][]float64, len(bands))
	for i, band := range bands {
		buf[i] = make([]float64, r.Width*r.Height)
		if err := band.Read(0, 0, buf[i], r.Width, r.Height); err != nil {
			log.Error(l.logTag+"read band failed", zap.Int("band", i), zap.Error(err))
			return nil, fmt.Errorf("failed to read band %d of %q: %v", i+1, path, err)
		}
	}

	if r.Image, err = geolbl.NormalizeBands(buf, r.Width, r.Height); err != nil {
		return nil, fmt.Errorf("raster %q: %w", path, err)
	}
	return r, nil
}

// LoadFeatures reads every feature of the first layer of the vector dataset at path, reprojected
// into the coordinate reference system described by crsWKT.
func (l *Loader) LoadFeatures(path, crsWKT string) ([]geolbl.Feature, error) {
	if crsWKT == "" {
		return nil, ErrNoCRS
	}
	target, err := godal.NewSpatialRefFromWKT(crsWKT)
	if err != nil {
		return nil, fmt.Errorf("invalid target CRS: %v", err)
	}
	defer target.Close()

	ds, err := godal.Open(path, godal.VectorOnly())
	if err != nil {
		log.Error(l.logTag+"open vector failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	defer ds.Close()

	layers := ds.Layers()
	if len(layers) == 0 {
		return nil, fmt.Errorf("%w: %s", geolbl.ErrNoLayer, path)
	}
	layer := layers[0]
	src := layer.SpatialRef()
	defer src.Close()
	reproject := !src.IsSame(target)
	log.Debug(l.logTag+"read layer", zap.String("path", path), zap.Bool("reproject", reproject))

	var features []geolbl.Feature
	layer.ResetReading()
	for i := 0; ; i++ {
		feat := layer.NextFeature()
		if feat == nil {
			break
		}
		f, ok, err := l.convertFeature(feat, i, target, reproject)
		feat.Close()
		if err != nil {
			return nil, fmt.Errorf("feature %d of %q: %w", i, path, err)
		}
		if ok {
			features = append(features, f)
		}
	}

	return features, nil
}

// convertFeature reprojects the geometry of feat and decodes it. It reports false for features
// without geometry.
func (l *Loader) convertFeature(feat *godal.Feature, idx int, target *godal.SpatialRef,
	reproject bool) (geolbl.Feature, bool, error) {

	geom := feat.Geometry()
	if geom.Empty() {
		log.Debug(l.logTag+"skipping feature without geometry", zap.Int("feature", idx))
		return geolbl.Feature{}, false, nil
	}
	if reproject {
		if err := geom.Reproject(target); err != nil {
			log.Error(l.logTag+"reproject failed", zap.Int("feature", idx), zap.Error(err))
			return geolbl.Feature{}, false, err
		}
	}

	gj, err := geom.GeoJSON(godal.SignificantDigits(geoJSONDigits))
	if err != nil {
		return geolbl.Feature{}, false, err
	}
	g, err := geolbl.DecodeGeometry([]byte(gj))
	if err != nil {
		return geolbl.Feature{}, false, err
	}

	return geolbl.Feature{Index: idx, Geometry: g}, true, nil
}
