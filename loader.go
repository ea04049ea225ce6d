package geolbl

import (
	"fmt"
	"os"

	"github.com/sensorable/geolbl/log"

	"go.uber.org/zap"
)

// SceneLoader reads the two inputs shared by both pipelines.
type SceneLoader interface {
	// LoadRaster opens the raster at path and returns its metadata and display image.
	LoadRaster(path string) (*Raster, error)
	// LoadFeatures reads the vector dataset at path and reprojects every geometry into the
	// coordinate reference system given as WKT.
	LoadFeatures(path, crsWKT string) ([]Feature, error)
}

// Scene is a raster together with the features that annotate it.
type Scene struct {
	Raster   *Raster
	Features []Feature
	inverse  GeoTransform
}

// NewScene pairs raster with features and precomputes the inverse of the raster transform.
func NewScene(raster *Raster, features []Feature) (*Scene, error) {
	inv, err := raster.Transform.Invert()
	if err != nil {
		return nil, fmt.Errorf("raster %q: %w", raster.FilePath, err)
	}
	return &Scene{Raster: raster, Features: features, inverse: inv}, nil
}

// Inverse returns the geodetic->pixel transform of the raster.
func (s *Scene) Inverse() GeoTransform {
	return s.inverse
}

// CheckInputs returns an error wrapping ErrMissingInput and naming the first path that does
// not exist.
func CheckInputs(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrMissingInput, p)
			}
			return fmt.Errorf("cannot access %q: %v", p, err)
		}
	}
	return nil
}

// LoadScene checks that both inputs exist, then loads the raster and the features reprojected
// into the raster's coordinate reference system.
func LoadScene(loader SceneLoader, imagePath, vectorPath string) (*Scene, error) {
	if err := CheckInputs(imagePath, vectorPath); err != nil {
		return nil, err
	}

	raster, err := loader.LoadRaster(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load raster %q: %w", imagePath, err)
	}
	if raster.FilePath == "" {
		raster.FilePath = imagePath
	}
	log.Info("loaded raster", zap.String("path", imagePath), zap.Int("width", raster.Width),
		zap.Int("height", raster.Height), zap.Int("bands", raster.BandCount))

	features, err := loader.LoadFeatures(vectorPath, raster.CRS)
	if err != nil {
		return nil, fmt.Errorf("failed to load features %q: %w", vectorPath, err)
	}
	if len(features) == 0 {
		log.Warn("no features to label", zap.String("path", vectorPath))
	} else {
		log.Info("loaded features", zap.String("path", vectorPath), zap.Int("features", len(features)))
	}

	return NewScene(raster, features)
}
