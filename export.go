package geolbl

// The label exporter pipeline.

import (
	"fmt"

	"github.com/sensorable/geolbl/log"

	"go.uber.org/zap"
)

// ExportResult summarizes a label export.
type ExportResult struct {
	LabelPath   string
	OverlayPath string // Empty unless the debug overlay was requested.
	Features    int    // Features read from the vector input.
	Labels      int    // Labels written.
}

// ExportLabels derives one bounding box per footprint in cfg.GeoJSONPath, relative to the raster
// cfg.ImagePath, and writes them to a single label file in cfg.OutputDir named after the raster.
// Nothing is written if either input is missing.
func ExportLabels(loader SceneLoader, cfg *Config) (*ExportResult, error) {
	scene, err := LoadScene(loader, cfg.ImagePath, cfg.GeoJSONPath)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(cfg.OutputDir); err != nil {
		return nil, err
	}

	data := DeriveAnnotations(scene, cfg.Labels.ClassID, cfg.Labels.ClassName)
	data.Filter(cfg.Labels.MinBboxWidth, cfg.Labels.MinBboxHeight)

	format := cfg.Labels.Format
	res := &ExportResult{
		LabelPath: outputPath(cfg.OutputDir, scene.Raster.FilePath, format.Ext()),
		Features:  len(scene.Features),
		Labels:    len(data.Annotations),
	}
	if err := writeLabels(format, res.LabelPath, data, scene.Raster, cfg); err != nil {
		return nil, err
	}
	log.Info("labels saved", zap.String("path", res.LabelPath), zap.String("format", string(format)),
		zap.Int("labels", res.Labels))

	if cfg.Labels.DebugOverlay {
		boxes, err := readLabels(format, res.LabelPath, data)
		if err != nil {
			return nil, err
		}
		res.OverlayPath = outputPath(cfg.OutputDir, scene.Raster.FilePath, "_boxes.jpg")
		img := DrawBoxes(scene.Raster.Image, boxes, BoxStyle)
		if err := saveSnapshot(res.OverlayPath, img, cfg.snapshotOptions()); err != nil {
			return nil, err
		}
		log.Info("label overlay saved", zap.String("path", res.OverlayPath))
	}

	return res, nil
}

// writeLabels writes data to path in the given format.
func writeLabels(format LabelFormat, path string, data AnnotatedFile, raster *Raster, cfg *Config) error {
	var err error
	switch format {
	case YOLO:
		err = WriteYOLO(path, ToYOLO(data))
	case Kitti:
		err = WriteKitti(path, ToKitti(data))
	case TFRecord:
		err = WriteTFRecord(path, data, raster.Image, cfg.Snapshot.JPEGQuality)
	case Sloth:
		err = WriteSloth(path, ToSloth(data))
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to write labels: %w", err)
	}
	return nil
}

// readLabels reads back the label file at path in pixel coordinates. TFRecord files are not
// parsed; their boxes are taken from data.
func readLabels(format LabelFormat, path string, data AnnotatedFile) ([]Annotation, error) {
	switch format {
	case YOLO:
		return FromYOLO(path, data.Width, data.Height)
	case Kitti:
		return FromKitti(path)
	case TFRecord:
		return data.Annotations, nil
	case Sloth:
		return FromSloth(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
