package geolbl

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LabelFormat selects the label file encoding.
type LabelFormat string

// The supported label formats.
const (
	YOLO     LabelFormat = "yolo"
	Kitti    LabelFormat = "kitti"
	TFRecord LabelFormat = "tfrecord"
	Sloth    LabelFormat = "sloth"
)

// Ext returns the label file extension including the dot.
func (f LabelFormat) Ext() string {
	switch f {
	case TFRecord:
		return ".tfrecord"
	case Sloth:
		return ".json"
	}
	return ".txt"
}

// Valid reports whether f is a known format.
func (f LabelFormat) Valid() bool {
	switch f {
	case YOLO, Kitti, TFRecord, Sloth:
		return true
	}
	return false
}

// Config holds every tunable of both pipelines.
type Config struct {
	ImagePath   string `yaml:"image"`      // Geocoded raster.
	GeoJSONPath string `yaml:"geojson"`    // Footprint polygons.
	OutputDir   string `yaml:"output_dir"` // Created if missing.

	Labels struct {
		Format        LabelFormat `yaml:"format"`
		ClassID       int         `yaml:"class_id"`
		ClassName     string      `yaml:"class_name"`
		MinBboxWidth  float64     `yaml:"min_bbox_width"`  // Pixels.
		MinBboxHeight float64     `yaml:"min_bbox_height"` // Pixels.
		DebugOverlay  bool        `yaml:"debug_overlay"`   // Render the written boxes.
	} `yaml:"labels"`

	Snapshot struct {
		JPEGQuality int    `yaml:"jpeg_quality"`
		LongerSide  int    `yaml:"longer_side"`
		Filter      string `yaml:"filter"`
	} `yaml:"snapshot"`
}

// DefaultConfig returns the configuration for the Khartoum sample scene.
func DefaultConfig() *Config {
	cfg := &Config{
		ImagePath:   "RGB-PanSharpen_AOI_5_Khartoum_img1.tif",
		GeoJSONPath: "buildings_AOI_5_Khartoum_img1.geojson",
		OutputDir:   "./output",
	}
	cfg.Labels.Format = YOLO
	cfg.Labels.ClassID = 0
	cfg.Labels.ClassName = "building"
	cfg.Snapshot.JPEGQuality = 95
	cfg.Snapshot.Filter = "box"
	return cfg
}

// LoadConfig reads the YAML file at path over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration and cleans its paths.
func (c *Config) Validate() error {
	if c.ImagePath == "" || c.GeoJSONPath == "" {
		return fmt.Errorf("missing image or geojson input path")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("missing output directory")
	}
	if !c.Labels.Format.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, c.Labels.Format)
	}
	if c.Labels.ClassID < 0 {
		return fmt.Errorf("invalid class id %d", c.Labels.ClassID)
	}
	if c.Labels.MinBboxWidth < 0 || c.Labels.MinBboxHeight < 0 {
		return fmt.Errorf("minimum bounding box size must not be negative")
	}
	if c.Snapshot.JPEGQuality < 1 || c.Snapshot.JPEGQuality > 100 {
		return fmt.Errorf("invalid JPEG quality %d, must be in [1, 100]", c.Snapshot.JPEGQuality)
	}
	if c.Snapshot.LongerSide < 0 {
		return fmt.Errorf("invalid snapshot size %d", c.Snapshot.LongerSide)
	}
	if _, err := resamplingFilter(c.Snapshot.Filter); err != nil {
		return err
	}

	c.ImagePath = filepath.Clean(c.ImagePath)
	c.GeoJSONPath = filepath.Clean(c.GeoJSONPath)
	c.OutputDir = filepath.Clean(c.OutputDir)
	return nil
}

func (c *Config) snapshotOptions() SnapshotOptions {
	return SnapshotOptions{
		JPEGQuality: c.Snapshot.JPEGQuality,
		LongerSide:  c.Snapshot.LongerSide,
		Filter:      c.Snapshot.Filter,
	}
}
