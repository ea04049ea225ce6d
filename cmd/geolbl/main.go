// Converts building footprints in a GeoJSON file into YOLO, KITTI, TFRecord or Sloth bounding
// box labels for the geocoded raster they annotate.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sensorable/geolbl"
	"github.com/sensorable/geolbl/geoio"
	"github.com/sensorable/geolbl/log"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var cfg *geolbl.Config

func init() {
	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", filepath.Base(os.Args[0]))
		_, _ = fmt.Fprintln(os.Stderr, "  [-config <file>] [-image <file>] [-geojson <file>] [-out <dir>]"+
			" [-format yolo|kitti|tfrecord|sloth]")
		_, _ = fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}

	printUsageAndExit := func(msg ...interface{}) {
		_, _ = fmt.Fprintln(os.Stderr, msg...)
		flag.Usage()
		os.Exit(1)
	}

	defaults := geolbl.DefaultConfig()

	configPath := flag.String("config", "", "The YAML configuration `file` (flags override it)")
	imagePath := flag.String("image", defaults.ImagePath, "The geocoded raster `file`")
	geoJSONPath := flag.String("geojson", defaults.GeoJSONPath, "The GeoJSON footprint `file`")
	outDir := flag.String("out", defaults.OutputDir, "The output `directory` (created if missing)")
	format := flag.String("format", string(defaults.Labels.Format),
		"The label `format` {yolo, kitti, tfrecord, sloth}")
	minWidth := flag.Float64("min-bbox-width", defaults.Labels.MinBboxWidth,
		"The min. required width in `pixels` for bounding boxes")
	minHeight := flag.Float64("min-bbox-height", defaults.Labels.MinBboxHeight,
		"The min. required height in `pixels` for bounding boxes")
	debugOverlay := flag.Bool("debug-overlay", defaults.Labels.DebugOverlay,
		"Render the written boxes over the image to <out>/<image>_boxes.jpg")
	jpegQuality := flag.Int("jpeg-quality", defaults.Snapshot.JPEGQuality,
		"The quality to use when encoding JPEGs [1, 100]")
	longerSide := flag.Int("snapshot-longer", defaults.Snapshot.LongerSide,
		"The target `length` of the longer side of rendered images (zero keeps the raster size)")
	filter := flag.String("downsample-filter", defaults.Snapshot.Filter,
		"The filter to use when resizing {nearest, box, linear, gaussian, lanczos}")
	logLevel := flag.String("log-level", "info", "The log `level` {debug, info, warn, error}")

	flag.Parse()

	if err := log.Init(*logLevel, false); err != nil {
		printUsageAndExit("Invalid -log-level:", err)
	}

	cfg = defaults
	if *configPath != "" {
		var err error
		if cfg, err = geolbl.LoadConfig(*configPath); err != nil {
			printUsageAndExit(err)
		}
	}

	// Explicitly set flags take precedence over the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "image":
			cfg.ImagePath = *imagePath
		case "geojson":
			cfg.GeoJSONPath = *geoJSONPath
		case "out":
			cfg.OutputDir = *outDir
		case "format":
			cfg.Labels.Format = geolbl.LabelFormat(*format)
		case "min-bbox-width":
			cfg.Labels.MinBboxWidth = *minWidth
		case "min-bbox-height":
			cfg.Labels.MinBboxHeight = *minHeight
		case "debug-overlay":
			cfg.Labels.DebugOverlay = *debugOverlay
		case "jpeg-quality":
			cfg.Snapshot.JPEGQuality = *jpegQuality
		case "snapshot-longer":
			cfg.Snapshot.LongerSide = *longerSide
		case "downsample-filter":
			cfg.Snapshot.Filter = *filter
		}
	})

	if err := cfg.Validate(); err != nil {
		printUsageAndExit(err)
	}
}

func main() {
	defer log.Sync()
	log.With(zap.String("run", uuid.NewString()))

	res, err := geolbl.ExportLabels(geoio.NewLoader(), cfg)
	if err != nil {
		log.Fatal("Label export failed", zap.Error(err))
	}

	log.Info("Labels saved", zap.String("path", res.LabelPath), zap.Int("features", res.Features),
		zap.Int("labels", res.Labels))
}
