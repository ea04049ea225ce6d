// Renders a geocoded raster and a copy with its GeoJSON building footprints outlined on top.
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
		_, _ = fmt.Fprintln(os.Stderr, "  [-config <file>] [-image <file>] [-geojson <file>] [-out <dir>]")
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

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "image":
			cfg.ImagePath = *imagePath
		case "geojson":
			cfg.GeoJSONPath = *geoJSONPath
		case "out":
			cfg.OutputDir = *outDir
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

	res, err := geolbl.RenderOverlays(geoio.NewLoader(), cfg)
	if err != nil {
		log.Fatal("Rendering failed", zap.Error(err))
	}

	abs, err := filepath.Abs(filepath.Dir(res.AnnotatedPath))
	if err != nil {
		abs = filepath.Dir(res.AnnotatedPath)
	}
	log.Info("Processing finished", zap.String("outputDir", abs), zap.Int("outlines", res.Rings))
}
