package geolbl

// The overlay visualizer pipeline.

import (
	"path/filepath"

	"github.com/sensorable/geolbl/log"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// Snapshot file names written by RenderOverlays.
const (
	OriginalSnapshot  = "original_image.jpg"
	AnnotatedSnapshot = "annotated_image.jpg"
)

// OverlayResult summarizes a visualizer run.
type OverlayResult struct {
	OriginalPath  string
	AnnotatedPath string
	Rings         int // Outlines drawn.
}

// SceneRings maps the exterior ring of every polygon feature of s into pixel space.
func SceneRings(s *Scene) [][]orb.Point {
	inv := s.Inverse()
	var rings [][]orb.Point
	for _, f := range s.Features {
		rings = append(rings, PixelRings(f.Geometry, inv)...)
	}
	return rings
}

// RenderOverlays writes the display image of cfg.ImagePath, and a copy with the footprints of
// cfg.GeoJSONPath outlined on top, to cfg.OutputDir.
func RenderOverlays(loader SceneLoader, cfg *Config) (*OverlayResult, error) {
	scene, err := LoadScene(loader, cfg.ImagePath, cfg.GeoJSONPath)
	if err != nil {
		return nil, err
	}
	rings := SceneRings(scene)

	if err := ensureDir(cfg.OutputDir); err != nil {
		return nil, err
	}
	res := &OverlayResult{
		OriginalPath:  filepath.Join(cfg.OutputDir, OriginalSnapshot),
		AnnotatedPath: filepath.Join(cfg.OutputDir, AnnotatedSnapshot),
		Rings:         len(rings),
	}

	opts := cfg.snapshotOptions()
	if err := saveSnapshot(res.OriginalPath, scene.Raster.Image, opts); err != nil {
		return nil, err
	}
	annotated := DrawRings(scene.Raster.Image, rings, RingStyle)
	if err := saveSnapshot(res.AnnotatedPath, annotated, opts); err != nil {
		return nil, err
	}
	log.Info("snapshots saved", zap.String("original", res.OriginalPath),
		zap.String("annotated", res.AnnotatedPath), zap.Int("rings", res.Rings))

	return res, nil
}
