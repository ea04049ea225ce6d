package geolbl

// The intermediate annotation representation shared by all label formats.

import (
	"math"

	"github.com/sensorable/geolbl/log"

	"go.uber.org/zap"
)

// Annotation is the intermediate representation of an object label.
type Annotation struct {
	Coords  [4]float64 // Absolute x1, y1, x2, y2 pixel offsets from the top-left corner.
	ClassID int
	Label   string
}

// Width is the object width from a.Coords.
func (a Annotation) Width() float64 {
	return a.Coords[2] - a.Coords[0]
}

// Height is the object height from a.Coords.
func (a Annotation) Height() float64 {
	return a.Coords[3] - a.Coords[1]
}

// Center is the object center from a.Coords.
func (a Annotation) Center() (x, y float64) {
	return (a.Coords[0] + a.Coords[2]) / 2, (a.Coords[1] + a.Coords[3]) / 2
}

// AnnotatedFile is the intermediate representation of the labels for one raster.
type AnnotatedFile struct {
	Annotations []Annotation
	FilePath    string // The annotated raster.
	Width       int    // Raster width in pixels.
	Height      int    // Raster height in pixels.
}

// boxFromCorners returns the annotation spanned by two pixel corners in any order.
func boxFromCorners(x1, y1, x2, y2 float64, classID int, label string) Annotation {
	return Annotation{
		Coords:  [4]float64{math.Min(x1, x2), math.Min(y1, y2), math.Max(x1, x2), math.Max(y1, y2)},
		ClassID: classID,
		Label:   label,
	}
}

// DeriveAnnotations maps the geodetic bounds of every feature in s into pixel space and returns
// one axis-aligned box per feature, in feature order. Features with an empty geometry are
// skipped. Boxes are not clipped to the raster extent.
func DeriveAnnotations(s *Scene, classID int, label string) AnnotatedFile {
	inv := s.Inverse()
	f := AnnotatedFile{
		Annotations: make([]Annotation, 0, len(s.Features)),
		FilePath:    s.Raster.FilePath,
		Width:       s.Raster.Width,
		Height:      s.Raster.Height,
	}

	for _, feat := range s.Features {
		if feat.Geometry == nil {
			continue
		}
		b := feat.Geometry.Bound()
		if b.IsEmpty() {
			log.Debug("skipping empty geometry", zap.Int("feature", feat.Index))
			continue
		}
		x1, y1 := inv.PixelOf(b.Min[0], b.Min[1])
		x2, y2 := inv.PixelOf(b.Max[0], b.Max[1])
		f.Annotations = append(f.Annotations, boxFromCorners(x1, y1, x2, y2, classID, label))
	}

	return f
}

// Filter removes annotations with a bounding box narrower than minBboxWidth or lower than
// minBboxHeight pixels, and those whose size relative to the raster is not in (0, 1] in both
// dimensions. The order of the remaining annotations is preserved.
func (f *AnnotatedFile) Filter(minBboxWidth, minBboxHeight float64) {
	width := float64(f.Width)
	height := float64(f.Height)

	kept := f.Annotations[:0]
	var tooSmall, outOfRange int
	for _, a := range f.Annotations {
		w, h := a.Width(), a.Height()
		if w < minBboxWidth || h < minBboxHeight {
			tooSmall++
			continue
		}
		if nw, nh := w/width, h/height; !(nw > 0 && nw <= 1 && nh > 0 && nh <= 1) {
			outOfRange++
			continue
		}
		kept = append(kept, a)
	}
	f.Annotations = kept

	log.Info("filtered labels", zap.String("raster", f.FilePath), zap.Int("kept", len(kept)),
		zap.Int("tooSmall", tooSmall), zap.Int("outOfRange", outOfRange))
}
