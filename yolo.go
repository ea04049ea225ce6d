package geolbl

// YOLO (horizontal bounding box) specific functionality.

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// YOLOBox is a single YOLO label. All values except ClassID are relative to the image size.
type YOLOBox struct {
	ClassID int
	XCenter float64
	YCenter float64
	Width   float64
	Height  float64
}

// String formats b as a label line without the trailing newline.
func (b YOLOBox) String() string {
	return fmt.Sprintf("%d %.6f %.6f %.6f %.6f", b.ClassID, b.XCenter, b.YCenter, b.Width, b.Height)
}

// ToYOLO converts the intermediate representation to normalized YOLO boxes.
func ToYOLO(f AnnotatedFile) []YOLOBox {
	width := float64(f.Width)
	height := float64(f.Height)

	boxes := make([]YOLOBox, len(f.Annotations))
	for i, a := range f.Annotations {
		xc, yc := a.Center()
		boxes[i] = YOLOBox{
			ClassID: a.ClassID,
			XCenter: xc / width,
			YCenter: yc / height,
			Width:   a.Width() / width,
			Height:  a.Height() / height,
		}
	}

	return boxes
}

// WriteYOLO writes one line per box to path, replacing any previous content.
func WriteYOLO(path string, boxes []YOLOBox) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create label file %q: %v", path, err)
	}
	defer closeWithErrCheck(file, &err)

	w := bufio.NewWriter(file)
	for _, b := range boxes {
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}

	return w.Flush()
}

// FromYOLO reads the YOLO label file at path and converts the boxes back to absolute pixel
// coordinates for an image of the given size.
func FromYOLO(path string, width, height int) ([]Annotation, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	annotations := make([]Annotation, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b, err := parseYOLOBox(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}
		annotations = append(annotations, b.denormalize(float64(width), float64(height)))
	}

	return annotations, nil
}

// parseYOLOBox parses a single label line.
func parseYOLOBox(line string) (YOLOBox, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 5 {
		return YOLOBox{}, fmt.Errorf("%w: want 5 fields in %q", ErrMalformedLabel, line)
	}

	classID, err := strconv.Atoi(tokens[0])
	if err != nil {
		return YOLOBox{}, fmt.Errorf("%w: class id in %q: %v", ErrMalformedLabel, line, err)
	}
	var v [4]float64
	for i := range v {
		if v[i], err = strconv.ParseFloat(tokens[i+1], 64); err != nil {
			return YOLOBox{}, fmt.Errorf("%w: %q: %v", ErrMalformedLabel, line, err)
		}
	}

	return YOLOBox{ClassID: classID, XCenter: v[0], YCenter: v[1], Width: v[2], Height: v[3]}, nil
}

// denormalize returns the absolute box for an image of the given size.
func (b YOLOBox) denormalize(width, height float64) Annotation {
	xc, yc := b.XCenter*width, b.YCenter*height
	w, h := b.Width*width, b.Height*height
	return Annotation{
		Coords:  [4]float64{xc - w/2, yc - h/2, xc + w/2, yc + h/2},
		ClassID: b.ClassID,
	}
}
