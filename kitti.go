package geolbl

// KITTI specific functionality.

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// KITTIAnnotation is a single annotation within a KITTI file.
type KITTIAnnotation struct {
	Coords [4]float64 // x1, y1, x2, y2
	Label  string
}

// ToKitti converts the intermediate representation to KITTI annotations. Labels must not
// contain whitespace, so any is replaced by underscores.
func ToKitti(f AnnotatedFile) []KITTIAnnotation {
	kittiData := make([]KITTIAnnotation, len(f.Annotations))
	for i, a := range f.Annotations {
		label := strings.Join(strings.Fields(a.Label), "_")
		if label == "" {
			label = strconv.Itoa(a.ClassID)
		}
		kittiData[i] = KITTIAnnotation{Coords: a.Coords, Label: label}
	}
	return kittiData
}

// WriteKitti writes the annotations to the label file at path, replacing any previous content.
// Lines carry the 15 ground truth fields, without a detection score.
func WriteKitti(path string, data []KITTIAnnotation) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create label file %q: %v", path, err)
	}
	defer closeWithErrCheck(file, &err)

	w := bufio.NewWriter(file)
	for _, a := range data {
		_, err = fmt.Fprintf(w,
			"%s 0.0 0 0.0 %.2f %.2f %.2f %.2f 0.0 0.0 0.0 0.0 0.0 0.0 0.0\n",
			a.Label, a.Coords[0], a.Coords[1], a.Coords[2], a.Coords[3])
		if err != nil {
			return err
		}
	}

	return w.Flush()
}

// FromKitti reads the KITTI label file at path.
func FromKitti(path string) ([]Annotation, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	annotations := make([]Annotation, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		a, err := parseKittiAnnotation(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}
		annotations = append(annotations, Annotation{Coords: a.Coords, Label: a.Label})
	}

	return annotations, nil
}

// parseKittiAnnotation parses the label and box of a single annotation. Trailing fields, such as
// a detection score, are ignored.
func parseKittiAnnotation(line string) (KITTIAnnotation, error) {
	a := KITTIAnnotation{}

	tokens := strings.Fields(line)
	if len(tokens) < 8 {
		return a, fmt.Errorf("%w: insufficient tokens in %q", ErrMalformedLabel, line)
	}

	a.Label = tokens[0]
	var err error
	for i := 4; i < 8 && err == nil; i++ {
		a.Coords[i-4], err = strconv.ParseFloat(tokens[i], 64)
	}
	if err != nil {
		return a, fmt.Errorf("%w: unexpected values in %q: %v", ErrMalformedLabel, line, err)
	}

	return a, nil
}
