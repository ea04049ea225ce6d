package geolbl

// Sloth specific functionality.

import (
	"encoding/json"
	"fmt"
	"os"
)

// SlothAnnotation is a single annotation within a Sloth file.
type SlothAnnotation struct {
	Class  string  `json:"class,omitempty"`
	Type   string  `json:"type,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// SlothAnnotatedFile defines the Sloth annotation structure for a single image.
type SlothAnnotatedFile struct {
	Annotations []SlothAnnotation `json:"annotations"`
	Class       string            `json:"class,omitempty"`
	FilePath    string            `json:"filename,omitempty"`
}

// ToSloth converts the labels of one raster to a Sloth label list.
func ToSloth(f AnnotatedFile) []SlothAnnotatedFile {
	s := SlothAnnotatedFile{
		Annotations: make([]SlothAnnotation, len(f.Annotations)),
		Class:       "image",
		FilePath:    f.FilePath,
	}
	for i, a := range f.Annotations {
		s.Annotations[i] = SlothAnnotation{
			Class:  a.Label,
			Type:   "rect",
			X:      a.Coords[0],
			Y:      a.Coords[1],
			Width:  a.Width(),
			Height: a.Height(),
		}
	}
	return []SlothAnnotatedFile{s}
}

// WriteSloth writes the Sloth label list to path, replacing any previous content.
func WriteSloth(path string, data []SlothAnnotatedFile) error {
	enc, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(enc, '\n'), 0644); err != nil {
		return fmt.Errorf("cannot write file %q: %v", path, err)
	}
	return nil
}

// FromSloth reads the boxes of every image listed in the Sloth file at path.
func FromSloth(path string) ([]Annotation, error) {
	enc, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var slothData []SlothAnnotatedFile
	if err := json.Unmarshal(enc, &slothData); err != nil {
		return nil, fmt.Errorf("%w: failed to parse Sloth input from %q: %v", ErrMalformedLabel, path, err)
	}

	var annotations []Annotation
	for _, s := range slothData {
		for _, a := range s.Annotations {
			annotations = append(annotations, Annotation{
				Coords: [4]float64{a.X, a.Y, a.X + a.Width, a.Y + a.Height},
				Label:  a.Class,
			})
		}
	}
	return annotations, nil
}
