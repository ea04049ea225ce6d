package geolbl

// Overlay rendering of labels and footprints on the display image.

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
)

// Style describes how outlines are stroked.
type Style struct {
	Color     color.Color
	LineWidth float64
}

var (
	// BoxStyle is used for label boxes.
	BoxStyle = Style{Color: color.NRGBA{0x00, 0xff, 0x00, 0xff}, LineWidth: 2}
	// RingStyle is used for footprint outlines.
	RingStyle = Style{Color: color.NRGBA{0xff, 0x00, 0x00, 0xcc}, LineWidth: 1.2}
)

// DrawBoxes returns a copy of img with an unfilled rectangle for each annotation.
func DrawBoxes(img image.Image, annotations []Annotation, style Style) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetColor(style.Color)
	dc.SetLineWidth(style.LineWidth)
	for _, a := range annotations {
		dc.DrawRectangle(a.Coords[0], a.Coords[1], a.Width(), a.Height())
		dc.Stroke()
	}
	return dc.Image()
}

// DrawRings returns a copy of img with each ring stroked as a closed outline.
func DrawRings(img image.Image, rings [][]orb.Point, style Style) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetColor(style.Color)
	dc.SetLineWidth(style.LineWidth)
	for _, ring := range rings {
		if len(ring) < 2 {
			continue
		}
		dc.MoveTo(ring[0][0], ring[0][1])
		for _, p := range ring[1:] {
			dc.LineTo(p[0], p[1])
		}
		dc.ClosePath()
		dc.Stroke()
	}
	return dc.Image()
}
