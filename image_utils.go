package geolbl

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// resamplingFilter returns the imaging filter called name.
func resamplingFilter(name string) (imaging.ResampleFilter, error) {
	switch name {
	case "nearest":
		return imaging.NearestNeighbor, nil
	case "box":
		return imaging.Box, nil
	case "linear":
		return imaging.Linear, nil
	case "gaussian":
		return imaging.Gaussian, nil
	case "lanczos":
		return imaging.Lanczos, nil
	}
	return imaging.ResampleFilter{}, fmt.Errorf("unknown resampling filter %q", name)
}

// resizeImage resamples the image so that its longer side measures longerSide pixels, keeping
// the aspect ratio. A longerSide <= 0 returns img unchanged.
func resizeImage(img image.Image, longerSide int, filter imaging.ResampleFilter) image.Image {
	imgBounds := img.Bounds()
	imgWidth := imgBounds.Dx()
	imgHeight := imgBounds.Dy()
	if longerSide <= 0 || imgWidth == 0 || imgHeight == 0 {
		return img
	}

	imgLonger := imgWidth
	imgShorter := imgHeight
	isLandscape := true
	if imgHeight > imgWidth {
		imgLonger = imgHeight
		imgShorter = imgWidth
		isLandscape = false
	}
	if longerSide == imgLonger {
		return img
	}

	shorterSide := int(math.Round(float64(longerSide) * (float64(imgShorter) / float64(imgLonger))))
	if shorterSide < 1 {
		shorterSide = 1
	}

	if isLandscape {
		return imaging.Resize(img, longerSide, shorterSide, filter)
	}
	return imaging.Resize(img, shorterSide, longerSide, filter) // Portrait.
}

// SnapshotOptions controls how rendered images are written.
type SnapshotOptions struct {
	JPEGQuality int    // [1, 100].
	LongerSide  int    // Target length of the longer side; zero keeps the rendered size.
	Filter      string // Resampling filter used when resizing.
}

// saveSnapshot resizes img as requested by opts and writes it to path. The encoding follows the
// file extension of path (JPEG unless it ends in .png).
func saveSnapshot(path string, img image.Image, opts SnapshotOptions) error {
	if opts.LongerSide > 0 {
		filter, err := resamplingFilter(opts.Filter)
		if err != nil {
			return err
		}
		img = resizeImage(img, opts.LongerSide, filter)
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = imaging.Save(img, path)
	default:
		err = imaging.Save(img, path, imaging.JPEGQuality(opts.JPEGQuality))
	}
	if err != nil {
		return fmt.Errorf("cannot write image %q: %v", path, err)
	}
	return nil
}
