package geolbl

// TFRecord object detection specific functionality.

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/golang/protobuf/proto"
	"github.com/ryszard/tfutils/go/example"
	"github.com/ryszard/tfutils/go/tfrecord"
	"github.com/ryszard/tfutils/proto/tensorflow/core/example" // package tensorflow
)

// TFFeatureMap maps feature names to their values. Values must be convertible to
// tensorflow.Feature.
type TFFeatureMap map[string]interface{}

// toTFFeatureMap converts the labels of one raster to the TensorFlow object detection schema.
// encoded is the JPEG encoding of the display image. Label ids start at 1, as 0 is reserved
// for the background class.
func toTFFeatureMap(f AnnotatedFile, encoded []byte) TFFeatureMap {
	m := make(TFFeatureMap, 16)
	m["image/height"] = f.Height
	m["image/width"] = f.Width
	m["image/filename"] = f.FilePath
	m["image/source_id"] = f.FilePath
	m["image/encoded"] = encoded
	m["image/format"] = "jpeg"

	numLabels := len(f.Annotations)
	xmins := make([]float32, numLabels)
	ymins := make([]float32, numLabels)
	xmaxs := make([]float32, numLabels)
	ymaxs := make([]float32, numLabels)
	classes := make([]string, numLabels)
	classIDs := make([]int64, numLabels)
	for i, a := range f.Annotations {
		xmins[i] = float32(a.Coords[0] / float64(f.Width))
		ymins[i] = float32(a.Coords[1] / float64(f.Height))
		xmaxs[i] = float32(a.Coords[2] / float64(f.Width))
		ymaxs[i] = float32(a.Coords[3] / float64(f.Height))
		classes[i] = a.Label
		classIDs[i] = int64(a.ClassID) + 1
	}
	m["image/object/bbox/xmin"] = xmins
	m["image/object/bbox/ymin"] = ymins
	m["image/object/bbox/xmax"] = xmaxs
	m["image/object/bbox/ymax"] = ymaxs
	m["image/object/class/text"] = classes
	m["image/object/class/label"] = classIDs

	return m
}

// WriteTFRecord writes a TFRecord file at path holding a single tensorflow.Example for the
// raster described by f, with img embedded as JPEG.
func WriteTFRecord(path string, f AnnotatedFile, img image.Image, jpegQuality int) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("conversion to TensorFlow Example failed: %v", e)
		}
	}()

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to encode the image: %v", err)
	}
	tfExample := example.New(toTFFeatureMap(f, buf.Bytes()))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create record file %q: %v", path, err)
	}
	defer closeWithErrCheck(file, &err)

	return writeTFRecordExample(file, tfExample)
}

// writeTFRecordExample serialises the example and writes it as a TFRecord to w. Feature maps are
// marshalled in key order so that equal examples produce equal records.
func writeTFRecordExample(w io.Writer, e *tensorflow.Example) error {
	var b proto.Buffer
	b.SetDeterministic(true)
	if err := b.Marshal(e); err != nil {
		return err
	}

	return tfrecord.Write(w, b.Bytes())
}
