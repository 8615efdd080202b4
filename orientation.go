package imghelper

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// ErrMetadataUnavailable is returned when the orientation metadata is missing
// or cannot be read.
var ErrMetadataUnavailable = errors.New("orientation metadata unavailable")

// Orientation is the clockwise rotation, in degrees, that must be applied to a
// decoded image to display it upright.
type Orientation int

// Supported orientations.
const (
	Upright   Orientation = 0
	Rotate90  Orientation = 90
	Rotate180 Orientation = 180
	Rotate270 Orientation = 270
)

// EXIF orientation tag values handled by OrientationFromEXIF.
const (
	exifRotate180 = 3
	exifRotate90  = 6 // 90° clockwise
	exifRotate270 = 8 // 90° counter-clockwise
)

func (o Orientation) normalize() Orientation {
	o %= 360
	if o < 0 {
		o += 360
	}
	switch o {
	case Rotate90, Rotate180, Rotate270:
		return o
	default:
		return Upright
	}
}

// Inverse returns the orientation that undoes o.
func (o Orientation) Inverse() Orientation {
	return (360 - o.normalize()).normalize()
}

// OrientationFromEXIF maps an EXIF orientation tag to a rotation. Mirrored and
// unknown values map to Upright.
func OrientationFromEXIF(tag int) Orientation {
	switch tag {
	case exifRotate180:
		return Rotate180
	case exifRotate90:
		return Rotate90
	case exifRotate270:
		return Rotate270
	default:
		return Upright
	}
}

// ReadOrientation reads the EXIF orientation of the encoded image in r.
func ReadOrientation(r io.Reader) (Orientation, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return Upright, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return Upright, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}
	v, err := tag.Int(0)
	if err != nil {
		return Upright, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}
	return OrientationFromEXIF(v), nil
}

// readOrientation is ReadOrientation with every failure treated as Upright.
func readOrientation(r io.Reader) Orientation {
	o, _ := ReadOrientation(r)
	return o
}

// Normalize rotates img clockwise by o. Upright returns img itself; any other
// orientation returns a new image, with width and height swapped for 90 and 270.
func Normalize(img image.Image, o Orientation) image.Image {
	// imaging rotates counter-clockwise.
	switch o.normalize() {
	case Rotate90:
		return imaging.Rotate270(img)
	case Rotate180:
		return imaging.Rotate180(img)
	case Rotate270:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
