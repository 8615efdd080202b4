package imghelper

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimension is returned when a width or height is not positive.
var ErrInvalidDimension = errors.New("invalid dimension: width and height must be positive")

// Dimensions is the pixel size of an image.
type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

func (d Dimensions) valid() bool {
	return d.Width > 0 && d.Height > 0
}

// BoundingBox is the maximum size a resized image must fit within.
type BoundingBox struct {
	MaxWidth  int
	MaxHeight int
}

func (b BoundingBox) valid() bool {
	return b.MaxWidth > 0 && b.MaxHeight > 0
}

// Fit returns the largest dimensions that fit within the box while preserving
// the aspect ratio of d. Images that already fit are returned unchanged.
func (b BoundingBox) Fit(d Dimensions) (Dimensions, error) {
	if !d.valid() || !b.valid() {
		return Dimensions{}, fmt.Errorf("%w: image %s, box %dx%d", ErrInvalidDimension, d, b.MaxWidth, b.MaxHeight)
	}

	if d.Height <= b.MaxHeight && d.Width <= b.MaxWidth {
		return d, nil
	}

	imgRatio := float64(d.Width) / float64(d.Height)
	maxRatio := float64(b.MaxWidth) / float64(b.MaxHeight)
	switch {
	case imgRatio < maxRatio:
		return Dimensions{
			Width:  atLeastOne(math.Round(float64(d.Width) * float64(b.MaxHeight) / float64(d.Height))),
			Height: b.MaxHeight,
		}, nil
	case imgRatio > maxRatio:
		return Dimensions{
			Width:  b.MaxWidth,
			Height: atLeastOne(math.Round(float64(d.Height) * float64(b.MaxWidth) / float64(d.Width))),
		}, nil
	default:
		return Dimensions{Width: b.MaxWidth, Height: b.MaxHeight}, nil
	}
}

// Fit computes the size of a width x height image scaled down to fit within
// maxWidth x maxHeight. See BoundingBox.Fit.
func Fit(width, height, maxWidth, maxHeight int) (Dimensions, error) {
	return BoundingBox{maxWidth, maxHeight}.Fit(Dimensions{width, height})
}

// atLeastOne keeps extremely thin images from collapsing to zero pixels.
func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}
