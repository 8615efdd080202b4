package imghelper

import (
	"fmt"
	"math"
)

// DefaultPixelBudget is the default multiple of the target area a sampled
// decode may hold before the sample factor is raised further.
const DefaultPixelBudget = 2

// SampleFactor estimates an integer downsampling factor for decoding an image
// of size orig that will end up as target. The decoded area orig/factor² is
// kept at or below target area * budget. A budget <= 0 uses DefaultPixelBudget.
//
// The factor is only a decode hint, it never changes the final size.
func SampleFactor(orig, target Dimensions, budget float64) (int, error) {
	if !orig.valid() || !target.valid() {
		return 0, fmt.Errorf("%w: original %s, target %s", ErrInvalidDimension, orig, target)
	}
	if budget <= 0 {
		budget = DefaultPixelBudget
	}

	factor := 1
	if orig.Height > target.Height || orig.Width > target.Width {
		heightRatio := int(math.Round(float64(orig.Height) / float64(target.Height)))
		widthRatio := int(math.Round(float64(orig.Width) / float64(target.Width)))
		factor = max(min(heightRatio, widthRatio), 1)
	}

	totalPixels := float64(orig.Width) * float64(orig.Height)
	pixelCap := float64(target.Width) * float64(target.Height) * budget
	for totalPixels/float64(factor*factor) > pixelCap {
		factor++
	}

	return factor, nil
}
