package imghelper

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

// Image is the result of a resize operation.
type Image struct {
	image.Image
	// Path is the location the image was stored at, if any.
	Path string
}

// ScaleDown resizes img to fit within box using filter, preserving its aspect
// ratio. Images that already fit are returned as is.
func ScaleDown(img image.Image, box BoundingBox, filter imaging.ResampleFilter) (image.Image, error) {
	size, err := box.Fit(sizeOf(img))
	if err != nil {
		return nil, err
	}
	if size == sizeOf(img) {
		return img, nil
	}
	return imaging.Resize(img, size.Width, size.Height, filter), nil
}

// Downsample reduces img by an integer sample factor. It stands in for a
// sampled decode, so it favors speed over quality.
func Downsample(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	d := sizeOf(img)
	return imaging.Resize(img, max(d.Width/factor, 1), max(d.Height/factor, 1), imaging.Box)
}

// Thumbnail scales img down to the thumbnail box of opts.
func Thumbnail(img image.Image, opts *Options) (image.Image, error) {
	opts = orDefault(opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return ScaleDown(img, opts.ThumbBox(), opts.Filter)
}

// ResizeBytes decodes the encoded image in b and scales it down to fit within
// the bounding box of opts. The output size is the fit of the original size,
// whatever sample factor was used. Orientation metadata is applied last; when
// it is missing or unreadable the image is left as decoded.
func ResizeBytes(b []byte, opts *Options) (*Image, error) {
	opts = orDefault(opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	config, _, err := DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	orig := Dimensions{config.Width, config.Height}
	size, err := opts.Box().Fit(orig)
	if err != nil {
		return nil, err
	}
	factor, err := SampleFactor(orig, size, opts.PixelBudget)
	if err != nil {
		return nil, err
	}

	img, err := Decode(bytes.NewReader(b), AutoOrientation(false))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img = Downsample(img, factor); sizeOf(img) != size {
		img = imaging.Resize(img, size.Width, size.Height, opts.Filter)
	}
	if opts.AutoOrientation {
		img = Normalize(img, readOrientation(bytes.NewReader(b)))
	}

	return &Image{Image: img}, nil
}

// ResizeReader is like ResizeBytes but reads the encoded image from r.
func ResizeReader(r io.Reader, opts *Options) (*Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ResizeBytes(b, opts)
}

// ResizeFile is like ResizeBytes but loads the encoded image from file.
func ResizeFile(file string, opts *Options) (*Image, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return ResizeBytes(b, opts)
}

func sizeOf(img image.Image) Dimensions {
	return Dimensions{img.Bounds().Dx(), img.Bounds().Dy()}
}
