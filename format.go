package imghelper

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // decode gif format
	_ "image/jpeg" // decode jpeg format
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	_ "github.com/sunshineplan/pdf"  // decode pdf format
	_ "github.com/sunshineplan/tiff" // decode tiff format
	_ "golang.org/x/image/bmp"       // decode bmp format
	_ "golang.org/x/image/webp"      // decode webp format
)

// ErrUnsupportedFormat is returned for output formats that cannot be encoded.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an image file format.
type Format int

// Image file formats.
const (
	JPEG Format = iota
	PNG
	GIF
	TIFF
	BMP
)

var formatExts = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"bmp":  BMP,
}

var formatNames = map[Format]string{
	JPEG: "jpg",
	PNG:  "png",
	GIF:  "gif",
	TIFF: "tif",
	BMP:  "bmp",
}

var formatMIME = map[Format]string{
	JPEG: "image/jpeg",
	PNG:  "image/png",
	GIF:  "image/gif",
	TIFF: "image/tiff",
	BMP:  "image/bmp",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// Ext returns the file extension of the format, without the leading dot.
func (f Format) Ext() string { return f.String() }

// MIME returns the media type of the format.
func (f Format) MIME() string { return formatMIME[f] }

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if _, ok := formatNames[f]; !ok {
		return nil, ErrUnsupportedFormat
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	format, err := FormatFromExtension(string(text))
	if err != nil {
		return err
	}
	*f = format
	return nil
}

// FormatFromExtension parses image format from filename extension:
// "jpg" (or "jpeg"), "png", "gif", "tif" (or "tiff") and "bmp" are supported.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := formatExts[strings.TrimPrefix(strings.ToLower(ext), ".")]; ok {
		return f, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

type encodeConfig struct {
	quality             int
	pngCompressionLevel png.CompressionLevel
}

var defaultEncodeConfig = encodeConfig{
	quality:             DefaultQuality,
	pngCompressionLevel: png.DefaultCompression,
}

// EncodeOption sets an optional parameter for the Encode and Save functions.
type EncodeOption func(*encodeConfig)

// Quality returns an EncodeOption that sets the output JPEG quality.
// Quality ranges from 1 to 100 inclusive, higher is better.
func Quality(quality int) EncodeOption {
	return func(c *encodeConfig) {
		c.quality = quality
	}
}

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompressionLevel = level
	}
}

// FormatOption is format option
type FormatOption struct {
	Format       Format
	EncodeOption []EncodeOption
}

// Encode writes the image img to w in the specified format.
func (f *FormatOption) Encode(w io.Writer, img image.Image) error {
	if _, ok := formatNames[f.Format]; !ok {
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, f.Format)
	}

	cfg := defaultEncodeConfig
	for _, option := range f.EncodeOption {
		option(&cfg)
	}

	return imaging.Encode(
		w, img, imaging.Format(f.Format),
		imaging.JPEGQuality(cfg.quality),
		imaging.PNGCompressionLevel(cfg.pngCompressionLevel),
	)
}
