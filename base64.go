package imghelper

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotImage is returned when a Base64 payload does not hold an image.
var ErrNotImage = errors.New("payload is not an image")

// ToBase64 scales img down to the bounding box of opts, encodes it with the
// configured format and quality and returns the standard Base64 encoding.
func ToBase64(img image.Image, opts *Options) (string, error) {
	b, err := encode(img, orDefault(opts))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DataURI is like ToBase64 but returns a data URI carrying the media type.
func DataURI(img image.Image, opts *Options) (string, error) {
	opts = orDefault(opts)
	s, err := ToBase64(img, opts)
	if err != nil {
		return "", err
	}
	return "data:" + opts.Format.MIME() + ";base64," + s, nil
}

// FileToBase64 loads file, corrects its orientation and returns it as in ToBase64.
func FileToBase64(file string, opts *Options) (string, error) {
	opts = orDefault(opts)
	img, err := Open(file, AutoOrientation(opts.AutoOrientation))
	if err != nil {
		return "", err
	}
	return ToBase64(img, opts)
}

// FromBase64 decodes an image from a Base64 string or a Base64 data URI.
func FromBase64(s string) (image.Image, error) {
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ";base64,")
		if i < 0 {
			return nil, errors.New("data URI is not base64 encoded")
		}
		s = s[i+len(";base64,"):]
	}

	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	if mime := mimetype.Detect(b); !strings.HasPrefix(mime.String(), "image/") && !mime.Is("application/pdf") {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, mime)
	}

	return Decode(bytes.NewReader(b), AutoOrientation(false))
}

// ThumbnailFromBase64 decodes a Base64 image and scales it to the thumbnail box.
func ThumbnailFromBase64(s string, opts *Options) (image.Image, error) {
	img, err := FromBase64(s)
	if err != nil {
		return nil, err
	}
	return Thumbnail(img, opts)
}

func encode(img image.Image, opts *Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	img, err := ScaleDown(img, opts.Box(), opts.Filter)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := opts.formatOption().Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
