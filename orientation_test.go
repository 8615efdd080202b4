package imghelper

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

var (
	red   = color.NRGBA{0xff, 0, 0, 0xff}
	white = color.NRGBA{0xff, 0xff, 0xff, 0xff}
)

// markedImage returns a white image with a red block in the top-left corner
// covering a quarter of each side (at least one pixel).
func markedImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	markW, markH := max(width/4, 1), max(height/4, 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < markW && y < markH {
				img.Set(x, y, red)
			} else {
				img.Set(x, y, white)
			}
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// encodeJPEG encodes img as JPEG. A positive tag adds an EXIF APP1 segment
// holding it as the orientation.
func encodeJPEG(t *testing.T, img image.Image, tag uint16) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	if tag == 0 {
		return b
	}

	tiff := []byte{
		'M', 'M', 0x00, 0x2a, 0x00, 0x00, 0x00, 0x08, // header, IFD0 at 8
		0x00, 0x01, // one entry
		0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, byte(tag >> 8), byte(tag), 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, // no next IFD
	}
	payload := append([]byte("Exif\x00\x00"), tiff...)
	size := len(payload) + 2
	app1 := append([]byte{0xff, 0xe1, byte(size >> 8), byte(size)}, payload...)

	out := append([]byte{}, b[:2]...)
	out = append(out, app1...)
	return append(out, b[2:]...)
}

func isRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 0xc0 && g>>8 < 0x40 && b>>8 < 0x40
}

func TestNormalize(t *testing.T) {
	src := markedImage(4, 2)
	testCase := []struct {
		orientation Orientation
		size        image.Point
		mark        image.Point
	}{
		{Upright, image.Pt(4, 2), image.Pt(0, 0)},
		{Rotate90, image.Pt(2, 4), image.Pt(1, 0)},
		{Rotate180, image.Pt(4, 2), image.Pt(3, 1)},
		{Rotate270, image.Pt(2, 4), image.Pt(0, 3)},
		{Orientation(450), image.Pt(2, 4), image.Pt(1, 0)},
		{Orientation(-90), image.Pt(2, 4), image.Pt(0, 3)},
		{Orientation(45), image.Pt(4, 2), image.Pt(0, 0)},
	}
	for _, tc := range testCase {
		img := Normalize(src, tc.orientation)
		if size := img.Bounds().Size(); size != tc.size {
			t.Errorf("Normalize(%d) size %v; want %v", tc.orientation, size, tc.size)
			continue
		}
		if !isRed(img.At(tc.mark.X, tc.mark.Y)) {
			t.Errorf("Normalize(%d) expected mark at %v", tc.orientation, tc.mark)
		}
	}
}

func TestNormalizeUprightIdentity(t *testing.T) {
	src := markedImage(3, 5)
	if img := Normalize(src, Upright); img != image.Image(src) {
		t.Error("Normalize(Upright) should return the input")
	}
}

func TestNormalizeInverse(t *testing.T) {
	src := markedImage(6, 3)
	for _, o := range []Orientation{Upright, Rotate90, Rotate180, Rotate270} {
		img := Normalize(Normalize(src, o), o.Inverse())
		if img.Bounds().Size() != src.Bounds().Size() {
			t.Fatalf("Normalize(%d) then Normalize(%d) size %v; want %v", o, o.Inverse(), img.Bounds().Size(), src.Bounds().Size())
		}
		compare(t, src, img)
	}
}

func TestOrientationFromEXIF(t *testing.T) {
	for tag, want := range map[int]Orientation{
		0: Upright, 1: Upright, 2: Upright, 3: Rotate180, 4: Upright,
		5: Upright, 6: Rotate90, 7: Upright, 8: Rotate270, 9: Upright,
	} {
		if got := OrientationFromEXIF(tag); got != want {
			t.Errorf("OrientationFromEXIF(%d) = %d; want %d", tag, got, want)
		}
	}
}

func TestReadOrientation(t *testing.T) {
	img := markedImage(8, 4)
	for tag, want := range map[uint16]Orientation{1: Upright, 3: Rotate180, 6: Rotate90, 8: Rotate270} {
		o, err := ReadOrientation(bytes.NewReader(encodeJPEG(t, img, tag)))
		if err != nil {
			t.Errorf("ReadOrientation(tag %d): %v", tag, err)
			continue
		}
		if o != want {
			t.Errorf("ReadOrientation(tag %d) = %d; want %d", tag, o, want)
		}
	}
}

func TestReadOrientationUnavailable(t *testing.T) {
	img := markedImage(8, 4)
	for name, b := range map[string][]byte{
		"jpeg without exif": encodeJPEG(t, img, 0),
		"png":               encodePNG(t, img),
		"garbage":           []byte("Hello"),
		"empty":             nil,
	} {
		o, err := ReadOrientation(bytes.NewReader(b))
		if !errors.Is(err, ErrMetadataUnavailable) {
			t.Errorf("%s: expected ErrMetadataUnavailable; got %v", name, err)
		}
		if o != Upright {
			t.Errorf("%s: orientation %d; want Upright", name, o)
		}
		if o := readOrientation(bytes.NewReader(b)); o != Upright {
			t.Errorf("%s: readOrientation %d; want Upright", name, o)
		}
	}
}
