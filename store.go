package imghelper

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"
)

// ErrInvalidTitle is returned for titles that are not a plain file name.
var ErrInvalidTitle = errors.New("invalid image title")

// Store writes images into a directory.
type Store struct {
	Dir string
}

// NewStore returns a Store for dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

// Title returns the default image title for t, such as img_20240131235959.
func Title(t time.Time) string {
	return "img_" + t.Format("20060102150405")
}

// Insert encodes img with the format and quality of opts and writes it into
// the store as title. An empty title uses Title(time.Now()). The file is written to
// a temporary name first and only renamed into place once fully encoded.
func (s *Store) Insert(img image.Image, title string, opts *Options) (path string, err error) {
	opts = orDefault(opts)
	if err = opts.Validate(); err != nil {
		return
	}
	if title == "" {
		title = Title(time.Now())
	} else if title == "." || title == ".." || filepath.Base(title) != title {
		return "", fmt.Errorf("%w: %q", ErrInvalidTitle, title)
	}
	f, err := os.CreateTemp(s.Dir, "*.tmp")
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err = opts.formatOption().Encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	if err = f.Close(); err != nil {
		return
	}

	path = filepath.Join(s.Dir, title+"."+opts.Format.Ext())
	if err = os.Rename(f.Name(), path); err != nil {
		return "", err
	}
	return
}

// Resize resizes the image in src as ResizeFile does and inserts the result
// into the store as title.
func (s *Store) Resize(src, title string, opts *Options) (*Image, error) {
	img, err := ResizeFile(src, opts)
	if err != nil {
		return nil, err
	}
	if img.Path, err = s.Insert(img.Image, title, opts); err != nil {
		return nil, err
	}
	return img, nil
}
