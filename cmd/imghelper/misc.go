package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sunshineplan/imghelper"
	"github.com/sunshineplan/utils/log"
)

var supported = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|tiff?|bmp|webp)$`)

var errSkip = errors.New("skip")

func loadImages(root string) (imgs []string, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && supported.MatchString(d.Name()) {
			imgs = append(imgs, path)
		}
		return nil
	})
	return
}

// outputPath replaces the extension of name according to the output kind.
func outputPath(opts *imghelper.Options, name string, base64 bool) string {
	ext := "." + opts.Format.Ext()
	if base64 {
		ext = ".b64"
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

func convert(opts *imghelper.Options, image, output string, base64, force bool) (err error) {
	output = outputPath(opts, output, base64)
	if _, err = os.Stat(output); err == nil {
		if !force {
			return errSkip
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		log.Error("Failed to get FileInfo", "name", output, "error", err)
		return
	}
	path := filepath.Dir(output)
	if err = os.MkdirAll(path, 0755); err != nil {
		log.Error("Failed to create directory", "path", path, "error", err)
		return
	}

	img, err := imghelper.ResizeFile(image, opts)
	if err != nil {
		log.Error("Failed to resize image", "image", image, "error", err)
		return
	}

	if base64 {
		var s string
		if s, err = imghelper.ToBase64(img, opts); err != nil {
			log.Error("Failed to encode image", "image", image, "error", err)
			return
		}
		if err = writeFile(output, []byte(s)); err != nil {
			log.Error("Failed to write file", "name", output, "error", err)
		}
		return
	}

	store := &imghelper.Store{Dir: path}
	title := strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
	if _, err = store.Insert(img, title, opts); err != nil {
		log.Error("Failed to store image", "image", image, "error", err)
	}
	return
}

func writeFile(name string, b []byte) error {
	f, err := os.CreateTemp(filepath.Dir(name), "*.tmp")
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), name)
}
