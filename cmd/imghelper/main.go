package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sunshineplan/imghelper"
	"github.com/sunshineplan/progressbar"
	"github.com/sunshineplan/utils/log"
	"github.com/vharitonsky/iniflags"
	"golang.org/x/sync/errgroup"
)

var (
	src     = flag.String("src", "", "")
	dst     = flag.String("dst", "output", "")
	force   = flag.Bool("force", false, "")
	width   = flag.Int("width", imghelper.DefaultMaxWidth, "")
	height  = flag.Int("height", imghelper.DefaultMaxHeight, "")
	quality = flag.Int("quality", imghelper.DefaultQuality, "")
	profile = flag.String("profile", "default", "")
	budget  = flag.Float64("budget", imghelper.DefaultPixelBudget, "")
	thumb   = flag.Bool("thumb", false, "")
	b64     = flag.Bool("base64", false, "")
	worker  = flag.Int("worker", 5, "")
	debug   = flag.Bool("debug", false, "")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
	fmt.Println(`
  --src
		source file or directory
  --dst
		destination directory (default: output)
  --force
		force overwrite (default: false)
  --width
		max width of the resized image (default: 1280)
  --height
		max height of the resized image (default: 960)
  --quality
		set jpeg quality (range 1-100, default: 80)
  --profile
		device profile capping size and quality (default, lower; default: default)
  --budget
		pixel budget multiple used for sampled decoding (default: 2)
  --thumb
		write thumbnails (225x225) instead of resized images (default: false)
  --base64
		write base64 text files instead of images (default: false)
  --worker
		number of concurrent workers (default: 5)
  --debug
		print every converted image (default: false)`)
}

func main() {
	self, err := os.Executable()
	if err != nil {
		log.Error("Failed to get self path", "error", err)
		os.Exit(1)
	}

	flag.Usage = usage
	iniflags.SetConfigFile(filepath.Join(filepath.Dir(self), "config.ini"))
	iniflags.SetAllowMissingConfigFile(true)
	iniflags.Parse()

	opts, err := options()
	if err != nil {
		log.Error("Invalid options", "error", err)
		os.Exit(1)
	}

	srcInfo, err := os.Stat(*src)
	if err != nil {
		log.Error("Failed to get FileInfo", "name", *src, "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*dst, 0755); err != nil {
		log.Error("Failed to create directory", "path", *dst, "error", err)
		os.Exit(1)
	}

	start := time.Now()
	switch mode := srcInfo.Mode(); {
	case mode.IsDir():
		images, err := loadImages(*src)
		if err != nil {
			log.Error("Failed to scan directory", "path", *src, "error", err)
			os.Exit(1)
		}
		log.Info("Found images", "total", len(images))

		pb := progressbar.New(len(images))
		pb.Start()
		var g errgroup.Group
		g.SetLimit(*worker)
		for _, image := range images {
			g.Go(func() error {
				defer pb.Add(1)

				rel, err := filepath.Rel(*src, image)
				if err != nil {
					log.Error("Failed to get relative path", "image", image, "error", err)
					return nil
				}
				process(opts, image, filepath.Join(*dst, rel))
				return nil
			})
		}
		g.Wait()
		pb.Done()
	case mode.IsRegular():
		if err := process(opts, *src, filepath.Join(*dst, filepath.Base(*src))); err != nil && !errors.Is(err, errSkip) {
			os.Exit(1)
		}
	default:
		log.Error("Unknown source", "name", *src)
		os.Exit(1)
	}
	log.Info("Done", "elapsed", time.Since(start))
}

func options() (*imghelper.Options, error) {
	p, err := imghelper.ParseProfile(*profile)
	if err != nil {
		return nil, err
	}
	opts := imghelper.NewOptions().SetBox(*width, *height).SetQuality(*quality)
	opts.PixelBudget = *budget
	opts = opts.Limit(p)
	if *thumb {
		opts.SetBox(opts.ThumbWidth, opts.ThumbHeight)
	}
	return opts, opts.Validate()
}

func process(opts *imghelper.Options, image, output string) error {
	err := convert(opts, image, output, *b64, *force)
	switch {
	case errors.Is(err, errSkip):
		log.Info("Skip", "image", image)
	case err == nil && *debug:
		log.Info("Converted", "image", image)
	}
	return err
}
