package imghelper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// Default settings used by NewOptions.
const (
	DefaultMaxWidth    = 1280
	DefaultMaxHeight   = 960
	DefaultQuality     = 80
	DefaultThumbWidth  = 225
	DefaultThumbHeight = 225
)

// Profile caps the settings of an operation for a class of target devices.
// A zero field means no cap.
type Profile struct {
	Name      string
	MaxWidth  int
	MaxHeight int
	Quality   int
}

var (
	// DefaultProfile applies no caps.
	DefaultProfile = Profile{Name: "default"}
	// LowerProfile caps output for memory constrained targets.
	LowerProfile = Profile{Name: "lower", MaxWidth: 800, MaxHeight: 600, Quality: 70}
)

var profiles = map[string]Profile{
	DefaultProfile.Name: DefaultProfile,
	LowerProfile.Name:   LowerProfile,
}

// ParseProfile returns the profile with the given name.
func ParseProfile(name string) (Profile, error) {
	if p, ok := profiles[strings.ToLower(name)]; ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("unknown profile: %q", name)
}

// Options represents options that can be used to configure a resize operation.
// Zero fields are not defaulted: start from NewOptions, operations reject
// options that fail Validate.
type Options struct {
	MaxWidth    int
	MaxHeight   int
	ThumbWidth  int
	ThumbHeight int
	Quality     int
	// PixelBudget is the multiple of the target area a sampled decode may hold.
	PixelBudget float64
	// Filter is used for the final resample. The zero value is nearest neighbor.
	Filter          imaging.ResampleFilter
	AutoOrientation bool
	Format          Format
}

// NewOptions creates a new option with default setting.
func NewOptions() *Options {
	return &Options{
		MaxWidth:        DefaultMaxWidth,
		MaxHeight:       DefaultMaxHeight,
		ThumbWidth:      DefaultThumbWidth,
		ThumbHeight:     DefaultThumbHeight,
		Quality:         DefaultQuality,
		PixelBudget:     DefaultPixelBudget,
		Filter:          imaging.Lanczos,
		AutoOrientation: true,
		Format:          JPEG,
	}
}

// SetBox sets the value for the MaxWidth and MaxHeight fields.
func (opts *Options) SetBox(width, height int) *Options {
	opts.MaxWidth, opts.MaxHeight = width, height
	return opts
}

// SetQuality sets the value for the Quality field.
func (opts *Options) SetQuality(quality int) *Options {
	opts.Quality = quality
	return opts
}

// Box returns the bounding box of the resized image.
func (opts *Options) Box() BoundingBox {
	return BoundingBox{opts.MaxWidth, opts.MaxHeight}
}

// ThumbBox returns the bounding box of thumbnails.
func (opts *Options) ThumbBox() BoundingBox {
	return BoundingBox{opts.ThumbWidth, opts.ThumbHeight}
}

// Limit returns a copy of opts with every value capped by p.
func (opts *Options) Limit(p Profile) *Options {
	o := *opts
	if p.MaxWidth > 0 {
		o.MaxWidth = min(o.MaxWidth, p.MaxWidth)
	}
	if p.MaxHeight > 0 {
		o.MaxHeight = min(o.MaxHeight, p.MaxHeight)
	}
	if p.Quality > 0 {
		o.Quality = min(o.Quality, p.Quality)
	}
	return &o
}

// Validate checks that opts can be used for a resize operation.
func (opts *Options) Validate() error {
	if !opts.Box().valid() {
		return fmt.Errorf("%w: box %dx%d", ErrInvalidDimension, opts.MaxWidth, opts.MaxHeight)
	}
	if !opts.ThumbBox().valid() {
		return fmt.Errorf("%w: thumbnail %dx%d", ErrInvalidDimension, opts.ThumbWidth, opts.ThumbHeight)
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		return errors.New("invalid quality: must be in range 1-100")
	}
	if _, ok := formatNames[opts.Format]; !ok {
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, opts.Format)
	}
	return nil
}

func (opts *Options) formatOption() *FormatOption {
	return &FormatOption{Format: opts.Format, EncodeOption: []EncodeOption{Quality(opts.Quality)}}
}

func orDefault(opts *Options) *Options {
	if opts == nil {
		return NewOptions()
	}
	return opts
}
