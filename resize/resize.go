/*
Package resize scales RGB565 images.

An image is unpacked to 8 bits per channel, resampled by one of the
registered filters and then packed back to RGB565. The same unpack formula is
always used so an image resized to its own dimensions with the bilinear or
nearest filters is returned unchanged.
*/
package resize

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/bodgit/bmp2tft/rgb565"
)

// DefaultFilter is used unless WithFilter says otherwise.
const DefaultFilter = "bilinear"

// ErrUnknownFilter is returned for a filter name that isn't registered.
var ErrUnknownFilter = errors.New("resize: unknown filter")

// Resampler scales an opaque 8-bit per channel image to exactly width by
// height pixels.
type Resampler interface {
	Resample(src *image.NRGBA, width, height int) (image.Image, error)
}

// ResamplerFunc adapts a function to the Resampler interface.
type ResamplerFunc func(src *image.NRGBA, width, height int) (image.Image, error)

// Resample calls f(src, width, height).
func (f ResamplerFunc) Resample(src *image.NRGBA, width, height int) (image.Image, error) {
	return f(src, width, height)
}

var filters = map[string]Resampler{}

// Register makes a resampler available by name. It panics if the name is
// already taken.
func Register(name string, r Resampler) {
	if _, ok := filters[name]; ok {
		panic("resize: filter " + name + " registered twice")
	}
	filters[name] = r
}

// Lookup returns the resampler registered under name.
func Lookup(name string) (Resampler, error) {
	r, ok := filters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	return r, nil
}

// Filters returns the names of all registered filters, sorted.
func Filters() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type options struct {
	width, height       int
	hasWidth, hasHeight bool
	filter              string
}

// Option configures Resize and Size.
type Option func(*options)

// Width sets the target width.
func Width(w int) Option {
	return func(o *options) {
		o.width, o.hasWidth = w, true
	}
}

// Height sets the target height.
func Height(h int) Option {
	return func(o *options) {
		o.height, o.hasHeight = h, true
	}
}

// WithFilter selects the named resampling filter.
func WithFilter(name string) Option {
	return func(o *options) {
		o.filter = name
	}
}

func newOptions(opts []Option) *options {
	o := &options{filter: DefaultFilter}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) size(w, h int) (int, int, error) {
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: original %dx%d", rgb565.ErrInvalidDimension, w, h)
	}

	fw, fh := w, h
	switch {
	case o.hasWidth && o.hasHeight:
		fw, fh = o.width, o.height
	case o.hasWidth:
		fw = o.width
		fh = int(math.Round(float64(o.width) * float64(h) / float64(w)))
	case o.hasHeight:
		fh = o.height
		fw = int(math.Round(float64(o.height) * float64(w) / float64(h)))
	}

	if fw <= 0 || fh <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", rgb565.ErrInvalidDimension, fw, fh)
	}

	return fw, fh, nil
}

// Size returns the dimensions an image of w by h pixels would be resized to.
// A missing dimension is derived from the other preserving the aspect ratio.
func Size(w, h int, opts ...Option) (int, int, error) {
	return newOptions(opts).size(w, h)
}

// Resize returns a resized copy of m. If neither Width nor Height is given
// then m itself is returned.
func Resize(m *rgb565.Image, opts ...Option) (*rgb565.Image, error) {
	o := newOptions(opts)
	if !o.hasWidth && !o.hasHeight {
		return m, nil
	}

	b := m.Bounds()
	w, h, err := o.size(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	r, err := Lookup(o.filter)
	if err != nil {
		return nil, err
	}

	dst, err := r.Resample(m.NRGBA(), w, h)
	if err != nil {
		return nil, fmt.Errorf("resize: %s: %w", o.filter, err)
	}
	if db := dst.Bounds(); db.Dx() != w || db.Dy() != h {
		return nil, fmt.Errorf("resize: %s: got %dx%d, wanted %dx%d", o.filter, db.Dx(), db.Dy(), w, h)
	}

	return rgb565.Convert(dst), nil
}
