package resize

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
)

func init() {
	Register("gaussian", bildFilter{transform.Gaussian})
}

// bildFilter uses "github.com/anthonynsimon/bild/transform"
type bildFilter struct {
	transform.ResampleFilter
}

func (f bildFilter) Resample(src *image.NRGBA, width, height int) (image.Image, error) {
	return transform.Resize(src, width, height, f.ResampleFilter), nil
}
