package resize

import (
	"image"

	"github.com/disintegration/imaging"
)

func init() {
	Register("hermite", imagingFilter{imaging.Hermite})
}

// imagingFilter uses "github.com/disintegration/imaging"
type imagingFilter struct {
	imaging.ResampleFilter
}

func (f imagingFilter) Resample(src *image.NRGBA, width, height int) (image.Image, error) {
	return imaging.Resize(src, width, height, f.ResampleFilter), nil
}
