package resize

import (
	"image"

	"github.com/bamiaux/rez"
)

func init() {
	Register("bicubic", rezFilter{rez.NewBicubicFilter()})
}

// rezFilter uses "github.com/bamiaux/rez"
type rezFilter struct {
	rez.Filter
}

func (f rezFilter) Resample(src *image.NRGBA, width, height int) (image.Image, error) {
	// rez needs at least two pixels on each side to fit its kernel
	if b := src.Bounds(); width < 2 || height < 2 || b.Dx() < 2 || b.Dy() < 2 {
		return bilinear(src, width, height)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if err := rez.Convert(dst, src, f.Filter); err != nil {
		return nil, err
	}
	return dst, nil
}
