package resize

import (
	"image"

	"github.com/disintegration/gift"
)

func init() {
	Register("box", resampling{gift.BoxResampling})
}

// resampling uses "github.com/disintegration/gift"
type resampling struct {
	gift.Resampling
}

func (r resampling) Resample(src *image.NRGBA, width, height int) (image.Image, error) {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	gift.Resize(width, height, r.Resampling).Draw(dst, src, &gift.Options{})
	return dst, nil
}
