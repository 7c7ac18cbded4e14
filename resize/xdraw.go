package resize

import (
	"image"

	"golang.org/x/image/draw"
)

func init() {
	Register("approx-bilinear", scaler{draw.ApproxBiLinear})
	Register("catmull-rom", scaler{draw.CatmullRom})
}

// scaler uses "golang.org/x/image/draw"
type scaler struct {
	draw.Scaler
}

func (s scaler) Resample(src *image.NRGBA, width, height int) (image.Image, error) {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
