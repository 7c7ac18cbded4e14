package resize

import (
	"image"

	nfnt "github.com/nfnt/resize"
)

func init() {
	Register("lanczos", interpolation(nfnt.Lanczos3))
	Register("mitchell", interpolation(nfnt.MitchellNetravali))
}

// interpolation uses "github.com/nfnt/resize"
type interpolation nfnt.InterpolationFunction

func (i interpolation) Resample(src *image.NRGBA, width, height int) (image.Image, error) {
	return nfnt.Resize(uint(width), uint(height), src, nfnt.InterpolationFunction(i)), nil
}
