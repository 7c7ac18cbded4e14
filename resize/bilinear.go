package resize

import (
	"image"
	"math"
)

func init() {
	Register("bilinear", ResamplerFunc(bilinear))
	Register("nearest", ResamplerFunc(nearest))
}

// Maps destination pixel centers onto the source grid; src = (dst + 0.5) *
// scale - 0.5, clamped to the first and last source pixel.
type axis struct {
	lo, hi []int
	frac   []float64
}

func newAxis(src, dst int) axis {
	a := axis{
		lo:   make([]int, dst),
		hi:   make([]int, dst),
		frac: make([]float64, dst),
	}
	scale := float64(src) / float64(dst)
	for i := 0; i < dst; i++ {
		s := (float64(i)+0.5)*scale - 0.5
		if s < 0 {
			s = 0
		}
		if max := float64(src - 1); s > max {
			s = max
		}
		lo := int(math.Floor(s))
		hi := lo + 1
		if hi > src-1 {
			hi = src - 1
		}
		a.lo[i], a.hi[i], a.frac[i] = lo, hi, s-float64(lo)
	}
	return a
}

func bilinear(src *image.NRGBA, width, height int) (image.Image, error) {
	sb := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	ax := newAxis(sb.Dx(), width)
	ay := newAxis(sb.Dy(), height)

	for y := 0; y < height; y++ {
		fy := ay.frac[y]
		for x := 0; x < width; x++ {
			fx := ax.frac[x]

			p00 := src.PixOffset(sb.Min.X+ax.lo[x], sb.Min.Y+ay.lo[y])
			p10 := src.PixOffset(sb.Min.X+ax.hi[x], sb.Min.Y+ay.lo[y])
			p01 := src.PixOffset(sb.Min.X+ax.lo[x], sb.Min.Y+ay.hi[y])
			p11 := src.PixOffset(sb.Min.X+ax.hi[x], sb.Min.Y+ay.hi[y])

			d := dst.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				top := float64(src.Pix[p00+c])*(1-fx) + float64(src.Pix[p10+c])*fx
				bottom := float64(src.Pix[p01+c])*(1-fx) + float64(src.Pix[p11+c])*fx
				dst.Pix[d+c] = clamp(top*(1-fy) + bottom*fy)
			}
		}
	}

	return dst, nil
}

func clamp(v float64) uint8 {
	v = math.Floor(v + 0.5)
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	}
	return uint8(v)
}

func nearest(src *image.NRGBA, width, height int) (image.Image, error) {
	sb := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	sx := make([]int, width)
	for x := range sx {
		sx[x] = nearestIndex(x, sb.Dx(), width)
	}

	for y := 0; y < height; y++ {
		sy := nearestIndex(y, sb.Dy(), height)
		for x := 0; x < width; x++ {
			s := src.PixOffset(sb.Min.X+sx[x], sb.Min.Y+sy)
			copy(dst.Pix[dst.PixOffset(x, y):], src.Pix[s:s+4])
		}
	}

	return dst, nil
}

func nearestIndex(i, src, dst int) int {
	s := int(math.Floor((float64(i) + 0.5) * float64(src) / float64(dst)))
	if s > src-1 {
		s = src - 1
	}
	return s
}
