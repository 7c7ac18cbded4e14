package rgb565

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Image is an in-memory image of RGB565 pixels. Each pixel occupies two bytes
// of Pix, high byte first.
type Image struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

var _ draw.Image = (*Image)(nil)

// New returns a new Image with the given bounds.
func New(r image.Rectangle) *Image {
	return &Image{
		Pix:    make([]uint8, 2*r.Dx()*r.Dy()),
		Stride: 2 * r.Dx(),
		Rect:   r,
	}
}

func checkDimensions(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, w, h)
	}
	return nil
}

// FromBytes wraps an existing RGB565 buffer of w by h pixels. The buffer is
// not copied.
func FromBytes(pix []uint8, w, h int) (*Image, error) {
	if err := checkDimensions(w, h); err != nil {
		return nil, err
	}
	if len(pix)%2 != 0 || len(pix) != 2*w*h {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d RGB565", ErrMalformedBuffer, len(pix), w, h)
	}
	return &Image{
		Pix:    pix,
		Stride: 2 * w,
		Rect:   image.Rect(0, 0, w, h),
	}, nil
}

// FromRGBA packs a tightly packed buffer of w by h RGBA pixels. Alpha is
// ignored.
func FromRGBA(pix []uint8, w, h int) (*Image, error) {
	if err := checkDimensions(w, h); err != nil {
		return nil, err
	}
	if len(pix)%4 != 0 || len(pix) != 4*w*h {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d RGBA", ErrMalformedBuffer, len(pix), w, h)
	}
	m := New(image.Rect(0, 0, w, h))
	for i, j := 0, 0; i < len(pix); i, j = i+4, j+2 {
		c := Pack(pix[i], pix[i+1], pix[i+2])
		m.Pix[j+0] = uint8(c >> 8)
		m.Pix[j+1] = uint8(c)
	}
	return m, nil
}

// Convert packs any image into a new Image whose top-left corner is at
// (0, 0).
func Convert(src image.Image) *Image {
	b := src.Bounds()
	switch src := src.(type) {
	case *Image:
		m := New(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(m.Pix[y*m.Stride:(y+1)*m.Stride], src.Pix[i:i+m.Stride])
		}
		return m
	case *image.NRGBA:
		return packRows(src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y), b.Dx(), b.Dy())
	case *image.RGBA:
		// Opaque images are identical whether premultiplied or not
		if src.Opaque() {
			return packRows(src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y), b.Dx(), b.Dy())
		}
	}

	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Rect, src, b.Min, draw.Src)
	return packRows(n.Pix, n.Stride, 0, b.Dx(), b.Dy())
}

func packRows(pix []uint8, stride, offset, w, h int) *Image {
	m := New(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := pix[offset+y*stride : offset+y*stride+4*w]
		for x := 0; x < w; x++ {
			c := Pack(row[4*x], row[4*x+1], row[4*x+2])
			m.Pix[y*m.Stride+2*x+0] = uint8(c >> 8)
			m.Pix[y*m.Stride+2*x+1] = uint8(c)
		}
	}
	return m
}

// NRGBA unpacks the whole image into a new 8-bit per channel image using bit
// replication. Every pixel is fully opaque.
func (p *Image) NRGBA() *image.NRGBA {
	b := p.Rect
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := Unpack(p.RGB565At(b.Min.X+x, b.Min.Y+y))
			i := n.PixOffset(x, y)
			n.Pix[i+0] = c.R
			n.Pix[i+1] = c.G
			n.Pix[i+2] = c.B
			n.Pix[i+3] = c.A
		}
	}
	return n
}

// Values returns every pixel in row-major order.
func (p *Image) Values() []Color {
	b := p.Rect
	v := make([]Color, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v = append(v, p.RGB565At(x, y))
		}
	}
	return v
}

func (p *Image) ColorModel() color.Model {
	return Model
}

func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the packed pixel at (x, y), or zero outside the bounds.
func (p *Image) RGB565At(x, y int) Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return 0
	}
	i := p.PixOffset(x, y)
	return Color(p.Pix[i])<<8 | Color(p.Pix[i+1])
}

// PixOffset returns the index of the first element of Pix that corresponds to
// the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB565(x, y, Model.Convert(c).(Color))
}

// SetRGB565 stores c at (x, y). Points outside the bounds are ignored.
func (p *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i+0] = uint8(c >> 8)
	p.Pix[i+1] = uint8(c)
}

// SubImage returns an image representing the portion of p visible through r.
// The returned image shares pixels with p.
func (p *Image) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &Image{}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &Image{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
	}
}

// Opaque always returns true as RGB565 has no alpha channel.
func (p *Image) Opaque() bool {
	return true
}
