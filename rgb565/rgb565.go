/*
Package rgb565 implements the 16-bit RGB565 pixel format used by most small
TFT display controllers, along with a simple raw file container.

Each pixel is packed as RRRRRGGGGGGBBBBB and stored high byte first. There is
no alpha channel; packing discards it and unpacking always yields a fully
opaque color.

The raw container is a four byte "R565" signature, the width and height as
big-endian 16-bit values and then the pixels exactly as held in Image.Pix.
*/
package rgb565

import (
	"errors"
	"image/color"
)

var (
	// ErrInvalidDimension is returned when a width or height is not
	// positive.
	ErrInvalidDimension = errors.New("rgb565: invalid dimension")

	// ErrMalformedBuffer is returned when a pixel buffer length does not
	// match the pixel format or the stated dimensions.
	ErrMalformedBuffer = errors.New("rgb565: malformed input buffer")
)

const (
	redBits   = 5
	greenBits = 6
	blueBits  = 5

	blueShift  = 0
	greenShift = blueShift + blueBits
	redShift   = greenShift + greenBits

	redMask   = 1<<redBits - 1
	greenMask = 1<<greenBits - 1
	blueMask  = 1<<blueBits - 1
)

// Color is a packed RGB565 value.
type Color uint16

// Pack truncates an 8-bit per channel color to RGB565. The low three bits of
// red and blue and the low two bits of green are dropped.
func Pack(r, g, b uint8) Color {
	return Color(uint16(r&0xf8)<<8 | uint16(g&0xfc)<<3 | uint16(b)>>3)
}

// Components returns the raw 5, 6 and 5 bit channel values.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c>>redShift) & redMask, uint8(c>>greenShift) & greenMask, uint8(c>>blueShift) & blueMask
}

// RGB888 expands c to 8 bits per channel by replicating the most significant
// bits into the vacated low bits.
func (c Color) RGB888() (r, g, b uint8) {
	r5, g6, b5 := c.Components()
	r = r5<<3 | r5>>2
	g = g6<<2 | g6>>4
	b = b5<<3 | b5>>2
	return
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB888()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	a = 0xffff
	return
}

// Bytes returns c in the order it is stored in a pixel buffer.
func (c Color) Bytes() [2]byte {
	return [2]byte{byte(c >> 8), byte(c)}
}

// Unpack expands c using bit replication. Any unpack whose result is packed
// again uses this so that Pack(Unpack(c)) == c.
func Unpack(c Color) color.NRGBA {
	r, g, b := c.RGB888()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// UnpackScaled expands c by scaling each channel proportionally and rounding
// to the nearest integer.
func UnpackScaled(c Color) color.NRGBA {
	r5, g6, b5 := c.Components()
	return color.NRGBA{
		R: scale(r5, redMask),
		G: scale(g6, greenMask),
		B: scale(b5, blueMask),
		A: 0xff,
	}
}

// round(v * 255 / max) without floating point
func scale(v uint8, max uint32) uint8 {
	return uint8((uint32(v)*0xff*2 + max) / (max * 2))
}

// Model converts any color to a Color by packing its 8-bit non-premultiplied
// channels.
var Model color.Model = color.ModelFunc(model)

func model(c color.Color) color.Color {
	if c, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pack(n.R, n.G, n.B)
}
