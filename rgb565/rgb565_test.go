package rgb565

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundtrip(t *testing.T) {
	for c := 0; c <= math.MaxUint16; c++ {
		rgb16 := Color(c)
		r, g, b := rgb16.RGB888()
		if got := Pack(r, g, b); got != rgb16 {
			t.Errorf("%.4x => %.2x, %.2x, %.2x => %.4x", c, r, g, b, got)
		}
	}
}

func TestRoundtripScaled(t *testing.T) {
	for c := 0; c <= math.MaxUint16; c++ {
		rgb16 := Color(c)
		n := UnpackScaled(rgb16)
		if got := Pack(n.R, n.G, n.B); got != rgb16 {
			t.Errorf("%.4x => %.2x, %.2x, %.2x => %.4x", c, n.R, n.G, n.B, got)
		}
	}
}

func TestQuantize(t *testing.T) {
	for v := 0; v <= math.MaxUint8; v++ {
		c := Pack(uint8(v), uint8(v), uint8(v))
		n := Unpack(c)
		assert.Equal(t, uint8(v)&0xf8, n.R&0xf8)
		assert.Equal(t, uint8(v)&0xfc, n.G&0xfc)
		assert.Equal(t, uint8(v)&0xf8, n.B&0xf8)
		assert.Equal(t, uint8(0xff), n.A)
		assert.Equal(t, c, Pack(n.R, n.G, n.B))
	}
}

func TestUnpack(t *testing.T) {
	tables := map[string]struct {
		c      Color
		packed color.NRGBA
		scaled color.NRGBA
	}{
		"black": {0x0000, color.NRGBA{0x00, 0x00, 0x00, 0xff}, color.NRGBA{0x00, 0x00, 0x00, 0xff}},
		"white": {0xffff, color.NRGBA{0xff, 0xff, 0xff, 0xff}, color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		"red":   {0xf800, color.NRGBA{0xff, 0x00, 0x00, 0xff}, color.NRGBA{0xff, 0x00, 0x00, 0xff}},
		"green": {0x07e0, color.NRGBA{0x00, 0xff, 0x00, 0xff}, color.NRGBA{0x00, 0xff, 0x00, 0xff}},
		"blue":  {0x001f, color.NRGBA{0x00, 0x00, 0xff, 0xff}, color.NRGBA{0x00, 0x00, 0xff, 0xff}},
		"mid":   {0x8410, color.NRGBA{0x84, 0x82, 0x84, 0xff}, color.NRGBA{0x84, 0x82, 0x84, 0xff}},
		"low":   {0x0821, color.NRGBA{0x08, 0x04, 0x08, 0xff}, color.NRGBA{0x08, 0x04, 0x08, 0xff}},
		"r3":    {0x1800, color.NRGBA{0x18, 0x00, 0x00, 0xff}, color.NRGBA{0x19, 0x00, 0x00, 0xff}},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, table.packed, Unpack(table.c))
			assert.Equal(t, table.scaled, UnpackScaled(table.c))
		})
	}
}

func TestPack(t *testing.T) {
	assert.Equal(t, Color(0xf800), Pack(0xff, 0x00, 0x00))
	assert.Equal(t, Color(0x07e0), Pack(0x00, 0xff, 0x00))
	assert.Equal(t, Color(0x001f), Pack(0x00, 0x00, 0xff))
	assert.Equal(t, Color(0x0000), Pack(0x07, 0x03, 0x07))
	assert.Equal(t, [2]byte{0xf8, 0x00}, Pack(0xff, 0x00, 0x00).Bytes())
}

func TestModel(t *testing.T) {
	assert.Equal(t, Color(0xf800), Model.Convert(color.RGBA{0xff, 0x00, 0x00, 0xff}))
	assert.Equal(t, Color(0x1234), Model.Convert(Color(0x1234)))
	// Alpha is discarded, not applied
	assert.Equal(t, Color(0x07e0), Model.Convert(color.NRGBA{0x00, 0xff, 0x00, 0x80}))
}

func TestFromRGBA(t *testing.T) {
	m, err := FromRGBA([]byte{0xff, 0x00, 0x00, 0xff, 0x00, 0xff, 0x00, 0x00}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xf8, 0x00, 0x07, 0xe0}, m.Pix)
	assert.Equal(t, image.Rect(0, 0, 2, 1), m.Bounds())
	assert.Equal(t, []Color{0xf800, 0x07e0}, m.Values())
}

func TestFromRGBAErrors(t *testing.T) {
	tables := map[string]struct {
		pix  []byte
		w, h int
		err  error
	}{
		"not multiple of four": {make([]byte, 7), 2, 1, ErrMalformedBuffer},
		"short":                {make([]byte, 8), 3, 1, ErrMalformedBuffer},
		"long":                 {make([]byte, 12), 2, 1, ErrMalformedBuffer},
		"zero width":           {nil, 0, 1, ErrInvalidDimension},
		"negative height":      {make([]byte, 4), 1, -1, ErrInvalidDimension},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			m, err := FromRGBA(table.pix, table.w, table.h)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, table.err), "got %v", err)
		})
	}
}

func TestFromBytes(t *testing.T) {
	m, err := FromBytes([]byte{0xf8, 0x00, 0x07, 0xe0}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, Color(0xf800), m.RGB565At(0, 0))
	assert.Equal(t, Color(0x07e0), m.RGB565At(0, 1))
	assert.Equal(t, Color(0), m.RGB565At(1, 1))

	_, err = FromBytes([]byte{0xf8, 0x00, 0x07}, 1, 2)
	assert.True(t, errors.Is(err, ErrMalformedBuffer))
}

func TestConvert(t *testing.T) {
	n := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	n.SetNRGBA(0, 0, color.NRGBA{0xff, 0x00, 0x00, 0x00})
	n.SetNRGBA(1, 0, color.NRGBA{0x00, 0xff, 0x00, 0xff})
	n.SetNRGBA(0, 1, color.NRGBA{0x00, 0x00, 0xff, 0x10})
	n.SetNRGBA(1, 1, color.NRGBA{0xff, 0xff, 0xff, 0xff})

	m := Convert(n)
	assert.Equal(t, []Color{0xf800, 0x07e0, 0x001f, 0xffff}, m.Values())

	// Offset sub-images are rebased to (0, 0)
	sub := Convert(n.SubImage(image.Rect(1, 1, 2, 2)))
	assert.Equal(t, image.Rect(0, 0, 1, 1), sub.Bounds())
	assert.Equal(t, []Color{0xffff}, sub.Values())

	g := image.NewGray(image.Rect(0, 0, 1, 1))
	g.SetGray(0, 0, color.Gray{0x80})
	assert.Equal(t, []Color{Pack(0x80, 0x80, 0x80)}, Convert(g).Values())
}

func TestNRGBA(t *testing.T) {
	m, err := FromBytes([]byte{0xf8, 0x00, 0x84, 0x10}, 2, 1)
	require.NoError(t, err)

	n := m.NRGBA()
	assert.Equal(t, []byte{0xff, 0x00, 0x00, 0xff, 0x84, 0x82, 0x84, 0xff}, n.Pix)
	assert.Equal(t, m.Values(), Convert(n).Values())
}

func TestSet(t *testing.T) {
	m := New(image.Rect(0, 0, 2, 2))
	m.Set(1, 1, color.RGBA{0x00, 0x00, 0xff, 0xff})
	m.Set(5, 5, color.White)
	assert.Equal(t, []Color{0, 0, 0, 0x001f}, m.Values())
	assert.Equal(t, Color(0x001f), m.At(1, 1))
	assert.True(t, m.Opaque())

	sub := m.SubImage(image.Rect(1, 1, 2, 2)).(*Image)
	assert.Equal(t, Color(0x001f), sub.RGB565At(1, 1))
}

func TestEncodeDecode(t *testing.T) {
	m, err := FromBytes([]byte{0xf8, 0x00, 0x07, 0xe0, 0x00, 0x1f}, 3, 1)
	require.NoError(t, err)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))
	assert.Equal(t, []byte{'R', '5', '6', '5', 0x00, 0x03, 0x00, 0x01, 0xf8, 0x00, 0x07, 0xe0, 0x00, 0x1f}, b.Bytes())

	cfg, err := DecodeConfig(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)
	assert.Equal(t, 1, cfg.Height)

	got, format, err := image.Decode(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "rgb565", format)
	assert.Equal(t, m, got)

	var u Image
	require.NoError(t, u.UnmarshalBinary(b.Bytes()))
	assert.Equal(t, m.Values(), u.Values())

	mb, err := m.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, b.Bytes(), mb)
}

func TestDecodeErrors(t *testing.T) {
	valid := []byte{'R', '5', '6', '5', 0x00, 0x01, 0x00, 0x01, 0xf8, 0x00}

	tables := map[string]struct {
		b   []byte
		err error
	}{
		"empty":         {nil, errNotEnough},
		"short header":  {valid[:6], errNotEnough},
		"short pixels":  {valid[:9], errNotEnough},
		"trailing data": {append(append([]byte{}, valid...), 0x00), errTooMuch},
		"signature":     {append([]byte{'B', 'M'}, valid[2:]...), errBadSignature},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(table.b))
			assert.Equal(t, table.err, err)
		})
	}

	_, err := Decode(bytes.NewReader([]byte{'R', '5', '6', '5', 0x00, 0x00, 0x00, 0x01}))
	assert.True(t, errors.Is(err, ErrInvalidDimension))
}
