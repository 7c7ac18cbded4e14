package rgb565

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"io"
)

const maxDimension = 1<<16 - 1

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(m *Image) error {
	var tmp [headerSize]byte
	copy(tmp[:], signature)
	binary.BigEndian.PutUint16(tmp[4:], uint16(m.Rect.Dx()))
	binary.BigEndian.PutUint16(tmp[6:], uint16(m.Rect.Dy()))
	if _, err := e.w.Write(tmp[:]); err != nil {
		return err
	}

	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		i := m.PixOffset(m.Rect.Min.X, y)
		if _, err := e.w.Write(m.Pix[i : i+2*m.Rect.Dx()]); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the Image m to w in raw RGB565 format. Images that are not
// already an *Image are packed first.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || b.Dx() > maxDimension || b.Dy() > maxDimension {
		return errors.New("rgb565: image is wrong size")
	}

	pm, _ := m.(*Image)
	if pm == nil {
		pm = Convert(m)
	}

	e := encoder{w: w}

	return e.encode(pm)
}

// MarshalBinary encodes p in raw RGB565 format.
func (p *Image) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := Encode(b, p); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
