package rgb565

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"io"
)

const (
	signature  = "R565"
	headerSize = len(signature) + 4
)

var (
	errNotEnough    = errors.New("rgb565: not enough image data")
	errTooMuch      = errors.New("rgb565: too much image data")
	errBadSignature = errors.New("rgb565: invalid signature")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	width, height int

	image *Image

	tmp [headerSize]byte
}

func (d *decoder) readHeader() error {
	if err := readFull(d.r, d.tmp[:]); err != nil {
		return err
	}
	if string(d.tmp[:len(signature)]) != signature {
		return errBadSignature
	}
	d.width = int(binary.BigEndian.Uint16(d.tmp[4:]))
	d.height = int(binary.BigEndian.Uint16(d.tmp[6:]))
	return checkDimensions(d.width, d.height)
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if configOnly {
		return nil
	}

	d.image = New(image.Rect(0, 0, d.width, d.height))
	if err := readFull(d.r, d.image.Pix); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if n, err := r.Read(d.tmp[:1]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil {
			return err
		}
		return errTooMuch
	}

	return nil
}

// Decode reads a raw RGB565 image from r.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a raw RGB565 image
// without decoding the pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: Model,
		Width:      d.width,
		Height:     d.height,
	}, nil
}

// UnmarshalBinary replaces p with the raw RGB565 image in b.
func (p *Image) UnmarshalBinary(b []byte) error {
	var d decoder
	if err := d.decode(bytes.NewReader(b), false); err != nil {
		return err
	}
	*p = *d.image
	return nil
}

func init() {
	image.RegisterFormat("rgb565", signature, Decode, DecodeConfig)
}
