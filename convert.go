package bmp2tft

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/bmp2tft/carray"
	"github.com/bodgit/bmp2tft/resize"
	"github.com/bodgit/bmp2tft/rgb565"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode decodes any registered image format from r and packs it to RGB565.
// It returns the format name as reported by image.Decode.
func Decode(r io.Reader) (*rgb565.Image, string, error) {
	m, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	if b := m.Bounds(); b.Empty() {
		return nil, "", fmt.Errorf("%w: %dx%d", rgb565.ErrInvalidDimension, b.Dx(), b.Dy())
	}
	return rgb565.Convert(m), format, nil
}

func readFile(file string) ([]byte, string, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, "", err
	}
	sum := sha1.Sum(b)
	return b, fmt.Sprintf("%X", sum[:]), nil
}

// Load returns the original RGB565 pixels of file, using the cache if one
// is configured.
func (c *Converter) Load(file string) (*rgb565.Image, error) {
	b, sha, err := readFile(file)
	if err != nil {
		return nil, err
	}

	if c.db != nil {
		m, err := c.db.FindBySHA1(sha)
		if err != nil {
			return nil, err
		}
		if m != nil {
			c.logger.Printf("Using cached \"%s\", with SHA1 \"%s\"\n", file, sha)
			return m, nil
		}
	}

	m, format, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	c.logger.Printf("Decoded \"%s\" as %s, %dx%d\n", file, format, m.Rect.Dx(), m.Rect.Dy())

	if c.db != nil {
		if _, err := c.db.Add(sha, filepath.Base(file), m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Import packs each file and stores it in the cache.
func (c *Converter) Import(files ...string) error {
	if c.db == nil {
		return errors.New("no image database")
	}
	for _, file := range files {
		if _, err := c.Load(file); err != nil {
			return err
		}
	}
	return nil
}

// Convert loads file, resizes it and writes the result to w.
func (c *Converter) Convert(file string, w io.Writer, o *Options) error {
	m, err := c.Load(file)
	if err != nil {
		return err
	}

	if m, err = resize.Resize(m, o.resize()...); err != nil {
		return err
	}

	if o != nil && o.Binary {
		return rgb565.Encode(w, m)
	}

	return carray.Encode(w, m, o.format(file))
}

// Export loads file, resizes it and encodes it to w as a regular image for
// previewing. The format is chosen by ext.
func (c *Converter) Export(file string, w io.Writer, ext string, opts ...resize.Option) error {
	m, err := c.Load(file)
	if err != nil {
		return err
	}

	if m, err = resize.Resize(m, opts...); err != nil {
		return err
	}

	return Export(w, m, ext)
}

// Export encodes m to w in the format implied by ext, which may be a bare
// extension or a whole filename.
func Export(w io.Writer, m *rgb565.Image, ext string) error {
	ext = strings.ToLower(strings.TrimPrefix(filepath.Ext("."+ext), "."))
	if ext == "" {
		return errors.New("no file format specified")
	}

	switch ext {
	case "r565", "rgb565", "bin":
		return rgb565.Encode(w, m)
	case "bmp":
		return bmp.Encode(w, m.NRGBA())
	case "gif":
		return gif.Encode(w, m.NRGBA(), &gif.Options{
			NumColors: 256,
			Quantizer: quantize.MedianCutQuantizer{},
		})
	case "jpg", "jpeg":
		return jpeg.Encode(w, m.NRGBA(), &jpeg.Options{Quality: 90})
	case "png":
		return png.Encode(w, m.NRGBA())
	case "tif", "tiff":
		return tiff.Encode(w, m.NRGBA(), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}

	return fmt.Errorf("unsupported file format: %q", ext)
}
