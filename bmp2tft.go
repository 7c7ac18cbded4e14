/*
Package bmp2tft is a library for converting bitmap images into RGB565 source
code arrays for microcontrollers driving small TFT displays.
*/
package bmp2tft

import (
	"log"

	"github.com/bodgit/bmp2tft/carray"
	"github.com/bodgit/bmp2tft/resize"
)

// Options control a single conversion.
type Options struct {
	// Resize is passed to resize.Resize; with neither a width nor a
	// height the image is converted at its original size.
	Resize []resize.Option

	// Format controls the generated array. A nil Format uses
	// carray.DefaultOptions and an empty Name is derived from the input
	// filename.
	Format *carray.Options

	// Binary writes the raw RGB565 container instead of source code.
	Binary bool
}

func (o *Options) format(file string) *carray.Options {
	f := carray.DefaultOptions()
	f.Name = ""
	if o != nil && o.Format != nil {
		tmp := *o.Format
		f = &tmp
	}
	if f.Name == "" {
		f.Name = carray.Identifier(file)
	}
	return f
}

func (o *Options) resize() []resize.Option {
	if o == nil {
		return nil
	}
	return o.Resize
}

// Ext returns the file extension output is expected to have.
func (o *Options) Ext() string {
	switch {
	case o == nil:
		return carray.C.Ext()
	case o.Binary:
		return ".r565"
	case o.Format == nil:
		return carray.C.Ext()
	}
	return o.Format.Language.Ext()
}

// Converter turns image files into RGB565 arrays. Decoded originals are
// optionally cached in an ImageDB so repeated conversions with different
// sizes always start from the original pixels.
type Converter struct {
	db     *ImageDB
	logger *log.Logger
}

// New returns a Converter. db may be nil to disable caching.
func New(db *ImageDB, logger *log.Logger) *Converter {
	return &Converter{
		db:     db,
		logger: logger,
	}
}
