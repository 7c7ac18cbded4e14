/*
Package carray renders an RGB565 image as a source code array suitable for
compiling into microcontroller firmware.

Each pixel becomes one 16-bit element written as a lowercase, zero-padded
four digit hexadecimal literal. The declaration is preceded by a comment
stating the number of elements. For C the array is by default declared const
and PROGMEM so it stays in flash on targets that distinguish program memory.
*/
package carray

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bodgit/bmp2tft/crc32"
	"github.com/bodgit/bmp2tft/rgb565"
	"github.com/iancoleman/strcase"
)

// DefaultName is used when no name is given or none can be derived.
const DefaultName = "image_data"

// DefaultPackage is the package clause of Go output when none is given.
const DefaultPackage = "main"

// Language selects the syntax of the generated declaration.
type Language int

const (
	// C generates a C/C++ array declaration.
	C Language = iota
	// Go generates a Go array variable, for example for TinyGo.
	Go
)

var languages = map[string]Language{
	"c":  C,
	"go": Go,
}

// ParseLanguage returns the Language with the given name.
func ParseLanguage(s string) (Language, error) {
	l, ok := languages[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("carray: unknown language %q", s)
	}
	return l, nil
}

func (l Language) String() string {
	switch l {
	case C:
		return "c"
	case Go:
		return "go"
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// Ext returns the conventional file extension for the generated source.
func (l Language) Ext() string {
	if l == Go {
		return ".go"
	}
	return ".h"
}

// Options control the generated declaration.
type Options struct {
	// Name of the array. It is used as-is for C and camel-cased for Go.
	Name     string
	Language Language

	// Package is the package clause of Go output, DefaultPackage if empty.
	Package string

	// Const, Unsigned and PROGMEM only affect C output.
	Const    bool
	Unsigned bool
	PROGMEM  bool

	// Columns is the number of elements per line, zero puts them all on
	// one line.
	Columns int

	// Dimensions adds width and height constants.
	Dimensions bool
	// Checksum adds the STM32-style CRC-32 of the array as stored in
	// little-endian memory.
	Checksum bool
}

// DefaultOptions returns the options used when Encode is passed nil.
func DefaultOptions() *Options {
	return &Options{
		Name:     DefaultName,
		Language: C,
		Const:    true,
		Unsigned: true,
		PROGMEM:  true,
	}
}

var (
	notIdentifier = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	packageName   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Identifier derives a C identifier from a filename by dropping any directory
// and extension and replacing anything that isn't a letter, digit or
// underscore.
func Identifier(filename string) string {
	base := filepath.Base(filename)
	name := notIdentifier.ReplaceAllString(strings.TrimSuffix(base, filepath.Ext(base)), "_")
	switch {
	case name == "" || name == "_" || base == "." || base == string(filepath.Separator):
		return DefaultName
	case isDigit(name[0]):
		return "_" + name
	}
	return name
}

// Checksum returns the CRC-32 of the values of m laid out as an array of
// little-endian 16-bit words.
func Checksum(m *rgb565.Image) uint32 {
	h := crc32.New()
	for _, v := range m.Values() {
		h.Write([]byte{byte(v), byte(v >> 8)})
	}
	return h.Sum32()
}

type encoder struct {
	w *bufio.Writer
	o *Options

	name   string
	pkg    string
	values []rgb565.Color
}

func (e *encoder) identifier(suffix string) string {
	if e.o.Language == Go {
		// Camel-casing drops the underscore guarding a leading digit
		name := strcase.ToLowerCamel(e.name + suffix)
		switch {
		case name == "":
			name = e.name + suffix
		case isDigit(name[0]):
			name = "_" + name
		}
		return name
	}
	return e.name + suffix
}

func (e *encoder) writeValues(indent, last string) {
	for i, v := range e.values {
		switch {
		case i == 0:
			e.w.WriteString(indent)
		case e.o.Columns > 0 && i%e.o.Columns == 0:
			e.w.WriteString(",\n")
			e.w.WriteString(indent)
		default:
			e.w.WriteString(", ")
		}
		fmt.Fprintf(e.w, "0x%04x", uint16(v))
	}
	e.w.WriteString(last)
}

func (e *encoder) encodeC(m *rgb565.Image) {
	qualifier := ""
	if e.o.Const {
		qualifier = "const "
	}
	typ := "int16_t"
	if e.o.Unsigned {
		typ = "uint16_t"
	}

	if e.o.Dimensions {
		fmt.Fprintf(e.w, "%suint16_t %s = %d;\n", qualifier, e.identifier("_width"), m.Rect.Dx())
		fmt.Fprintf(e.w, "%suint16_t %s = %d;\n", qualifier, e.identifier("_height"), m.Rect.Dy())
	}
	if e.o.Checksum {
		fmt.Fprintf(e.w, "%suint32_t %s = 0x%08x;\n", qualifier, e.identifier("_crc32"), Checksum(m))
	}

	fmt.Fprintf(e.w, "// array size is %d\n", len(e.values))
	fmt.Fprintf(e.w, "%s%s %s[]", qualifier, typ, e.identifier(""))
	if e.o.PROGMEM {
		e.w.WriteString(" PROGMEM")
	}
	e.w.WriteString(" = {\n")
	e.writeValues("  ", "\n};\n")
}

func (e *encoder) encodeGo(m *rgb565.Image) {
	fmt.Fprintf(e.w, "package %s\n\n", e.pkg)
	if e.o.Dimensions {
		fmt.Fprintf(e.w, "const %s = %d\n", e.identifier("_width"), m.Rect.Dx())
		fmt.Fprintf(e.w, "const %s = %d\n", e.identifier("_height"), m.Rect.Dy())
	}
	if e.o.Checksum {
		fmt.Fprintf(e.w, "const %s = 0x%08x\n", e.identifier("_crc32"), Checksum(m))
	}

	fmt.Fprintf(e.w, "// array size is %d\n", len(e.values))
	fmt.Fprintf(e.w, "var %s = [%d]uint16{\n", e.identifier(""), len(e.values))
	e.writeValues("\t", ",\n}\n")
}

// Encode writes m to w as a single array declaration. A nil o is the same as
// DefaultOptions.
func Encode(w io.Writer, m *rgb565.Image, o *Options) error {
	if o == nil {
		o = DefaultOptions()
	}
	if o.Columns < 0 {
		return errors.New("carray: negative column count")
	}

	b := m.Bounds()
	if b.Empty() {
		return fmt.Errorf("carray: %w: %dx%d", rgb565.ErrInvalidDimension, b.Dx(), b.Dy())
	}

	name := o.Name
	if name == "" {
		name = DefaultName
	}
	if name != Identifier(name) {
		return fmt.Errorf("carray: invalid name %q", name)
	}

	pkg := o.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	if !packageName.MatchString(pkg) {
		return fmt.Errorf("carray: invalid package %q", pkg)
	}

	e := encoder{
		w:      bufio.NewWriter(w),
		o:      o,
		name:   name,
		pkg:    pkg,
		values: m.Values(),
	}

	switch o.Language {
	case C:
		e.encodeC(m)
	case Go:
		e.encodeGo(m)
	default:
		return fmt.Errorf("carray: unsupported language %v", o.Language)
	}

	return e.w.Flush()
}
