/*
Package crc32 implements the 32-bit cyclic redundancy check computed by the
CRC peripheral found on STM32 and similar microcontrollers.

It uses the standard CRC-32 normal polynomial, processed MSB-first with no
reflection or final XOR, and consumes data as 32-bit little-endian words so
the checksum of an array matches what the peripheral returns when fed that
array from memory one word at a time.
*/
package crc32

import (
	"hash"
	crc "hash/crc32"
)

// Size of a CRC-32 checksum in bytes.
const Size = crc.Size

// Initial is the reset value of the peripheral's data register.
const Initial = 0xffffffff

const polynomial = 0x04c11db7

func makeTable(poly uint32) *crc.Table {
	t := new(crc.Table)
	for i := 0; i < 256; i++ {
		crc := uint32(i << 24)
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}

var table = makeTable(polynomial)

// digest buffers a partial word between writes.
type digest struct {
	crc uint32
	buf [4]byte
	n   int
}

// New creates a new hash.Hash32 computing the checksum, starting from
// Initial. Its Sum method zero-pads any trailing partial word and lays the
// value out in big-endian byte order.
func New() hash.Hash32 {
	return &digest{crc: Initial}
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return 4 }

func (d *digest) Reset() { *d = digest{crc: Initial} }

// Most significant byte of each little-endian word first
func update(crc uint32, tab *crc.Table, p []byte) uint32 {
	for i := range p {
		crc = crc<<8 ^ tab[((crc>>24)^uint32(p[i^3]))&0xff]
	}
	return crc
}

// Update returns the result of adding the words in p to the crc. The length
// of p must be a multiple of four.
func Update(crc uint32, p []byte) uint32 {
	if len(p)%4 != 0 {
		panic("crc32: partial word")
	}
	return update(crc, table, p)
}

func (d *digest) Write(p []byte) (n int, err error) {
	n = len(p)
	if d.n > 0 {
		c := copy(d.buf[d.n:], p)
		d.n += c
		p = p[c:]
		if d.n < 4 {
			return
		}
		d.crc = Update(d.crc, d.buf[:])
		d.n = 0
	}
	whole := len(p) &^ 3
	d.crc = Update(d.crc, p[:whole])
	d.n = copy(d.buf[:], p[whole:])
	return
}

func (d *digest) Sum32() uint32 {
	if d.n == 0 {
		return d.crc
	}
	var tmp [4]byte
	copy(tmp[:], d.buf[:d.n])
	return Update(d.crc, tmp[:])
}

func (d *digest) Sum(in []byte) []byte {
	s := d.Sum32()
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

// Checksum returns the checksum of data, zero-padded to a whole number of
// words.
func Checksum(data []byte) uint32 {
	d := New()
	d.Write(data)
	return d.Sum32()
}
