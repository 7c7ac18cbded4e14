package crc32

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

// One word at a time, the way the reference manual describes it
func reference(words []uint32) uint32 {
	crc := uint32(Initial)
	for _, w := range words {
		crc ^= w
		for i := 0; i < 32; i++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ polynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func words(b []byte) []uint32 {
	padded := make([]byte, (len(b)+3)&^3)
	copy(padded, b)
	w := make([]uint32, len(padded)/4)
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(padded[4*i:])
	}
	return w
}

func TestChecksum(t *testing.T) {
	tables := map[string][]byte{
		"empty":   {},
		"word":    {0x78, 0x56, 0x34, 0x12},
		"words":   {0x00, 0xf8, 0xe0, 0x07, 0x1f, 0x00, 0xff, 0xff},
		"partial": {0x00, 0xf8, 0xe0, 0x07, 0x1f, 0x00},
		"text":    []byte("The quick brown fox jumps over the lazy dog"),
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, reference(words(table)), Checksum(table))
		})
	}
}

func TestUpdate(t *testing.T) {
	b := []byte{0x00, 0xf8, 0xe0, 0x07, 0x1f, 0x00, 0xff, 0xff}
	assert.Equal(t, reference(words(b)), Update(Initial, b))
	assert.Equal(t, Update(Update(Initial, b[:4]), b[4:]), Update(Initial, b))
	assert.Panics(t, func() { Update(Initial, b[:3]) })
}

func TestHash(t *testing.T) {
	b := []byte("The quick brown fox jumps over the lazy dog")

	h := New()
	for i := 0; i < len(b); i += 3 {
		end := i + 3
		if end > len(b) {
			end = len(b)
		}
		n, err := h.Write(b[i:end])
		assert.NoError(t, err)
		assert.Equal(t, end-i, n)
	}
	assert.Equal(t, Checksum(b), h.Sum32())

	s := h.Sum32()
	assert.Equal(t, []byte{byte(s >> 24), byte(s >> 16), byte(s >> 8), byte(s)}, h.Sum(nil))
	assert.Equal(t, Size, h.Size())
	assert.Equal(t, 4, h.BlockSize())

	h.Reset()
	assert.Equal(t, uint32(Initial), h.Sum32())
}
