// Package lz77 implements the LZ77 variant understood by the GBA BIOS
// (LZ77UnCompWram, compression type 0x10).
package lz77

import (
	"fmt"

	gbalz77 "github.com/nbarena/gbarom/lz77"
	"github.com/nbarena/m3rom/rom"
)

const (
	typeLZ77 = 0x10

	minMatch = 3
	maxMatch = 0xF + minMatch
	maxDisp  = 0x1000
)

// Compressor turns ranges of a source into fresh, fully materialized buffers.
type Compressor interface {
	Compress(src rom.Source, offset int, n int) (*rom.ByteArray, error)
	Decompress(src rom.Source, offset int) (*rom.ByteArray, error)
}

// Codec is the GBA LZ77 Compressor.
type Codec struct{}

func (Codec) Compress(src rom.Source, offset int, n int) (*rom.ByteArray, error) {
	return Compress(src, offset, n)
}

func (Codec) Decompress(src rom.Source, offset int) (*rom.ByteArray, error) {
	return Decompress(src, offset)
}

// Decompress decodes the compressed block starting at offset.
func Decompress(src rom.Source, offset int) (*rom.ByteArray, error) {
	size, err := scan(src, offset)
	if err != nil {
		return nil, err
	}

	out, err := gbalz77.Decompress(rom.NewOffsetReader(src, offset))
	if err != nil {
		return nil, fmt.Errorf("%w while decompressing lz77 block at 0x%X", err, offset)
	}
	if len(out) != size {
		return nil, &rom.FormatError{Offset: offset, What: "lz77 output length", Want: uint32(size), Got: uint32(len(out))}
	}

	return rom.NewByteArray(out), nil
}

// scan walks the token stream at offset without producing output and returns
// the decompressed size. Truncated input gives a *rom.BoundsError and a
// reference before the start of the output a *rom.FormatError.
func scan(src rom.Source, offset int) (int, error) {
	r := rom.NewReader(src, nil)

	header, err := r.Uint32(offset)
	if err != nil {
		return 0, err
	}

	if header&0xFF != typeLZ77 {
		return 0, &rom.FormatError{Offset: offset, What: "lz77 header", Want: typeLZ77, Got: header & 0xFF}
	}

	size := int(header >> 8)
	n := 0
	pos := offset + 4

	for n < size {
		flags, err := r.Uint8(pos)
		if err != nil {
			return 0, err
		}
		pos++

		for i := 0; i < 8 && n < size; i, flags = i+1, flags<<1 {
			if flags&0x80 == 0 {
				if _, err := r.Uint8(pos); err != nil {
					return 0, err
				}
				pos++
				n++
				continue
			}

			token, err := r.Uint16(pos)
			if err != nil {
				return 0, err
			}
			b0, b1 := int(token&0xFF), int(token>>8)

			count := b0>>4 + minMatch
			disp := ((b0&0xF)<<8 | b1) + 1
			if disp > n {
				return 0, &rom.FormatError{Offset: pos, What: "lz77 back-reference", Want: uint32(n), Got: uint32(disp)}
			}
			pos += 2

			n += count
			if n > size {
				n = size
			}
		}
	}

	return size, nil
}

// Compress encodes n bytes of src at offset with a greedy longest-match search.
func Compress(src rom.Source, offset int, n int) (*rom.ByteArray, error) {
	if n < 0 || n > 0xFFFFFF {
		return nil, &rom.ArgumentError{Name: "length", Value: n}
	}

	raw, err := rom.NewReader(src, nil).Bytes(offset, n)
	if err != nil {
		return nil, err
	}

	header := uint32(typeLZ77) | uint32(n)<<8
	result := []byte{byte(header), byte(header >> 8), byte(header >> 16), byte(header >> 24)}

	cursor := 0
	for cursor < len(raw) {
		var blockFlags byte
		var block []byte

		for i := 0; i < 8 && cursor < len(raw); i++ {
			bestDisp, bestLen := longestMatch(raw, cursor)

			if bestLen < minMatch {
				block = append(block, raw[cursor])
				cursor++
				continue
			}

			// Flags are MSB first.
			blockFlags |= 1 << (7 - i)
			block = append(block, byte((bestDisp>>8)&0xF|(bestLen-minMatch)<<4), byte(bestDisp))
			cursor += bestLen
		}

		result = append(result, blockFlags)
		result = append(result, block...)
	}

	// Keep the output word aligned, like the BIOS expects.
	for len(result)%4 != 0 {
		result = append(result, 0)
	}

	return rom.NewByteArray(result), nil
}

// longestMatch returns the zero-based displacement and length of the longest
// earlier run matching data[cursor:].
func longestMatch(data []byte, cursor int) (int, int) {
	bestDisp, bestLen := 0, 0
	for disp := 0; disp < maxDisp && cursor-disp-1 >= 0; disp++ {
		n := 0
		for n < maxMatch && cursor+n < len(data) && data[cursor+n] == data[cursor-disp-1+n] {
			n++
		}
		if n > bestLen {
			bestDisp, bestLen = disp, n
		}
	}
	return bestDisp, bestLen
}
