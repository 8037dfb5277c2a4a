package m3

import (
	"encoding/binary"

	"github.com/nbarena/m3rom/gba"
	"github.com/nbarena/m3rom/rom"
)

// builder assembles little-endian test images.
type builder struct {
	buf []byte
}

func (b *builder) pos() int { return len(b.buf) }

func (b *builder) raw(vs ...byte) *builder {
	b.buf = append(b.buf, vs...)
	return b
}

func (b *builder) u16(vs ...uint16) *builder {
	for _, v := range vs {
		b.buf = append(b.buf, byte(v), byte(v>>8))
	}
	return b
}

func (b *builder) u32(vs ...uint32) *builder {
	for _, v := range vs {
		b.buf = append(b.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	return b
}

func (b *builder) pad(n int) *builder {
	b.buf = append(b.buf, make([]byte, n)...)
	return b
}

func (b *builder) put16(at int, v uint16) {
	binary.LittleEndian.PutUint16(b.buf[at:], v)
}

func (b *builder) put32(at int, v uint32) {
	binary.LittleEndian.PutUint32(b.buf[at:], v)
}

func (b *builder) reader() *Reader {
	return NewReader(gba.NewReader(rom.NewReader(rom.NewByteArray(b.buf), nil)))
}

type oamAttrs struct {
	x, y  int
	shape gba.Shape
	size  int
	tile  int
	pal   int
}

// oam encodes an OAM entry plus the unused fourth word.
func (b *builder) oam(s oamAttrs) *builder {
	w0 := uint16(s.y)&0xFF | uint16(s.shape)<<14
	w1 := uint16(s.x)&0x1FF | uint16(s.size)<<14
	w2 := uint16(s.tile) | uint16(s.pal)<<12
	return b.u16(w0, w1, w2, 0)
}

// sob writes a SOB with one sprite group per entry of groups and one
// animation stepping through steps (pairs of frame and group index).
func (b *builder) sob(groups [][]oamAttrs, steps [][2]uint16) int {
	start := b.pos()
	b.u32(SobHeader).u16(uint16(len(groups)), 1)

	tbl := b.pos()
	b.pad(2 * (len(groups) + 1))

	for i, g := range groups {
		b.put16(tbl+i*2, uint16(b.pos()-start))
		b.u16(1).raw(1, 2, 3, 4, 5, 6, 7, 8)
		b.u16(uint16(len(g)))
		for _, s := range g {
			b.oam(s)
		}
	}

	b.put16(tbl+len(groups)*2, uint16(b.pos()-start))
	b.u16(0xABCD, uint16(len(steps)))
	for _, s := range steps {
		b.u16(s[0], s[1])
	}
	b.u32(SobFooter)
	return start
}
