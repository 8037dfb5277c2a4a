// Package m3 decodes the graphics containers of Mother 3: sprite object
// binaries (SOB), sized archives (SAR), effect containers (EFC) and
// backgrounds (BG).
package m3

import (
	"fmt"

	"github.com/nbarena/m3rom/gba"
	"github.com/nbarena/m3rom/gfx"
	"github.com/nbarena/m3rom/rom"
	"github.com/nbarena/m3rom/table"
)

// Container tags, read as little-endian words. Footers mark the end of a
// container and are not checked.
const (
	SobHeader = 0x20626F73 // "sob "
	SobFooter = 0x626F737E // "~sob"
	SarHeader = 0x20726173 // "sar "
	SarFooter = 0x7261737E // "~sar"
	EfcHeader = 0x20636665 // "efc "
	EfcFooter = 0x6366657E // "~efc"
	BgHeader  = 0x20206762 // "bg  "
	BgFooter  = 0x2067627E // "~bg "
)

const (
	oamEntrySize        = 8
	sobStepSize         = 4
	sarEntrySize        = 8
	frameStepSize       = 4
	spriteSeqHeaderSize = 8
	seqEntryHeaderSize  = 4
)

// Reader decodes containers. Offsets stored inside a container are relative
// to the container's start; everything returned is absolute.
type Reader struct {
	GBA *gba.Reader
}

func NewReader(r *gba.Reader) *Reader {
	return &Reader{r}
}

func (r *Reader) checkTag(offset int, want uint32, what string) error {
	got, err := r.GBA.Uint32(offset)
	if err != nil {
		return fmt.Errorf("%w while reading %s", err, what)
	}
	if got != want {
		return &rom.FormatError{Offset: offset, What: what, Want: want, Got: got}
	}
	return nil
}

// checkCount rejects record counts that cannot fit in the rest of the source.
func (r *Reader) checkCount(offset int, count int, size int, what string) error {
	limit := r.GBA.Source.Len() - offset
	if size > 0 {
		limit /= size
	}
	if count < 0 || count > limit {
		return &rom.FormatError{Offset: offset, What: what, Want: uint32(limit), Got: uint32(count)}
	}
	return nil
}

func (r *Reader) ReadSobSpriteEntry(offset int) (SpriteEntry, error) {
	c := cursor{r.GBA, offset}

	preambleLen, err := c.u16()
	if err != nil {
		return SpriteEntry{}, err
	}

	preamble, err := c.bytes(int(preambleLen) * 8)
	if err != nil {
		return SpriteEntry{}, fmt.Errorf("%w while reading preamble", err)
	}

	count, err := c.u16()
	if err != nil {
		return SpriteEntry{}, err
	}

	sprites := make([]gfx.Sprite, count)
	for i := range sprites {
		s, err := r.GBA.ReadSprite(c.off)
		if err != nil {
			return SpriteEntry{}, fmt.Errorf("%w while reading sprite %d", err, i)
		}
		sprites[i] = s
		c.skip(oamEntrySize)
	}

	return SpriteEntry{preamble, gfx.NewSpriteGroup(sprites)}, nil
}

func (r *Reader) ReadSobAnimation(offset int) (SobAnimation, error) {
	c := cursor{r.GBA, offset}

	header, err := c.u16()
	if err != nil {
		return SobAnimation{}, err
	}

	count, err := c.u16()
	if err != nil {
		return SobAnimation{}, err
	}

	steps := make([]AnimationStep, count)
	for i := range steps {
		frame, err := c.u16()
		if err != nil {
			return SobAnimation{}, fmt.Errorf("%w while reading step %d", err, i)
		}
		group, err := c.u16()
		if err != nil {
			return SobAnimation{}, fmt.Errorf("%w while reading step %d", err, i)
		}
		steps[i] = AnimationStep{frame, group}
	}

	return SobAnimation{header, steps}, nil
}

func (r *Reader) ReadSob(offset int) (*Sob, error) {
	if err := r.checkTag(offset, SobHeader, "sob header"); err != nil {
		return nil, err
	}

	c := cursor{r.GBA, offset + 4}

	entryCount, err := c.u16()
	if err != nil {
		return nil, err
	}
	animCount, err := c.u16()
	if err != nil {
		return nil, err
	}

	sob := &Sob{
		SpriteEntries: make([]SpriteEntry, entryCount),
		Animations:    make([]SobAnimation, animCount),
	}

	for i := range sob.SpriteEntries {
		rel, err := c.u16()
		if err != nil {
			return nil, fmt.Errorf("%w while reading sprite entry offset %d", err, i)
		}
		sob.SpriteEntries[i], err = r.ReadSobSpriteEntry(offset + int(rel))
		if err != nil {
			return nil, fmt.Errorf("%w while reading sprite entry %d", err, i)
		}
	}

	for i := range sob.Animations {
		rel, err := c.u16()
		if err != nil {
			return nil, fmt.Errorf("%w while reading animation offset %d", err, i)
		}
		sob.Animations[i], err = r.ReadSobAnimation(offset + int(rel))
		if err != nil {
			return nil, fmt.Errorf("%w while reading animation %d", err, i)
		}
	}

	return sob, nil
}

func (r *Reader) ReadSar(offset int) (*table.SizedOffsetTable, error) {
	if err := r.checkTag(offset, SarHeader, "sar header"); err != nil {
		return nil, err
	}

	c := cursor{r.GBA, offset + 4}

	count, err := c.i32()
	if err != nil {
		return nil, err
	}
	if err := r.checkCount(c.off, int(count), sarEntrySize, "sar entry count"); err != nil {
		return nil, err
	}

	offsets := make([]int, count)
	sizes := make([]int, count)
	for i := range offsets {
		rel, err := c.i32()
		if err != nil {
			return nil, err
		}
		size, err := c.i32()
		if err != nil {
			return nil, err
		}
		offsets[i] = offset + int(rel)
		sizes[i] = int(size)
	}

	return table.NewSizedOffsetTable(offsets, sizes)
}

func (r *Reader) readFrameAnimation(c *cursor) (FrameAnimation, error) {
	tileset, err := c.u16()
	if err != nil {
		return FrameAnimation{}, err
	}
	palette, err := c.u16()
	if err != nil {
		return FrameAnimation{}, err
	}
	count, err := c.i32()
	if err != nil {
		return FrameAnimation{}, err
	}
	if err := r.checkCount(c.off, int(count), frameStepSize, "frame step count"); err != nil {
		return FrameAnimation{}, err
	}

	steps := make([]FrameStep, count)
	for i := range steps {
		tilemap, err := c.u16()
		if err != nil {
			return FrameAnimation{}, err
		}
		duration, err := c.u16()
		if err != nil {
			return FrameAnimation{}, err
		}
		steps[i] = FrameStep{tilemap, duration}
	}

	return FrameAnimation{tileset, palette, steps}, nil
}

func (r *Reader) readSpriteSequenceHeader(c *cursor) (SpriteSequenceHeader, error) {
	var fields [4]uint16
	for i := range fields {
		v, err := c.u16()
		if err != nil {
			return SpriteSequenceHeader{}, err
		}
		fields[i] = v
	}
	return SpriteSequenceHeader{fields[0], fields[1], fields[2], fields[3]}, nil
}

func (r *Reader) readSequenceEntry(c *cursor) (SequenceEntry, error) {
	start := c.off

	length, err := c.u16()
	if err != nil {
		return nil, err
	}
	if length < seqEntryHeaderSize {
		return nil, &rom.FormatError{Offset: start, What: "sequence entry length", Want: seqEntryHeaderSize, Got: uint32(length)}
	}

	typ, err := c.u16()
	if err != nil {
		return nil, err
	}

	content, err := c.bytes(int(length) - seqEntryHeaderSize)
	if err != nil {
		return nil, err
	}

	if EntryType(typ) != EntryFrameAnimation {
		return &OpaqueEntry{EntryType(typ), content}, nil
	}

	cr := gba.NewReader(rom.NewReader(rom.NewByteArray(content), r.GBA.Order))
	globalFrame, err := cr.Uint16(0)
	if err != nil {
		return nil, fmt.Errorf("%w while reading frame animation entry at 0x%X", err, start)
	}
	anim, err := cr.Uint16(4)
	if err != nil {
		return nil, fmt.Errorf("%w while reading frame animation entry at 0x%X", err, start)
	}

	return &FrameAnimationEntry{int(anim), int(globalFrame), content}, nil
}

func (r *Reader) readFrameAnimationSequence(c *cursor) (FrameAnimationSequence, error) {
	seq := FrameAnimationSequence{Offset: c.off}

	var err error
	if seq.UnknownA, err = c.bytes(10); err != nil {
		return seq, err
	}
	count, err := c.u16()
	if err != nil {
		return seq, err
	}
	if seq.UnknownB, err = c.i32(); err != nil {
		return seq, err
	}

	seq.Entries = make([]SequenceEntry, count)
	for i := range seq.Entries {
		if seq.Entries[i], err = r.readSequenceEntry(c); err != nil {
			return seq, fmt.Errorf("%w while reading entry %d", err, i)
		}
	}
	return seq, nil
}

func (r *Reader) ReadEfc(offset int) (*Efc, error) {
	if err := r.checkTag(offset, EfcHeader, "efc header"); err != nil {
		return nil, err
	}

	c := cursor{r.GBA, offset + 4}

	var counts [3]uint16
	for i := range counts {
		v, err := c.u16()
		if err != nil {
			return nil, err
		}
		counts[i] = v
	}
	c.skip(2)

	efc := &Efc{
		FrameAnimations:         make([]FrameAnimation, counts[0]),
		SpriteSequenceHeaders:   make([]SpriteSequenceHeader, counts[1]),
		FrameAnimationSequences: make([]FrameAnimationSequence, counts[2]),
	}

	var err error
	for i := range efc.FrameAnimations {
		if efc.FrameAnimations[i], err = r.readFrameAnimation(&c); err != nil {
			return nil, fmt.Errorf("%w while reading frame animation %d", err, i)
		}
	}

	for i := range efc.SpriteSequenceHeaders {
		if efc.SpriteSequenceHeaders[i], err = r.readSpriteSequenceHeader(&c); err != nil {
			return nil, fmt.Errorf("%w while reading sprite sequence header %d", err, i)
		}
	}

	for i := range efc.FrameAnimationSequences {
		if efc.FrameAnimationSequences[i], err = r.readFrameAnimationSequence(&c); err != nil {
			return nil, fmt.Errorf("%w while reading frame animation sequence %d", err, i)
		}
	}

	return efc, nil
}

// ReadBg reads a background: a header followed by an LZ77-compressed 32x32
// tilemap.
func (r *Reader) ReadBg(offset int) (*Bg, error) {
	if err := r.checkTag(offset, BgHeader, "bg header"); err != nil {
		return nil, err
	}

	c := cursor{r.GBA, offset + 4}

	a, err := c.u32()
	if err != nil {
		return nil, err
	}
	b, err := c.u32()
	if err != nil {
		return nil, err
	}

	sub, err := r.GBA.Rebase(c.off)
	if err != nil {
		return nil, fmt.Errorf("%w while decompressing bg tilemap", err)
	}

	m, err := sub.ReadTilemapAll(BgWidthInTiles, BgHeightInTiles)
	if err != nil {
		return nil, fmt.Errorf("%w while reading bg tilemap", err)
	}

	return &Bg{m, a, b}, nil
}
