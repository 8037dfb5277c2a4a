package gba

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/nbarena/m3rom/gfx"
	"github.com/nbarena/m3rom/lz77"
	"github.com/nbarena/m3rom/rom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readerFor(data []byte) *Reader {
	return NewReader(rom.NewReader(rom.NewByteArray(data), nil))
}

func le16(vs ...uint16) []byte {
	buf := make([]byte, len(vs)*2)
	for i, v := range vs {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}

func TestReadTile4bppRoundTrip(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i*37 + 11)
	}

	tile, n, err := readerFor(raw).ReadTile(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 32, n)

	var encoded []byte
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x += 2 {
			encoded = append(encoded, tile.At(x, y)|tile.At(x+1, y)<<4)
		}
	}
	assert.Equal(t, raw, encoded)
}

func TestReadTile4bppNibbleOrder(t *testing.T) {
	raw := make([]byte, 32)
	raw[0] = 0x21
	raw[31] = 0xF0

	tile, _, err := readerFor(raw).ReadTile(0, 4)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), tile.At(0, 0))
	assert.Equal(t, uint8(2), tile.At(1, 0))
	assert.Equal(t, uint8(0), tile.At(6, 7))
	assert.Equal(t, uint8(0xF), tile.At(7, 7))
}

func TestReadTile8bpp(t *testing.T) {
	raw := make([]byte, 64)
	for i := range raw {
		raw[i] = byte(i * 3)
	}

	tile, n, err := readerFor(raw).ReadTile(0, 8)
	require.NoError(t, err)
	assert.Equal(t, 64, n)
	assert.Equal(t, uint8(3*(2*8+5)), tile.At(5, 2))
}

func TestReadTileBadDepth(t *testing.T) {
	_, _, err := readerFor(make([]byte, 64)).ReadTile(0, 2)
	assert.True(t, errors.Is(err, rom.ErrArgument))
}

func TestReadTileset(t *testing.T) {
	raw := make([]byte, 32*3)
	raw[32] = 0x05
	raw[64] = 0x06

	ts, err := readerFor(raw).ReadTileset(0, 3, 4)
	require.NoError(t, err)
	require.Equal(t, 3, ts.Len())

	tile, err := ts.Tile(2)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), tile.At(0, 0))

	all, err := readerFor(raw).ReadTilesetAll(4)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Len())

	_, err = readerFor(raw[:40]).ReadTilesetAll(4)
	assert.True(t, errors.Is(err, rom.ErrFormat))

	_, err = readerFor(raw).ReadTileset(0, 4, 4)
	assert.True(t, errors.Is(err, rom.ErrOutOfRange))
}

func TestReadColor(t *testing.T) {
	r := readerFor(le16(0x0000, 0x7FFF, 0xFFFF, 0x001F, 0x03E0, 0x7C00))

	for i, want := range []gfx.Color{
		gfx.NewColor(0, 0, 0),
		gfx.NewColor(248, 248, 248),
		gfx.NewColor(248, 248, 248),
		gfx.NewColor(248, 0, 0),
		gfx.NewColor(0, 248, 0),
		gfx.NewColor(0, 0, 248),
	} {
		c, err := r.ReadColor(i * 2)
		require.NoError(t, err)
		assert.Equal(t, want, c, "color %d", i)
	}
}

func TestReadPalette(t *testing.T) {
	words := make([]uint16, 32)
	words[17] = 0x0001

	pal, err := readerFor(le16(words...)).ReadPalette(0, 2, 16)
	require.NoError(t, err)

	c, err := pal.AtSub(1, 1)
	require.NoError(t, err)
	assert.Equal(t, gfx.NewColor(8, 0, 0), c)
}

func TestReadTilemap(t *testing.T) {
	// tile 0x3FF, flip X, palette 0xF; then tile 1, flip Y, palette 2.
	r := readerFor(le16(0xF7FF, 0x2801, 0, 0))

	p, err := r.ReadTileProperties(0)
	require.NoError(t, err)
	assert.Equal(t, gfx.TileProperties{TileIndex: 0x3FF, PaletteIndex: 0xF, FlipX: true}, p)

	m, err := r.ReadTilemap(0, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, gfx.TileProperties{TileIndex: 1, PaletteIndex: 2, FlipY: true}, m.At(1, 0))
	assert.Equal(t, gfx.TileProperties{}, m.At(0, 1))

	_, err = r.ReadTilemapAll(3, 3)
	assert.True(t, errors.Is(err, rom.ErrFormat))
}

func oam(x, y int, shape Shape, size int, tile, pal int, flipX, flipY bool, prio int) []byte {
	w0 := uint16(y)&0xFF | uint16(shape)<<14
	w1 := uint16(x)&0x1FF | uint16(size)<<14
	if flipX {
		w1 |= 0x1000
	}
	if flipY {
		w1 |= 0x2000
	}
	w2 := uint16(tile) | uint16(prio)<<10 | uint16(pal)<<12
	return le16(w0, w1, w2, 0)
}

func TestReadSprite(t *testing.T) {
	for _, tc := range []struct {
		name  string
		x, y  int
		shape Shape
		size  int
		w, h  int
	}{
		{"min", -256, -128, ShapeSquare, 3, 8, 8},
		{"max", 255, 127, ShapeHorizontal, 0, 2, 1},
		{"minus one", -1, -1, ShapeVertical, 3, 4, 8},
		{"zero", 0, 0, ShapeHorizontal, 3, 8, 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			raw := oam(tc.x, tc.y, tc.shape, tc.size, 1023, 15, true, false, 3)

			s, err := readerFor(raw).ReadSprite(0)
			require.NoError(t, err)
			assert.Equal(t, gfx.Sprite{
				X:             tc.x,
				Y:             tc.y,
				WidthInTiles:  tc.w,
				HeightInTiles: tc.h,
				TileIndex:     1023,
				PaletteIndex:  15,
				FlipX:         true,
				Priority:      3,
			}, s)
		})
	}
}

func TestReadSpriteFields(t *testing.T) {
	s, err := readerFor(oam(12, -5, ShapeVertical, 1, 42, 7, false, true, 2)).ReadSprite(0)
	require.NoError(t, err)
	assert.Equal(t, 12, s.X)
	assert.Equal(t, -5, s.Y)
	assert.Equal(t, 1, s.WidthInTiles)
	assert.Equal(t, 4, s.HeightInTiles)
	assert.Equal(t, 42, s.TileIndex)
	assert.Equal(t, 7, s.PaletteIndex)
	assert.False(t, s.FlipX)
	assert.True(t, s.FlipY)
	assert.Equal(t, 2, s.Priority)
}

func TestReadSpriteProhibitedShape(t *testing.T) {
	_, err := readerFor(oam(0, 0, Shape(3), 0, 0, 0, false, false, 0)).ReadSprite(0)
	assert.True(t, errors.Is(err, rom.ErrArgument))
}

func TestSpriteSizeTable(t *testing.T) {
	count := 0
	for shape := Shape(0); shape < 4; shape++ {
		for size := 0; size < 4; size++ {
			if _, _, err := SpriteSize(shape, size); err == nil {
				count++
			}
		}
	}
	assert.Equal(t, 12, count)

	w, h, err := SpriteSize(ShapeHorizontal, 3)
	require.NoError(t, err)
	assert.Equal(t, [2]int{8, 4}, [2]int{w, h})
}

func TestRebase(t *testing.T) {
	plain := le16(0x1001, 0x2002, 0x3003, 0x4004)
	packed, err := lz77.Compress(rom.NewByteArray(plain), 0, len(plain))
	require.NoError(t, err)

	data := append([]byte{0xEE, 0xEE, 0xEE, 0xEE}, packed.Bytes()...)
	sub, err := readerFor(data).Rebase(4)
	require.NoError(t, err)
	assert.Equal(t, len(plain), sub.Source.Len())

	m, err := sub.ReadTilemapAll(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, m.At(1, 1).TileIndex)
	assert.Equal(t, 4, m.At(1, 1).PaletteIndex)

	_, err = readerFor(data).Rebase(0)
	assert.True(t, errors.Is(err, rom.ErrFormat))
}
