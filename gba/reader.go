// Package gba decodes the fixed-layout graphics structures of the Game Boy
// Advance: 4bpp/8bpp tiles, BGR555 palettes, text-mode tilemaps and OAM
// entries.
package gba

import (
	"fmt"
	"image/color"

	"github.com/nbarena/gbarom/bgr555"
	"github.com/nbarena/m3rom/gfx"
	"github.com/nbarena/m3rom/lz77"
	"github.com/nbarena/m3rom/rom"
)

// Reader reads GBA structures at explicit offsets.
type Reader struct {
	*rom.Reader
}

func NewReader(r *rom.Reader) *Reader {
	return &Reader{r}
}

// TileBytes returns how many bytes one tile of the given depth occupies.
func TileBytes(bitDepth int) (int, error) {
	switch bitDepth {
	case 4:
		return 32, nil
	case 8:
		return 64, nil
	}
	return 0, &rom.ArgumentError{Name: "bit depth", Value: bitDepth}
}

// ReadTile reads one 8x8 tile and returns it with the number of bytes it
// occupied.
func (r *Reader) ReadTile(offset int, bitDepth int) (gfx.Tile, int, error) {
	var tile gfx.Tile

	n, err := TileBytes(bitDepth)
	if err != nil {
		return tile, 0, err
	}

	raw, err := r.Bytes(offset, n)
	if err != nil {
		return tile, 0, err
	}

	if bitDepth == 8 {
		copy(tile.Pix[:], raw)
		return tile, n, nil
	}

	for i, p := range raw {
		tile.Pix[i*2] = p & 0xF
		tile.Pix[i*2+1] = p >> 4
	}
	return tile, n, nil
}

func (r *Reader) ReadTileset(offset int, count int, bitDepth int) (*gfx.Tileset, error) {
	if count < 0 {
		return nil, &rom.ArgumentError{Name: "tile count", Value: count}
	}

	tiles := make([]gfx.Tile, count)
	for i := range tiles {
		tile, n, err := r.ReadTile(offset, bitDepth)
		if err != nil {
			return nil, fmt.Errorf("%w while reading tile %d", err, i)
		}
		tiles[i] = tile
		offset += n
	}
	return gfx.NewTileset(tiles), nil
}

// ReadTilesetAll reads the whole source as tiles.
func (r *Reader) ReadTilesetAll(bitDepth int) (*gfx.Tileset, error) {
	n, err := TileBytes(bitDepth)
	if err != nil {
		return nil, err
	}

	length := r.Source.Len()
	if length%n != 0 {
		return nil, &rom.FormatError{What: "tileset length", Want: uint32(length / n * n), Got: uint32(length)}
	}
	return r.ReadTileset(0, length/n, bitDepth)
}

// ReadColor reads a BGR555 colour. Channels are kept at multiples of 8, so
// the brightest value is 248.
func (r *Reader) ReadColor(offset int) (gfx.Color, error) {
	v, err := r.Uint16(offset)
	if err != nil {
		return gfx.Color{}, err
	}
	c := color.RGBAModel.Convert(bgr555.ToRGBA(v)).(color.RGBA)
	return gfx.NewColor(c.R&0xF8, c.G&0xF8, c.B&0xF8), nil
}

func (r *Reader) ReadPalette(offset int, subCount int, colorsPerSub int) (*gfx.Palette, error) {
	pal, err := gfx.NewPalette(subCount, colorsPerSub)
	if err != nil {
		return nil, err
	}

	for sub := 0; sub < subCount; sub++ {
		for i := 0; i < colorsPerSub; i++ {
			c, err := r.ReadColor(offset)
			if err != nil {
				return nil, fmt.Errorf("%w while reading color %d of sub-palette %d", err, i, sub)
			}
			if err := pal.SetSub(sub, i, c); err != nil {
				return nil, err
			}
			offset += 2
		}
	}
	return pal, nil
}

func (r *Reader) ReadTileProperties(offset int) (gfx.TileProperties, error) {
	v, err := r.Uint16(offset)
	if err != nil {
		return gfx.TileProperties{}, err
	}
	return gfx.TileProperties{
		TileIndex:    int(v & 0x3FF),
		PaletteIndex: int(v>>12) & 0xF,
		FlipX:        v&0x400 != 0,
		FlipY:        v&0x800 != 0,
	}, nil
}

func (r *Reader) ReadTilemap(offset int, widthInTiles, heightInTiles int) (*gfx.Tilemap, error) {
	m, err := gfx.NewTilemap(widthInTiles, heightInTiles)
	if err != nil {
		return nil, err
	}

	for y := 0; y < heightInTiles; y++ {
		for x := 0; x < widthInTiles; x++ {
			props, err := r.ReadTileProperties(offset)
			if err != nil {
				return nil, fmt.Errorf("%w while reading tilemap cell (%d, %d)", err, x, y)
			}
			m.Set(x, y, props)
			offset += 2
		}
	}
	return m, nil
}

// ReadTilemapAll reads the whole source as a tilemap. The source must hold
// exactly widthInTiles*heightInTiles cells.
func (r *Reader) ReadTilemapAll(widthInTiles, heightInTiles int) (*gfx.Tilemap, error) {
	want := widthInTiles * heightInTiles * 2
	if got := r.Source.Len(); got != want {
		return nil, &rom.FormatError{What: "tilemap length", Want: uint32(want), Got: uint32(got)}
	}
	return r.ReadTilemap(0, widthInTiles, heightInTiles)
}

// ReadSprite reads the three attribute words of an OAM entry.
func (r *Reader) ReadSprite(offset int) (gfx.Sprite, error) {
	var attrs [3]uint16
	for i := range attrs {
		v, err := r.Uint16(offset + i*2)
		if err != nil {
			return gfx.Sprite{}, err
		}
		attrs[i] = v
	}

	y := int(int8(attrs[0] & 0xFF))
	shape := Shape((attrs[0] >> 14) & 0x3)

	x := int(int16(attrs[1]<<7) >> 7)
	flipX := attrs[1]&0x1000 != 0
	flipY := attrs[1]&0x2000 != 0
	sizeIndex := int(attrs[1]>>14) & 0x3

	tileIndex := int(attrs[2] & 0x3FF)
	priority := int(attrs[2]>>10) & 0x3
	paletteIndex := int(attrs[2]>>12) & 0xF

	s, err := NewSprite(x, y, shape, sizeIndex, tileIndex, paletteIndex, flipX, flipY, priority)
	if err != nil {
		return gfx.Sprite{}, fmt.Errorf("%w while decoding sprite at 0x%X", err, offset)
	}
	return s, nil
}

// Rebase decompresses the LZ77 block at offset and returns a Reader over the
// result.
func (r *Reader) Rebase(offset int) (*Reader, error) {
	data, err := lz77.Decompress(r.Source, offset)
	if err != nil {
		return nil, err
	}
	return NewReader(rom.NewReader(data, r.Order)), nil
}
