package gfx

import (
	"github.com/nbarena/m3rom/rom"
)

const TileSize = 8

// Tile is an 8x8 grid of palette indices, stored row-major.
type Tile struct {
	Pix [TileSize * TileSize]uint8
}

func (t *Tile) At(x, y int) uint8 {
	return t.Pix[y*TileSize+x]
}

func (t *Tile) Set(x, y int, v uint8) {
	t.Pix[y*TileSize+x] = v
}

// Tileset is an index-addressed sequence of tiles.
type Tileset struct {
	tiles []Tile
}

func NewTileset(tiles []Tile) *Tileset {
	return &Tileset{tiles}
}

func (ts *Tileset) Len() int { return len(ts.tiles) }

func (ts *Tileset) Tile(i int) (*Tile, error) {
	if err := rom.CheckIndex(i, len(ts.tiles)); err != nil {
		return nil, err
	}
	return &ts.tiles[i], nil
}
