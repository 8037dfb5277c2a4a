package gfx

import (
	"github.com/nbarena/m3rom/rom"
)

// TileProperties is one tilemap cell.
type TileProperties struct {
	TileIndex    int
	PaletteIndex int
	FlipX        bool
	FlipY        bool
}

// Tilemap is a fixed-size grid of cells, stored row-major.
type Tilemap struct {
	width, height int
	cells         []TileProperties
}

// NewTilemap returns a grid of zero cells. Non-positive dimensions are a
// *rom.ArgumentError.
func NewTilemap(widthInTiles, heightInTiles int) (*Tilemap, error) {
	if widthInTiles < 1 {
		return nil, &rom.ArgumentError{Name: "tilemap width", Value: widthInTiles}
	}
	if heightInTiles < 1 {
		return nil, &rom.ArgumentError{Name: "tilemap height", Value: heightInTiles}
	}
	return &Tilemap{widthInTiles, heightInTiles, make([]TileProperties, widthInTiles*heightInTiles)}, nil
}

func (m *Tilemap) WidthInTiles() int  { return m.width }
func (m *Tilemap) HeightInTiles() int { return m.height }

func (m *Tilemap) At(x, y int) TileProperties {
	return m.cells[y*m.width+x]
}

func (m *Tilemap) Set(x, y int, p TileProperties) {
	m.cells[y*m.width+x] = p
}
