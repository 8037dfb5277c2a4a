package gfx

import (
	"image"

	"github.com/nbarena/m3rom/rom"
)

// Sprite is a rectangle of WidthInTiles x HeightInTiles consecutive tiles
// placed at (X, Y).
type Sprite struct {
	X             int
	Y             int
	WidthInTiles  int
	HeightInTiles int
	TileIndex     int
	PaletteIndex  int
	FlipX         bool
	FlipY         bool
	Priority      int
}

// TileIndexAt returns the tile drawn at tile coordinates (x, y) of the
// sprite. With FlipX set, WidthInTiles 4 and TileIndex 8, column 1 maps to
// tile 10 and column 3 to tile 8.
func (s Sprite) TileIndexAt(x, y int) (int, error) {
	if x < 0 || x >= s.WidthInTiles {
		return 0, &rom.ArgumentError{Name: "tile x", Value: x}
	}
	if y < 0 || y >= s.HeightInTiles {
		return 0, &rom.ArgumentError{Name: "tile y", Value: y}
	}

	if s.FlipX {
		x = s.WidthInTiles - x - 1
	}
	if s.FlipY {
		y = s.HeightInTiles - y - 1
	}

	return s.TileIndex + x + y*s.WidthInTiles, nil
}

func (s Sprite) Bounds() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.WidthInTiles*TileSize, s.Y+s.HeightInTiles*TileSize)
}

// SpriteGroup is an ordered set of sprites. Later sprites draw over earlier
// ones.
type SpriteGroup struct {
	sprites []Sprite
}

func NewSpriteGroup(sprites []Sprite) SpriteGroup {
	s := make([]Sprite, len(sprites))
	copy(s, sprites)
	return SpriteGroup{s}
}

func (g SpriteGroup) Len() int { return len(g.sprites) }

func (g SpriteGroup) At(i int) Sprite { return g.sprites[i] }

// Sprites returns a copy of the group's sprites.
func (g SpriteGroup) Sprites() []Sprite {
	s := make([]Sprite, len(g.sprites))
	copy(s, g.sprites)
	return s
}

// Bounds returns the smallest rectangle enclosing every sprite, or the zero
// rectangle for an empty group.
func (g SpriteGroup) Bounds() image.Rectangle {
	if len(g.sprites) == 0 {
		return image.Rectangle{}
	}
	b := g.sprites[0].Bounds()
	for _, s := range g.sprites[1:] {
		b = b.Union(s.Bounds())
	}
	return b
}
