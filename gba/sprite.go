package gba

import (
	"fmt"

	"github.com/nbarena/m3rom/gfx"
	"github.com/nbarena/m3rom/rom"
)

// Shape is the OAM object shape (attribute 0, bits 14-15).
type Shape uint8

const (
	ShapeSquare Shape = iota
	ShapeHorizontal
	ShapeVertical
)

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeHorizontal:
		return "horizontal"
	case ShapeVertical:
		return "vertical"
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

type spriteSize struct {
	w, h int
}

var spriteSizes = map[Shape][4]spriteSize{
	ShapeSquare:     {{1, 1}, {2, 2}, {4, 4}, {8, 8}},
	ShapeHorizontal: {{2, 1}, {4, 1}, {4, 2}, {8, 4}},
	ShapeVertical:   {{1, 2}, {1, 4}, {2, 4}, {4, 8}},
}

// SpriteSize returns the dimensions in tiles of an object of the given shape
// and size index.
func SpriteSize(shape Shape, sizeIndex int) (int, int, error) {
	sizes, ok := spriteSizes[shape]
	if !ok {
		return 0, 0, &rom.ArgumentError{Name: "sprite shape", Value: int(shape)}
	}
	if sizeIndex < 0 || sizeIndex >= len(sizes) {
		return 0, 0, &rom.ArgumentError{Name: "sprite size index", Value: sizeIndex}
	}
	sz := sizes[sizeIndex]
	return sz.w, sz.h, nil
}

// NewSprite builds a sprite from OAM fields, checking each against the range
// the hardware can express.
func NewSprite(x, y int, shape Shape, sizeIndex int, tileIndex, paletteIndex int, flipX, flipY bool, priority int) (gfx.Sprite, error) {
	switch {
	case x < -256 || x > 255:
		return gfx.Sprite{}, &rom.ArgumentError{Name: "sprite x", Value: x}
	case y < -128 || y > 127:
		return gfx.Sprite{}, &rom.ArgumentError{Name: "sprite y", Value: y}
	case tileIndex < 0 || tileIndex > 1023:
		return gfx.Sprite{}, &rom.ArgumentError{Name: "sprite tile index", Value: tileIndex}
	case paletteIndex < 0 || paletteIndex > 15:
		return gfx.Sprite{}, &rom.ArgumentError{Name: "sprite palette index", Value: paletteIndex}
	case priority < 0 || priority > 3:
		return gfx.Sprite{}, &rom.ArgumentError{Name: "sprite priority", Value: priority}
	}

	w, h, err := SpriteSize(shape, sizeIndex)
	if err != nil {
		return gfx.Sprite{}, err
	}

	return gfx.Sprite{
		X:             x,
		Y:             y,
		WidthInTiles:  w,
		HeightInTiles: h,
		TileIndex:     tileIndex,
		PaletteIndex:  paletteIndex,
		FlipX:         flipX,
		FlipY:         flipY,
		Priority:      priority,
	}, nil
}
