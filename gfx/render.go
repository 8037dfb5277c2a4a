package gfx

import (
	"fmt"
	"image"
	"image/draw"
)

// Transparency says what to do with pixels of palette index 0.
type Transparency int

const (
	// DrawNothing skips them, so the target shows through.
	DrawNothing Transparency = iota
	// DrawTransparent writes Transparent, erasing the target.
	DrawTransparent
	// DrawSolid writes whatever colour index 0 holds.
	DrawSolid
)

func (t Transparency) String() string {
	switch t {
	case DrawNothing:
		return "DrawNothing"
	case DrawTransparent:
		return "DrawTransparent"
	case DrawSolid:
		return "DrawSolid"
	}
	return fmt.Sprintf("Transparency(%d)", int(t))
}

// Renderer composites tiles onto Target. Pixels outside Target's bounds are
// dropped.
type Renderer struct {
	Target       draw.Image
	Transparency Transparency
}

func NewRenderer(target draw.Image, transparency Transparency) *Renderer {
	return &Renderer{target, transparency}
}

// RenderTilemap draws every cell of m with its top-left corner at at.
func (r *Renderer) RenderTilemap(m *Tilemap, ts *Tileset, pal *Palette, at image.Point) error {
	for y := 0; y < m.HeightInTiles(); y++ {
		for x := 0; x < m.WidthInTiles(); x++ {
			props := m.At(x, y)
			tile, err := ts.Tile(props.TileIndex)
			if err != nil {
				return fmt.Errorf("%w while looking up tile of cell (%d, %d)", err, x, y)
			}
			if err := r.renderTile(tile, pal, props, at.Add(image.Pt(x*TileSize, y*TileSize))); err != nil {
				return fmt.Errorf("%w while drawing cell (%d, %d)", err, x, y)
			}
		}
	}
	return nil
}

// RenderSprite draws s relative to at.
func (r *Renderer) RenderSprite(s Sprite, ts *Tileset, pal *Palette, at image.Point) error {
	for y := 0; y < s.HeightInTiles; y++ {
		for x := 0; x < s.WidthInTiles; x++ {
			tileIndex, err := s.TileIndexAt(x, y)
			if err != nil {
				return err
			}

			tile, err := ts.Tile(tileIndex)
			if err != nil {
				return fmt.Errorf("%w while looking up sprite tile (%d, %d)", err, x, y)
			}

			props := TileProperties{tileIndex, s.PaletteIndex, s.FlipX, s.FlipY}
			if err := r.renderTile(tile, pal, props, at.Add(image.Pt(s.X+x*TileSize, s.Y+y*TileSize))); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderSpriteGroup draws the sprites of g in order.
func (r *Renderer) RenderSpriteGroup(g SpriteGroup, ts *Tileset, pal *Palette, at image.Point) error {
	for i, s := range g.sprites {
		if err := r.RenderSprite(s, ts, pal, at); err != nil {
			return fmt.Errorf("%w while drawing sprite %d", err, i)
		}
	}
	return nil
}

func (r *Renderer) renderTile(tile *Tile, pal *Palette, props TileProperties, at image.Point) error {
	bounds := r.Target.Bounds()

	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			p := at.Add(image.Pt(x, y))
			if !p.In(bounds) {
				continue
			}

			tx, ty := x, y
			if props.FlipX {
				tx = TileSize - x - 1
			}
			if props.FlipY {
				ty = TileSize - y - 1
			}

			pix := tile.At(tx, ty)
			if pix != 0 || r.Transparency == DrawSolid {
				c, err := pal.AtSub(props.PaletteIndex, int(pix))
				if err != nil {
					return err
				}
				r.Target.Set(p.X, p.Y, c)
			} else if r.Transparency == DrawTransparent {
				r.Target.Set(p.X, p.Y, Transparent)
			}
		}
	}
	return nil
}
