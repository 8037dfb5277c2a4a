package m3

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/nbarena/m3rom/gfx"
	"github.com/nbarena/m3rom/rom"
	"github.com/nbarena/m3rom/table"
)

// RenderStep draws one frame of an animation. Index is the frame's position
// in its sequence. Animation and Step say which animation step it shows.
type RenderStep struct {
	Index     int
	Animation int
	Step      int
	Render    func(dst draw.Image) error
}

// EfcRenderer turns the animations of an EFC into render steps. Tilesets,
// palettes, tilemaps and SOBs are looked up through the SAR that accompanies
// the EFC.
type EfcRenderer struct {
	Reader *Reader
	Efc    *Efc
	Sar    *table.SizedOffsetTable
}

func NewEfcRenderer(r *Reader, efc *Efc, sar *table.SizedOffsetTable) *EfcRenderer {
	return &EfcRenderer{r, efc, sar}
}

func tilemapStep(index, anim, step int, m *gfx.Tilemap, ts *gfx.Tileset, pal *gfx.Palette) RenderStep {
	return RenderStep{index, anim, step, func(dst draw.Image) error {
		return gfx.NewRenderer(dst, gfx.DrawSolid).RenderTilemap(m, ts, pal, dst.Bounds().Min)
	}}
}

// FrameAnimation returns one step per tilemap of FrameAnimations[i].
func (er *EfcRenderer) FrameAnimation(i int) ([]RenderStep, error) {
	if err := rom.CheckIndex(i, len(er.Efc.FrameAnimations)); err != nil {
		return nil, err
	}
	anim := &er.Efc.FrameAnimations[i]

	ts, pal, err := er.animationGraphics(anim)
	if err != nil {
		return nil, err
	}

	steps := make([]RenderStep, len(anim.Steps))
	for j, s := range anim.Steps {
		bg, err := er.bg(int(s.TilemapIndex))
		if err != nil {
			return nil, fmt.Errorf("%w while reading tilemap of step %d", err, j)
		}
		steps[j] = tilemapStep(j, i, j, bg.Tilemap, ts, pal)
	}
	return steps, nil
}

// FrameAnimationSequence returns one step per non-empty frame of the resolved
// timeline of FrameAnimationSequences[i].
func (er *EfcRenderer) FrameAnimationSequence(i int) ([]RenderStep, error) {
	timeline, err := er.Efc.Timeline(i)
	if err != nil {
		return nil, err
	}

	type graphics struct {
		ts  *gfx.Tileset
		pal *gfx.Palette
	}
	loaded := map[int]graphics{}

	var steps []RenderStep
	for f, slot := range timeline {
		if slot.Empty() {
			continue
		}

		g, ok := loaded[slot.AnimationIndex]
		if !ok {
			ts, pal, err := er.animationGraphics(slot.Animation)
			if err != nil {
				return nil, fmt.Errorf("%w while loading graphics of animation %d", err, slot.AnimationIndex)
			}
			g = graphics{ts, pal}
			loaded[slot.AnimationIndex] = g
		}

		bg, err := er.bg(int(slot.Animation.Steps[slot.Step].TilemapIndex))
		if err != nil {
			return nil, fmt.Errorf("%w while reading tilemap of frame %d", err, f)
		}
		steps = append(steps, tilemapStep(f, slot.AnimationIndex, slot.Step, bg.Tilemap, g.ts, g.pal))
	}
	return steps, nil
}

// SpriteSequence returns the steps of every animation of the SOB named by
// SpriteSequenceHeaders[i].
func (er *EfcRenderer) SpriteSequence(i int) ([][]RenderStep, error) {
	if err := rom.CheckIndex(i, len(er.Efc.SpriteSequenceHeaders)); err != nil {
		return nil, err
	}
	h := er.Efc.SpriteSequenceHeaders[i]

	offset, err := er.Sar.Offset(int(h.SobIndex))
	if err != nil {
		return nil, err
	}
	sob, err := er.Reader.ReadSob(offset)
	if err != nil {
		return nil, err
	}

	ts, err := er.tileset(int(h.TilesetIndex))
	if err != nil {
		return nil, err
	}
	pal, err := er.palette(int(h.PaletteIndex))
	if err != nil {
		return nil, err
	}
	if pal, err = pal.Padded(gfx.MaxSubPalettes); err != nil {
		return nil, err
	}

	anims := make([][]RenderStep, len(sob.Animations))
	for j := range sob.Animations {
		if anims[j], err = SobAnimationSteps(sob, ts, pal, j); err != nil {
			return nil, fmt.Errorf("%w while preparing sob animation %d", err, j)
		}
	}
	return anims, nil
}

func (er *EfcRenderer) animationGraphics(anim *FrameAnimation) (*gfx.Tileset, *gfx.Palette, error) {
	ts, err := er.tileset(int(anim.TilesetIndex))
	if err != nil {
		return nil, nil, err
	}
	pal, err := er.palette(int(anim.PaletteIndex))
	if err != nil {
		return nil, nil, err
	}
	return ts, pal, nil
}

// tileset reads SAR entry i as 4bpp tiles.
func (er *EfcRenderer) tileset(i int) (*gfx.Tileset, error) {
	offset, size, err := er.Sar.Entry(i)
	if err != nil {
		return nil, err
	}
	ts, err := er.Reader.GBA.ReadTileset(offset, size/32, 4)
	if err != nil {
		return nil, fmt.Errorf("%w while reading tileset %d", err, i)
	}
	return ts, nil
}

// palette reads SAR entry i as 16-colour sub-palettes.
func (er *EfcRenderer) palette(i int) (*gfx.Palette, error) {
	offset, size, err := er.Sar.Entry(i)
	if err != nil {
		return nil, err
	}
	pal, err := er.Reader.GBA.ReadPalette(offset, size/32, 16)
	if err != nil {
		return nil, fmt.Errorf("%w while reading palette %d", err, i)
	}
	return pal, nil
}

func (er *EfcRenderer) bg(i int) (*Bg, error) {
	offset, err := er.Sar.Offset(i)
	if err != nil {
		return nil, err
	}
	return er.Reader.ReadBg(offset)
}

// SobAnimationSteps returns one step per step of sob.Animations[i]. Sprites
// are drawn relative to the centre of the target and index 0 is left
// untouched.
func SobAnimationSteps(sob *Sob, ts *gfx.Tileset, pal *gfx.Palette, i int) ([]RenderStep, error) {
	if err := rom.CheckIndex(i, len(sob.Animations)); err != nil {
		return nil, err
	}

	anim := sob.Animations[i]
	steps := make([]RenderStep, len(anim.Steps))
	for j, s := range anim.Steps {
		g := int(s.SpriteGroupIndex)
		if err := rom.CheckIndex(g, len(sob.SpriteEntries)); err != nil {
			return nil, fmt.Errorf("%w while looking up sprite group of step %d", err, j)
		}
		group := sob.SpriteEntries[g].Sprites

		steps[j] = RenderStep{j, i, j, func(dst draw.Image) error {
			b := dst.Bounds()
			center := image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
			return gfx.NewRenderer(dst, gfx.DrawNothing).RenderSpriteGroup(group, ts, pal, center)
		}}
	}
	return steps, nil
}
