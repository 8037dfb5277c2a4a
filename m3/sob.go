package m3

import (
	"fmt"
	"image"

	"github.com/nbarena/m3rom/gfx"
	"github.com/nbarena/m3rom/rom"
)

// Sob is a sprite object binary: a list of sprite groups and the animations
// that step through them.
type Sob struct {
	SpriteEntries []SpriteEntry
	Animations    []SobAnimation
}

// SpriteEntry is one sprite group with the opaque preamble that precedes it.
type SpriteEntry struct {
	// Preamble is kept as read; its meaning is unknown.
	Preamble []byte
	Sprites  gfx.SpriteGroup
}

// AnimationStep shows SpriteEntries[SpriteGroupIndex].
type AnimationStep struct {
	FrameIndex       uint16
	SpriteGroupIndex uint16
}

type SobAnimation struct {
	Header uint16
	Steps  []AnimationStep
}

// AnimationBounds returns the union of the bounds of every sprite group shown
// by animation i.
func (s *Sob) AnimationBounds(i int) (image.Rectangle, error) {
	if err := rom.CheckIndex(i, len(s.Animations)); err != nil {
		return image.Rectangle{}, err
	}

	var b image.Rectangle
	for j, step := range s.Animations[i].Steps {
		g := int(step.SpriteGroupIndex)
		if err := rom.CheckIndex(g, len(s.SpriteEntries)); err != nil {
			return image.Rectangle{}, fmt.Errorf("%w while looking up sprite group of step %d", err, j)
		}
		b = b.Union(s.SpriteEntries[g].Sprites.Bounds())
	}
	return b, nil
}
