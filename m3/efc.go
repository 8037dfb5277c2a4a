package m3

import (
	"github.com/nbarena/m3rom/rom"
)

// Efc is an effects container: tilemap animations, sprite sequences and the
// sequences that schedule tilemap animations on a shared timeline.
type Efc struct {
	FrameAnimations         []FrameAnimation
	SpriteSequenceHeaders   []SpriteSequenceHeader
	FrameAnimationSequences []FrameAnimationSequence
}

// FrameAnimation plays a list of tilemaps with one tileset and palette. All
// indices point into the SAR table that accompanies the EFC.
type FrameAnimation struct {
	TilesetIndex uint16
	PaletteIndex uint16
	Steps        []FrameStep
}

// FrameStep shows a tilemap for Duration+1 frames.
type FrameStep struct {
	TilemapIndex uint16
	Duration     uint16
}

// Frames is how many frames the step stays on screen.
func (s FrameStep) Frames() int { return int(s.Duration) + 1 }

// Frames is the total length of the animation.
func (a *FrameAnimation) Frames() int {
	n := 0
	for _, s := range a.Steps {
		n += s.Frames()
	}
	return n
}

// SpriteSequenceHeader names the SOB of a sprite sequence and the SAR entries
// holding its tileset and palette.
type SpriteSequenceHeader struct {
	SobIndex     uint16
	TilesetIndex uint16
	PaletteIndex uint16
	Unknown      uint16
}

// FrameAnimationSequence schedules frame animations on one timeline. UnknownA
// and UnknownB are kept as read.
type FrameAnimationSequence struct {
	Entries  []SequenceEntry
	UnknownA []byte
	UnknownB int32
	// Offset is where the sequence was read from.
	Offset int
}

// EntryType is the type field of a sequence entry.
type EntryType uint16

const EntryFrameAnimation EntryType = 0

// SequenceEntry is one record of a FrameAnimationSequence: either a
// *FrameAnimationEntry or an *OpaqueEntry.
type SequenceEntry interface {
	Kind() EntryType
	Raw() []byte
}

// FrameAnimationEntry starts FrameAnimations[AnimationIndex] at global frame
// GlobalFrameIndex.
type FrameAnimationEntry struct {
	AnimationIndex   int
	GlobalFrameIndex int
	Content          []byte
}

func (e *FrameAnimationEntry) Kind() EntryType { return EntryFrameAnimation }
func (e *FrameAnimationEntry) Raw() []byte     { return e.Content }

// OpaqueEntry is an entry of a type that is not interpreted.
type OpaqueEntry struct {
	Type    EntryType
	Content []byte
}

func (e *OpaqueEntry) Kind() EntryType { return e.Type }
func (e *OpaqueEntry) Raw() []byte     { return e.Content }

// Timeline resolves FrameAnimationSequences[i].
func (e *Efc) Timeline(i int) ([]TimelineSlot, error) {
	if err := rom.CheckIndex(i, len(e.FrameAnimationSequences)); err != nil {
		return nil, err
	}
	return ResolveTimeline(e.FrameAnimationSequences[i].Entries, e.FrameAnimations)
}
