package m3

import (
	"fmt"

	"github.com/nbarena/m3rom/rom"
)

// TimelineSlot is what one global frame of a sequence shows. A slot with a
// nil Animation shows nothing.
type TimelineSlot struct {
	Animation      *FrameAnimation
	AnimationIndex int
	Step           int
}

func (s TimelineSlot) Empty() bool { return s.Animation == nil }

// ResolveTimeline flattens the frame animation entries of a sequence into one
// slot per global frame.
//
// Every step of an entry's animation starts at the entry's global frame plus
// the Duration+1 lengths of the steps before it. A step that starts on a frame
// replaces whatever was showing and is held for Duration+1 more frames unless
// another step starts. When several steps start on the same frame, the one
// from the entry that comes last in entries wins. The timeline ends where the
// last entry's steps end, so the hold of a final step is cut short. Frames
// nothing covers are empty. Entries of other types are ignored.
func ResolveTimeline(entries []SequenceEntry, animations []FrameAnimation) ([]TimelineSlot, error) {
	var starts []map[int]TimelineSlot
	length := 0

	for i, e := range entries {
		fe, ok := e.(*FrameAnimationEntry)
		if !ok {
			continue
		}

		if err := rom.CheckIndex(fe.AnimationIndex, len(animations)); err != nil {
			return nil, fmt.Errorf("%w while resolving animation of entry %d", err, i)
		}
		anim := &animations[fe.AnimationIndex]

		begin := make(map[int]TimelineSlot, len(anim.Steps))
		frame := fe.GlobalFrameIndex
		for j, step := range anim.Steps {
			begin[frame] = TimelineSlot{anim, fe.AnimationIndex, j}
			frame += step.Frames()
		}
		starts = append(starts, begin)

		if frame > length {
			length = frame
		}
	}

	if len(starts) == 0 {
		return nil, nil
	}

	timeline := make([]TimelineSlot, length)

	var current TimelineSlot
	framesLeft := 0

	for f := range timeline {
		started := false
		for i := len(starts) - 1; i >= 0; i-- {
			if slot, ok := starts[i][f]; ok {
				current = slot
				started = true
				break
			}
		}

		if started {
			timeline[f] = current
			framesLeft = current.Animation.Steps[current.Step].Frames()
		} else if framesLeft > 0 {
			timeline[f] = current
			framesLeft--
		}
	}

	return timeline, nil
}
