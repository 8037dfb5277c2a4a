package m3

import (
	"github.com/nbarena/m3rom/gfx"
)

const (
	BgWidthInTiles  = 32
	BgHeightInTiles = 32
)

// Bg is a 32x32 tilemap. UnknownA and UnknownB are kept as read.
type Bg struct {
	Tilemap  *gfx.Tilemap
	UnknownA uint32
	UnknownB uint32
}
