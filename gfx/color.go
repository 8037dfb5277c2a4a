package gfx

// Color is an 8-bit-per-channel colour with its packed ARGB word.
type Color struct {
	R, G, B, A uint8
	ARGB       uint32
}

var Transparent = NewColorA(0, 0, 0, 0)

// NewColor returns an opaque colour.
func NewColor(r, g, b uint8) Color {
	return NewColorA(r, g, b, 0xFF)
}

func NewColorA(r, g, b, a uint8) Color {
	return Color{r, g, b, a, uint32(b) | uint32(g)<<8 | uint32(r)<<16 | uint32(a)<<24}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A) * 0x101
	r = uint32(c.R) * 0x101 * a / 0xFFFF
	g = uint32(c.G) * 0x101 * a / 0xFFFF
	b = uint32(c.B) * 0x101 * a / 0xFFFF
	return
}
