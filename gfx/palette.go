package gfx

import (
	"github.com/nbarena/m3rom/rom"
)

const (
	MaxSubPalettes      = 16
	MaxColorsPerPalette = 256
)

// Palette is a flat list of colours that can also be addressed as
// SubPalettes() banks of ColorsPerSub() colours each.
type Palette struct {
	subCount     int
	colorsPerSub int
	colors       []Color
}

// NewPalette returns a transparent palette of subCount banks of colorsPerSub
// colours. Either count out of range is a *rom.ArgumentError.
func NewPalette(subCount, colorsPerSub int) (*Palette, error) {
	if subCount < 1 || subCount > MaxSubPalettes {
		return nil, &rom.ArgumentError{Name: "sub-palette count", Value: subCount}
	}
	if colorsPerSub < 1 || colorsPerSub > MaxColorsPerPalette {
		return nil, &rom.ArgumentError{Name: "colors per sub-palette", Value: colorsPerSub}
	}
	return &Palette{subCount, colorsPerSub, make([]Color, subCount*colorsPerSub)}, nil
}

func (p *Palette) SubPalettes() int  { return p.subCount }
func (p *Palette) ColorsPerSub() int { return p.colorsPerSub }
func (p *Palette) Len() int          { return len(p.colors) }

func (p *Palette) At(i int) (Color, error) {
	if err := rom.CheckIndex(i, len(p.colors)); err != nil {
		return Color{}, err
	}
	return p.colors[i], nil
}

func (p *Palette) Set(i int, c Color) error {
	if err := rom.CheckIndex(i, len(p.colors)); err != nil {
		return err
	}
	p.colors[i] = c
	return nil
}

func (p *Palette) AtSub(sub, i int) (Color, error) {
	idx, err := p.index(sub, i)
	if err != nil {
		return Color{}, err
	}
	return p.colors[idx], nil
}

func (p *Palette) SetSub(sub, i int, c Color) error {
	idx, err := p.index(sub, i)
	if err != nil {
		return err
	}
	p.colors[idx] = c
	return nil
}

func (p *Palette) index(sub, i int) (int, error) {
	if err := rom.CheckIndex(sub, p.subCount); err != nil {
		return 0, err
	}
	if err := rom.CheckIndex(i, p.colorsPerSub); err != nil {
		return 0, err
	}
	return sub*p.colorsPerSub + i, nil
}

// Padded returns a copy of p grown to subCount sub-palettes. The new banks are
// filled with Transparent. Sprites may select any of the 16 banks even when
// the stored palette is shorter.
func (p *Palette) Padded(subCount int) (*Palette, error) {
	if subCount < p.subCount {
		return nil, &rom.ArgumentError{Name: "sub-palette count", Value: subCount}
	}
	np, err := NewPalette(subCount, p.colorsPerSub)
	if err != nil {
		return nil, err
	}
	copy(np.colors, p.colors)
	for i := len(p.colors); i < len(np.colors); i++ {
		np.colors[i] = Transparent
	}
	return np, nil
}
