package canvas

import (
	"image"
	"image/draw"
)

// Frame is one trimmed image placed on a sheet.
type Frame struct {
	// BBox is where the frame sits on the sheet.
	BBox image.Rectangle
	// Origin is the centre of the untrimmed image relative to BBox.Min.
	Origin image.Point
}

type placed struct {
	img image.Image
	src image.Point
	dst image.Rectangle
}

// Sheet packs trimmed frames left to right, wrapping to a new row when a
// frame would cross Width.
type Sheet struct {
	Width int

	left, top, rowBottom int
	frames               []placed
}

func NewSheet(width int) *Sheet {
	return &Sheet{Width: width}
}

// Add trims img and places it on the sheet. Fully transparent images take no
// space but still get a Frame.
func (s *Sheet) Add(img image.Image) Frame {
	b := img.Bounds()
	trim := FindTrim(img)

	var fi Frame
	fi.Origin.X = b.Min.X + b.Dx()/2 - trim.Min.X
	fi.Origin.Y = b.Min.Y + b.Dy()/2 - trim.Min.Y

	if s.left > 0 && s.left+trim.Dx() > s.Width {
		s.left = 0
		s.top = s.rowBottom + 1
	}

	fi.BBox = image.Rect(s.left, s.top, s.left+trim.Dx(), s.top+trim.Dy())
	if trim.Empty() {
		return fi
	}

	s.frames = append(s.frames, placed{img, trim.Min, fi.BBox})
	s.left += trim.Dx() + 1
	if fi.BBox.Max.Y > s.rowBottom {
		s.rowBottom = fi.BBox.Max.Y
	}
	return fi
}

// Image composes every added frame. It returns nil if nothing visible was
// added.
func (s *Sheet) Image() *image.RGBA {
	if len(s.frames) == 0 {
		return nil
	}

	var bounds image.Rectangle
	for _, f := range s.frames {
		bounds = bounds.Union(f.dst)
	}

	img := image.NewRGBA(image.Rect(0, 0, bounds.Max.X, bounds.Max.Y))
	for _, f := range s.frames {
		draw.Draw(img, f.dst, f.img, f.src, draw.Over)
	}
	return img
}
