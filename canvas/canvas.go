// Package canvas provides the RGBA render targets the dumper draws into.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// New returns a w by h canvas filled with fill. A nil fill leaves the canvas
// transparent.
func New(w, h int, fill color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if fill != nil {
		draw.Draw(img, img.Rect, image.NewUniform(fill), image.Point{}, draw.Src)
	}
	return img
}

func opaque(img image.Image, x, y int) bool {
	_, _, _, a := img.At(x, y).RGBA()
	return a != 0
}

// FindTrim returns the smallest rectangle holding every non-transparent pixel
// of img, or the empty rectangle if there is none.
func FindTrim(img image.Image) image.Rectangle {
	r := img.Bounds()
	left, top, right, bottom := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y

	for left = r.Min.X; left < r.Max.X; left++ {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			if opaque(img, left, y) {
				goto leftDone
			}
		}
		continue
	leftDone:
		break
	}

	for top = r.Min.Y; top < r.Max.Y; top++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if opaque(img, x, top) {
				goto topDone
			}
		}
		continue
	topDone:
		break
	}

	for right = r.Max.X - 1; right >= r.Min.X; right-- {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			if opaque(img, right, y) {
				goto rightDone
			}
		}
		continue
	rightDone:
		break
	}
	right++

	for bottom = r.Max.Y - 1; bottom >= r.Min.Y; bottom-- {
		for x := r.Min.X; x < r.Max.X; x++ {
			if opaque(img, x, bottom) {
				goto bottomDone
			}
		}
		continue
	bottomDone:
		break
	}
	bottom++

	if right <= left || bottom <= top {
		return image.Rectangle{}
	}
	return image.Rect(left, top, right, bottom)
}

// Scale returns img enlarged by factor with nearest-neighbour sampling, so
// pixels stay sharp.
func Scale(img image.Image, factor int) *image.RGBA {
	r := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx()*factor, r.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, img, r, xdraw.Src, nil)
	return dst
}
