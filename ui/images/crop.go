package images

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

// Margins extend a rectangle outwards on each side.
type Margins struct {
	Left, Right, Top, Bottom int
}

// CropAround returns the part of frame covering box grown by m, clamped to
// the frame bounds. The returned rectangle is in frame coordinates; the
// image is a fresh copy with origin (0,0).
func CropAround(frame image.Image, box image.Rectangle, m Margins) (*image.RGBA, image.Rectangle, error) {
	if frame == nil {
		return nil, image.Rectangle{}, errors.New("nil frame")
	}
	r := image.Rect(box.Min.X-m.Left, box.Min.Y-m.Top, box.Max.X+m.Right, box.Max.Y+m.Bottom)
	r = r.Intersect(frame.Bounds())
	if r.Empty() {
		return nil, image.Rectangle{}, errors.New("crop region outside frame")
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), frame, r.Min, draw.Src)
	return out, r, nil
}

// Outline copies src and draws a rectangle border of the given thickness
// around r. Parts of the border outside src are dropped.
func Outline(src image.Image, r image.Rectangle, c color.Color, thickness int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	if thickness < 1 {
		thickness = 1
	}
	fill := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X-thickness, r.Min.Y-thickness, r.Max.X+thickness, r.Min.Y),
		image.Rect(r.Min.X-thickness, r.Max.Y, r.Max.X+thickness, r.Max.Y+thickness),
		image.Rect(r.Min.X-thickness, r.Min.Y, r.Min.X, r.Max.Y),
		image.Rect(r.Max.X, r.Min.Y, r.Max.X+thickness, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(b), fill, image.Point{}, draw.Src)
	}
	return dst
}
