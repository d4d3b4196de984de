// Package imaging provides the packed-ARGB image grid used by the sprite
// extraction pipeline, along with image file loading, saving, and enumeration.
package imaging

import (
	"image"

	"sprite-extractor/pkg/colorutil"
	"sprite-extractor/pkg/geometry"
)

// Image is a width x height grid of packed ARGB pixels, origin top-left,
// y increasing downward. Pixels are stored row-major.
//
// An Image is owned by the operation currently transforming it and is never
// shared mutably; transforms that must preserve their input work on a copy.
type Image struct {
	Pix    []uint32
	Width  int
	Height int
}

// New creates an image of the given size with all pixels zero.
func New(width, height int) *Image {
	return &Image{
		Pix:    make([]uint32, width*height),
		Width:  width,
		Height: height,
	}
}

// FromImage converts a decoded image into a packed-ARGB grid.
// Conversion goes through the NRGBA model so colour values survive a PNG
// round-trip exactly.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	img := New(bounds.Dx(), bounds.Dy())

	if nrgba, ok := src.(*image.NRGBA); ok {
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := nrgba.Pix[(y-bounds.Min.Y)*nrgba.Stride:]
			for x := 0; x < img.Width; x++ {
				p := row[x*4 : x*4+4]
				img.Pix[i] = colorutil.ARGB(p[3], p[0], p[1], p[2])
				i++
			}
		}
		return img
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Pix[i] = colorutil.FromColor(src.At(x, y))
			i++
		}
	}
	return img
}

// ARGB returns the packed colour at (x, y). Callers must stay in bounds.
func (im *Image) ARGB(x, y int) uint32 {
	return im.Pix[y*im.Width+x]
}

// SetARGB sets the packed colour at (x, y). Callers must stay in bounds.
func (im *Image) SetARGB(x, y int, argb uint32) {
	im.Pix[y*im.Width+x] = argb
}

// InBounds returns true if (x, y) is a valid pixel coordinate.
func (im *Image) InBounds(x, y int) bool {
	return x >= 0 && x < im.Width && y >= 0 && y < im.Height
}

// Rect returns the image bounds as a rectangle at the origin.
func (im *Image) Rect() geometry.RectInt {
	return geometry.RectInt{Width: im.Width, Height: im.Height}
}

// Clone returns a deep copy of the image.
func (im *Image) Clone() *Image {
	out := New(im.Width, im.Height)
	copy(out.Pix, im.Pix)
	return out
}

// SubImage copies the pixels of r into a new image. The rectangle is
// intersected with the image bounds first; an empty intersection yields a
// zero-size image.
func (im *Image) SubImage(r geometry.RectInt) *Image {
	r = r.Intersect(im.Rect())
	if r.Empty() {
		return New(0, 0)
	}
	out := New(r.Width, r.Height)
	for y := 0; y < r.Height; y++ {
		src := im.Pix[(r.Y+y)*im.Width+r.X:]
		copy(out.Pix[y*r.Width:(y+1)*r.Width], src[:r.Width])
	}
	return out
}

// Trim copies out the image minus the given margins. Margins that leave no
// pixels produce a zero-size image.
func (im *Image) Trim(left, top, right, bottom int) *Image {
	return im.SubImage(geometry.RectInt{
		X:      left,
		Y:      top,
		Width:  im.Width - (left + right),
		Height: im.Height - (top + bottom),
	})
}

// ToNRGBA converts the grid back to an image/color image for encoding.
func (im *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.Width, im.Height))
	i := 0
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			c := colorutil.ToNRGBA(im.Pix[i])
			out.SetNRGBA(x, y, c)
			i++
		}
	}
	return out
}

// DrawFrame draws a 1-pixel rectangle outline in the given colour, clipped
// to the image bounds.
func (im *Image) DrawFrame(r geometry.RectInt, argb uint32) {
	for x := r.X; x < r.Right(); x++ {
		if im.InBounds(x, r.Y) {
			im.SetARGB(x, r.Y, argb)
		}
		if im.InBounds(x, r.Bottom()-1) {
			im.SetARGB(x, r.Bottom()-1, argb)
		}
	}
	for y := r.Y; y < r.Bottom(); y++ {
		if im.InBounds(r.X, y) {
			im.SetARGB(r.X, y, argb)
		}
		if im.InBounds(r.Right()-1, y) {
			im.SetARGB(r.Right()-1, y, argb)
		}
	}
}
