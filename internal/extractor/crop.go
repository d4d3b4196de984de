package extractor

import (
	"sprite-extractor/internal/imaging"
	"sprite-extractor/pkg/geometry"
)

// cropSprites extracts and tight-crops each region from the cleared image.
// Regions that contain no sprite pixels, or whose crop falls below the
// configured minimum size, are dropped. Output order follows region order.
func (e *Extractor) cropSprites(cleared *imaging.Image, regions []geometry.RectInt) []*imaging.Image {
	var sprites []*imaging.Image

	for _, region := range regions {
		// Shift the fixed-size rectangle back inside the image; regions
		// anchored near an edge can start at negative coordinates.
		clamped := region.ShiftedInto(cleared.Width, cleared.Height)

		sub := cleared.SubImage(clamped)

		sprite, ok := tightCrop(sub, e.opts.Background)
		if !ok {
			// Nothing but background in this region.
			continue
		}
		if sprite.Width < e.opts.MinSpriteWidth || sprite.Height < e.opts.MinSpriteHeight {
			continue
		}

		sprites = append(sprites, sprite)
	}

	return sprites
}

// tightCrop reduces an image to the smallest rectangle containing any pixel
// that is not the background colour, scanning all four edges inward. The
// second return value is false when every pixel is background.
func tightCrop(im *imaging.Image, background uint32) (*imaging.Image, bool) {
	x1, y1 := im.Width, im.Height
	x2, y2 := -1, -1

	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			if im.ARGB(x, y) == background {
				continue
			}
			if x < x1 {
				x1 = x
			}
			if x > x2 {
				x2 = x
			}
			if y < y1 {
				y1 = y
			}
			if y > y2 {
				y2 = y
			}
		}
	}

	if x2 < x1 || y2 < y1 {
		return nil, false
	}

	// The extremes are inclusive pixel coordinates, hence the +1.
	return im.SubImage(geometry.RectInt{
		X:      x1,
		Y:      y1,
		Width:  x2 - x1 + 1,
		Height: y2 - y1 + 1,
	}), true
}
