package extractor

import (
	"sprite-extractor/internal/imaging"
	"sprite-extractor/pkg/geometry"
)

// discoverRegions scans the cleared image in row-major order and creates a
// fixed-size region around every non-background pixel not already covered
// by an earlier region.
//
// This is greedy first-touch clustering, not connected-component analysis:
// one sprite becomes one region only if its first-scanned pixel lies within
// the configured offsets of the sprite's true extent. Sprites larger than
// the region size get clipped or split. That behaviour is tuned via the
// region size and offsets, never merged away here.
//
// Membership is tested against every existing region per candidate pixel.
// O(pixels x regions) is fine; region counts stay tiny next to image area.
func (e *Extractor) discoverRegions(cleared *imaging.Image) []geometry.RectInt {
	var regions []geometry.RectInt

	for y := 1; y < cleared.Height-1; y++ {
		for x := 1; x < cleared.Width-1; x++ {
			if cleared.ARGB(x, y) == e.opts.Background {
				continue
			}
			if regionsContain(regions, x, y) {
				continue
			}
			regions = append(regions, geometry.RectInt{
				X:      x - e.opts.RegionOffsetX,
				Y:      y - e.opts.RegionOffsetY,
				Width:  e.opts.RegionWidth,
				Height: e.opts.RegionHeight,
			})
		}
	}

	return regions
}

func regionsContain(regions []geometry.RectInt, x, y int) bool {
	for _, r := range regions {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}
