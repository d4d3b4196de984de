package extractor

import (
	"sprite-extractor/internal/imaging"
	"sprite-extractor/internal/matcher"
	"sprite-extractor/pkg/geometry"
)

// ClearStats reports what background clearing did to one image.
type ClearStats struct {
	// ClearedColours is the number of distinct colours that were
	// classified as background.
	ClearedColours int

	// AmbiguousPixels are coordinates the matcher flagged as
	// background-ambiguous, in scan order.
	AmbiguousPixels []geometry.PointInt
}

// clearBackground produces a copy of src where every interior pixel the
// matcher classifies as background is overwritten with the sentinel colour.
//
// The source image is never modified: the matcher keeps reading original
// colours for the neighbourhoods of pixels later in the same pass. The
// 1-pixel border is left untouched because the Moore neighbourhood is
// undefined there.
func (e *Extractor) clearBackground(src *imaging.Image) (*imaging.Image, ClearStats) {
	cleared := src.Clone()
	stats := ClearStats{}

	marker, _ := e.matcher.(matcher.AmbiguityMarker)
	seen := make(map[uint32]struct{})

	for y := 1; y < src.Height-1; y++ {
		for x := 1; x < src.Width-1; x++ {
			if e.matcher.Matches(src, x, y) {
				seen[src.ARGB(x, y)] = struct{}{}
				cleared.SetARGB(x, y, e.opts.Background)
				continue
			}

			if marker != nil && marker.Ambiguous(src, x, y) {
				stats.AmbiguousPixels = append(stats.AmbiguousPixels,
					geometry.PointInt{X: x, Y: y})
				if e.opts.HighlightAmbiguous {
					cleared.SetARGB(x, y, e.opts.HighlightColour)
				}
			}
		}
	}

	stats.ClearedColours = len(seen)
	return cleared, stats
}
