package matcher

import (
	"sprite-extractor/internal/imaging"
)

// Exact matches pixels against a background reference image of identical
// dimensions: a pixel is background iff it has exactly the same colour as
// the reference at the same coordinate.
//
// With strictness enabled (0-8), at least that many of the 8 neighbours must
// also equal the reference. A pixel whose own colour matches but whose
// neighbour count falls short is background-ambiguous; see Ambiguous.
type Exact struct {
	background *imaging.Image
	strictness int
}

// NewExact creates an Exact matcher for the given reference image. The
// reference must already be trimmed to the same margins as the subject
// images. Strictness is 0-8, or StrictnessDisabled for plain equality.
func NewExact(background *imaging.Image, strictness int) (*Exact, error) {
	if strictness != StrictnessDisabled {
		if err := checkStrictness(strictness); err != nil {
			return nil, err
		}
	}
	return &Exact{background: background, strictness: strictness}, nil
}

// Validate rejects subject images whose dimensions differ from the
// reference, before any pixel comparison happens.
func (e *Exact) Validate(img *imaging.Image) error {
	if img.Width != e.background.Width || img.Height != e.background.Height {
		return ErrDimensionMismatch
	}
	return nil
}

// Matches reports whether the pixel equals the reference, and, when
// strictness is enabled, whether enough neighbours do too.
func (e *Exact) Matches(img *imaging.Image, x, y int) bool {
	if img.ARGB(x, y) != e.background.ARGB(x, y) {
		return false
	}
	if e.strictness == StrictnessDisabled {
		return true
	}
	return e.matchingNeighbours(img, x, y) >= e.strictness
}

// Ambiguous reports whether the pixel's own colour matches the reference
// while the neighbour count stays below the strictness threshold. Always
// false when strictness is disabled.
func (e *Exact) Ambiguous(img *imaging.Image, x, y int) bool {
	if e.strictness == StrictnessDisabled {
		return false
	}
	if img.ARGB(x, y) != e.background.ARGB(x, y) {
		return false
	}
	return e.matchingNeighbours(img, x, y) < e.strictness
}

func (e *Exact) matchingNeighbours(img *imaging.Image, x, y int) int {
	count := 0
	for d := Direction(0); d < NumDirections; d++ {
		dx, dy := d.Offset()
		if img.ARGB(x+dx, y+dy) == e.background.ARGB(x+dx, y+dy) {
			count++
		}
	}
	return count
}
