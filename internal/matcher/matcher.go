// Package matcher provides background pixel classification for screenshots.
//
// A Matcher decides, per pixel, whether a screenshot pixel belongs to a known
// background texture. Two strategies are available: Exact compares against a
// reference image pixel-for-pixel, Neighbourhood consults a statistical model
// of colours observed next to each other in a background sample.
package matcher

import (
	"errors"

	"sprite-extractor/internal/imaging"
)

// Strictness bounds for both matcher variants.
const (
	MinStrictness = 0
	MaxStrictness = 8

	// StrictnessDisabled turns off the neighbour requirement of the Exact
	// matcher, leaving plain colour equality.
	StrictnessDisabled = -1
)

// ErrDimensionMismatch is returned when the Exact matcher's background
// reference does not have the same dimensions as the subject image.
var ErrDimensionMismatch = errors.New("background and subject image dimensions differ")

// ErrStrictnessRange is returned for a strictness value outside 0-8.
var ErrStrictnessRange = errors.New("strictness must be between 0 and 8")

// Matcher determines whether a pixel belongs to the background texture.
//
// Matches must only be called for interior pixels (1 <= x < width-1,
// 1 <= y < height-1); the Moore neighbourhood is undefined on the border.
type Matcher interface {
	Matches(img *imaging.Image, x, y int) bool
}

// Validator is implemented by matchers that can reject a subject image
// before any pixel is examined.
type Validator interface {
	Validate(img *imaging.Image) error
}

// AmbiguityMarker is implemented by matchers that can classify a pixel as
// background-ambiguous: the colour itself matches but the neighbourhood
// evidence falls short of the configured strictness.
type AmbiguityMarker interface {
	Ambiguous(img *imaging.Image, x, y int) bool
}

// Direction identifies one of the 8 Moore neighbours of a pixel.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest

	NumDirections = 8
)

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	default:
		return "?"
	}
}

// Offset returns the pixel offset of the neighbour in this direction.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case NorthEast:
		return 1, -1
	case East:
		return 1, 0
	case SouthEast:
		return 1, 1
	case South:
		return 0, 1
	case SouthWest:
		return -1, 1
	case West:
		return -1, 0
	case NorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}

// checkStrictness validates a 0-8 strictness value.
func checkStrictness(strictness int) error {
	if strictness < MinStrictness || strictness > MaxStrictness {
		return ErrStrictnessRange
	}
	return nil
}
