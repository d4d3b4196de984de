package matcher

import (
	"sprite-extractor/internal/imaging"
)

// Neighbourhood matches pixels against a learned background model: a pixel
// is background if its colour was seen in the sample and enough of its
// actual neighbours are colours the model observed in those directions.
//
// Strictness 0 accepts any previously-seen colour regardless of context;
// strictness 8 requires every neighbour to match an observed value.
type Neighbourhood struct {
	model      *Model
	strictness int
}

// NewNeighbourhood builds a matcher from a background sample image.
func NewNeighbourhood(sample *imaging.Image, strictness int) (*Neighbourhood, error) {
	if err := checkStrictness(strictness); err != nil {
		return nil, err
	}
	return &Neighbourhood{model: BuildModel(sample), strictness: strictness}, nil
}

// NewNeighbourhoodFromModel wraps an already-built model. The model is read
// without modification, so it may back several matchers at once.
func NewNeighbourhoodFromModel(model *Model, strictness int) (*Neighbourhood, error) {
	if err := checkStrictness(strictness); err != nil {
		return nil, err
	}
	return &Neighbourhood{model: model, strictness: strictness}, nil
}

// Model returns the underlying background model.
func (n *Neighbourhood) Model() *Model {
	return n.model
}

// Matches reports whether the pixel plausibly belongs to the sampled
// background. A colour never seen during model construction can never be
// background.
func (n *Neighbourhood) Matches(img *imaging.Image, x, y int) bool {
	vn := n.model.lookup(img.ARGB(x, y))
	if vn == nil {
		return false
	}

	valid := 0
	for d := Direction(0); d < NumDirections; d++ {
		dx, dy := d.Offset()
		if vn[d].contains(img.ARGB(x+dx, y+dy)) {
			valid++
		}
	}
	return valid >= n.strictness
}
