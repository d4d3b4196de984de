package matcher

import (
	"sprite-extractor/internal/imaging"

	"gonum.org/v1/gonum/stat"
)

// colourSet is a set of packed ARGB colour values.
type colourSet map[uint32]struct{}

func (s colourSet) add(c uint32)           { s[c] = struct{}{} }
func (s colourSet) contains(c uint32) bool { _, ok := s[c]; return ok }

// validNeighbours records, for one colour, the colours observed in each Moore
// direction across the background sample.
type validNeighbours [NumDirections]colourSet

func newValidNeighbours() *validNeighbours {
	var v validNeighbours
	for d := range v {
		v[d] = make(colourSet)
	}
	return &v
}

// Model maps each colour found in a background sample to the neighbour
// colours observed around it. It is built once and read-only afterwards, so
// it may be shared freely.
//
// A sample smaller than 3x3 has no interior pixels and produces an empty
// model; lookups against it never match.
type Model struct {
	entries map[uint32]*validNeighbours
}

// BuildModel learns the neighbourhood structure of a background sample.
// Every interior pixel contributes its colour as a key and its 8 neighbour
// colours to the corresponding per-direction sets.
func BuildModel(sample *imaging.Image) *Model {
	m := &Model{entries: make(map[uint32]*validNeighbours)}

	for y := 1; y < sample.Height-1; y++ {
		for x := 1; x < sample.Width-1; x++ {
			col := sample.ARGB(x, y)

			vn, ok := m.entries[col]
			if !ok {
				vn = newValidNeighbours()
				m.entries[col] = vn
			}

			for d := Direction(0); d < NumDirections; d++ {
				dx, dy := d.Offset()
				vn[d].add(sample.ARGB(x+dx, y+dy))
			}
		}
	}

	return m
}

// Colours returns the number of distinct colours in the model.
func (m *Model) Colours() int {
	return len(m.entries)
}

// lookup returns the neighbour sets for a colour, or nil if the colour was
// never observed in the sample.
func (m *Model) lookup(col uint32) *validNeighbours {
	return m.entries[col]
}

// DirectionStats summarizes the observed-set sizes for one direction.
type DirectionStats struct {
	Direction Direction
	Mean      float64
	StdDev    float64
	Min       int
	Max       int
}

// Stats computes per-direction statistics of the observed neighbour-set
// sizes across all colours. Large means suggest a noisy sample and call for
// a higher strictness.
func (m *Model) Stats() []DirectionStats {
	out := make([]DirectionStats, NumDirections)
	sizes := make([]float64, 0, len(m.entries))

	for d := Direction(0); d < NumDirections; d++ {
		sizes = sizes[:0]
		minSize, maxSize := 0, 0
		for _, vn := range m.entries {
			n := len(vn[d])
			if len(sizes) == 0 || n < minSize {
				minSize = n
			}
			if n > maxSize {
				maxSize = n
			}
			sizes = append(sizes, float64(n))
		}

		s := DirectionStats{Direction: d, Min: minSize, Max: maxSize}
		if len(sizes) > 0 {
			s.Mean, s.StdDev = stat.MeanStdDev(sizes, nil)
		}
		out[d] = s
	}

	return out
}
