package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntContains(t *testing.T) {
	r := NewRectInt(2, 3, 4, 5)

	assert.True(t, r.Contains(2, 3))
	assert.True(t, r.Contains(5, 7))

	// Right and bottom edges are exclusive.
	assert.False(t, r.Contains(6, 3))
	assert.False(t, r.Contains(2, 8))
	assert.False(t, r.Contains(1, 3))
}

func TestRectIntEmpty(t *testing.T) {
	assert.True(t, RectInt{Width: 0, Height: 5}.Empty())
	assert.True(t, RectInt{Width: 5, Height: -1}.Empty())
	assert.False(t, RectInt{Width: 1, Height: 1}.Empty())
}

func TestRectIntIntersect(t *testing.T) {
	a := NewRectInt(0, 0, 10, 10)
	b := NewRectInt(5, 5, 10, 10)

	got := a.Intersect(b)
	assert.Equal(t, NewRectInt(5, 5, 5, 5), got)

	// Disjoint rectangles intersect to an empty result.
	c := NewRectInt(20, 20, 3, 3)
	assert.True(t, a.Intersect(c).Empty())
	assert.False(t, a.Intersects(c))
	assert.True(t, a.Intersects(b))
}

func TestRectIntShiftedInto(t *testing.T) {
	// Negative origin shifts to zero.
	r := NewRectInt(-5, -7, 10, 10)
	assert.Equal(t, NewRectInt(0, 0, 10, 10), r.ShiftedInto(20, 20))

	// Overhanging origin shifts back, size unchanged.
	r = NewRectInt(15, 15, 10, 10)
	assert.Equal(t, NewRectInt(10, 10, 10, 10), r.ShiftedInto(20, 20))

	// A rectangle larger than the area clamps to the origin.
	r = NewRectInt(3, 3, 30, 30)
	assert.Equal(t, NewRectInt(0, 0, 30, 30), r.ShiftedInto(20, 20))
}
