package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirections(t *testing.T) {
	tests := []struct {
		dims     int
		expected int
	}{
		{1, 1},
		{2, 4},
		{3, 13},
	}

	for _, tc := range tests {
		dirs := Directions(tc.dims)
		assert.Len(t, dirs, tc.expected, "dims=%d", tc.dims)

		seen := make(map[Coord]bool)
		for _, d := range dirs {
			assert.False(t, seen[d.Neg()], "direction %v listed together with its opposite", d)
			seen[d] = true
		}
	}
}

func TestGeometryDims(t *testing.T) {
	assert.Equal(t, 1, Line(7, 3).Dims())
	assert.Equal(t, 1, Ring(8, 3).Dims())
	assert.Equal(t, 2, Plane(3, 3, 3).Dims())
	assert.Equal(t, 3, Cube(4, 4).Dims())
	assert.Equal(t, 2, Unbounded(5).Dims())
	assert.Equal(t, 64, Cube(4, 4).Size())
}

func TestGridIndexRoundTrip(t *testing.T) {
	g := NewGrid(Cube(4, 4))

	for i := 0; i < g.Len(); i++ {
		c := g.CoordAt(i)
		require.Equal(t, i, g.Index(c), "coord %v", c)
	}
	assert.Equal(t, -1, g.Index(Coord{X: 4}))
	assert.Equal(t, -1, g.Index(Coord{Z: -1}))
}

func TestGridClassicNumbering(t *testing.T) {
	g := NewGrid(Plane(3, 3, 3))

	assert.Equal(t, C(0, 0), g.CoordAt(0))
	assert.Equal(t, C(2, 0), g.CoordAt(2))
	assert.Equal(t, C(0, 1), g.CoordAt(3))
	assert.Equal(t, C(2, 2), g.CoordAt(8))
}

func TestGridSetAtFull(t *testing.T) {
	g := NewGrid(Plane(2, 2, 2))
	assert.False(t, g.Full())

	g.Set(C(0, 0), 1)
	g.Set(C(1, 0), 2)
	g.Set(C(0, 1), Blocked)
	assert.False(t, g.Full())

	g.Set(C(1, 1), Trap)
	assert.False(t, g.Full(), "traps are still playable")

	g.Set(C(1, 1), 1)
	assert.True(t, g.Full())
	assert.Len(t, g.Occupied(), 4)
	assert.Equal(t, 2, g.Count(1))

	g.Set(C(5, 5), 1)
	assert.Equal(t, Empty, g.At(C(5, 5)), "off-board writes are ignored")

	g.Clear()
	assert.Empty(t, g.Occupied())
}

func TestGridWrap(t *testing.T) {
	g := NewGrid(Ring(8, 3))

	assert.True(t, g.InBounds(Coord{X: -1}))
	assert.True(t, g.InBounds(Coord{X: 9}))
	assert.False(t, g.InBounds(Coord{X: 0, Y: 1}))

	g.Set(Coord{X: -1}, 1)
	assert.Equal(t, Mark(1), g.At(Coord{X: 7}))
}

func TestGridClone(t *testing.T) {
	g := NewGrid(Plane(3, 3, 3))
	g.Set(C(1, 1), 1)

	clone := g.Clone()
	clone.Set(C(0, 0), 2)

	assert.Equal(t, Empty, g.At(C(0, 0)), "clone must not alias the original")
	assert.Equal(t, Mark(1), clone.At(C(1, 1)))
}

func TestSparse(t *testing.T) {
	b := NewSparse(5)

	_, _, ok := b.Bounds()
	assert.False(t, ok)

	b.Set(C(-3, 2), 1)
	b.Set(C(4, -1), 2)
	b.Set(C(100, 100), 1)
	b.Set(C(100, 100), Empty)

	assert.Equal(t, 2, b.Len())
	assert.False(t, b.Full())

	lo, hi, ok := b.Bounds()
	require.True(t, ok)
	assert.Equal(t, C(-3, -1), lo)
	assert.Equal(t, C(4, 2), hi)

	assert.Equal(t, []Coord{C(4, -1), C(-3, 2)}, b.Occupied())
}

func TestViewport(t *testing.T) {
	v := NewViewport(15)
	assert.Equal(t, 15, v.Visible())
	assert.Equal(t, C(-7, -7), v.Origin())
	assert.True(t, v.Contains(C(7, 7)))
	assert.False(t, v.Contains(C(8, 0)))

	v.Pan(3, -2)
	assert.Equal(t, C(3, -2), v.Center)
	assert.Equal(t, C(-4, -9), v.CellAt(0, 0))

	for i := 0; i < 20; i++ {
		v.ZoomBy(ZoomStep)
	}
	assert.Equal(t, MaxZoom, v.Zoom)
	assert.Equal(t, 9, v.Visible())

	for i := 0; i < 20; i++ {
		v.ZoomBy(-ZoomStep)
	}
	assert.Equal(t, MinZoom, v.Zoom)
	assert.Equal(t, 39, v.Visible())

	b := NewSparse(5)
	b.Set(C(10, 10), 1)
	b.Set(C(20, 14), 2)
	v.Fit(b)
	assert.Equal(t, C(15, 12), v.Center)

	v.Reset()
	assert.Equal(t, NewViewport(15), v)
}
