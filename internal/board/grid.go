package board

import "github.com/vovakirdan/tui-tictactoe/internal/core"

// Grid is a dense board backed by a flat slice in X-major, then Y, then Z order.
type Grid struct {
	geom  Geometry
	cells []Mark
}

// NewGrid allocates an empty grid. Height and Depth default to 1.
func NewGrid(g Geometry) *Grid {
	if g.Height < 1 {
		g.Height = 1
	}
	if g.Depth < 1 {
		g.Depth = 1
	}
	return &Grid{geom: g, cells: make([]Mark, g.Size())}
}

func (b *Grid) Geometry() Geometry { return b.geom }

// Len returns the number of cells.
func (b *Grid) Len() int { return len(b.cells) }

func (b *Grid) Normalize(c Coord) Coord {
	if b.geom.Wrap {
		c.X = core.Wrap(c.X, b.geom.Width)
	}
	return c
}

func (b *Grid) InBounds(c Coord) bool {
	c = b.Normalize(c)
	return c.X >= 0 && c.X < b.geom.Width &&
		c.Y >= 0 && c.Y < b.geom.Height &&
		c.Z >= 0 && c.Z < b.geom.Depth
}

// Index maps a coordinate to its position in row-major order; classic boards
// number their cells 0..8 this way. It returns -1 for off-board coordinates.
func (b *Grid) Index(c Coord) int {
	if !b.InBounds(c) {
		return -1
	}
	c = b.Normalize(c)
	return (c.Z*b.geom.Height+c.Y)*b.geom.Width + c.X
}

// CoordAt is the inverse of Index.
func (b *Grid) CoordAt(i int) Coord {
	w, h := b.geom.Width, b.geom.Height
	return Coord{X: i % w, Y: (i / w) % h, Z: i / (w * h)}
}

func (b *Grid) At(c Coord) Mark {
	i := b.Index(c)
	if i < 0 {
		return Empty
	}
	return b.cells[i]
}

func (b *Grid) Set(c Coord, m Mark) {
	if i := b.Index(c); i >= 0 {
		b.cells[i] = m
	}
}

func (b *Grid) Cells() []Coord {
	out := make([]Coord, len(b.cells))
	for i := range b.cells {
		out[i] = b.CoordAt(i)
	}
	return out
}

func (b *Grid) Occupied() []Coord {
	var out []Coord
	for i, m := range b.cells {
		if m != Empty {
			out = append(out, b.CoordAt(i))
		}
	}
	return out
}

// Full reports whether every cell holds something other than Empty. Traps
// count as open.
func (b *Grid) Full() bool {
	for _, m := range b.cells {
		if m.Vacant() {
			return false
		}
	}
	return true
}

// Vacant returns the cells a piece could be placed on.
func (b *Grid) Vacant() []Coord {
	var out []Coord
	for i, m := range b.cells {
		if m.Vacant() {
			out = append(out, b.CoordAt(i))
		}
	}
	return out
}

// Count returns how many cells hold m.
func (b *Grid) Count(m Mark) int {
	n := 0
	for _, v := range b.cells {
		if v == m {
			n++
		}
	}
	return n
}

func (b *Grid) Clear() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
}

func (b *Grid) Clone() Board {
	out := &Grid{geom: b.geom, cells: make([]Mark, len(b.cells))}
	copy(out.cells, b.cells)
	return out
}
