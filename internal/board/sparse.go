package board

import "sort"

// Sparse is an unbounded planar board that stores occupied cells only.
type Sparse struct {
	geom  Geometry
	cells map[Coord]Mark
}

// NewSparse creates an empty unbounded board with run length k.
func NewSparse(k int) *Sparse {
	return &Sparse{geom: Unbounded(k), cells: make(map[Coord]Mark)}
}

func (b *Sparse) Geometry() Geometry { return b.geom }
func (b *Sparse) InBounds(c Coord) bool { return c.Z == 0 }
func (b *Sparse) Normalize(c Coord) Coord { return c }
func (b *Sparse) At(c Coord) Mark { return b.cells[c] }
func (b *Sparse) Full() bool { return false }
func (b *Sparse) Len() int { return len(b.cells) }
func (b *Sparse) Cells() []Coord { return b.Occupied() }
func (b *Sparse) Clear() { b.cells = make(map[Coord]Mark) }

// Set stores m at c; storing Empty removes the entry.
func (b *Sparse) Set(c Coord, m Mark) {
	if !b.InBounds(c) {
		return
	}
	if m == Empty {
		delete(b.cells, c)
		return
	}
	b.cells[c] = m
}

// Occupied returns occupied cells sorted by row, then column.
func (b *Sparse) Occupied() []Coord {
	out := make([]Coord, 0, len(b.cells))
	for c := range b.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Bounds returns the bounding box of occupied cells. ok is false on an empty
// board.
func (b *Sparse) Bounds() (lo, hi Coord, ok bool) {
	for c := range b.cells {
		if !ok {
			lo, hi, ok = c, c, true
			continue
		}
		lo.X, lo.Y = min(lo.X, c.X), min(lo.Y, c.Y)
		hi.X, hi.Y = max(hi.X, c.X), max(hi.Y, c.Y)
	}
	return lo, hi, ok
}

func (b *Sparse) Clone() Board {
	out := &Sparse{geom: b.geom, cells: make(map[Coord]Mark, len(b.cells))}
	for c, m := range b.cells {
		out.cells[c] = m
	}
	return out
}
