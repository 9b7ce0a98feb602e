package board

// Geometry describes a board's shape and its winning run length.
type Geometry struct {
	Width     int  // zero or negative means unbounded
	Height    int  // 1 for a line or ring
	Depth     int  // layers; 1 for planar boards
	WinLength int  // run length K required to win
	Wrap      bool // X wraps around (ring boards)
}

// Plane returns the geometry of a w x h board with run length k.
func Plane(w, h, k int) Geometry {
	return Geometry{Width: w, Height: h, Depth: 1, WinLength: k}
}

// Line returns the geometry of a 1 x n strip.
func Line(n, k int) Geometry {
	return Geometry{Width: n, Height: 1, Depth: 1, WinLength: k}
}

// Ring returns the geometry of n cells arranged in a circle.
func Ring(n, k int) Geometry {
	return Geometry{Width: n, Height: 1, Depth: 1, WinLength: k, Wrap: true}
}

// Cube returns the geometry of an n x n x n board.
func Cube(n, k int) Geometry {
	return Geometry{Width: n, Height: n, Depth: n, WinLength: k}
}

// Unbounded returns the geometry of an infinite plane.
func Unbounded(k int) Geometry {
	return Geometry{WinLength: k}
}

// Bounded reports whether the board has finite extent.
func (g Geometry) Bounded() bool {
	return g.Width > 0
}

// Dims returns the number of spatial dimensions lines can run in.
func (g Geometry) Dims() int {
	switch {
	case !g.Bounded():
		return 2
	case g.Depth > 1:
		return 3
	case g.Height > 1:
		return 2
	default:
		return 1
	}
}

// Size returns the number of cells on a bounded board.
func (g Geometry) Size() int {
	if !g.Bounded() {
		return 0
	}
	return g.Width * max(g.Height, 1) * max(g.Depth, 1)
}

// Directions returns one vector per line orientation for this geometry.
func (g Geometry) Directions() []Coord {
	return Directions(g.Dims())
}

// Directions enumerates every unit vector in {-1,0,1}^dims whose first
// non-zero component is positive, so each line orientation appears once:
// 1 in a line, 4 in a plane and 13 in a cube.
func Directions(dims int) []Coord {
	var out []Coord
	rng := func(active bool) []int {
		if active {
			return []int{-1, 0, 1}
		}
		return []int{0}
	}
	for _, z := range rng(dims >= 3) {
		for _, y := range rng(dims >= 2) {
			for _, x := range rng(true) {
				d := Coord{X: x, Y: y, Z: z}
				if canonical(d) {
					out = append(out, d)
				}
			}
		}
	}
	return out
}

// canonical reports whether the first non-zero component of d is positive.
func canonical(d Coord) bool {
	for _, v := range []int{d.X, d.Y, d.Z} {
		if v != 0 {
			return v > 0
		}
	}
	return false
}
