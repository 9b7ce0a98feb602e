// Package board stores cell occupancy for every variant: dense grids in one,
// two or three dimensions (optionally wrapping along X), and a sparse map for
// unbounded play.
package board

import "fmt"

// Mark is the occupant of a cell. Positive values are player marks, or the
// placed number on sum-based boards; zero is empty; negatives are special
// markers that never belong to a player.
type Mark int

const (
	Trap    Mark = -2 // playable cell that penalizes whoever lands on it
	Blocked Mark = -1 // permanent obstacle, never playable
	Empty   Mark = 0
)

// IsPlayer reports whether the mark belongs to a player.
func (m Mark) IsPlayer() bool {
	return m > 0
}

// Vacant reports whether a piece may be placed on a cell holding m without
// replacing anything.
func (m Mark) Vacant() bool {
	return m == Empty || m == Trap
}

// Coord addresses a cell. One-dimensional boards use X only, planar boards use
// X (column) and Y (row), and cubes use Z for the layer.
type Coord struct {
	X, Y, Z int
}

// C is shorthand for a planar coordinate.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns c translated by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z + d.Z}
}

// Scale multiplies every component by n.
func (c Coord) Scale(n int) Coord {
	return Coord{X: c.X * n, Y: c.Y * n, Z: c.Z * n}
}

// Neg returns the opposite direction.
func (c Coord) Neg() Coord {
	return c.Scale(-1)
}

// String formats planar coordinates as "x,y" and cube coordinates as "x,y,z".
func (c Coord) String() string {
	if c.Z != 0 {
		return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
	}
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Board is the storage contract shared by dense and sparse boards. A board is
// owned by exactly one session and is not safe for concurrent use.
type Board interface {
	Geometry() Geometry
	// At returns the occupant of c, or Empty when c is off the board.
	At(c Coord) Mark
	// Set overwrites the occupant of c. Off-board writes are ignored.
	Set(c Coord, m Mark)
	InBounds(c Coord) bool
	// Normalize folds wrapping coordinates back onto the board.
	Normalize(c Coord) Coord
	// Cells lists every addressable cell; sparse boards list occupied cells.
	Cells() []Coord
	// Occupied lists cells that are not Empty.
	Occupied() []Coord
	// Full reports whether no Empty cell remains. Sparse boards are never full.
	Full() bool
	Clear()
	Clone() Board
}
