package board

import (
	"math"

	"github.com/vovakirdan/tui-tictactoe/internal/core"
)

// Zoom limits and the number of cells visible at zoom 1.
const (
	MinZoom     = 0.4
	MaxZoom     = 2.0
	ZoomStep    = 0.2
	DefaultSpan = 15
)

// Viewport is the window onto an unbounded board. Zooming in shows fewer
// cells; zooming out shows more.
type Viewport struct {
	Center Coord
	Zoom   float64
	Span   int // cells per side at zoom 1
}

// NewViewport returns a viewport centered on the origin at zoom 1.
func NewViewport(span int) Viewport {
	if span <= 0 {
		span = DefaultSpan
	}
	return Viewport{Zoom: 1, Span: span}
}

// Visible returns the number of cells shown per side. The result is always
// odd so the center cell sits in the middle.
func (v Viewport) Visible() int {
	n := int(math.Round(float64(v.Span) / core.ClampF(v.Zoom, MinZoom, MaxZoom)))
	if n < 3 {
		n = 3
	}
	if n%2 == 0 {
		n++
	}
	return n
}

// Origin returns the board coordinate shown in the top-left corner.
func (v Viewport) Origin() Coord {
	half := v.Visible() / 2
	return C(v.Center.X-half, v.Center.Y-half)
}

// CellAt maps a viewport-local position to a board coordinate.
func (v Viewport) CellAt(x, y int) Coord {
	return v.Origin().Add(C(x, y))
}

// Contains reports whether c is currently on screen.
func (v Viewport) Contains(c Coord) bool {
	o := v.Origin()
	n := v.Visible()
	return c.X >= o.X && c.X < o.X+n && c.Y >= o.Y && c.Y < o.Y+n
}

// Pan moves the center by whole cells.
func (v *Viewport) Pan(dx, dy int) {
	v.Center = v.Center.Add(C(dx, dy))
}

// ZoomBy changes zoom by delta, clamped to [MinZoom, MaxZoom].
func (v *Viewport) ZoomBy(delta float64) {
	z := core.ClampF(v.Zoom+delta, MinZoom, MaxZoom)
	v.Zoom = math.Round(z*10) / 10
}

// CenterOn moves the viewport so that c is in the middle.
func (v *Viewport) CenterOn(c Coord) {
	v.Center = C(c.X, c.Y)
}

// Fit centers the viewport on the occupied area of b, or on the origin when
// the board is empty.
func (v *Viewport) Fit(b *Sparse) {
	lo, hi, ok := b.Bounds()
	if !ok {
		v.CenterOn(Coord{})
		return
	}
	v.CenterOn(C((lo.X+hi.X)/2, (lo.Y+hi.Y)/2))
}

// Reset restores the initial center and zoom.
func (v *Viewport) Reset() {
	*v = NewViewport(v.Span)
}
