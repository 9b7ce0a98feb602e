package variants

import (
	"fmt"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/rules"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
)

func init() {
	registry.Register("nxn", func(s config.Variants) registry.Variant { return NewNxN(s.NxN) })
	registry.Register("circular", func(s config.Variants) registry.Variant { return NewCircular(s.Circular) })
}

// sized is a lineGame whose size can be changed with +/- before the first
// move. shape builds the geometry for a size.
type sized struct {
	*lineGame
	size, lo, hi int
	shape        func(n int) board.Geometry
}

// NewNxN is an N×N board where a full row, column or diagonal wins.
func NewNxN(s config.NxNSettings) registry.Variant {
	shape := func(n int) board.Geometry { return board.Plane(n, n, n) }
	return newSized("nxn", "N×N", "Fill a whole row, column or diagonal", s.Size, s.MinSize, s.MaxSize, shape)
}

// NewCircular is a ring of cells where runs continue across the seam.
func NewCircular(s config.CircularSettings) registry.Variant {
	k := s.WinLength
	shape := func(n int) board.Geometry { return board.Ring(n, k) }
	desc := fmt.Sprintf("%d in a row around a ring; the ends connect", k)
	return newSized("circular", "Circular", desc, s.Size, s.MinSize, s.MaxSize, shape)
}

func newSized(id, title, desc string, size, lo, hi int, shape func(int) board.Geometry) *sized {
	size = core.Clamp(size, lo, hi)
	v := &sized{
		lineGame: newLineGame(id, title, desc, xo(), shape(size)),
		size:     size,
		lo:       lo,
		hi:       hi,
		shape:    shape,
	}
	return v
}

func (v *sized) Commands() []registry.Command {
	return []registry.Command{
		{Key: "+", Help: "bigger board"},
		{Key: "-", Help: "smaller board"},
	}
}

func (v *sized) Perform(key string) error {
	switch key {
	case "+":
		return v.Resize(v.size + 1)
	case "-":
		return v.Resize(v.size - 1)
	}
	return v.lineGame.Perform(key)
}

// Resize changes the board size. It is refused once a game is underway.
func (v *sized) Resize(n int) error {
	if v.sess.Phase() != session.Setup {
		return rules.ErrConfigurationLocked
	}
	n = core.Clamp(n, v.lo, v.hi)
	if n == v.size {
		return nil
	}
	v.size = n
	v.geom = v.shape(n)
	v.Reset(v.cfg)
	return nil
}

// Size returns the current board size.
func (v *sized) Size() int { return v.size }

func (v *sized) Status() []string {
	return v.status(
		fmt.Sprintf("Size %d (%d-%d)", v.size, v.lo, v.hi),
		fmt.Sprintf("%d in a row wins", v.geom.WinLength),
	)
}
