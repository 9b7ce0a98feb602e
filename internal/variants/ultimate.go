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

// anyBoard means the next move may go on any open sub-board.
const anyBoard = -1

func init() {
	registry.Register("ultimate", func(config.Variants) registry.Variant { return NewUltimate() })
}

// Ultimate is nine classic boards arranged in a 3x3 meta board. The cell a
// player picks sends the opponent to the matching sub-board. A won or tied
// sub-board is closed; three won sub-boards in a line win the game.
type Ultimate struct {
	base
	subs    [9]*board.Grid
	meta    *board.Grid // winner mark per sub-board, Blocked for a tie
	active  int
	subWins [9][]board.Coord
	metaWin []board.Coord
}

// NewUltimate creates an ultimate game.
func NewUltimate() *Ultimate {
	v := &Ultimate{
		base: newBase("ultimate", "Ultimate", "Win three small boards in a row; your cell picks the next board", xo()),
	}
	v.Reset(core.DefaultConfig())
	return v
}

func (v *Ultimate) Reset(cfg core.RuntimeConfig) {
	v.restart(cfg)
	for i := range v.subs {
		v.subs[i] = board.NewGrid(board.Plane(3, 3, 3))
		v.subWins[i] = nil
	}
	v.meta = board.NewGrid(board.Plane(3, 3, 3))
	v.active = anyBoard
	v.metaWin = nil
}

func (v *Ultimate) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

func metaCoord(i int) board.Coord { return board.C(i%3, i/3) }

func cellIndex(c board.Coord) int { return c.Y*3 + c.X }

// Active returns the sub-board the current player must use, or -1 for any.
func (v *Ultimate) Active() int { return v.active }

// Closed reports whether sub-board i has been won or tied.
func (v *Ultimate) Closed(i int) bool {
	return v.meta.At(metaCoord(i)) != board.Empty
}

func (v *Ultimate) playable(i int) bool {
	return !v.Closed(i) && (v.active == anyBoard || v.active == i)
}

func (v *Ultimate) Activate(t registry.Target) error {
	if t.Board < 0 || t.Board >= len(v.subs) {
		return rules.Illegal(rules.OutOfBounds, t.Cell)
	}
	c := v.constraints()
	c.Region = func(board.Coord) bool { return v.playable(t.Board) }
	sub := v.subs[t.Board]
	if err := rules.Validate(sub, t.Cell, c); err != nil {
		return err
	}

	p := v.sess.Current()
	sub.Set(t.Cell, p.Mark)
	if _, err := v.sess.Record(session.Place, p.Mark, t.Cell); err != nil {
		return err
	}
	v.sess.Annotate(fmt.Sprintf("board %d", t.Board+1))

	if o := rules.Evaluate(sub, t.Cell); o.Decided() {
		mc := metaCoord(t.Board)
		if o.Winner.IsPlayer() {
			v.meta.Set(mc, o.Winner)
			v.subWins[t.Board] = o.Line
		} else {
			v.meta.Set(mc, board.Blocked)
		}
		mo := rules.Evaluate(v.meta, mc)
		if v.conclude(mo, false) {
			v.metaWin = mo.Line
			return nil
		}
	}

	v.active = cellIndex(t.Cell)
	if v.Closed(v.active) {
		v.active = anyBoard
	}
	v.sess.Advance(session.Normal)
	return nil
}

func (v *Ultimate) Panels() []registry.Panel {
	return []registry.Panel{{
		Title:  "Ultimate",
		Width:  9,
		Height: 9,
		Group:  3,
		Active: !v.sess.Over(),
		At: func(x, y int) registry.Cell {
			b := (y/3)*3 + x/3
			c := board.C(x%3, y%3)
			glyph, color := v.glyph(v.subs[b].At(c))
			if owner := v.meta.At(metaCoord(b)); owner.IsPlayer() {
				_, color = v.glyph(owner)
			}
			return registry.Cell{
				Target:    registry.Target{Board: b, Cell: c},
				Glyph:     glyph,
				Color:     color,
				Highlight: contains(v.subWins[b], c) || contains(v.metaWin, metaCoord(b)),
				Dim:       v.sess.Over() || !v.playable(b),
			}
		},
	}}
}

func (v *Ultimate) Status() []string {
	target := "any open board"
	if v.active != anyBoard {
		target = fmt.Sprintf("board %d", v.active+1)
	}
	closed := 0
	for i := range v.subs {
		if v.Closed(i) {
			closed++
		}
	}
	return v.status(
		"Play in: "+target,
		fmt.Sprintf("Boards closed: %d/9", closed),
	)
}
