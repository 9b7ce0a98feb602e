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
	registry.Register("tictactwo", func(config.Variants) registry.Variant { return NewTicTacTwo() })
}

// TicTacTwo is played on two boards; each move switches play to the other
// board while it is open. Winning both boards wins the game. When both boards
// are closed without a double win the game is drawn.
type TicTacTwo struct {
	base
	boards  [2]*board.Grid
	winners [2]board.Mark
	lines   [2][]board.Coord
	closed  [2]bool
	active  int
}

// NewTicTacTwo creates a two-board game.
func NewTicTacTwo() *TicTacTwo {
	v := &TicTacTwo{
		base: newBase("tictactwo", "Tic-Tac-Two", "Two boards, alternating; win both to win", xo()),
	}
	v.Reset(core.DefaultConfig())
	return v
}

func (v *TicTacTwo) Reset(cfg core.RuntimeConfig) {
	v.restart(cfg)
	for i := range v.boards {
		v.boards[i] = board.NewGrid(board.Plane(3, 3, 3))
		v.winners[i] = board.Empty
		v.lines[i] = nil
		v.closed[i] = false
	}
	v.active = 0
}

func (v *TicTacTwo) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

// Active returns the board the current player must play on.
func (v *TicTacTwo) Active() int { return v.active }

func (v *TicTacTwo) Activate(t registry.Target) error {
	if t.Board < 0 || t.Board > 1 {
		return rules.Illegal(rules.OutOfBounds, t.Cell)
	}
	c := v.constraints()
	c.Region = func(board.Coord) bool { return t.Board == v.active && !v.closed[t.Board] }
	b := v.boards[t.Board]
	if err := rules.Validate(b, t.Cell, c); err != nil {
		return err
	}

	p := v.sess.Current()
	b.Set(t.Cell, p.Mark)
	if _, err := v.sess.Record(session.Place, p.Mark, t.Cell); err != nil {
		return err
	}
	v.sess.Annotate(fmt.Sprintf("board %d", t.Board+1))

	o := rules.Evaluate(b, t.Cell)
	if o.Decided() {
		v.closed[t.Board] = true
		v.winners[t.Board] = o.Winner
		v.lines[t.Board] = o.Line
	}

	switch {
	case v.winners[0].IsPlayer() && v.winners[0] == v.winners[1]:
		v.conclude(rules.Outcome{Winner: v.winners[0]}, false)
		return nil
	case v.closed[0] && v.closed[1]:
		v.sess.Finish(session.Draw, 0)
		return nil
	}

	if other := 1 - t.Board; !v.closed[other] {
		v.active = other
	}
	v.sess.Advance(session.Normal)
	return nil
}

func (v *TicTacTwo) Panels() []registry.Panel {
	panels := make([]registry.Panel, 2)
	for i := range panels {
		title := fmt.Sprintf("Board %d", i+1)
		if w := v.winners[i]; w.IsPlayer() {
			g, _ := v.glyph(w)
			title += " · " + g + " won"
		} else if v.closed[i] {
			title += " · tied"
		}
		panels[i] = registry.Panel{
			Title:  title,
			Width:  3,
			Height: 3,
			Active: !v.sess.Over() && i == v.active,
			At: func(x, y int) registry.Cell {
				c := board.C(x, y)
				glyph, color := v.glyph(v.boards[i].At(c))
				return registry.Cell{
					Target:    registry.Target{Board: i, Cell: c},
					Glyph:     glyph,
					Color:     color,
					Highlight: contains(v.lines[i], c),
					Dim:       v.sess.Over() || i != v.active || v.closed[i],
				}
			},
		}
	}
	return panels
}

func (v *TicTacTwo) Status() []string {
	return v.status(fmt.Sprintf("Active board: %d", v.active+1))
}
