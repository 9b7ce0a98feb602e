package variants

import (
	"fmt"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/rules"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
)

// lineGame is K-in-a-row on one dense grid. Most variants are a lineGame
// with extra state around placement.
type lineGame struct {
	base
	geom   board.Geometry
	grid   *board.Grid
	win    []board.Coord
	misere bool
}

func newLineGame(id, title, desc string, players []session.Player, geom board.Geometry) *lineGame {
	g := &lineGame{
		base: newBase(id, title, desc, players),
		geom: geom,
	}
	g.Reset(core.DefaultConfig())
	return g
}

func (g *lineGame) Reset(cfg core.RuntimeConfig) {
	g.restart(cfg)
	g.grid = board.NewGrid(g.geom)
	g.win = nil
}

func (g *lineGame) ResetAll() {
	g.sess.ResetAll()
	g.Reset(g.cfg)
}

func (g *lineGame) Activate(t registry.Target) error {
	return g.place(t.Cell, g.constraints(), g.sess.Current().Mark)
}

// place validates and applies a placement for the current player, records
// it and settles the outcome.
func (g *lineGame) place(at board.Coord, c rules.Constraints, mark board.Mark) error {
	if err := rules.Validate(g.grid, at, c); err != nil {
		return err
	}
	at = g.grid.Normalize(at)
	g.grid.Set(at, mark)
	if _, err := g.sess.Record(session.Place, mark, at); err != nil {
		return err
	}
	g.settle(rules.Evaluate(g.grid, at), session.Normal)
	return nil
}

// settle ends the game on a decided outcome or passes the turn.
func (g *lineGame) settle(o rules.Outcome, effect session.Effect) {
	if o.Decided() {
		g.win = o.Line
		g.conclude(o, g.misere)
		return
	}
	g.sess.Advance(effect)
}

func (g *lineGame) Panels() []registry.Panel {
	if g.geom.Depth > 1 {
		panels := make([]registry.Panel, g.geom.Depth)
		for z := range panels {
			panels[z] = g.layer(fmt.Sprintf("Layer %d", z+1), z)
		}
		return panels
	}
	return []registry.Panel{g.layer(g.title, 0)}
}

// layer draws one Z slice of the grid.
func (g *lineGame) layer(title string, z int) registry.Panel {
	return registry.Panel{
		Title:  title,
		Width:  g.geom.Width,
		Height: max(g.geom.Height, 1),
		Active: !g.sess.Over(),
		At: func(x, y int) registry.Cell {
			c := board.Coord{X: x, Y: y, Z: z}
			return g.cell(registry.Target{Board: z, Cell: c})
		},
	}
}

func (g *lineGame) cell(t registry.Target) registry.Cell {
	glyph, color := g.glyph(g.grid.At(t.Cell))
	return registry.Cell{
		Target:    t,
		Glyph:     glyph,
		Color:     color,
		Highlight: contains(g.win, t.Cell),
		Dim:       g.sess.Over(),
	}
}

func (g *lineGame) Status() []string {
	if g.misere {
		return g.status("Completing a line loses")
	}
	return g.status(fmt.Sprintf("%d in a row wins", g.geom.WinLength))
}
