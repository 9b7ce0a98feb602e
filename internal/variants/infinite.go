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
	registry.Register("infinite", func(s config.Variants) registry.Variant { return NewInfinite(s.Infinite) })
}

// Infinite is K in a row on an unbounded plane seen through a viewport.
// There is no draw.
type Infinite struct {
	base
	k    int
	grid *board.Sparse
	view board.Viewport
	last *board.Coord
	win  []board.Coord
}

// NewInfinite creates an unbounded game.
func NewInfinite(s config.InfiniteSettings) *Infinite {
	v := &Infinite{
		base: newBase("infinite", "Infinite", fmt.Sprintf("%d in a row on an endless board", s.WinLength), xo()),
		k:    s.WinLength,
		view: board.NewViewport(s.ViewSpan),
	}
	v.Reset(core.DefaultConfig())
	return v
}

func (v *Infinite) Reset(cfg core.RuntimeConfig) {
	v.restart(cfg)
	v.grid = board.NewSparse(v.k)
	v.view.Reset()
	v.last = nil
	v.win = nil
}

func (v *Infinite) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

func (v *Infinite) Activate(t registry.Target) error {
	at := t.Cell
	if err := rules.Validate(v.grid, at, v.constraints()); err != nil {
		return err
	}
	p := v.sess.Current()
	v.grid.Set(at, p.Mark)
	if _, err := v.sess.Record(session.Place, p.Mark, at); err != nil {
		return err
	}
	v.last = &at

	o := rules.Evaluate(v.grid, at)
	if v.conclude(o, false) {
		v.win = o.Line
		return nil
	}
	v.sess.Advance(session.Normal)
	return nil
}

func (v *Infinite) Commands() []registry.Command {
	return []registry.Command{
		{Key: "w", Help: "pan up"},
		{Key: "a", Help: "pan left"},
		{Key: "s", Help: "pan down"},
		{Key: "d", Help: "pan right"},
		{Key: "+", Help: "zoom in"},
		{Key: "-", Help: "zoom out"},
		{Key: "c", Help: "center on last move"},
		{Key: "f", Help: "fit all marks"},
	}
}

func (v *Infinite) Perform(key string) error {
	step := max(v.view.Visible()/3, 1)
	switch key {
	case "w":
		v.view.Pan(0, -step)
	case "a":
		v.view.Pan(-step, 0)
	case "s":
		v.view.Pan(0, step)
	case "d":
		v.view.Pan(step, 0)
	case "+":
		v.view.ZoomBy(board.ZoomStep)
	case "-":
		v.view.ZoomBy(-board.ZoomStep)
	case "c":
		if v.last != nil {
			v.view.CenterOn(*v.last)
		} else {
			v.view.CenterOn(board.Coord{})
		}
	case "f":
		v.view.Fit(v.grid)
	default:
		return v.base.Perform(key)
	}
	return nil
}

// Viewport returns the current window onto the board.
func (v *Infinite) Viewport() board.Viewport { return v.view }

func (v *Infinite) Panels() []registry.Panel {
	n := v.view.Visible()
	return []registry.Panel{{
		Title:  fmt.Sprintf("Infinite @ %s", v.view.Center),
		Width:  n,
		Height: n,
		Active: !v.sess.Over(),
		At: func(x, y int) registry.Cell {
			c := v.view.CellAt(x, y)
			glyph, color := v.glyph(v.grid.At(c))
			if glyph == "" && c == (board.Coord{}) {
				glyph, color = "+", core.ColorGray
			}
			return registry.Cell{
				Target:    registry.Target{Cell: c},
				Glyph:     glyph,
				Color:     color,
				Highlight: contains(v.win, c) || (v.last != nil && *v.last == c),
				Dim:       v.sess.Over(),
			}
		},
	}}
}

func (v *Infinite) Status() []string {
	return v.status(
		fmt.Sprintf("%d in a row wins", v.k),
		fmt.Sprintf("View %dx%d  zoom %.1f", v.view.Visible(), v.view.Visible(), v.view.Zoom),
		fmt.Sprintf("Marks placed: %d", v.grid.Len()),
	)
}
