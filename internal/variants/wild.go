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
	registry.Register("wild", func(config.Variants) registry.Variant { return NewWild() })
}

// Wild lets either player place either symbol. The player whose move most
// recently touched the completed line wins it.
type Wild struct {
	*lineGame
	symbol board.Mark
}

// NewWild creates a wild game.
func NewWild() *Wild {
	v := &Wild{
		lineGame: newLineGame("wild", "Wild", "Place X or O on any turn; complete a line to win", xo(), board.Plane(3, 3, 3)),
	}
	v.Reset(core.DefaultConfig())
	return v
}

func (v *Wild) Reset(cfg core.RuntimeConfig) {
	v.lineGame.Reset(cfg)
	v.symbol = MarkX
}

func (v *Wild) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

// Symbol returns the mark the current player is about to place.
func (v *Wild) Symbol() board.Mark { return v.symbol }

func (v *Wild) Commands() []registry.Command {
	return []registry.Command{
		{Key: "x", Help: "place X"},
		{Key: "o", Help: "place O"},
		{Key: "tab", Help: "toggle symbol"},
	}
}

func (v *Wild) Perform(key string) error {
	switch key {
	case "x":
		v.symbol = MarkX
	case "o":
		v.symbol = MarkO
	case "tab":
		v.symbol = MarkX + MarkO - v.symbol
	default:
		return v.lineGame.Perform(key)
	}
	return nil
}

func (v *Wild) Activate(t registry.Target) error {
	if err := rules.Validate(v.grid, t.Cell, v.constraints()); err != nil {
		return err
	}
	at := t.Cell
	mover := v.sess.Current().ID
	v.grid.Set(at, v.symbol)
	if _, err := v.sess.Record(session.Place, v.symbol, at); err != nil {
		return err
	}
	v.symbol = MarkX

	o := rules.Evaluate(v.grid, at)
	switch {
	case o.Winner.IsPlayer():
		winner, ok := v.sess.LastAuthor(o.Line)
		if !ok {
			winner = mover
		}
		v.win = o.Line
		v.sess.Finish(session.Win, winner)
	case o.Draw:
		v.sess.Finish(session.Draw, 0)
	default:
		v.sess.Advance(session.Normal)
	}
	return nil
}

func (v *Wild) Status() []string {
	glyph, _ := v.glyph(v.symbol)
	return v.status(
		fmt.Sprintf("%s places %s", v.sess.Current().Symbol, glyph),
		"A line goes to whoever touched it last",
	)
}
