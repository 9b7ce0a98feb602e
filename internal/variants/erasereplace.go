package variants

import (
	"fmt"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/rules"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
)

func init() {
	registry.Register("erasereplace", func(s config.Variants) registry.Variant { return NewEraseReplace(s.EraseReplace) })
}

// EraseReplace lets a player overwrite an opponent's mark once enough turns
// have been played.
type EraseReplace struct {
	*lineGame
	unlock int
}

// NewEraseReplace creates an erase-and-replace game.
func NewEraseReplace(s config.EraseReplaceSettings) *EraseReplace {
	desc := fmt.Sprintf("After %d turns you may overwrite an opponent's mark", s.UnlockAfter)
	return &EraseReplace{
		lineGame: newLineGame("erasereplace", "Erase & Replace", desc, xo(), board.Plane(3, 3, 3)),
		unlock:   s.UnlockAfter,
	}
}

// Unlocked reports whether overwriting is allowed yet.
func (v *EraseReplace) Unlocked() bool {
	return v.sess.Moves(session.Place) >= v.unlock
}

func (v *EraseReplace) Activate(t registry.Target) error {
	at := t.Cell
	p := v.sess.Current()
	c := v.constraints()
	if v.Unlocked() {
		c.Replace = func(m board.Mark) bool { return m.IsPlayer() && m != p.Mark }
	}
	if err := rules.Validate(v.grid, at, c); err != nil {
		return err
	}

	v.notice = ""
	prev := v.grid.At(at)
	if prev.IsPlayer() {
		v.grid.Set(at, board.Empty)
		if _, err := v.sess.Record(session.Erase, board.Empty, at); err != nil {
			return err
		}
		glyph, _ := v.glyph(prev)
		v.notice = fmt.Sprintf("%s erased %s at %s", p.Symbol, glyph, at)
	}
	v.grid.Set(at, p.Mark)
	if _, err := v.sess.Record(session.Place, p.Mark, at); err != nil {
		return err
	}
	if prev.IsPlayer() {
		v.sess.Annotate("replaced")
		v.logger.Debug("mark replaced", "session", v.sess.ID(), "player", p.Symbol, "cell", at)
	}
	v.settle(rules.Evaluate(v.grid, at), session.Normal)
	return nil
}

func (v *EraseReplace) Status() []string {
	if v.Unlocked() {
		return v.status("Erase unlocked: click an opponent mark")
	}
	left := v.unlock - v.sess.Moves(session.Place)
	return v.status(fmt.Sprintf("Erase unlocks in %d turns", left))
}
