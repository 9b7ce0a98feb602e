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

const (
	minKeep = 1
	maxKeep = 5
)

func init() {
	registry.Register("moverotation", func(s config.Variants) registry.Variant { return NewMoveRotation(s.MoveRotation) })
}

// MoveRotation keeps at most a fixed number of marks per player. Placing one
// more removes that player's oldest mark before the board is evaluated.
type MoveRotation struct {
	*lineGame
	keep  int
	marks map[session.PlayerID][]board.Coord // oldest first
}

// NewMoveRotation creates a rotation game.
func NewMoveRotation(s config.MoveRotationSettings) *MoveRotation {
	v := &MoveRotation{
		lineGame: newLineGame("moverotation", "Move Rotation", "Only your newest marks stay on the board", xo(), board.Plane(3, 3, 3)),
		keep:     core.Clamp(s.MaxMoves, minKeep, maxKeep),
	}
	v.Reset(core.DefaultConfig())
	return v
}

func (v *MoveRotation) Reset(cfg core.RuntimeConfig) {
	v.lineGame.Reset(cfg)
	v.marks = make(map[session.PlayerID][]board.Coord)
}

func (v *MoveRotation) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

// Keep returns how many marks each player may have on the board.
func (v *MoveRotation) Keep() int { return v.keep }

func (v *MoveRotation) Activate(t registry.Target) error {
	at := t.Cell
	if err := rules.Validate(v.grid, at, v.constraints()); err != nil {
		return err
	}
	p := v.sess.Current()
	v.grid.Set(at, p.Mark)
	if _, err := v.sess.Record(session.Place, p.Mark, at); err != nil {
		return err
	}
	v.marks[p.ID] = append(v.marks[p.ID], at)

	v.notice = ""
	if q := v.marks[p.ID]; len(q) > v.keep {
		oldest := q[0]
		v.marks[p.ID] = q[1:]
		v.grid.Set(oldest, board.Empty)
		if _, err := v.sess.Record(session.Erase, board.Empty, oldest); err != nil {
			return err
		}
		v.notice = fmt.Sprintf("%s's mark at %s vanished", p.Symbol, oldest)
	}

	v.settle(rules.Evaluate(v.grid, at), session.Normal)
	return nil
}

// nextToVanish returns the cell a player would lose on their next placement.
func (v *MoveRotation) nextToVanish(id session.PlayerID) (board.Coord, bool) {
	q := v.marks[id]
	if len(q) < v.keep || len(q) == 0 {
		return board.Coord{}, false
	}
	return q[0], true
}

func (v *MoveRotation) Commands() []registry.Command {
	return []registry.Command{
		{Key: "+", Help: "keep more marks"},
		{Key: "-", Help: "keep fewer marks"},
	}
}

func (v *MoveRotation) Perform(key string) error {
	n := v.keep
	switch key {
	case "+":
		n++
	case "-":
		n--
	default:
		return v.lineGame.Perform(key)
	}
	if v.sess.Phase() != session.Setup {
		return rules.ErrConfigurationLocked
	}
	v.keep = core.Clamp(n, minKeep, maxKeep)
	return nil
}

func (v *MoveRotation) Panels() []registry.Panel {
	panels := v.lineGame.Panels()
	at := panels[0].At
	panels[0].At = func(x, y int) registry.Cell {
		cell := at(x, y)
		if c, ok := v.nextToVanish(v.sess.Current().ID); ok && c == cell.Target.Cell && !v.sess.Over() {
			cell.Dim = true
		}
		return cell
	}
	return panels
}

func (v *MoveRotation) Status() []string {
	return v.status(fmt.Sprintf("Each player keeps %d marks", v.keep))
}
