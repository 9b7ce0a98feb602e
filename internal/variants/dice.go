package variants

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
)

var (
	errMustRoll      = errors.New("roll the die first")
	errAlreadyRolled = errors.New("already rolled this turn")
	errNoRerolls     = errors.New("no rerolls left")
)

// cellNames are the classic cells in roll order, 1 through 9.
var cellNames = []string{
	"top-left", "top-center", "top-right",
	"middle-left", "center", "middle-right",
	"bottom-left", "bottom-center", "bottom-right",
}

func init() {
	registry.Register("dice", func(s config.Variants) registry.Variant { return NewDice(s.Dice) })
}

// Dice rolls 1-9 each turn; the roll names the only cell that may be played.
// An occupied roll can be rerolled a limited number of times or the turn
// skipped.
type Dice struct {
	*lineGame
	rerolls int
	left    int
	rolled  int // 0 until the current player rolls
}

// NewDice creates a dice game.
func NewDice(s config.DiceSettings) *Dice {
	v := &Dice{
		lineGame: newLineGame("dice", "Dice", "Roll to pick your cell; reroll or skip when it's taken", xo(), board.Plane(3, 3, 3)),
		rerolls:  s.Rerolls,
	}
	v.Reset(core.DefaultConfig())
	return v
}

func (v *Dice) Reset(cfg core.RuntimeConfig) {
	v.lineGame.Reset(cfg)
	v.newTurn()
}

func (v *Dice) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

func (v *Dice) newTurn() {
	v.rolled = 0
	v.left = v.rerolls
}

// Rolled returns the current roll, 0 when the player has not rolled.
func (v *Dice) Rolled() int { return v.rolled }

// RerollsLeft returns the rerolls remaining this turn.
func (v *Dice) RerollsLeft() int { return v.left }

// target is the cell named by the current roll.
func (v *Dice) target() board.Coord {
	return v.grid.CoordAt(v.rolled - 1)
}

func (v *Dice) roll() error {
	v.rolled = v.rng.Intn(9) + 1
	if _, err := v.sess.Record(session.Roll, board.Empty, v.target()); err != nil {
		return err
	}
	note := fmt.Sprintf("rolled %d (%s)", v.rolled, cellNames[v.rolled-1])
	if !v.grid.At(v.target()).Vacant() {
		note += ", occupied"
	}
	v.sess.Annotate(note)
	v.notice = fmt.Sprintf("%s %s", v.sess.Current().Symbol, note)
	return nil
}

func (v *Dice) Commands() []registry.Command {
	return []registry.Command{
		{Key: "r", Help: "roll"},
		{Key: "x", Help: "reroll"},
		{Key: "s", Help: "skip turn"},
	}
}

func (v *Dice) Perform(key string) error {
	if key != "r" && key != "x" && key != "s" {
		return v.lineGame.Perform(key)
	}
	if v.sess.Over() {
		return session.ErrGameOver
	}
	switch key {
	case "r":
		if v.rolled != 0 {
			return errAlreadyRolled
		}
		return v.roll()
	case "x":
		if v.rolled == 0 {
			return errMustRoll
		}
		if v.left == 0 {
			return errNoRerolls
		}
		v.left--
		return v.roll()
	default:
		if v.rolled == 0 {
			return errMustRoll
		}
		if _, err := v.sess.Record(session.Skip, board.Empty); err != nil {
			return err
		}
		v.notice = fmt.Sprintf("%s skipped", v.sess.Current().Symbol)
		v.sess.Advance(session.Normal)
		v.newTurn()
		return nil
	}
}

func (v *Dice) Activate(t registry.Target) error {
	if v.rolled == 0 && !v.sess.Over() {
		return errMustRoll
	}
	c := v.constraints()
	c.Region = func(at board.Coord) bool { return at == v.target() }
	if err := v.place(t.Cell, c, v.sess.Current().Mark); err != nil {
		return err
	}
	v.newTurn()
	return nil
}

func (v *Dice) Panels() []registry.Panel {
	panels := v.lineGame.Panels()
	at := panels[0].At
	panels[0].At = func(x, y int) registry.Cell {
		cell := at(x, y)
		if v.rolled != 0 && !v.sess.Over() {
			cell.Highlight = cell.Target.Cell == v.target()
			cell.Dim = !cell.Highlight
		}
		return cell
	}
	return panels
}

func (v *Dice) Status() []string {
	roll := "not rolled"
	if v.rolled != 0 {
		roll = fmt.Sprintf("%d → %s", v.rolled, cellNames[v.rolled-1])
	}
	return v.status(
		"Roll: "+roll,
		fmt.Sprintf("Rerolls left: %d", v.left),
	)
}
