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

const maxOpenings = 6

func init() {
	registry.Register("randomized", func(s config.Variants) registry.Variant { return NewRandomized(s.Randomized) })
}

// Randomized starts every game from a few random placements, alternating X
// and O. A random placement that would complete a line is never made.
type Randomized struct {
	*lineGame
	openings int
	placed   int
}

// NewRandomized creates a game with the configured number of openings.
func NewRandomized(s config.RandomizedSettings) *Randomized {
	v := &Randomized{
		lineGame: newLineGame("randomized", "Randomized", "The game opens with random moves", xo(), board.Plane(3, 3, 3)),
		openings: core.Clamp(s.OpeningMoves, 0, maxOpenings),
	}
	v.Reset(core.DefaultConfig())
	return v
}

func (v *Randomized) Reset(cfg core.RuntimeConfig) {
	v.lineGame.Reset(cfg)
	v.placed = v.deal()
}

func (v *Randomized) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

// deal places the opening moves and returns how many were made.
func (v *Randomized) deal() int {
	n := 0
	for n < v.openings {
		at, ok := v.safeCell(v.sess.Current().Mark)
		if !ok {
			break
		}
		p := v.sess.Current()
		v.grid.Set(at, p.Mark)
		if _, err := v.sess.Record(session.Place, p.Mark, at); err != nil {
			break
		}
		v.sess.Annotate("opening")
		v.sess.Advance(session.Normal)
		n++
	}
	if n > 0 {
		v.notice = fmt.Sprintf("%d random opening moves placed", n)
	}
	return n
}

// safeCell picks a random vacant cell where m would not complete a line.
func (v *Randomized) safeCell(m board.Mark) (board.Coord, bool) {
	cells := v.grid.Vacant()
	v.rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	for _, c := range cells {
		v.grid.Set(c, m)
		o := rules.Evaluate(v.grid, c)
		v.grid.Set(c, board.Empty)
		if !o.Decided() {
			return c, true
		}
	}
	return board.Coord{}, false
}

// Openings returns how many random moves began the current game.
func (v *Randomized) Openings() int { return v.placed }

func (v *Randomized) Commands() []registry.Command {
	return []registry.Command{
		{Key: "+", Help: "more openings"},
		{Key: "-", Help: "fewer openings"},
		{Key: "r", Help: "re-deal openings"},
	}
}

func (v *Randomized) Perform(key string) error {
	n := v.openings
	switch key {
	case "+":
		n++
	case "-":
		n--
	case "r":
	default:
		return v.lineGame.Perform(key)
	}
	if len(v.sess.History()) > v.placed {
		return rules.ErrConfigurationLocked
	}
	v.openings = core.Clamp(n, 0, maxOpenings)
	v.Reset(v.cfg)
	return nil
}

func (v *Randomized) Status() []string {
	return v.status(fmt.Sprintf("Openings: %d", v.openings))
}
