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
	registry.Register("obstacle", func(s config.Variants) registry.Variant { return NewObstacle(s.Obstacle) })
}

// Obstacle scatters blocked cells and traps over a classic board. Blocked
// cells can never be played; a player who lands on a trap loses their next
// turn.
type Obstacle struct {
	*lineGame
	settings  config.ObstacleSettings
	obstacles int
	traps     int
}

// NewObstacle creates an obstacle game.
func NewObstacle(s config.ObstacleSettings) *Obstacle {
	v := &Obstacle{
		lineGame: newLineGame("obstacle", "Obstacles", "Blocked cells can't be used; traps cost your next turn", xo(), board.Plane(3, 3, 3)),
		settings: s,
	}
	v.Reset(core.DefaultConfig())
	return v
}

func (v *Obstacle) Reset(cfg core.RuntimeConfig) {
	v.lineGame.Reset(cfg)
	v.obstacles = v.scatter(board.Blocked, v.settings.MinObstacles, v.settings.MaxObstacles)
	v.traps = v.scatter(board.Trap, v.settings.MinTraps, v.settings.MaxTraps)
	v.logger.Debug("obstacles placed", "session", v.sess.ID(), "blocked", v.obstacles, "traps", v.traps)
}

func (v *Obstacle) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

// scatter marks between lo and hi random empty cells with m.
func (v *Obstacle) scatter(m board.Mark, lo, hi int) int {
	n := lo
	if hi > lo {
		n += v.rng.Intn(hi - lo + 1)
	}
	cells := v.grid.Vacant()
	v.rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	placed := 0
	for _, c := range cells {
		if placed == n {
			break
		}
		if v.grid.At(c) == board.Empty {
			v.grid.Set(c, m)
			placed++
		}
	}
	return placed
}

func (v *Obstacle) Activate(t registry.Target) error {
	at := t.Cell
	if err := rules.Validate(v.grid, at, v.constraints()); err != nil {
		return err
	}
	trapped := v.grid.At(at) == board.Trap
	p := v.sess.Current()
	v.grid.Set(at, p.Mark)
	if _, err := v.sess.Record(session.Place, p.Mark, at); err != nil {
		return err
	}
	v.notice = ""
	if trapped {
		v.sess.Annotate("trapped")
		v.sess.Forfeit(p.ID)
		v.notice = fmt.Sprintf("%s hit a trap and loses their next turn", p.Symbol)
	}
	v.settle(rules.Evaluate(v.grid, at), session.Normal)
	return nil
}

func (v *Obstacle) Status() []string {
	return v.status(fmt.Sprintf("Blocked %d  Traps %d", v.obstacles, v.traps))
}
