package variants

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/rules"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
)

var errClockPaused = errors.New("clock is paused")

func init() {
	registry.Register("timecontrolled", func(s config.Variants) registry.Variant { return NewTimeControlled(s.TimeControl) })
}

// TimeControlled is classic with a chess clock. Running out of time loses.
type TimeControlled struct {
	*lineGame
	clock *session.Clock
	step  time.Duration
}

// NewTimeControlled creates a game with the configured clock.
func NewTimeControlled(s config.TimeControlSettings) *TimeControlled {
	v := &TimeControlled{
		lineGame: newLineGame("timecontrolled", "Time Control", "Classic against the clock; run out and you lose", xo(), board.Plane(3, 3, 3)),
		clock:    session.NewClock(s.Initial, s.Increment, 1, 2),
		step:     s.Step,
	}
	v.Reset(core.DefaultConfig())
	return v
}

func (v *TimeControlled) Reset(cfg core.RuntimeConfig) {
	v.lineGame.Reset(cfg)
	v.clock.Reset()
}

func (v *TimeControlled) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

// Clock exposes the countdown.
func (v *TimeControlled) Clock() *session.Clock { return v.clock }

func (v *TimeControlled) Epoch() uint64 { return v.clock.Epoch() }
func (v *TimeControlled) Running() bool { return v.clock.Running() }

// Tick counts down the active player. Stale or paused ticks are ignored.
func (v *TimeControlled) Tick(epoch uint64, dt time.Duration) {
	id, expired := v.clock.Tick(epoch, dt)
	if !expired {
		return
	}
	loser, _ := v.sess.Player(id)
	winner := v.sess.Opponent(id)
	v.notice = fmt.Sprintf("%s ran out of time", loser.Symbol)
	v.sess.Finish(session.Timeout, winner.ID)
}

func (v *TimeControlled) Activate(t registry.Target) error {
	if v.clock.Started() && !v.clock.Running() && !v.sess.Over() {
		return errClockPaused
	}
	if err := rules.Validate(v.grid, t.Cell, v.constraints()); err != nil {
		return err
	}
	if !v.clock.Started() {
		v.clock.Start(v.sess.Current().ID)
	}
	if err := v.place(t.Cell, v.constraints(), v.sess.Current().Mark); err != nil {
		return err
	}
	if v.sess.Over() {
		v.clock.Stop()
		return nil
	}
	v.clock.Switch(v.sess.Current().ID)
	return nil
}

func (v *TimeControlled) Commands() []registry.Command {
	return []registry.Command{
		{Key: "t", Help: "start / pause clock"},
		{Key: "+", Help: "more time"},
		{Key: "-", Help: "less time"},
		{Key: "]", Help: "more increment"},
		{Key: "[", Help: "less increment"},
	}
}

func (v *TimeControlled) Perform(key string) error {
	initial, inc := v.clock.Initial(), v.clock.Increment()
	switch key {
	case "t":
		switch {
		case v.sess.Over():
			return session.ErrGameOver
		case !v.clock.Started():
			v.sess.Begin()
			v.clock.Start(v.sess.Current().ID)
		case v.clock.Running():
			v.clock.Pause()
		default:
			v.clock.Resume()
		}
		return nil
	case "+":
		initial += v.step
	case "-":
		initial = max(initial-v.step, v.step)
	case "]":
		inc += time.Second
	case "[":
		inc = max(inc-time.Second, 0)
	default:
		return v.lineGame.Perform(key)
	}
	return v.clock.Configure(initial, inc)
}

func (v *TimeControlled) Status() []string {
	state := "not started"
	switch {
	case v.clock.Running():
		state = "running"
	case v.clock.Started():
		state = "paused"
	}
	lines := []string{fmt.Sprintf("Clock: %s  (+%s)", state, v.clock.Increment())}
	for _, p := range v.sess.Players() {
		mark := " "
		if v.clock.Running() && v.clock.Active() == p.ID {
			mark = "▶"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", mark, p.Symbol, formatClock(v.clock.Remaining(p.ID))))
	}
	return v.status(lines...)
}

// formatClock renders a duration as m:ss.t.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := int(d / (100 * time.Millisecond))
	return fmt.Sprintf("%d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}
