// Package variants implements every playable rule set. Each variant is a
// registry.Variant built from the board, rules and session kernels and
// registers itself in init().
package variants

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/rules"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
)

// ErrUnknownCommand is returned by Perform for keys a variant does not bind.
var ErrUnknownCommand = errors.New("unknown command")

// Player marks. Numeric variants store numbers instead.
const (
	MarkX     board.Mark = 1
	MarkO     board.Mark = 2
	MarkDelta board.Mark = 3
)

func playerX() session.Player {
	return session.Player{ID: 1, Name: "Player X", Symbol: "X", Mark: MarkX, Color: core.PlayerColor(0)}
}

func playerO() session.Player {
	return session.Player{ID: 2, Name: "Player O", Symbol: "O", Mark: MarkO, Color: core.PlayerColor(1)}
}

func playerDelta() session.Player {
	return session.Player{ID: 3, Name: "Player Δ", Symbol: "Δ", Mark: MarkDelta, Color: core.PlayerColor(2)}
}

func xo() []session.Player {
	return []session.Player{playerX(), playerO()}
}

// base carries what every variant shares: identity, the session, the random
// source and a one-line notice for the status panel.
type base struct {
	id, title, desc string

	sess   *session.Session
	cfg    core.RuntimeConfig
	rng    *rand.Rand
	notice string
	logger *log.Logger
}

func newBase(id, title, desc string, players []session.Player) base {
	cfg := core.DefaultConfig()
	return base{
		id:     id,
		title:  title,
		desc:   desc,
		sess:   session.New(players),
		cfg:    cfg,
		rng:    cfg.NewRand(),
		logger: log.Default(),
	}
}

func (b *base) ID() string { return b.id }
func (b *base) Title() string { return b.title }
func (b *base) Description() string { return b.desc }
func (b *base) Session() *session.Session { return b.sess }
func (b *base) Commands() []registry.Command { return nil }

func (b *base) Perform(key string) error {
	return fmt.Errorf("%w %q", ErrUnknownCommand, key)
}

// restart begins a new game: fresh random source, fresh session state.
func (b *base) restart(cfg core.RuntimeConfig) {
	b.cfg = cfg
	b.rng = cfg.NewRand()
	b.notice = ""
	b.sess.Reset()
}

// constraints returns the validator predicates every variant starts from.
func (b *base) constraints() rules.Constraints {
	return rules.Constraints{Over: b.sess.Over()}
}

// conclude finishes the game for a decided outcome and reports whether it
// did. With misere set, the owner of the completed line loses.
func (b *base) conclude(o rules.Outcome, misere bool) bool {
	switch {
	case o.Winner.IsPlayer():
		p, ok := b.sess.PlayerByMark(o.Winner)
		if !ok {
			p = b.sess.Current()
		}
		if misere {
			p = b.sess.Opponent(p.ID)
		}
		b.sess.Finish(session.Win, p.ID)
		return true
	case o.Draw:
		b.sess.Finish(session.Draw, 0)
		return true
	}
	return false
}

// status builds the side-panel lines: turn or result, scores, extras and
// the current notice.
func (b *base) status(extra ...string) []string {
	var lines []string
	switch b.sess.Result() {
	case session.Win:
		w, _ := b.sess.Winner()
		lines = append(lines, fmt.Sprintf("%s wins!", w.Symbol))
	case session.Timeout:
		w, _ := b.sess.Winner()
		lines = append(lines, fmt.Sprintf("%s wins on time!", w.Symbol))
	case session.Draw:
		lines = append(lines, "Draw!")
	default:
		lines = append(lines, fmt.Sprintf("Turn: %s", b.sess.Current().Symbol))
	}
	lines = append(lines, b.sess.Scores().Summary(b.sess.Players()))
	lines = append(lines, extra...)
	if b.notice != "" {
		lines = append(lines, b.notice)
	}
	return lines
}

// glyph renders a board mark using the session's player symbols.
func (b *base) glyph(m board.Mark) (string, core.Color) {
	switch m {
	case board.Empty:
		return "", core.ColorGray
	case board.Blocked:
		return "#", core.ColorGray
	case board.Trap:
		return "^", core.ColorOrange
	}
	if p, ok := b.sess.PlayerByMark(m); ok {
		return p.Symbol, p.Color
	}
	return fmt.Sprint(int(m)), core.ColorWhite
}

func contains(line []board.Coord, c board.Coord) bool {
	for _, lc := range line {
		if lc == c {
			return true
		}
	}
	return false
}
