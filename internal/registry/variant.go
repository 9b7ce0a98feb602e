package registry

import (
	"time"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
)

// Variant is one playable rule set. Implementations hold pure game logic;
// the platform maps keys to Activate and Perform and draws Panels.
type Variant interface {
	// ID returns a unique identifier such as "classic" or "3d".
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Description is a one-line rules summary.
	Description() string

	// Reset starts a new game. Cumulative scores are kept.
	Reset(cfg core.RuntimeConfig)

	// ResetAll starts a new game and zeroes the scores.
	ResetAll()

	// Activate is a click on a cell. Illegal moves return an error wrapping
	// rules.ErrIllegalMove and leave the game untouched.
	Activate(t Target) error

	// Commands lists variant-specific keys; Perform runs one of them.
	Commands() []Command
	Perform(key string) error

	// Panels describes the board surfaces to draw, left to right.
	Panels() []Panel

	// Status returns short lines for the side panel: whose turn, scores,
	// notices and anything else the variant wants to show.
	Status() []string

	// Session exposes turn, history and score state.
	Session() *session.Session
}

// Target addresses a cell on one of a variant's boards.
type Target struct {
	Board int
	Cell  board.Coord
}

// Command is a variant-specific key binding.
type Command struct {
	Key  string
	Help string
}

// Cell is one drawable board position.
type Cell struct {
	Target    Target
	Glyph     string
	Color     core.Color
	Highlight bool // part of the winning line or the active region
	Dim       bool // not currently playable
}

// Panel is a rectangular board surface.
type Panel struct {
	Title  string
	Width  int
	Height int
	Active bool
	Group  int // draw a gap every Group cells; 0 for none
	At     func(x, y int) Cell
}

// Clocked is implemented by variants that run a countdown.
type Clocked interface {
	// Epoch identifies the current clock generation; ticks must carry it.
	Epoch() uint64
	// Running reports whether the countdown is live; ticks are only
	// scheduled while it is.
	Running() bool
	Tick(epoch uint64, dt time.Duration)
}

// TextEntry is implemented by variants that accept typed coordinates.
type TextEntry interface {
	Prompt() string
	Submit(text string) error
}
