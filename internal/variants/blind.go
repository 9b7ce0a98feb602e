package variants

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/rules"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
)

var (
	errBadCoordinate = errors.New(`unknown coordinate; try "2,3", "center" or "tl"`)
	errBoardHidden   = errors.New("the board is hidden; type a coordinate")
)

var gridCoord = regexp.MustCompile(`^(\d)\s*,\s*(\d)$`)

// positionNames maps the accepted spoken positions to cell indexes.
var positionNames = map[string]int{
	"top-left": 0, "topleft": 0, "tl": 0, "1": 0,
	"top-center": 1, "topcenter": 1, "tc": 1, "top": 1, "2": 1,
	"top-right": 2, "topright": 2, "tr": 2, "3": 2,
	"middle-left": 3, "middleleft": 3, "ml": 3, "left": 3, "4": 3,
	"center": 4, "middle": 4, "c": 4, "5": 4,
	"middle-right": 5, "middleright": 5, "mr": 5, "right": 5, "6": 5,
	"bottom-left": 6, "bottomleft": 6, "bl": 6, "7": 6,
	"bottom-center": 7, "bottomcenter": 7, "bc": 7, "bottom": 7, "8": 7,
	"bottom-right": 8, "bottomright": 8, "br": 8, "9": 8,
}

// ParseCoordinate reads "row,col" (1-based) or a position name such as
// "center" or "tl" and returns the cell on a 3x3 board.
func ParseCoordinate(s string) (board.Coord, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m := gridCoord.FindStringSubmatch(s); m != nil {
		row, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		if row >= 1 && row <= 3 && col >= 1 && col <= 3 {
			return board.C(col-1, row-1), nil
		}
	}
	if i, ok := positionNames[s]; ok {
		return board.C(i%3, i/3), nil
	}
	return board.Coord{}, errBadCoordinate
}

// Attempt is one typed coordinate and whether it was played.
type Attempt struct {
	Player session.PlayerID
	Input  string
	Cell   board.Coord
	OK     bool
}

// Blind hides the board; moves are typed as coordinates. Calling an occupied
// cell is logged and the player tries again.
type Blind struct {
	*lineGame
	visible  bool
	attempts []Attempt
}

// NewBlind creates a blind game.
func NewBlind() *Blind {
	v := &Blind{
		lineGame: newLineGame("blind", "Blind", "The board is hidden; call your moves by coordinate", xo(), board.Plane(3, 3, 3)),
	}
	v.Reset(core.DefaultConfig())
	return v
}

func init() {
	registry.Register("blind", func(config.Variants) registry.Variant { return NewBlind() })
}

func (v *Blind) Reset(cfg core.RuntimeConfig) {
	v.lineGame.Reset(cfg)
	v.visible = false
	v.attempts = nil
}

func (v *Blind) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

// Attempts returns the coordinate log of the current game.
func (v *Blind) Attempts() []Attempt {
	return append([]Attempt(nil), v.attempts...)
}

// Visible reports whether the board is shown.
func (v *Blind) Visible() bool { return v.visible || v.sess.Over() }

func (v *Blind) Prompt() string {
	return fmt.Sprintf("%s, call a cell (row,col or name):", v.sess.Current().Symbol)
}

// Submit plays a typed coordinate for the current player.
func (v *Blind) Submit(text string) error {
	at, err := ParseCoordinate(text)
	if err != nil {
		return err
	}
	return v.try(strings.TrimSpace(text), at)
}

func (v *Blind) Activate(t registry.Target) error {
	if !v.Visible() {
		return errBoardHidden
	}
	return v.try(t.Cell.String(), t.Cell)
}

func (v *Blind) try(input string, at board.Coord) error {
	p := v.sess.Current()
	err := rules.Validate(v.grid, at, v.constraints())
	if reason, ok := rules.ReasonOf(err); ok && reason == rules.AlreadyOccupied {
		v.attempts = append(v.attempts, Attempt{Player: p.ID, Input: input, Cell: at})
		v.logger.Info("occupied cell called", "session", v.sess.ID(), "player", p.Symbol, "input", input)
		v.notice = fmt.Sprintf("%s is taken, try again", cellNames[at.Y*3+at.X])
		return err
	}
	if err != nil {
		return err
	}
	v.attempts = append(v.attempts, Attempt{Player: p.ID, Input: input, Cell: at, OK: true})
	v.notice = fmt.Sprintf("%s played %s", p.Symbol, cellNames[at.Y*3+at.X])
	return v.place(at, v.constraints(), p.Mark)
}

func (v *Blind) Commands() []registry.Command {
	return []registry.Command{{Key: "v", Help: "show / hide board"}}
}

func (v *Blind) Perform(key string) error {
	if key != "v" {
		return v.lineGame.Perform(key)
	}
	v.visible = !v.visible
	return nil
}

func (v *Blind) Panels() []registry.Panel {
	panels := v.lineGame.Panels()
	at := panels[0].At
	panels[0].At = func(x, y int) registry.Cell {
		cell := at(x, y)
		if !v.Visible() {
			cell.Glyph = ""
			cell.Dim = true
		}
		return cell
	}
	return panels
}

func (v *Blind) Status() []string {
	lines := []string{fmt.Sprintf("Moves called: %d", len(v.attempts))}
	misses := 0
	for _, a := range v.attempts {
		if !a.OK {
			misses++
		}
	}
	if misses > 0 {
		lines = append(lines, fmt.Sprintf("Occupied calls: %d", misses))
	}
	if !v.Visible() {
		lines = append(lines, "Board hidden [v]")
	}
	return v.status(lines...)
}
