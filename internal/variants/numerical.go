package variants

import (
	"errors"
	"fmt"
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
	errNumberUsed     = errors.New("number already used")
	errWrongParity    = errors.New("that number belongs to the other player")
	errNoNumberChosen = errors.New("choose a number first")
)

func init() {
	registry.Register("numerical", func(config.Variants) registry.Variant { return NewNumerical() })
}

// Numerical places numbers instead of symbols. The odd player owns 1, 3, 5,
// 7, 9 and the even player 2, 4, 6, 8; each number is used once. A full line
// adding up to 15 wins.
type Numerical struct {
	base
	grid   *board.Grid
	lines  [][]board.Coord
	used   map[int]bool
	choice int
	win    []board.Coord
}

// NewNumerical creates a numeric game. Odd moves first.
func NewNumerical() *Numerical {
	players := []session.Player{
		{ID: 1, Name: "Odd", Symbol: "Odd", Color: core.PlayerColor(0)},
		{ID: 2, Name: "Even", Symbol: "Even", Color: core.PlayerColor(1)},
	}
	geom := board.Plane(3, 3, 3)
	v := &Numerical{
		base:  newBase("numerical", "Numerical", fmt.Sprintf("Odd vs even numbers; a line summing to %d wins", rules.MagicSum), players),
		lines: rules.Lines(geom),
	}
	v.Reset(core.DefaultConfig())
	return v
}

func (v *Numerical) Reset(cfg core.RuntimeConfig) {
	v.restart(cfg)
	v.grid = board.NewGrid(board.Plane(3, 3, 3))
	v.used = make(map[int]bool)
	v.win = nil
	v.choice = v.firstAvailable()
}

func (v *Numerical) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

// parityOf maps a player to the numbers they draw from.
func parityOf(id session.PlayerID) rules.Parity {
	if id == 1 {
		return rules.Odd
	}
	return rules.Even
}

func playerOf(p rules.Parity) session.PlayerID {
	if p == rules.Odd {
		return 1
	}
	return 2
}

// Available lists the unused numbers of a player.
func (v *Numerical) Available(id session.PlayerID) []int {
	var out []int
	for n := 1; n <= 9; n++ {
		if !v.used[n] && rules.ParityOf(board.Mark(n)) == parityOf(id) {
			out = append(out, n)
		}
	}
	return out
}

func (v *Numerical) firstAvailable() int {
	if nums := v.Available(v.sess.Current().ID); len(nums) > 0 {
		return nums[0]
	}
	return 0
}

// Choice returns the number the current player will place.
func (v *Numerical) Choice() int { return v.choice }

// Choose selects the number to place next.
func (v *Numerical) Choose(n int) error {
	switch {
	case v.sess.Over():
		return session.ErrGameOver
	case n < 1 || n > 9:
		return fmt.Errorf("%w %q", ErrUnknownCommand, strconv.Itoa(n))
	case v.used[n]:
		return fmt.Errorf("%w: %d", errNumberUsed, n)
	case rules.ParityOf(board.Mark(n)) != parityOf(v.sess.Current().ID):
		return fmt.Errorf("%w: %d", errWrongParity, n)
	}
	v.choice = n
	return nil
}

func (v *Numerical) Commands() []registry.Command {
	return []registry.Command{{Key: "1-9", Help: "choose number"}}
}

func (v *Numerical) Perform(key string) error {
	if n, err := strconv.Atoi(key); err == nil && len(key) == 1 {
		return v.Choose(n)
	}
	return v.base.Perform(key)
}

func (v *Numerical) Activate(t registry.Target) error {
	at := t.Cell
	if err := rules.Validate(v.grid, at, v.constraints()); err != nil {
		return err
	}
	if v.choice == 0 {
		return errNoNumberChosen
	}
	p := v.sess.Current()
	n := board.Mark(v.choice)
	v.grid.Set(at, n)
	v.used[v.choice] = true
	if _, err := v.sess.Record(session.Place, n, at); err != nil {
		return err
	}

	if line, ok := rules.SumLine(v.grid, rules.LinesThrough(v.lines, at), rules.MagicSum); ok {
		values := make([]board.Mark, len(line))
		for i, c := range line {
			values[i] = v.grid.At(c)
		}
		v.win = line
		v.sess.Finish(session.Win, playerOf(rules.SumWinner(values, parityOf(p.ID))))
		return nil
	}

	v.sess.Advance(session.Normal)
	if v.grid.Full() || len(v.Available(v.sess.Current().ID)) == 0 {
		v.sess.Finish(session.Draw, 0)
		return nil
	}
	v.choice = v.firstAvailable()
	return nil
}

func (v *Numerical) Panels() []registry.Panel {
	return []registry.Panel{{
		Title:  "Numerical",
		Width:  3,
		Height: 3,
		Active: !v.sess.Over(),
		At: func(x, y int) registry.Cell {
			c := board.C(x, y)
			glyph, color := "", core.ColorGray
			if m := v.grid.At(c); m.IsPlayer() {
				glyph = strconv.Itoa(int(m))
				color = core.PlayerColor(0)
				if rules.ParityOf(m) == rules.Even {
					color = core.PlayerColor(1)
				}
			}
			return registry.Cell{
				Target:    registry.Target{Cell: c},
				Glyph:     glyph,
				Color:     color,
				Highlight: contains(v.win, c),
				Dim:       v.sess.Over(),
			}
		},
	}}
}

func (v *Numerical) Status() []string {
	var lines []string
	for _, p := range v.sess.Players() {
		var nums []string
		for _, n := range v.Available(p.ID) {
			nums = append(nums, strconv.Itoa(n))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", p.Symbol, strings.Join(nums, " ")))
	}
	if !v.sess.Over() {
		lines = append(lines, fmt.Sprintf("Placing: %d", v.choice))
	}
	return v.status(lines...)
}
