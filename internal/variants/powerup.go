package variants

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/rules"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
)

var errNoPower = errors.New("no such power-up in inventory")

func init() {
	registry.Register("powerup", func(s config.Variants) registry.Variant { return NewPowerUp(s.PowerUp) })
}

// Power is a collectible effect hidden under a cell.
type Power int

const (
	PowerExtraTurn Power = iota + 1 // next placement keeps the turn
	PowerSwap                       // every X becomes O and vice versa
	PowerBlock                      // next click blocks a cell instead of placing
	PowerDouble                     // place twice this turn
)

var powers = []Power{PowerExtraTurn, PowerSwap, PowerBlock, PowerDouble}

func (p Power) String() string {
	switch p {
	case PowerExtraTurn:
		return "Extra turn"
	case PowerSwap:
		return "Swap"
	case PowerBlock:
		return "Block"
	case PowerDouble:
		return "Double"
	default:
		return "?"
	}
}

// Key returns the command key that uses the power.
func (p Power) Key() string {
	return fmt.Sprint(int(p))
}

// PowerUp hides power-ups under random cells. Placing on one adds it to the
// player's inventory; using one never ends the turn by itself.
type PowerUp struct {
	*lineGame
	settings  config.PowerUpSettings
	hidden    map[board.Coord]Power
	inventory map[session.PlayerID]map[Power]int
	bonus     int  // placements left that keep the turn
	blocking  bool // next activation blocks a cell
}

// NewPowerUp creates a power-up game.
func NewPowerUp(s config.PowerUpSettings) *PowerUp {
	v := &PowerUp{
		lineGame: newLineGame("powerup", "Power-Ups", "Collect hidden power-ups: extra turn, swap, block, double", xo(), board.Plane(3, 3, 3)),
		settings: s,
	}
	v.Reset(core.DefaultConfig())
	return v
}

func (v *PowerUp) Reset(cfg core.RuntimeConfig) {
	v.lineGame.Reset(cfg)
	v.hidden = make(map[board.Coord]Power)
	v.inventory = make(map[session.PlayerID]map[Power]int)
	for _, p := range v.sess.Players() {
		v.inventory[p.ID] = make(map[Power]int)
	}
	v.bonus = 0
	v.blocking = false

	n := v.settings.Min
	if v.settings.Max > n {
		n += v.rng.Intn(v.settings.Max - n + 1)
	}
	cells := v.grid.Cells()
	v.rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	for _, c := range cells[:min(n, len(cells))] {
		v.hidden[c] = powers[v.rng.Intn(len(powers))]
	}
}

func (v *PowerUp) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

// Inventory returns how many of each power a player holds.
func (v *PowerUp) Inventory(id session.PlayerID) map[Power]int {
	out := make(map[Power]int)
	for p, n := range v.inventory[id] {
		out[p] = n
	}
	return out
}

// Hidden reports the power-up under c, if any.
func (v *PowerUp) Hidden(c board.Coord) (Power, bool) {
	p, ok := v.hidden[c]
	return p, ok
}

func (v *PowerUp) Activate(t registry.Target) error {
	at := t.Cell
	if err := rules.Validate(v.grid, at, v.constraints()); err != nil {
		return err
	}
	p := v.sess.Current()

	if v.blocking {
		v.blocking = false
		v.grid.Set(at, board.Blocked)
		delete(v.hidden, at)
		if _, err := v.sess.Record(session.Block, board.Blocked, at); err != nil {
			return err
		}
		v.notice = fmt.Sprintf("%s blocked %s", p.Symbol, at)
		if v.grid.Full() {
			v.sess.Finish(session.Draw, 0)
		}
		return nil
	}

	v.grid.Set(at, p.Mark)
	if _, err := v.sess.Record(session.Place, p.Mark, at); err != nil {
		return err
	}
	if power, ok := v.hidden[at]; ok {
		delete(v.hidden, at)
		v.inventory[p.ID][power]++
		v.sess.Annotate("found " + power.String())
		v.notice = fmt.Sprintf("%s found %s", p.Symbol, power)
	}

	effect := session.Normal
	if v.bonus > 0 {
		v.bonus--
		effect = session.Extra
	}
	v.settle(rules.Evaluate(v.grid, at), effect)
	return nil
}

func (v *PowerUp) Commands() []registry.Command {
	cmds := make([]registry.Command, 0, len(powers))
	for _, p := range powers {
		cmds = append(cmds, registry.Command{Key: p.Key(), Help: "use " + strings.ToLower(p.String())})
	}
	return cmds
}

func (v *PowerUp) Perform(key string) error {
	var power Power
	for _, p := range powers {
		if p.Key() == key {
			power = p
		}
	}
	if power == 0 {
		return v.lineGame.Perform(key)
	}
	if v.sess.Over() {
		return session.ErrGameOver
	}
	p := v.sess.Current()
	if v.inventory[p.ID][power] == 0 {
		return fmt.Errorf("%w: %s", errNoPower, power)
	}
	v.inventory[p.ID][power]--

	if _, err := v.sess.Record(session.PowerEffect, board.Empty); err != nil {
		return err
	}
	v.sess.Annotate(power.String())
	v.notice = fmt.Sprintf("%s used %s", p.Symbol, power)

	switch power {
	case PowerExtraTurn:
		v.bonus++
	case PowerDouble:
		v.bonus++
	case PowerBlock:
		v.blocking = true
	case PowerSwap:
		v.swap()
	}
	return nil
}

// swap exchanges every X and O, then checks whether that completed a line.
func (v *PowerUp) swap() {
	for _, c := range v.grid.Occupied() {
		switch v.grid.At(c) {
		case MarkX:
			v.grid.Set(c, MarkO)
		case MarkO:
			v.grid.Set(c, MarkX)
		}
	}
	if o := rules.EvaluateBoard(v.grid); o.Winner.IsPlayer() {
		v.win = o.Line
		v.conclude(o, false)
	}
}

func (v *PowerUp) Panels() []registry.Panel {
	panels := v.lineGame.Panels()
	at := panels[0].At
	panels[0].At = func(x, y int) registry.Cell {
		cell := at(x, y)
		if _, ok := v.hidden[cell.Target.Cell]; ok && cell.Glyph == "" && !v.sess.Over() {
			cell.Glyph = "?"
			cell.Color = core.ColorYellow
		}
		return cell
	}
	return panels
}

func (v *PowerUp) Status() []string {
	var lines []string
	for _, pl := range v.sess.Players() {
		var held []string
		for _, p := range powers {
			if n := v.inventory[pl.ID][p]; n > 0 {
				held = append(held, fmt.Sprintf("[%s] %s x%d", p.Key(), p, n))
			}
		}
		if len(held) == 0 {
			held = []string{"none"}
		}
		lines = append(lines, pl.Symbol+": "+strings.Join(held, ", "))
	}
	if v.blocking {
		lines = append(lines, "Pick a cell to block")
	}
	if v.bonus > 0 {
		lines = append(lines, fmt.Sprintf("Bonus placements: %d", v.bonus))
	}
	return v.status(lines...)
}
