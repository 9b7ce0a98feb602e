package variants

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
)

func init() {
	registry.Register("threeplayer", func(s config.Variants) registry.Variant { return NewThreePlayer(s.ThreePlayer) })
}

// ThreePlayer is X, O and Δ on a larger board.
type ThreePlayer struct {
	*lineGame
	shuffle bool
}

// NewThreePlayer creates a three-player game.
func NewThreePlayer(s config.ThreePlayerSettings) *ThreePlayer {
	players := []session.Player{playerX(), playerO(), playerDelta()}
	desc := fmt.Sprintf("Three players, %d in a row on %dx%d", s.WinLength, s.Size, s.Size)
	v := &ThreePlayer{
		lineGame: newLineGame("threeplayer", "Three Players", desc, players, board.Plane(s.Size, s.Size, s.WinLength)),
		shuffle:  s.ShuffleOrder,
	}
	v.Reset(core.DefaultConfig())
	return v
}

func (v *ThreePlayer) Reset(cfg core.RuntimeConfig) {
	v.lineGame.Reset(cfg)
	if !v.shuffle {
		return
	}
	if err := v.sess.ShuffleTurnOrder(v.rng); err != nil {
		v.logger.Debug("turn order kept", "session", v.sess.ID(), "error", err)
	}
}

func (v *ThreePlayer) ResetAll() {
	v.sess.ResetAll()
	v.Reset(v.cfg)
}

func (v *ThreePlayer) Commands() []registry.Command {
	return []registry.Command{{Key: "r", Help: "shuffle turn order"}}
}

func (v *ThreePlayer) Perform(key string) error {
	if key != "r" {
		return v.lineGame.Perform(key)
	}
	return v.sess.ShuffleTurnOrder(v.rng)
}

func (v *ThreePlayer) Status() []string {
	var order []string
	for _, id := range v.sess.TurnOrder() {
		p, _ := v.sess.Player(id)
		order = append(order, p.Symbol)
	}
	return v.status(
		"Order: "+strings.Join(order, " → "),
		fmt.Sprintf("%d in a row wins", v.geom.WinLength),
	)
}
