package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tictactoe/internal/platform/tui"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant",
	Long: `Start playing the specified variant.

Controls:
  Arrows/hjkl     - Move the cursor
  Enter/Space     - Place a mark
  Tab/Shift+Tab   - Switch board (multi-board variants)
  n               - New game (scores kept)
  N               - New game and reset scores
  Esc/q           - Leave
  Ctrl+S          - Save a screenshot

Variant keys (dice rolls, power-ups, clock control, resizing) are listed
under the board.

Examples:
  tictactoe play classic
  tictactoe play infinite
  tictactoe play randomized --seed 7
  tictactoe play nxn --config ./variants.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	id := args[0]

	if !registry.Exists(id) {
		return fmt.Errorf("unknown variant %q, run 'tictactoe list' to see available variants", id)
	}

	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.closeLog()

	v, err := registry.Create(id, e.settings)
	if err != nil {
		return fmt.Errorf("creating variant: %w", err)
	}

	stores := e.openStores()
	defer stores.Close()

	if err := tui.Run(v, stores.recorder(e.logger), e.runtimeConfig(), e.logger); err != nil {
		return fmt.Errorf("running variant: %w", err)
	}
	return nil
}
