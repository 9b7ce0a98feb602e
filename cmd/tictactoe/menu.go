package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tictactoe/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
Leaving a game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Stats
  Q            - Quit

Examples:
  tictactoe menu
  tictactoe menu --seed 42
  tictactoe menu --db ./results.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.closeLog()

	stores := e.openStores()
	defer stores.Close()

	var source tui.ResultSource
	if stores.db != nil {
		source = stores.db
	}
	return tui.RunSession(e.settings, e.runtimeConfig(), stores.recorder(e.logger), source, e.logger)
}
