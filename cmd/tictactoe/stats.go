package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [variant]",
	Short: "Show recorded results",
	Long: `Without arguments, shows a tally per played variant.
With a variant, shows its tally and most recent games.

When a Redis mirror is configured its tally is shown alongside.

Examples:
  tictactoe stats
  tictactoe stats classic
  tictactoe stats classic --limit 20
  tictactoe stats classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent games to show")
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the variant's recorded results")
}

func runStats(_ *cobra.Command, args []string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.closeLog()

	stores := e.openStores()
	defer stores.Close()
	if stores.db == nil {
		return fmt.Errorf("results database %s is unavailable", e.app.DBPath)
	}

	if len(args) == 0 {
		return printAllTallies(stores.db)
	}

	id := args[0]
	info, ok := registry.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown variant %q, run 'tictactoe list' to see available variants", id)
	}

	if flagClear {
		if err := stores.db.ClearResults(id); err != nil {
			return err
		}
		if stores.mirror != nil {
			if err := stores.mirror.Clear(context.Background(), id); err != nil {
				e.logger.Warn("could not clear redis mirror", "variant", id, "error", err)
			}
		}
		fmt.Printf("Cleared results for %s.\n", info.Title)
		return nil
	}

	tally, err := stores.db.Tally(id)
	if err != nil {
		return err
	}
	fmt.Printf("Stats - %s\n\n", info.Title)
	fmt.Printf("  %s\n", formatTally(tally))

	if stores.mirror != nil {
		if mt, err := stores.mirror.Tally(context.Background(), id); err == nil {
			fmt.Printf("  redis: %s\n", formatTally(mt))
		} else {
			e.logger.Warn("could not read redis tally", "variant", id, "error", err)
		}
	}
	fmt.Println()

	results, err := stores.db.RecentResults(id, flagLimit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Printf("No games recorded yet. Play 'tictactoe play %s' to start.\n", id)
		return nil
	}

	fmt.Printf("  %-3s  %-8s  %-6s  %-5s  %-6s  %s\n", "#", "Outcome", "Winner", "Moves", "Time", "Date")
	fmt.Printf("  %-3s  %-8s  %-6s  %-5s  %-6s  %s\n", "-", "-------", "------", "-----", "----", "----")
	for i, r := range results {
		winner := r.Winner
		if winner == "" {
			winner = "-"
		}
		fmt.Printf("  %-3d  %-8s  %-6s  %-5d  %-6s  %s\n",
			i+1, r.Outcome, winner, r.Moves,
			fmt.Sprintf("%dm%02ds", r.Duration/60, r.Duration%60),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printAllTallies(store *storage.Store) error {
	tallies, err := store.AllTallies()
	if err != nil {
		return err
	}
	if len(tallies) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(tallies))
	for id := range tallies {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		title := id
		if info, ok := registry.Lookup(id); ok {
			title = info.Title
		}
		fmt.Printf("  %-20s  %s\n", title, formatTally(tallies[id]))
	}
	return nil
}

func formatTally(t *storage.Tally) string {
	symbols := make([]string, 0, len(t.Wins))
	for sym := range t.Wins {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	parts := []string{fmt.Sprintf("games %d", t.Games)}
	for _, sym := range symbols {
		parts = append(parts, fmt.Sprintf("%s %d", sym, t.Wins[sym]))
	}
	parts = append(parts, fmt.Sprintf("draws %d", t.Draws), fmt.Sprintf("timeouts %d", t.Timeouts))
	if !t.LastPlayed.IsZero() {
		parts = append(parts, "last "+t.LastPlayed.Format("2006-01-02"))
	}
	return strings.Join(parts, ", ")
}
