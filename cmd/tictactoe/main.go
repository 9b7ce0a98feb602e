// tictactoe plays twenty tic-tac-toe variants in the terminal, locally or
// over SSH.
//
// Usage:
//
//	tictactoe list              - List available variants
//	tictactoe play <variant>    - Play a variant
//	tictactoe menu              - Pick variants interactively
//	tictactoe serve             - Start SSH server for remote play
//	tictactoe stats [variant]   - Show recorded results
//
// Global flags:
//
//	--config <path>      - Variant rules YAML
//	--app-config <path>  - Application YAML (log, db, ssh, redis)
//	--fps <rate>         - Clock tick rate
//	--seed <value>       - RNG seed for reproducible openings
//	--db <path>          - Results database path
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/storage"

	// Import variants to register them
	_ "github.com/vovakirdan/tui-tictactoe/internal/variants"
)

var (
	// Global flags
	flagVariants  string
	flagAppConfig string
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Tic-tac-toe variants in your terminal",
	Long: `tictactoe bundles twenty rule variants of tic-tac-toe: bigger boards,
a 3D cube, an endless plane, misère, numbers, dice, chess clocks, power-ups
and more. Play locally or serve them over SSH.

Available commands:
  list     - Show all variants
  play     - Play a specific variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  stats    - View recorded results

Examples:
  tictactoe list
  tictactoe play ultimate
  tictactoe menu --seed 42
  tictactoe serve --ssh :2222
  tictactoe stats classic`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVariants, "config", "", "Path to variant settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagAppConfig, "app-config", "", "Path to application config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Clock tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (empty = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (empty = from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}

// env is what every subcommand needs: merged config, variant settings and
// a logger.
type env struct {
	app      *config.App
	settings config.Variants
	logger   *log.Logger
	closeLog func()
}

// setup loads configuration with flags taking precedence. With toFile set
// the log goes to the configured file so it does not garble the TUI.
func setup(toFile bool) (*env, error) {
	app, err := config.LoadApp(flagAppConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		app.DBPath = flagDBPath
	}
	if flagFPS > 0 {
		app.TickRate = flagFPS
	}
	if flagLogLevel != "" {
		app.LogLevel = flagLogLevel
	}
	if flagVariants != "" {
		app.VariantsCfg = flagVariants
	}

	e := &env{app: app, closeLog: func() {}}
	e.logger, e.closeLog, err = newLogger(app, toFile)
	if err != nil {
		return nil, err
	}
	log.SetDefault(e.logger)

	e.settings, err = config.LoadVariants(app.VariantsCfg)
	if err != nil {
		e.logger.Warn("using default variant settings", "error", err)
	}
	return e, nil
}

func newLogger(app *config.App, toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(app.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", app.LogLevel, err)
	}
	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "tictactoe",
	}
	if !toFile || app.LogFile == "" {
		return log.NewWithOptions(os.Stderr, opts), func() {}, nil
	}

	path := expandHome(app.LogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return log.NewWithOptions(f, opts), func() { f.Close() }, nil
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// runtimeConfig sizes the board to the current terminal.
func (e *env) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: e.app.TickRate,
		Seed:     flagSeed,
	}
}

// backends holds the results database and the optional Redis mirror. Both
// are best effort: the games work without them.
type backends struct {
	db     *storage.Store
	mirror *storage.RedisMirror
}

func (e *env) openStores() backends {
	var s backends
	db, err := storage.Open(e.app.DBPath)
	if err != nil {
		e.logger.Warn("could not open results database", "path", e.app.DBPath, "error", err)
	} else {
		s.db = db
	}

	if e.app.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		mirror, err := storage.NewRedisMirror(ctx, e.app.Redis.Addr, e.app.Redis.Prefix)
		if err != nil {
			e.logger.Warn("redis mirror disabled", "addr", e.app.Redis.Addr, "error", err)
		} else {
			s.mirror = mirror
		}
	}
	return s
}

func (s backends) recorder(logger *log.Logger) storage.Recorder {
	return storage.NewRecorder(s.db, s.mirror, logger)
}

func (s backends) Close() {
	if s.db != nil {
		s.db.Close()
	}
	if s.mirror != nil {
		s.mirror.Close()
	}
}
