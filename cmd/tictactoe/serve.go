package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tictactoe/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagRedisAddr   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the variant menu.
Results are stored per server, and mirrored to Redis when configured.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise the configured path (default ~/.ssh/tictactoe_ed25519) is
    generated on first start

Examples:
  tictactoe serve                           # Listen on :23234
  tictactoe serve --ssh :2222               # Listen on port 2222
  tictactoe serve --host-key ./my_host_key  # Use specific host key
  tictactoe serve --redis localhost:6379    # Mirror results to Redis

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting")
	serveCmd.Flags().StringVar(&flagRedisAddr, "redis", "", "Redis address for the results mirror")
}

func runServe(_ *cobra.Command, _ []string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.closeLog()

	if flagSSHAddr != "" {
		e.app.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		e.app.SSH.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		e.app.SSH.IdleTimeout = flagIdleTimeout
	}
	if flagRedisAddr != "" {
		e.app.Redis.Addr = flagRedisAddr
	}

	cfg := tui.NewSSHServerConfig(e.app, e.settings)
	cfg.Logger = e.logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting tictactoe SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
