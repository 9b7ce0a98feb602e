package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// App is the process-level configuration: logging, persistence and the SSH
// server. Values come from an optional YAML file and TICTACTOE_* variables.
type App struct {
	LogLevel    string `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	LogFile     string `yaml:"log-file" env:"TICTACTOE_LOG_FILE" env-default:"~/.tictactoe/tictactoe.log"`
	DBPath      string `yaml:"db-path" env:"TICTACTOE_DB" env-default:"~/.tictactoe/results.db"`
	TickRate    int    `yaml:"tick-rate" env:"TICTACTOE_TICK_RATE" env-default:"10"`
	VariantsCfg string `yaml:"variants-config" env:"TICTACTOE_VARIANTS"`
	Redis       Redis  `yaml:"redis"`
	SSH         SSH    `yaml:"ssh"`
}

// Redis configures the optional results mirror. An empty address disables it.
type Redis struct {
	Addr   string `yaml:"addr" env:"TICTACTOE_REDIS_ADDR"`
	Prefix string `yaml:"prefix" env:"TICTACTOE_REDIS_PREFIX" env-default:"tictactoe"`
}

// SSH configures the wish server.
type SSH struct {
	Address     string        `yaml:"address" env:"TICTACTOE_SSH_ADDR" env-default:":23234"`
	HostKeyPath string        `yaml:"host-key" env:"TICTACTOE_SSH_HOST_KEY" env-default:".ssh/tictactoe_ed25519"`
	IdleTimeout time.Duration `yaml:"idle-timeout" env:"TICTACTOE_SSH_IDLE" env-default:"30m"`
}

// LoadApp reads the application config. With an empty path only the
// environment and defaults are used.
func LoadApp(path string) (*App, error) {
	cfg := &App{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if cfg.TickRate <= 0 {
		cfg.TickRate = 10
	}
	return cfg, nil
}

// MustLoadApp is LoadApp that panics on error.
func MustLoadApp(path string) *App {
	cfg, err := LoadApp(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
