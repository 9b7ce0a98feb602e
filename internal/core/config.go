package core

import (
	"math/rand"
	"time"
)

// RuntimeConfig contains configuration passed to variants on every reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Clock ticks per second for timed variants (default 10)
	Seed     int64 // RNG seed for obstacles, dice and openings; 0 means time-based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 10,
		Seed:     0,
	}
}

// NewRand returns a random source for the config's seed.
func (c RuntimeConfig) NewRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// TickInterval is the wall-clock duration between clock ticks.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return 100 * time.Millisecond
	}
	return time.Second / time.Duration(c.TickRate)
}
