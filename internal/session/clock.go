package session

import (
	"time"

	"github.com/vovakirdan/tui-tictactoe/internal/rules"
)

// Clock is a per-player countdown with a Fischer increment. Ticks carry the
// epoch they were scheduled under; any tick from an earlier epoch is stale
// and ignored, so a timer started before a reset can never touch the new game.
type Clock struct {
	initial   time.Duration
	increment time.Duration
	remaining map[PlayerID]time.Duration
	active    PlayerID
	started   bool
	running   bool
	epoch     uint64
}

// NewClock creates a stopped clock for the given players.
func NewClock(initial, increment time.Duration, players ...PlayerID) *Clock {
	c := &Clock{
		initial:   initial,
		increment: increment,
		remaining: make(map[PlayerID]time.Duration, len(players)),
	}
	for _, id := range players {
		c.remaining[id] = initial
	}
	return c
}

// Configure changes the time control. It is only allowed before the clock
// has started.
func (c *Clock) Configure(initial, increment time.Duration) error {
	if c.started {
		return rules.ErrConfigurationLocked
	}
	c.initial = initial
	c.increment = increment
	for id := range c.remaining {
		c.remaining[id] = initial
	}
	return nil
}

func (c *Clock) Initial() time.Duration { return c.initial }
func (c *Clock) Increment() time.Duration { return c.increment }
func (c *Clock) Started() bool { return c.started }
func (c *Clock) Running() bool { return c.running }
func (c *Clock) Active() PlayerID { return c.active }
func (c *Clock) Epoch() uint64 { return c.epoch }

// Remaining returns a player's time left.
func (c *Clock) Remaining(id PlayerID) time.Duration {
	return c.remaining[id]
}

// Start begins counting down for the given player.
func (c *Clock) Start(id PlayerID) {
	c.started = true
	c.running = true
	c.active = id
	c.epoch++
}

// Pause stops the countdown without changing whose time is running.
func (c *Clock) Pause() {
	if c.running {
		c.running = false
		c.epoch++
	}
}

// Resume continues a paused countdown.
func (c *Clock) Resume() {
	if c.started && !c.running {
		c.running = true
		c.epoch++
	}
}

// Switch credits the increment to the player who just moved and starts the
// next player's countdown.
func (c *Clock) Switch(to PlayerID) {
	if !c.started {
		return
	}
	c.remaining[c.active] += c.increment
	c.active = to
}

// Stop freezes the clock for good; used when the game ends.
func (c *Clock) Stop() {
	c.running = false
	c.epoch++
}

// Reset restores every player's time and invalidates outstanding ticks.
func (c *Clock) Reset() {
	for id := range c.remaining {
		c.remaining[id] = c.initial
	}
	c.started = false
	c.running = false
	c.active = 0
	c.epoch++
}

// Tick deducts dt from the active player. It returns the player whose time
// ran out, if any. Ticks from another epoch, or while paused, do nothing.
func (c *Clock) Tick(epoch uint64, dt time.Duration) (PlayerID, bool) {
	if epoch != c.epoch || !c.running {
		return 0, false
	}
	left := c.remaining[c.active] - dt
	if left > 0 {
		c.remaining[c.active] = left
		return 0, false
	}
	c.remaining[c.active] = 0
	c.Stop()
	return c.active, true
}
