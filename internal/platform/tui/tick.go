// Package tui provides the Bubble Tea integration for the tic-tac-toe
// variants. It handles the terminal UI loop, key mapping, board layout and
// the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the clock of a timed variant. Epoch is the clock
// generation the tick was scheduled for; the clock ignores any other.
type TickMsg struct {
	Epoch uint64
	Time  time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, epoch uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Epoch: epoch, Time: t}
	})
}
