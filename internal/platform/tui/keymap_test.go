package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tictactoe/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey("j"), core.ActionDown},
		{runeKey("h"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionPlace},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionPlace},
		{runeKey("n"), core.ActionNewGame},
		{runeKey("N"), core.ActionResetAll},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runeKey("q"), core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionNone},
		{runeKey("r"), core.ActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKey(tc.msg); got != tc.want {
			t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestMapPanelKey(t *testing.T) {
	km := NewKeyMapper()

	if got := km.MapPanelKey(tea.KeyMsg{Type: tea.KeyTab}); got != core.ActionNextPanel {
		t.Errorf("tab = %v, expected NextPanel", got)
	}
	if got := km.MapPanelKey(tea.KeyMsg{Type: tea.KeyShiftTab}); got != core.ActionPrevPanel {
		t.Errorf("shift+tab = %v, expected PrevPanel", got)
	}
	if got := km.MapPanelKey(runeKey("x")); got != core.ActionNone {
		t.Errorf("x = %v, expected None", got)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}
