package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/storage"
)

type fakeRecorder struct {
	got []storage.Result
}

func (f *fakeRecorder) Record(_ context.Context, r storage.Result) error {
	f.got = append(f.got, r)
	return nil
}

func newTestGame(t *testing.T, id string) (GameModel, *fakeRecorder) {
	t.Helper()
	v, err := registry.Create(id, config.DefaultVariants())
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", id, err)
	}
	rec := &fakeRecorder{}
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	m := NewGameModel(v, rec, cfg, nil)
	m.Init()
	return m, rec
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

// placeAt moves the cursor to a cell of the first panel and presses enter.
func placeAt(t *testing.T, m GameModel, x, y int) GameModel {
	t.Helper()
	m.cursor = cursor{x: x, y: y}
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestGameModelRecordsWin(t *testing.T) {
	m, rec := newTestGame(t, "classic")

	for _, mv := range [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}} {
		m = placeAt(t, m, mv[0], mv[1])
	}

	sess := m.variant.Session()
	if !sess.Over() {
		t.Fatal("Expected the game to be over after a top-row win")
	}
	if len(rec.got) != 1 {
		t.Fatalf("Expected one recorded result, got %d", len(rec.got))
	}
	r := rec.got[0]
	if r.Variant != "classic" || r.Outcome != "win" || r.Winner != "X" || r.Moves != 5 {
		t.Errorf("Recorded %+v, expected classic win for X in 5 moves", r)
	}
	if r.ID != sess.ID() {
		t.Errorf("Result ID = %q, expected session ID %q", r.ID, sess.ID())
	}

	// Further keys after the end do not record again.
	m = placeAt(t, m, 2, 2)
	if len(rec.got) != 1 {
		t.Errorf("Expected the result to be recorded once, got %d", len(rec.got))
	}
}

func TestGameModelReportsIllegalMove(t *testing.T) {
	m, _ := newTestGame(t, "classic")

	m = placeAt(t, m, 1, 1)
	m = placeAt(t, m, 1, 1)

	if m.message != "cell already occupied" {
		t.Errorf("message = %q, expected the occupied reason", m.message)
	}
	if got := len(m.variant.Session().History()); got != 1 {
		t.Errorf("History has %d moves, expected 1", got)
	}
}

func TestGameModelNewGameKeepsScores(t *testing.T) {
	m, _ := newTestGame(t, "classic")
	for _, mv := range [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}} {
		m = placeAt(t, m, mv[0], mv[1])
	}

	m = update(t, m, runeKey("n"))
	sess := m.variant.Session()
	if sess.Over() || len(sess.History()) != 0 {
		t.Error("n should start a fresh game")
	}
	if sess.Scores().Total() != 1 {
		t.Errorf("Scores().Total() = %d, expected 1", sess.Scores().Total())
	}
	if m.saved {
		t.Error("a new game should be recordable again")
	}

	m = update(t, m, runeKey("N"))
	if m.variant.Session().Scores().Total() != 0 {
		t.Error("N should clear the scores")
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	m, _ := newTestGame(t, "classic")

	back := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToMenu() || back.IsQuitting() {
		t.Error("esc should return to the menu")
	}

	quit := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !quit.IsQuitting() {
		t.Error("ctrl+c should quit")
	}
}

func TestGameModelMouseClickPlaces(t *testing.T) {
	m, _ := newTestGame(t, "classic")

	// The single classic panel starts at column 2 below the title row.
	m = update(t, m, tea.MouseMsg{
		X:      2 + 2*cellWidth + 1,
		Y:      boardTop + 1 + 1,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})

	if m.cursor != (cursor{x: 2, y: 1}) {
		t.Errorf("cursor = %+v, expected (2,1)", m.cursor)
	}
	if got := len(m.variant.Session().History()); got != 1 {
		t.Errorf("History has %d moves, expected the click to place", got)
	}
}

func TestGameModelTabSwitchesPanels(t *testing.T) {
	m, _ := newTestGame(t, "3d")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.cursor.panel != 1 {
		t.Errorf("tab moved to panel %d, expected 1", m.cursor.panel)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.cursor.panel != 0 {
		t.Errorf("shift+tab moved to panel %d, expected 0", m.cursor.panel)
	}
}

func TestGameModelViewShowsStatus(t *testing.T) {
	m, _ := newTestGame(t, "classic")
	m.draw()

	found := false
	for y := 0; y < m.screen.Height(); y++ {
		if strings.Contains(m.screen.Row(y), "Turn: X") {
			found = true
		}
	}
	if !found {
		t.Error("Expected the status box to show whose turn it is")
	}
}

func step(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestGameModelClockTicksOnlyWhileRunning(t *testing.T) {
	m, _ := newTestGame(t, "timecontrolled")

	m, cmd := step(t, m, runeKey("t"))
	if cmd == nil {
		t.Fatal("Starting the clock should schedule a tick")
	}
	m, cmd = step(t, m, TickMsg{Epoch: m.tickEpoch})
	if cmd == nil {
		t.Fatal("A running clock should keep ticking")
	}

	m, cmd = step(t, m, runeKey("t"))
	if cmd != nil {
		t.Error("Pausing the clock should not schedule a tick")
	}
	for i := 0; i < 3; i++ {
		m, cmd = step(t, m, TickMsg{Epoch: m.tickEpoch})
		if cmd != nil {
			t.Fatalf("Tick %d while paused was rescheduled", i)
		}
	}

	m, cmd = step(t, m, runeKey("t"))
	if cmd == nil {
		t.Fatal("Resuming the clock should schedule a tick")
	}

	m, cmd = step(t, m, runeKey("n"))
	if cmd != nil {
		t.Error("A new game with an idle clock should not schedule a tick")
	}
	_, cmd = step(t, m, TickMsg{Epoch: m.tickEpoch})
	if cmd != nil {
		t.Error("An idle clock should not reschedule ticks")
	}
}
