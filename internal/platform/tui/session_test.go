package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/storage"
)

type fakeSource struct {
	results []storage.Result
}

func (f fakeSource) Tally(variant string) (*storage.Tally, error) {
	t := &storage.Tally{Variant: variant, Wins: map[string]int{}}
	for _, r := range f.results {
		if r.Variant != variant {
			continue
		}
		t.Games++
		switch r.Outcome {
		case "draw":
			t.Draws++
		case "timeout":
			t.Timeouts++
			t.Wins[r.Winner]++
		default:
			t.Wins[r.Winner]++
		}
	}
	return t, nil
}

func (f fakeSource) RecentResults(variant string, limit int) ([]storage.Result, error) {
	var out []storage.Result
	for _, r := range f.results {
		if r.Variant == variant && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func newTestSession(source ResultSource) SessionModel {
	return NewSessionModel(config.DefaultVariants(), core.DefaultConfig(), &fakeRecorder{}, source, nil)
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newTestSession(nil)
	if m.ID() == "" {
		t.Fatal("Expected a session ID")
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.page != pageGame || m.game == nil {
		t.Fatalf("enter should open a game, page = %v", m.page)
	}
	first := registry.List()[0].ID
	if got := m.game.variant.ID(); got != first {
		t.Errorf("started %q, expected the first listed variant %q", got, first)
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.page != pageMenu || m.game != nil {
		t.Errorf("esc in a game should return to the menu, page = %v", m.page)
	}
	if m.quitting {
		t.Error("returning to the menu should not quit")
	}
}

func TestSessionScoreboard(t *testing.T) {
	src := fakeSource{results: []storage.Result{
		{ID: "a", Variant: "classic", Outcome: "win", Winner: "X", Moves: 5, CreatedAt: time.Now()},
		{ID: "b", Variant: "classic", Outcome: "draw", Moves: 9, CreatedAt: time.Now()},
	}}
	m := newTestSession(src)

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.page != pageStats {
		t.Fatalf("tab should open stats, page = %v", m.page)
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.page != pageMenu {
		t.Errorf("esc in stats should return to the menu, page = %v", m.page)
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(nil)

	m, cmd := updateSession(t, m, runeKey("q"))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should quit the session")
	}
	if m.View() != "" {
		t.Error("a quitting session renders nothing")
	}
}

func TestScoreboardTally(t *testing.T) {
	src := fakeSource{results: []storage.Result{
		{ID: "a", Variant: "classic", Outcome: "win", Winner: "X", Moves: 5, Duration: 75, CreatedAt: time.Now()},
		{ID: "b", Variant: "classic", Outcome: "draw", Moves: 9, CreatedAt: time.Now()},
		{ID: "c", Variant: "misere", Outcome: "win", Winner: "O", Moves: 6, CreatedAt: time.Now()},
	}}
	sb := NewScoreboardModel(src, 100, 30)

	for i, g := range sb.games {
		if g.ID == "classic" {
			sb.gameCursor = i
		}
	}
	sb.loadResults("classic")

	if got := sb.tallyLine(); got != "Games 2  X 1  draws 1" {
		t.Errorf("tallyLine() = %q", got)
	}
	if len(sb.results) != 2 {
		t.Fatalf("loaded %d results, expected 2", len(sb.results))
	}
	rows := sb.table.Rows()
	if len(rows) != 2 || rows[0][1] != "win" || rows[0][4] != "1m15s" || rows[1][2] != "-" {
		t.Errorf("table rows = %v", rows)
	}
}

func TestScoreboardWithoutSource(t *testing.T) {
	sb := NewScoreboardModel(nil, 60, 20)

	if got := sb.tallyLine(); got != "No games played yet" {
		t.Errorf("tallyLine() = %q", got)
	}
	if sb.View() == "" {
		t.Error("Expected the empty scoreboard to render")
	}
}
