package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	results := []Result{
		{ID: "a", Variant: "classic", Outcome: "win", Winner: "X", Moves: 5},
		{ID: "b", Variant: "classic", Outcome: "draw", Moves: 9},
		{ID: "c", Variant: "classic", Outcome: "win", Winner: "O", Moves: 6},
		{ID: "d", Variant: "misere", Outcome: "win", Winner: "O", Moves: 7},
	}
	for _, r := range results {
		if err := store.Record(ctx, r); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	recent, err := store.RecentResults("classic", 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(recent))
	}
	if recent[0].ID != "c" {
		t.Errorf("Expected newest result c, got %s", recent[0].ID)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}

	all, err := store.RecentResults("", 2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected limit of 2, got %d", len(all))
	}
}

func TestStoreRecordIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	r := Result{ID: "same", Variant: "classic", Outcome: "win", Winner: "X"}
	for i := 0; i < 3; i++ {
		if err := store.Record(ctx, r); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	tally, err := store.Tally("classic")
	if err != nil {
		t.Fatalf("Tally() failed: %v", err)
	}
	if tally.Games != 1 {
		t.Errorf("Games = %d, expected 1", tally.Games)
	}
}

func TestStoreRecordGeneratesID(t *testing.T) {
	store := openTestStore(t)

	if err := store.Record(context.Background(), Result{Variant: "dice", Outcome: "draw"}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	recent, err := store.RecentResults("dice", 1)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 1 || recent[0].ID == "" {
		t.Errorf("Expected a generated ID, got %+v", recent)
	}

	got, err := store.ResultByID(recent[0].ID)
	if err != nil || got == nil {
		t.Fatalf("ResultByID() = %v, %v", got, err)
	}
	missing, err := store.ResultByID("nope")
	if err != nil || missing != nil {
		t.Errorf("ResultByID(nope) = %v, %v, expected nil, nil", missing, err)
	}
}

func TestStoreTallies(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, r := range []Result{
		{Variant: "timecontrolled", Outcome: "win", Winner: "X"},
		{Variant: "timecontrolled", Outcome: "timeout", Winner: "X"},
		{Variant: "timecontrolled", Outcome: "timeout", Winner: "O"},
		{Variant: "timecontrolled", Outcome: "draw"},
		{Variant: "classic", Outcome: "draw"},
	} {
		if err := store.Record(ctx, r); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	tally, err := store.Tally("timecontrolled")
	if err != nil {
		t.Fatalf("Tally() failed: %v", err)
	}

	tests := []struct {
		name     string
		got      int
		expected int
	}{
		{"games", tally.Games, 4},
		{"draws", tally.Draws, 1},
		{"timeouts", tally.Timeouts, 2},
		{"X wins", tally.Wins["X"], 2},
		{"O wins", tally.Wins["O"], 1},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s = %d, expected %d", tt.name, tt.got, tt.expected)
		}
	}

	all, err := store.AllTallies()
	if err != nil {
		t.Fatalf("AllTallies() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 variants, got %d", len(all))
	}

	empty, err := store.Tally("ultimate")
	if err != nil {
		t.Fatalf("Tally() failed: %v", err)
	}
	if empty.Games != 0 {
		t.Errorf("Games = %d, expected 0", empty.Games)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_ = store.Record(ctx, Result{Variant: "classic", Outcome: "draw"})
	_ = store.Record(ctx, Result{Variant: "misere", Outcome: "draw"})

	if err := store.ClearResults("classic"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	recent, _ := store.RecentResults("classic", 10)
	if len(recent) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(recent))
	}
	recent, _ = store.RecentResults("misere", 10)
	if len(recent) != 1 {
		t.Errorf("Other variants should be untouched, got %d", len(recent))
	}
}

type fakeRecorder struct {
	got []Result
	err error
}

func (f *fakeRecorder) Record(_ context.Context, r Result) error {
	f.got = append(f.got, r)
	return f.err
}

func TestFanout(t *testing.T) {
	primary := &fakeRecorder{}
	broken := &fakeRecorder{err: errors.New("down")}
	mirror := &fakeRecorder{}

	f := &Fanout{Primary: primary, Mirrors: []Recorder{broken, mirror}}
	if err := f.Record(context.Background(), Result{Variant: "classic", Outcome: "draw"}); err != nil {
		t.Fatalf("Record() = %v, mirror errors should not surface", err)
	}
	if len(primary.got) != 1 || len(mirror.got) != 1 {
		t.Fatalf("Expected both recorders to receive the result")
	}
	if primary.got[0].ID == "" || primary.got[0].ID != mirror.got[0].ID {
		t.Errorf("Expected a shared generated ID, got %q and %q", primary.got[0].ID, mirror.got[0].ID)
	}

	primary.err = errors.New("disk full")
	if err := f.Record(context.Background(), Result{}); err == nil {
		t.Error("Expected primary error to surface")
	}
}

func TestNewRecorder(t *testing.T) {
	if r := NewRecorder(nil, nil, nil); r != nil {
		t.Errorf("NewRecorder(nil, nil) = %v, want nil", r)
	}

	store := openTestStore(t)
	r := NewRecorder(store, nil, nil)
	if r == nil {
		t.Fatal("Expected a recorder for a store")
	}
	if err := r.Record(context.Background(), Result{Variant: "classic", Outcome: "draw"}); err != nil {
		t.Fatalf("Record() = %v", err)
	}
	tally, err := store.Tally("classic")
	if err != nil {
		t.Fatalf("Tally() = %v", err)
	}
	if tally.Draws != 1 {
		t.Errorf("Draws = %d, want 1", tally.Draws)
	}
}
