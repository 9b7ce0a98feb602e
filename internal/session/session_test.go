package session

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/rules"
)

func twoPlayers() []Player {
	return []Player{
		{ID: 1, Name: "X", Symbol: "X", Mark: 1},
		{ID: 2, Name: "O", Symbol: "O", Mark: 2},
	}
}

func threePlayers() []Player {
	return append(twoPlayers(), Player{ID: 3, Name: "Δ", Symbol: "Δ", Mark: 3})
}

func quiet() Option {
	return WithLogger(log.New(io.Discard))
}

func TestTurnAlternationParity(t *testing.T) {
	for n := 0; n <= 8; n++ {
		// Given: a fresh two-player session
		s := New(twoPlayers(), quiet())
		first := s.Current().ID

		// When: n normal moves are made
		for i := 0; i < n; i++ {
			_, err := s.Record(Place, s.Current().Mark, board.C(i, 0))
			require.NoError(t, err)
			s.Advance(Normal)
		}

		// Then: the first player is back on even counts
		if n%2 == 0 {
			assert.Equal(t, first, s.Current().ID, "after %d moves", n)
		} else {
			assert.NotEqual(t, first, s.Current().ID, "after %d moves", n)
		}
	}
}

func TestPhaseTransitions(t *testing.T) {
	s := New(twoPlayers(), quiet())
	assert.Equal(t, Setup, s.Phase())

	_, err := s.Record(Place, 1, board.C(0, 0))
	require.NoError(t, err)
	assert.Equal(t, InProgress, s.Phase())

	s.Finish(Win, 1)
	assert.Equal(t, Terminal, s.Phase())
	assert.True(t, s.Over())

	_, err = s.Record(Place, 2, board.C(1, 0))
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Len(t, s.History(), 1, "terminal sessions never record moves")

	s.Reset()
	assert.Equal(t, Setup, s.Phase())
	assert.Equal(t, None, s.Result())
	assert.Empty(t, s.History())
}

func TestExtraTurnDoesNotAdvance(t *testing.T) {
	s := New(twoPlayers(), quiet())

	s.Advance(Extra)
	assert.Equal(t, PlayerID(1), s.Current().ID)

	s.Advance(Normal)
	assert.Equal(t, PlayerID(2), s.Current().ID)
}

func TestForfeitSkipsNextTurn(t *testing.T) {
	t.Run("two players", func(t *testing.T) {
		s := New(twoPlayers(), quiet())

		// Given: X lands on a trap and loses their next turn
		s.Forfeit(1)
		s.Advance(Normal)
		require.Equal(t, PlayerID(2), s.Current().ID)

		// When: O finishes a move
		s.Advance(Normal)

		// Then: the pointer advanced two positions, back to O
		assert.Equal(t, PlayerID(2), s.Current().ID)
		assert.Zero(t, s.Forfeits(1))

		s.Advance(Normal)
		assert.Equal(t, PlayerID(1), s.Current().ID)
	})

	t.Run("three players", func(t *testing.T) {
		s := New(threePlayers(), quiet())
		s.Forfeit(2)

		s.Advance(Normal)
		assert.Equal(t, PlayerID(3), s.Current().ID)
	})
}

func TestFinishTalliesOnce(t *testing.T) {
	s := New(twoPlayers(), quiet())

	s.Finish(Win, 2)
	s.Finish(Win, 2)
	s.Finish(Draw, 0)

	scores := s.Scores()
	assert.Equal(t, 1, scores.Wins[2])
	assert.Equal(t, 0, scores.Draws)

	winner, ok := s.Winner()
	require.True(t, ok)
	assert.Equal(t, "O", winner.Symbol)
}

func TestTimeoutCountsAsWinAndTimeout(t *testing.T) {
	s := New(twoPlayers(), quiet())

	s.Finish(Timeout, 1)

	scores := s.Scores()
	assert.Equal(t, 1, scores.Wins[1])
	assert.Equal(t, 1, scores.Timeouts)
	assert.Equal(t, Timeout, s.Result())
}

func TestScorePersistence(t *testing.T) {
	s := New(twoPlayers(), quiet())

	// Given: X has won a game and a draw followed
	s.Finish(Win, 1)
	s.Reset()
	s.Finish(Draw, 0)

	// When: starting a new game
	s.Reset()

	// Then: scores survive
	scores := s.Scores()
	assert.Equal(t, 1, scores.Wins[1])
	assert.Equal(t, 1, scores.Draws)
	assert.Equal(t, 2, scores.Total())

	// When: resetting everything
	s.ResetAll()

	// Then: all tallies are zero
	scores = s.Scores()
	assert.Zero(t, scores.Wins[1])
	assert.Zero(t, scores.Draws)
	assert.Zero(t, scores.Total())
}

func TestScoresAreCopies(t *testing.T) {
	s := New(twoPlayers(), quiet())
	s.Finish(Win, 1)

	scores := s.Scores()
	scores.Wins[1] = 99

	assert.Equal(t, 1, s.Scores().Wins[1])
}

func TestScoresSummary(t *testing.T) {
	s := New(twoPlayers(), quiet())
	s.Finish(Win, 2)

	assert.Equal(t, "X 0  O 1  draws 0", s.Scores().Summary(s.Players()))
}

func TestResetChangesID(t *testing.T) {
	s := New(twoPlayers(), quiet())
	id := s.ID()
	require.NotEmpty(t, id)

	s.Reset()
	assert.NotEqual(t, id, s.ID())
}

func TestTurnOrder(t *testing.T) {
	s := New(threePlayers(), quiet())

	require.NoError(t, s.SetTurnOrder([]PlayerID{3, 1, 2}))
	assert.Equal(t, PlayerID(3), s.Current().ID)
	assert.Equal(t, PlayerID(1), s.Next().ID)

	assert.Error(t, s.SetTurnOrder([]PlayerID{1, 1, 2}))
	assert.Error(t, s.SetTurnOrder([]PlayerID{1, 2}))

	require.NoError(t, s.ShuffleTurnOrder(rand.New(rand.NewSource(3))))
	assert.ElementsMatch(t, []PlayerID{1, 2, 3}, s.TurnOrder())

	_, err := s.Record(Place, s.Current().Mark, board.C(0, 0))
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetTurnOrder([]PlayerID{1, 2, 3}), rules.ErrConfigurationLocked)
	assert.ErrorIs(t, s.ShuffleTurnOrder(rand.New(rand.NewSource(3))), rules.ErrConfigurationLocked)
}

func TestAuthorshipLog(t *testing.T) {
	s := New(twoPlayers(), quiet())
	a, b, c := board.C(0, 0), board.C(1, 0), board.C(2, 0)

	// Both players place the same symbol, O, at different times.
	_, _ = s.RecordFor(1, Place, 2, a)
	_, _ = s.RecordFor(2, Place, 2, b)
	_, _ = s.RecordFor(1, Place, 2, c)

	author, ok := s.LastAuthor([]board.Coord{a, b, c})
	require.True(t, ok)
	assert.Equal(t, PlayerID(1), author)

	mv, ok := s.AuthorOf(b)
	require.True(t, ok)
	assert.Equal(t, PlayerID(2), mv.Player)
	assert.Equal(t, 2, mv.Seq)

	_, _ = s.RecordFor(2, Erase, board.Empty, c)
	author, ok = s.LastAuthor([]board.Coord{a, b, c})
	require.True(t, ok)
	assert.Equal(t, PlayerID(2), author)

	_, ok = s.LastAuthor([]board.Coord{board.C(9, 9)})
	assert.False(t, ok)
	assert.Equal(t, 3, s.Moves(Place))
	assert.Equal(t, 1, s.Moves(Erase))
}

func TestAnnotate(t *testing.T) {
	s := New(twoPlayers(), quiet())
	s.Annotate("ignored on empty history")

	_, _ = s.Record(Roll, board.Empty)
	s.Annotate("rolled 4")

	h := s.History()
	require.Len(t, h, 1)
	assert.Equal(t, "rolled 4", h[0].Note)
	assert.Equal(t, "#1 P1 roll (rolled 4)", h[0].String())
}

func TestClockCountdown(t *testing.T) {
	c := NewClock(time.Second, 500*time.Millisecond, 1, 2)

	// Ticks before start do nothing.
	_, expired := c.Tick(c.Epoch(), 10*time.Second)
	assert.False(t, expired)
	assert.Equal(t, time.Second, c.Remaining(1))

	c.Start(1)
	epoch := c.Epoch()
	_, expired = c.Tick(epoch, 300*time.Millisecond)
	assert.False(t, expired)
	assert.Equal(t, 700*time.Millisecond, c.Remaining(1))

	c.Switch(2)
	assert.Equal(t, 1200*time.Millisecond, c.Remaining(1), "increment goes to the mover")

	for i := 0; i < 9; i++ {
		_, expired = c.Tick(epoch, 100*time.Millisecond)
		require.False(t, expired)
	}
	id, expired := c.Tick(epoch, 100*time.Millisecond)
	assert.True(t, expired)
	assert.Equal(t, PlayerID(2), id)
	assert.Zero(t, c.Remaining(2))
	assert.False(t, c.Running())

	_, expired = c.Tick(c.Epoch(), 100*time.Millisecond)
	assert.False(t, expired, "a stopped clock never expires twice")
}

func TestClockPauseAndStaleTicks(t *testing.T) {
	c := NewClock(time.Second, 0, 1, 2)
	c.Start(1)
	stale := c.Epoch()

	c.Pause()
	_, expired := c.Tick(c.Epoch(), 2*time.Second)
	assert.False(t, expired, "paused clocks do not count down")

	c.Resume()
	_, expired = c.Tick(stale, 2*time.Second)
	assert.False(t, expired, "ticks from before the pause are stale")
	assert.Equal(t, time.Second, c.Remaining(1))

	c.Reset()
	_, expired = c.Tick(stale, 2*time.Second)
	assert.False(t, expired)
	assert.False(t, c.Started())
}

func TestClockConfigureLocked(t *testing.T) {
	c := NewClock(30*time.Second, 5*time.Second, 1, 2)

	require.NoError(t, c.Configure(time.Minute, 0))
	assert.Equal(t, time.Minute, c.Remaining(2))

	c.Start(1)
	assert.ErrorIs(t, c.Configure(time.Second, 0), rules.ErrConfigurationLocked)

	c.Reset()
	assert.NoError(t, c.Configure(time.Second, 0))
}
