package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tictactoe/internal/board"
	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/registry"
	"github.com/vovakirdan/tui-tictactoe/internal/rules"
	"github.com/vovakirdan/tui-tictactoe/internal/session"
)

// click plays each cell on board 0 in turn.
func click(t *testing.T, v registry.Variant, cells ...board.Coord) {
	t.Helper()
	for _, c := range cells {
		require.NoError(t, v.Activate(registry.Target{Cell: c}), "move at %s", c)
	}
}

func requireReason(t *testing.T, err error, want rules.Reason) {
	t.Helper()
	require.ErrorIs(t, err, rules.ErrIllegalMove)
	got, ok := rules.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func winnerSymbol(t *testing.T, v registry.Variant) string {
	t.Helper()
	w, ok := v.Session().Winner()
	require.True(t, ok, "expected a winner")
	return w.Symbol
}

func seeded(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func TestAllVariantsRegistered(t *testing.T) {
	want := []string{
		"3d", "blind", "circular", "classic", "dice", "erasereplace", "infinite",
		"misere", "moverotation", "numerical", "nxn", "obstacle", "onedimensional",
		"powerup", "randomized", "threeplayer", "tictactwo", "timecontrolled",
		"ultimate", "wild",
	}
	var got []string
	for _, info := range registry.List() {
		got = append(got, info.ID)
	}
	assert.Equal(t, want, got)

	for _, id := range want {
		v, err := registry.Create(id, config.DefaultVariants())
		require.NoError(t, err, id)
		v.Reset(seeded(7))
		assert.Equal(t, id, v.ID())
		assert.NotEmpty(t, v.Title(), id)
		assert.NotEmpty(t, v.Panels(), id)
		assert.NotEmpty(t, v.Status(), id)
		assert.False(t, v.Session().Over(), id)
	}
}

func TestClassicWinAndScores(t *testing.T) {
	// Given a classic game
	v := NewClassic()

	// When X takes the top row while O plays the middle row
	click(t, v, board.C(0, 0), board.C(0, 1), board.C(1, 0), board.C(1, 1), board.C(2, 0))

	// Then X has won and the board is closed
	assert.Equal(t, session.Win, v.Session().Result())
	assert.Equal(t, "X", winnerSymbol(t, v))
	assert.Equal(t, 1, v.Session().Scores().Wins[1])
	requireReason(t, v.Activate(registry.Target{Cell: board.C(2, 2)}), rules.GameOver)

	// When a new game starts the tally survives
	v.Reset(core.DefaultConfig())
	assert.Equal(t, session.Setup, v.Session().Phase())
	assert.Equal(t, 1, v.Session().Scores().Wins[1])

	// And ResetAll clears it
	v.ResetAll()
	assert.Equal(t, 0, v.Session().Scores().Total())
}

func TestClassicDraw(t *testing.T) {
	v := NewClassic()
	click(t, v,
		board.C(0, 0), board.C(1, 0), board.C(2, 0),
		board.C(1, 1), board.C(0, 1), board.C(2, 1),
		board.C(1, 2), board.C(0, 2), board.C(2, 2),
	)
	assert.Equal(t, session.Draw, v.Session().Result())
	assert.Equal(t, 1, v.Session().Scores().Draws)
}

func TestClassicRejectsOccupiedCell(t *testing.T) {
	v := NewClassic()
	click(t, v, board.C(1, 1))

	requireReason(t, v.Activate(registry.Target{Cell: board.C(1, 1)}), rules.AlreadyOccupied)
	requireReason(t, v.Activate(registry.Target{Cell: board.C(3, 0)}), rules.OutOfBounds)
	assert.Equal(t, "O", v.Session().Current().Symbol)
	assert.Len(t, v.Session().History(), 1)
}

func TestMisereCreditsOpponent(t *testing.T) {
	// Given a misère game
	v := NewMisere()

	// When X completes the top row
	click(t, v, board.C(0, 0), board.C(0, 1), board.C(1, 0), board.C(1, 1), board.C(2, 0))

	// Then O wins
	assert.Equal(t, "O", winnerSymbol(t, v))
}

func TestCubeSpaceDiagonal(t *testing.T) {
	v := NewCube()
	assert.Len(t, v.Panels(), 4)

	click(t, v,
		board.Coord{X: 0, Y: 0, Z: 0}, board.Coord{X: 0, Y: 3, Z: 0},
		board.Coord{X: 1, Y: 1, Z: 1}, board.Coord{X: 1, Y: 3, Z: 0},
		board.Coord{X: 2, Y: 2, Z: 2}, board.Coord{X: 2, Y: 3, Z: 0},
		board.Coord{X: 3, Y: 3, Z: 3},
	)
	assert.Equal(t, "X", winnerSymbol(t, v))
}

func TestNxNResizeLocksAfterFirstMove(t *testing.T) {
	v := NewNxN(config.NxNSettings{Size: 4, MinSize: 4, MaxSize: 10}).(*sized)

	require.NoError(t, v.Perform("+"))
	assert.Equal(t, 5, v.Size())
	assert.Equal(t, 5, v.Panels()[0].Width)

	require.NoError(t, v.Resize(99))
	assert.Equal(t, 10, v.Size())
	require.NoError(t, v.Resize(4))

	click(t, v, board.C(0, 0))
	assert.ErrorIs(t, v.Perform("-"), rules.ErrConfigurationLocked)
	assert.Equal(t, 4, v.Size())
}

func TestNxNNeedsFullRow(t *testing.T) {
	v := NewNxN(config.NxNSettings{Size: 4, MinSize: 4, MaxSize: 10})
	click(t, v,
		board.C(0, 0), board.C(0, 1),
		board.C(1, 0), board.C(1, 1),
		board.C(2, 0), board.C(2, 1),
	)
	assert.False(t, v.Session().Over())

	click(t, v, board.C(3, 0))
	assert.Equal(t, "X", winnerSymbol(t, v))
}

func TestCircularWrapsAround(t *testing.T) {
	// Given a ring of eight cells
	v := NewCircular(config.CircularSettings{Size: 8, MinSize: 6, MaxSize: 12, WinLength: 3})

	// When X holds cells 6, 7 and 0
	click(t, v, board.C(6, 0), board.C(2, 0), board.C(7, 0), board.C(4, 0), board.C(0, 0))

	// Then the run across the seam wins
	assert.Equal(t, "X", winnerSymbol(t, v))
}

func TestOneDimensionalPresets(t *testing.T) {
	v := NewOneDimensional(config.DefaultVariants().OneDimensional)
	assert.Equal(t, config.StripPreset{Length: 7, WinLength: 3}, v.Preset())

	require.NoError(t, v.Perform("P"))
	assert.Equal(t, 5, v.Preset().Length)
	assert.Equal(t, 5, v.Panels()[0].Width)
	assert.Equal(t, 1, v.Panels()[0].Height)

	click(t, v, board.C(0, 0))
	assert.ErrorIs(t, v.SelectPreset(3), rules.ErrConfigurationLocked)

	click(t, v, board.C(4, 0), board.C(1, 0), board.C(3, 0), board.C(2, 0))
	assert.Equal(t, "X", winnerSymbol(t, v))
}

func TestInfiniteFarFromOrigin(t *testing.T) {
	v := NewInfinite(config.InfiniteSettings{WinLength: 5, ViewSpan: 15})
	for i := 0; i < 4; i++ {
		click(t, v, board.C(100+i, 0), board.C(100+i, 5))
	}
	assert.False(t, v.Session().Over())

	click(t, v, board.C(104, 0))
	assert.Equal(t, "X", winnerSymbol(t, v))
}

func TestInfiniteViewportKeys(t *testing.T) {
	v := NewInfinite(config.InfiniteSettings{WinLength: 5, ViewSpan: 15})
	origin := v.Viewport().Origin()

	require.NoError(t, v.Perform("d"))
	assert.Greater(t, v.Viewport().Origin().X, origin.X)

	click(t, v, board.C(40, 40))
	require.NoError(t, v.Perform("c"))
	assert.True(t, v.Viewport().Contains(board.C(40, 40)))
	assert.ErrorIs(t, v.Perform("?"), ErrUnknownCommand)
}

func TestWildCreditsLastToucher(t *testing.T) {
	// Given a wild game
	v := NewWild()

	// When X places O, O places O and X places the third O
	require.NoError(t, v.Perform("o"))
	click(t, v, board.C(0, 0))
	assert.Equal(t, MarkX, v.Symbol())
	require.NoError(t, v.Perform("o"))
	click(t, v, board.C(1, 0))
	require.NoError(t, v.Perform("tab"))
	assert.Equal(t, MarkO, v.Symbol())
	click(t, v, board.C(2, 0))

	// Then X, who completed the line of Os, wins
	assert.Equal(t, "X", winnerSymbol(t, v))
}

func TestRandomizedOpenings(t *testing.T) {
	v := NewRandomized(config.RandomizedSettings{OpeningMoves: 3})
	v.Reset(seeded(42))

	assert.Equal(t, 3, v.Openings())
	hist := v.Session().History()
	require.Len(t, hist, 3)
	for _, mv := range hist {
		assert.Equal(t, "opening", mv.Note)
	}
	assert.False(t, v.Session().Over())
	assert.Equal(t, "O", v.Session().Current().Symbol)

	require.NoError(t, v.Perform("+"))
	assert.Equal(t, 4, v.Openings())

	at := v.grid.Vacant()[0]
	click(t, v, at)
	assert.ErrorIs(t, v.Perform("r"), rules.ErrConfigurationLocked)
}

func TestThreePlayerRotation(t *testing.T) {
	v := NewThreePlayer(config.ThreePlayerSettings{Size: 5, WinLength: 4})
	assert.Len(t, v.Session().Players(), 3)

	click(t, v, board.C(0, 0), board.C(0, 1), board.C(0, 2))
	assert.Equal(t, "X", v.Session().Current().Symbol)
	assert.ErrorIs(t, v.Perform("r"), rules.ErrConfigurationLocked)

	v.Reset(seeded(3))
	require.NoError(t, v.Perform("r"))
	assert.ElementsMatch(t, []session.PlayerID{1, 2, 3}, v.Session().TurnOrder())
}

func TestThreePlayerShuffledReset(t *testing.T) {
	// Given a three-player game that shuffles on every reset
	v := NewThreePlayer(config.ThreePlayerSettings{Size: 5, WinLength: 4, ShuffleOrder: true})
	click(t, v, board.C(0, 0), board.C(1, 1))

	for seed := int64(0); seed < 5; seed++ {
		// When a new game starts after moves were played
		v.Reset(seeded(seed))

		// Then the order is a fresh permutation and its head moves first
		order := v.Session().TurnOrder()
		assert.ElementsMatch(t, []session.PlayerID{1, 2, 3}, order)
		assert.Equal(t, order[0], v.Session().Current().ID)
		assert.Empty(t, v.Session().History())
	}
}

func TestMoveRotationEvictsOldest(t *testing.T) {
	// Given a rotation game keeping three marks each
	v := NewMoveRotation(config.MoveRotationSettings{MaxMoves: 3})

	// When X places a fourth mark
	click(t, v,
		board.C(0, 0), board.C(2, 0),
		board.C(1, 0), board.C(0, 1),
		board.C(1, 2), board.C(2, 2),
		board.C(2, 1),
	)

	// Then X's first mark vanished and the removal was recorded
	assert.Equal(t, board.Empty, v.grid.At(board.C(0, 0)))
	assert.Equal(t, MarkX, v.grid.At(board.C(2, 1)))
	assert.Equal(t, 3, v.grid.Count(MarkX))
	last := v.Session().History()
	assert.Equal(t, session.Erase, last[len(last)-1].Action)
	assert.Equal(t, []board.Coord{board.C(0, 0)}, last[len(last)-1].Targets)
	assert.False(t, v.Session().Over())

	// And O's oldest mark is the one marked to vanish next
	c, ok := v.nextToVanish(2)
	require.True(t, ok)
	assert.Equal(t, board.C(2, 0), c)
	assert.ErrorIs(t, v.Perform("+"), rules.ErrConfigurationLocked)
}

func TestEraseReplaceUnlocks(t *testing.T) {
	v := NewEraseReplace(config.EraseReplaceSettings{UnlockAfter: 3})

	click(t, v, board.C(0, 0))
	requireReason(t, v.Activate(registry.Target{Cell: board.C(0, 0)}), rules.AlreadyOccupied)

	click(t, v, board.C(1, 1), board.C(2, 2))
	require.True(t, v.Unlocked())

	// Own marks stay protected
	requireReason(t, v.Activate(registry.Target{Cell: board.C(1, 1)}), rules.AlreadyOccupied)

	click(t, v, board.C(0, 0))
	assert.Equal(t, MarkO, v.grid.At(board.C(0, 0)))
	hist := v.Session().History()
	require.Len(t, hist, 5)
	assert.Equal(t, session.Erase, hist[3].Action)
	assert.Equal(t, session.Place, hist[4].Action)
	assert.Equal(t, "replaced", hist[4].Note)
	assert.Equal(t, "X", v.Session().Current().Symbol)
}

func TestCreateWithZeroSettingsUsesDefaults(t *testing.T) {
	// Given variants created from empty settings
	for _, info := range registry.List() {
		v, err := registry.Create(info.ID, config.Variants{})
		require.NoError(t, err, info.ID)
		v.Reset(seeded(3))

		// Then every one still builds a playable board
		assert.NotEmpty(t, v.Panels(), info.ID)
		assert.False(t, v.Session().Over(), info.ID)
	}

	// And the infinite board keeps its default run length
	v, err := registry.Create("infinite", config.Variants{})
	require.NoError(t, err)
	v.Reset(seeded(3))
	click(t, v, board.C(0, 0))
	assert.False(t, v.Session().Over(), "a single mark must not win")

	// And NxN gets its default size
	nxn, err := registry.Create("nxn", config.Variants{})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultVariants().NxN.Size, nxn.(*sized).size)
}
