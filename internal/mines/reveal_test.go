package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceOpen is the textbook recursive reveal, used to cross-check flood.
func referenceOpen(e *Engine, open map[Point]bool, p Point) {
	if !e.IsInterior(p.X, p.Y) || open[p] {
		return
	}
	if e.OverlayAt(p.X, p.Y) == Flagged || e.ContentAt(p.X, p.Y).IsBomb() {
		return
	}
	open[p] = true
	if e.BombCount(p.X, p.Y) != 0 {
		return
	}
	for _, n := range e.Neighbors(p.X, p.Y) {
		referenceOpen(e, open, n)
	}
}

func openSet(e *Engine) map[Point]bool {
	out := map[Point]bool{}
	for y := 1; y <= e.Height(); y++ {
		for x := 1; x <= e.Width(); x++ {
			if e.OverlayAt(x, y) == Open {
				out[Point{x, y}] = true
			}
		}
	}
	return out
}

func TestSingleCellBoardWithoutBombs(t *testing.T) {
	e, err := New(Config{Width: 1, Height: 1, BombRate: 0})
	require.NoError(t, err)

	assert.False(t, e.IsWon())

	res := e.Open(1, 1)
	assert.Equal(t, OutcomeOpened, res.Outcome)
	assert.Equal(t, 1, res.Opened)
	assert.Equal(t, "✨ open 1 1", res.Message)
	assert.True(t, e.IsWon())
	assert.True(t, e.CheckWin())
	assert.Equal(t, Won, e.State())
}

func TestAllBombBoardIsWonWithoutMoves(t *testing.T) {
	e, err := New(Config{Width: 3, Height: 2, BombRate: 1})
	require.NoError(t, err)

	assert.True(t, e.IsWon())
	assert.Equal(t, Playing, e.State(), "IsWon has no side effects")
	assert.True(t, e.CheckWin())
	assert.Equal(t, Won, e.State())
}

func TestOpenNumberedCellDoesNotFlood(t *testing.T) {
	e := mustLayout(t,
		"...",
		".*.",
		"...",
	)

	res := e.Open(1, 1)
	assert.Equal(t, OutcomeOpened, res.Outcome)
	assert.Equal(t, 1, res.Opened)
	assert.Equal(t, Open, e.OverlayAt(1, 1))
	assert.Equal(t, 1, e.BombCount(1, 1))

	assert.Len(t, openSet(e), 1)
	assert.False(t, e.IsWon())
}

func TestOpenBombLoses(t *testing.T) {
	e := mustLayout(t,
		"...",
		".*.",
		"...",
	)
	e.Open(1, 1)

	res := e.Open(2, 2)
	assert.True(t, res.Lost())
	assert.Equal(t, "💥 stepped on a bomb: open 2 2", res.Message)
	assert.Equal(t, Lost, e.State())
	assert.Equal(t, BombExploded, e.ContentAt(2, 2))
	assert.Equal(t, Open, e.OverlayAt(2, 2))

	// (1, 1) was already open; the other seven neighbours wake up.
	for _, p := range e.Neighbors(2, 2) {
		if p == (Point{1, 1}) {
			assert.Equal(t, Open, e.OverlayAt(p.X, p.Y))
			continue
		}
		assert.Equal(t, Awake, e.OverlayAt(p.X, p.Y), "at %v", p)
	}
}

func TestLossRevealsEveryBomb(t *testing.T) {
	e := mustLayout(t,
		"*...*",
		".....",
		"..*..",
		"*...*",
	)
	e.Flag(5, 4)

	res := e.Open(3, 3)
	require.True(t, res.Lost())

	exploded := 0
	for y := 1; y <= e.Height(); y++ {
		for x := 1; x <= e.Width(); x++ {
			c := e.ContentAt(x, y)
			if c.IsBomb() {
				assert.Equal(t, Open, e.OverlayAt(x, y), "bomb at (%d, %d)", x, y)
			}
			if c == BombExploded {
				exploded++
			}
		}
	}
	assert.Equal(t, 1, exploded)
}

func TestLossWakesFlaggedNeighbours(t *testing.T) {
	e := mustLayout(t,
		"...",
		".*.",
		"...",
	)
	e.Flag(3, 3)
	e.Open(2, 2)

	assert.Equal(t, Awake, e.OverlayAt(3, 3))
}

func TestFloodOpensZeroRegionAndRim(t *testing.T) {
	e := mustLayout(t,
		".....",
		".....",
		"...**",
		"...*.",
	)

	res := e.Open(1, 1)
	require.Equal(t, OutcomeOpened, res.Outcome)

	want := map[Point]bool{}
	fresh := mustLayout(t,
		".....",
		".....",
		"...**",
		"...*.",
	)
	referenceOpen(fresh, want, Point{1, 1})

	assert.Equal(t, want, openSet(e))
	assert.Equal(t, len(want), res.Opened)
	// The pocket behind the bombs stays closed.
	assert.Equal(t, Sleeping, e.OverlayAt(5, 4))
}

func TestFloodMatchesReference(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		cfg := Config{Width: 15, Height: 11, BombRate: 0.12, Seed: seed}
		e, err := New(cfg)
		require.NoError(t, err)

		// Start from the first zero cell, if any.
		var start *Point
		for y := 1; y <= e.Height() && start == nil; y++ {
			for x := 1; x <= e.Width(); x++ {
				if !e.ContentAt(x, y).IsBomb() && e.BombCount(x, y) == 0 {
					start = &Point{x, y}
					break
				}
			}
		}
		if start == nil {
			continue
		}

		want := map[Point]bool{}
		referenceOpen(e, want, *start)

		res := e.Open(start.X, start.Y)
		require.Equal(t, OutcomeOpened, res.Outcome)
		require.Equal(t, want, openSet(e), "seed %d", seed)
		require.Equal(t, len(want), res.Opened, "seed %d", seed)

		// Every opened cell is safe, and zero cells have fully opened neighbourhoods.
		for p := range want {
			require.False(t, e.ContentAt(p.X, p.Y).IsBomb())
			if e.BombCount(p.X, p.Y) != 0 {
				continue
			}
			for _, n := range e.Neighbors(p.X, p.Y) {
				if e.IsInterior(n.X, n.Y) {
					require.Equal(t, Open, e.OverlayAt(n.X, n.Y), "seed %d, %v next to %v", seed, n, p)
				}
			}
		}
	}
}

func TestFloodStopsAtFlags(t *testing.T) {
	e := mustLayout(t,
		".....",
		".....",
		".....",
	)
	e.Flag(3, 2)

	res := e.Open(1, 1)
	assert.Equal(t, 14, res.Opened)
	assert.Equal(t, Flagged, e.OverlayAt(3, 2))
	assert.False(t, e.IsWon())

	e.Flag(3, 2)
	e.Open(3, 2)
	assert.True(t, e.CheckWin())
}

func TestFloodLargeEmptyBoard(t *testing.T) {
	if testing.Short() {
		t.Skip("large board")
	}

	e, err := New(Config{Width: 1000, Height: 1000, BombRate: 0})
	require.NoError(t, err)

	res := e.Open(500, 500)
	assert.Equal(t, 1000*1000, res.Opened)
	assert.True(t, e.CheckWin())
}

func TestOpenIsIdempotent(t *testing.T) {
	e := mustLayout(t,
		"..*",
		"...",
	)
	e.Open(1, 1)
	before := e.Snapshot()

	res := e.Open(1, 1)
	assert.Equal(t, OutcomeAlreadyOpen, res.Outcome)
	assert.Equal(t, "🤔 already open: open 1 1", res.Message)
	assert.False(t, res.Changed())
	assert.Equal(t, before, e.Snapshot())
}

func TestOpenFlaggedIsBlocked(t *testing.T) {
	e := mustLayout(t,
		"*.",
	)
	e.Flag(1, 1)

	res := e.Open(1, 1)
	assert.Equal(t, OutcomeFlagBlocked, res.Outcome)
	assert.Equal(t, "👀 flagged, looks dangerous: open 1 1", res.Message)
	assert.Equal(t, Playing, e.State())
	assert.Equal(t, Flagged, e.OverlayAt(1, 1))
}

func TestOutOfBoundsIsIgnored(t *testing.T) {
	e := mustLayout(t,
		"*.",
		"..",
	)
	before := e.Snapshot()

	for _, p := range []Point{{0, 0}, {0, 1}, {3, 1}, {1, 3}, {-1, -1}, {99, 99}} {
		res := e.Open(p.X, p.Y)
		assert.Equal(t, OutcomeIgnored, res.Outcome)
		assert.Empty(t, res.Message)

		res = e.Flag(p.X, p.Y)
		assert.Equal(t, OutcomeIgnored, res.Outcome)
		assert.Empty(t, res.Message)
	}
	assert.Equal(t, before, e.Snapshot())
}

func TestMovesAfterGameOver(t *testing.T) {
	e := mustLayout(t,
		"*.",
		"..",
	)
	e.Open(1, 1)
	require.Equal(t, Lost, e.State())
	before := e.Snapshot()

	res := e.Open(2, 2)
	assert.Equal(t, OutcomeGameOver, res.Outcome)
	assert.Contains(t, res.Message, "lost")

	res = e.Flag(2, 2)
	assert.Equal(t, OutcomeGameOver, res.Outcome)
	assert.Equal(t, before, e.Snapshot())
}

func TestFlagToggles(t *testing.T) {
	e := mustLayout(t,
		"*.",
	)

	res := e.Flag(1, 1)
	assert.Equal(t, OutcomeFlagged, res.Outcome)
	assert.Equal(t, "👀 flag 1 1", res.Message)
	assert.Equal(t, Flagged, e.OverlayAt(1, 1))

	res = e.Flag(1, 1)
	assert.Equal(t, OutcomeUnflagged, res.Outcome)
	assert.Equal(t, "😴 unflag 1 1", res.Message)
	assert.Equal(t, Sleeping, e.OverlayAt(1, 1))
	assert.Equal(t, Bomb, e.ContentAt(1, 1))
}

func TestFlagOpenCellIsRejected(t *testing.T) {
	e := mustLayout(t,
		"*.",
	)
	e.Open(2, 1)

	res := e.Flag(2, 1)
	assert.Equal(t, OutcomeAlreadyOpen, res.Outcome)
	assert.Equal(t, "🤔 already open: flag 2 1", res.Message)
	assert.Equal(t, Open, e.OverlayAt(2, 1))
}

func TestFlagsDoNotAffectWin(t *testing.T) {
	e := mustLayout(t,
		"*.",
	)
	e.Flag(1, 1)
	assert.False(t, e.IsWon())

	e.Open(2, 1)
	assert.True(t, e.IsWon())

	// A flag on a safe cell keeps it closed until cleared.
	f := mustLayout(t, "..*")
	f.Flag(1, 1)
	f.Open(2, 1)
	assert.False(t, f.IsWon())
	f.Flag(1, 1)
	f.Open(1, 1)
	assert.True(t, f.IsWon())
}

func TestWinIsMonotonic(t *testing.T) {
	e, err := New(Config{Width: 8, Height: 8, BombRate: 0.15, Seed: 3})
	require.NoError(t, err)

	won := false
	for y := 1; y <= e.Height(); y++ {
		for x := 1; x <= e.Width(); x++ {
			if e.ContentAt(x, y).IsBomb() {
				continue
			}
			e.Open(x, y)
			if won {
				require.True(t, e.IsWon())
			}
			won = e.IsWon()
		}
	}
	assert.True(t, won)
	assert.True(t, e.CheckWin())
	assert.Equal(t, Won, e.State())
}

func TestClosingAnySafeCellUndoesWin(t *testing.T) {
	e, err := New(Config{Width: 7, Height: 5, BombRate: 0.2, Seed: 8})
	require.NoError(t, err)
	for y := 1; y <= e.Height(); y++ {
		for x := 1; x <= e.Width(); x++ {
			if !e.ContentAt(x, y).IsBomb() {
				e.Open(x, y)
			}
		}
	}
	require.True(t, e.IsWon())

	for i, c := range e.content {
		if c != Safe {
			continue
		}
		e.overlay[i] = Sleeping
		assert.False(t, e.IsWon(), "safe cell %v closed", e.Coords(i))
		e.overlay[i] = Open
	}
	assert.True(t, e.IsWon())
}

func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "already_open", OutcomeAlreadyOpen.String())
	assert.Equal(t, "game_over", OutcomeGameOver.String())
	assert.Equal(t, "unknown", Outcome(200).String())
}
