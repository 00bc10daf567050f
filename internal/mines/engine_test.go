package mines

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLayout(t *testing.T, rows ...string) *Engine {
	t.Helper()
	e, err := FromLayout(rows)
	require.NoError(t, err)
	return e
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"zero width", Config{Width: 0, Height: 5, BombRate: 0.1}, "width"},
		{"negative width", Config{Width: -3, Height: 5, BombRate: 0.1}, "width"},
		{"zero height", Config{Width: 5, Height: 0, BombRate: 0.1}, "height"},
		{"rate below zero", Config{Width: 5, Height: 5, BombRate: -0.01}, "bomb rate"},
		{"rate above one", Config{Width: 5, Height: 5, BombRate: 1.5}, "bomb rate"},
		{"rate NaN", Config{Width: 5, Height: 5, BombRate: math.NaN()}, "bomb rate"},
		{"too many cells", Config{Width: 2048, Height: 1024, BombRate: 0.1}, "size"},
		{"overflowing width", Config{Width: math.MaxInt / 2, Height: 3}, "size"},
		{"overflowing both", Config{Width: math.MaxInt32, Height: math.MaxInt32}, "size"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := New(tc.cfg)
			assert.Nil(t, e)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestNewAcceptsBoundaryRates(t *testing.T) {
	empty, err := New(Config{Width: 4, Height: 3, BombRate: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Stats().Bombs)

	full, err := New(Config{Width: 4, Height: 3, BombRate: 1})
	require.NoError(t, err)
	assert.Equal(t, 12, full.Stats().Bombs)
}

func TestBorderIsWallAndInteriorIsNot(t *testing.T) {
	e, err := New(Config{Width: 7, Height: 4, BombRate: 0.5, Seed: 42})
	require.NoError(t, err)

	for y := 0; y <= e.Height()+1; y++ {
		for x := 0; x <= e.Width()+1; x++ {
			c := e.ContentAt(x, y)
			if e.IsInterior(x, y) {
				assert.NotEqual(t, Wall, c, "interior (%d, %d)", x, y)
			} else {
				assert.Equal(t, Wall, c, "border (%d, %d)", x, y)
			}
			assert.Equal(t, Sleeping, e.OverlayAt(x, y))
		}
	}
}

func TestSameSeedSameBoard(t *testing.T) {
	cfg := Config{Width: 20, Height: 10, BombRate: 0.3, Seed: 7}
	a, err := New(cfg)
	require.NoError(t, err)
	b, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
}

func TestBombCountIsBernoulli(t *testing.T) {
	// 10k cells at p=0.2: the count is random but should sit near 2000.
	e, err := New(Config{Width: 100, Height: 100, BombRate: 0.2, Seed: 1})
	require.NoError(t, err)

	bombs := e.Stats().Bombs
	assert.InDelta(t, 2000, bombs, 250)
}

func TestIndexCoordsRoundTrip(t *testing.T) {
	e, err := New(Config{Width: 5, Height: 3, BombRate: 0})
	require.NoError(t, err)

	for y := 0; y <= 4; y++ {
		for x := 0; x <= 6; x++ {
			i := e.Index(x, y)
			assert.Equal(t, x+y*7, i)
			assert.Equal(t, Point{X: x, Y: y}, e.Coords(i))
		}
	}
}

func TestIsInterior(t *testing.T) {
	e, err := New(Config{Width: 3, Height: 2, BombRate: 0})
	require.NoError(t, err)

	tests := []struct {
		x, y int
		want bool
	}{
		{1, 1, true},
		{3, 2, true},
		{0, 1, false},
		{4, 1, false},
		{1, 0, false},
		{1, 3, false},
		{-5, 1, false},
		{1, 100, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, e.IsInterior(tc.x, tc.y), "(%d, %d)", tc.x, tc.y)
	}
}

func TestNeighborsAreTheEightOffsets(t *testing.T) {
	e := mustLayout(t, "...", "...", "...")

	got := e.Neighbors(2, 2)
	seen := map[Point]bool{}
	for _, p := range got {
		seen[p] = true
		assert.True(t, e.IsInterior(p.X, p.Y))
	}
	assert.Len(t, seen, 8)
	assert.False(t, seen[Point{2, 2}])

	// Corner cells reach into the wall border, never beyond it.
	for _, p := range e.Neighbors(1, 1) {
		assert.True(t, e.InBounds(p.X, p.Y))
	}
}

func TestBombCountMatchesNeighbors(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		e, err := New(Config{Width: 12, Height: 9, BombRate: 0.35, Seed: seed})
		require.NoError(t, err)

		for y := 1; y <= e.Height(); y++ {
			for x := 1; x <= e.Width(); x++ {
				want := 0
				for _, d := range Offsets {
					if e.ContentAt(x+d.X, y+d.Y).IsBomb() {
						want++
					}
				}
				got := e.BombCount(x, y)
				require.Equal(t, want, got, "seed %d at (%d, %d)", seed, x, y)
				require.GreaterOrEqual(t, got, 0)
				require.LessOrEqual(t, got, 8)
			}
		}
	}
}

func TestBombCountCountsExploded(t *testing.T) {
	e := mustLayout(t,
		"X*.",
		"...",
	)
	assert.Equal(t, 2, e.BombCount(2, 2))
	assert.Equal(t, 1, e.BombCount(3, 2))
	assert.Equal(t, 0, e.BombCount(0, 0), "walls report zero")
}

func TestFromLayoutRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"empty row", []string{""}},
		{"ragged", []string{"...", ".."}},
		{"unknown char", []string{".?."}},
		{"two explosions", []string{"X.X"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromLayout(tc.rows)
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestFromLayoutWithExplosionIsLost(t *testing.T) {
	e := mustLayout(t,
		"X..",
		"..*",
	)
	assert.Equal(t, Lost, e.State())
	assert.Equal(t, "X!#\n!!*\n", e.Render(ASCII))
}

func TestNewAcceptsLargestBoard(t *testing.T) {
	e, err := New(Config{Width: 1024, Height: 1024, BombRate: 0})
	require.NoError(t, err)
	assert.Equal(t, MaxCells, e.Stats().Cells)
}

func TestRetryKeepsParametersAndResets(t *testing.T) {
	e, err := New(Config{Width: 10, Height: 6, BombRate: 0.25, Seed: 99})
	require.NoError(t, err)

	// Lose the game on the first bomb we can find.
	found := false
	for i, c := range e.content {
		if c == Bomb {
			p := e.Coords(i)
			require.True(t, e.Open(p.X, p.Y).Lost())
			found = true
			break
		}
	}
	require.True(t, found, "board has no bombs")
	require.Equal(t, Lost, e.State())

	next := e.Retry()
	assert.NotSame(t, e, next)
	assert.Equal(t, 10, next.Width())
	assert.Equal(t, 6, next.Height())
	assert.Equal(t, 0.25, next.BombRate())
	assert.Equal(t, Playing, next.State())
	assert.NotEqual(t, e.Seed(), next.Seed())

	for i := range next.overlay {
		assert.Equal(t, Sleeping, next.overlay[i])
		assert.NotEqual(t, BombExploded, next.content[i])
	}

	// The old instance is untouched.
	assert.Equal(t, Lost, e.State())
}

func TestStats(t *testing.T) {
	e := mustLayout(t,
		"*..",
		"...",
	)
	e.Flag(1, 1)
	e.Open(3, 2)

	s := e.Stats()
	assert.Equal(t, 6, s.Cells)
	assert.Equal(t, 1, s.Bombs)
	assert.Equal(t, 5, s.Safe)
	assert.Equal(t, 1, s.Flags)
	assert.Equal(t, 4, s.Opened)
	assert.Equal(t, 1, s.Remaining)
}
