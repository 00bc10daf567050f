package sweeper

import "github.com/vovakirdan/tui-sweeper/internal/mines"

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick    uint64
	Cursor  mines.Point
	Score   int
	Paused  bool
	Elapsed string
	Board   mines.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:    g.tick,
		Cursor:  g.cursor,
		Score:   g.score,
		Paused:  g.paused,
		Elapsed: formatClock(g.Elapsed()),
		Board:   g.engine.Snapshot(),
	}
}
