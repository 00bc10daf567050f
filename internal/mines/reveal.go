package mines

import (
	"fmt"

	"github.com/gammazero/deque"
)

// Outcome classifies the result of a move.
type Outcome uint8

const (
	// OutcomeIgnored is a silent no-op for coordinates outside the playable area.
	OutcomeIgnored Outcome = iota
	OutcomeOpened
	OutcomeAlreadyOpen
	OutcomeFlagBlocked
	OutcomeFlagged
	OutcomeUnflagged
	OutcomeLost
	OutcomeGameOver // move rejected because the game has ended
)

// String returns a short machine-friendly name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeOpened:
		return "opened"
	case OutcomeAlreadyOpen:
		return "already_open"
	case OutcomeFlagBlocked:
		return "flag_blocked"
	case OutcomeFlagged:
		return "flagged"
	case OutcomeUnflagged:
		return "unflagged"
	case OutcomeLost:
		return "lost"
	case OutcomeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Result describes what a move did.
type Result struct {
	Outcome Outcome
	Message string // empty for ignored moves
	At      Point
	Opened  int // cells opened by this move
}

// Lost reports whether this move triggered a bomb.
func (r Result) Lost() bool {
	return r.Outcome == OutcomeLost
}

// Changed reports whether the move mutated the board.
func (r Result) Changed() bool {
	switch r.Outcome {
	case OutcomeOpened, OutcomeFlagged, OutcomeUnflagged, OutcomeLost:
		return true
	default:
		return false
	}
}

// Open reveals the cell at (x, y).
//
// Opening a bomb loses the game: the bomb is marked exploded, every bomb is
// revealed and the closed neighbours of the trigger become Awake. Opening a
// safe cell with no neighbouring bombs reveals the surrounding zero region and
// its numbered rim.
func (e *Engine) Open(x, y int) Result {
	p := Point{X: x, Y: y}
	if !e.IsInterior(x, y) {
		return Result{Outcome: OutcomeIgnored, At: p}
	}
	if e.state.Over() {
		return Result{Outcome: OutcomeGameOver, At: p, Message: fmt.Sprintf("🏁 game is %s, retry to play again", e.state)}
	}

	i := e.Index(x, y)
	switch e.overlay[i] {
	case Open:
		return Result{Outcome: OutcomeAlreadyOpen, At: p, Message: fmt.Sprintf("🤔 already open: open %d %d", x, y)}
	case Flagged:
		return Result{Outcome: OutcomeFlagBlocked, At: p, Message: fmt.Sprintf("👀 flagged, looks dangerous: open %d %d", x, y)}
	}

	if e.content[i] == Bomb {
		e.explode(i)
		return Result{Outcome: OutcomeLost, At: p, Opened: 1, Message: fmt.Sprintf("💥 stepped on a bomb: open %d %d", x, y)}
	}

	e.overlay[i] = Open
	opened := 1
	if e.bombCountAt(i) == 0 {
		opened += e.flood(i)
	}

	return Result{Outcome: OutcomeOpened, At: p, Opened: opened, Message: fmt.Sprintf("✨ open %d %d", x, y)}
}

// flood opens the connected zero region around start, which must already be
// Open with a bomb count of zero. Each index is marked Open before it is
// queued, so every cell is visited at most once. Returns the number of cells
// opened beyond start.
func (e *Engine) flood(start int) int {
	var queue deque.Deque[int]
	queue.PushBack(start)

	opened := 0
	for queue.Len() > 0 {
		i := queue.PopFront()
		if e.bombCountAt(i) != 0 {
			continue
		}

		for _, n := range e.neighborIndexes(i) {
			if e.content[n] == Wall {
				continue
			}
			switch e.overlay[n] {
			case Open, Flagged:
				continue
			}
			// Neighbours of a zero cell are never bombs.
			e.overlay[n] = Open
			opened++
			queue.PushBack(n)
		}
	}

	return opened
}

// explode applies the loss transition for the bomb at index i.
func (e *Engine) explode(i int) {
	e.content[i] = BombExploded

	for j, c := range e.content {
		if c.IsBomb() {
			e.overlay[j] = Open
		}
	}

	for _, n := range e.neighborIndexes(i) {
		if e.overlay[n] != Open {
			e.overlay[n] = Awake
		}
	}

	e.state = Lost
}
