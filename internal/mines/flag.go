package mines

import "fmt"

// Flag toggles the flag on a closed cell at (x, y).
// Open cells are left alone; content is never touched.
func (e *Engine) Flag(x, y int) Result {
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
		return Result{Outcome: OutcomeAlreadyOpen, At: p, Message: fmt.Sprintf("🤔 already open: flag %d %d", x, y)}
	case Flagged:
		e.overlay[i] = Sleeping
		return Result{Outcome: OutcomeUnflagged, At: p, Message: fmt.Sprintf("😴 unflag %d %d", x, y)}
	default:
		e.overlay[i] = Flagged
		return Result{Outcome: OutcomeFlagged, At: p, Message: fmt.Sprintf("👀 flag %d %d", x, y)}
	}
}
