package mines

// IsWon reports whether every safe cell has been opened.
// It does not change the game state; see CheckWin.
func (e *Engine) IsWon() bool {
	for i, c := range e.content {
		if c == Wall || c.IsBomb() {
			continue
		}
		if e.overlay[i] != Open {
			return false
		}
	}
	return true
}

// CheckWin marks a game in progress as won once IsWon holds.
// Callers run it after every successful move. Returns true if the game is won.
func (e *Engine) CheckWin() bool {
	if e.state == Playing && e.IsWon() {
		e.state = Won
	}
	return e.state == Won
}
