package mines

// Content is the hidden ground truth of a single grid coordinate.
type Content uint8

const (
	Wall Content = iota
	Safe
	Bomb
	BombExploded
)

// IsBomb reports whether the cell holds a bomb, exploded or not.
func (c Content) IsBomb() bool {
	return c == Bomb || c == BombExploded
}

// String returns a human-readable name for the content.
func (c Content) String() string {
	switch c {
	case Wall:
		return "wall"
	case Safe:
		return "safe"
	case Bomb:
		return "bomb"
	case BombExploded:
		return "bomb-exploded"
	default:
		return "unknown"
	}
}

// Overlay is the player-visible state of a single grid coordinate.
type Overlay uint8

const (
	Sleeping Overlay = iota
	Awake           // neighbour of the exploded bomb
	Open
	Flagged
	Secret // easter-egg marker, plays like Sleeping
)

// String returns a human-readable name for the overlay.
func (o Overlay) String() string {
	switch o {
	case Sleeping:
		return "sleeping"
	case Awake:
		return "awake"
	case Open:
		return "open"
	case Flagged:
		return "flagged"
	case Secret:
		return "secret"
	default:
		return "unknown"
	}
}

// State is the lifecycle of one engine instance.
type State uint8

const (
	Playing State = iota
	Lost
	Won
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// Over reports whether the instance is terminal.
func (s State) Over() bool {
	return s != Playing
}
