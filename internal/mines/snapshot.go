package mines

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Snapshot is a lossless, human-readable record of a game.
// Rows cover the interior only; the wall border is implied.
type Snapshot struct {
	Seed     int64    `yaml:"seed"`
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	BombRate float64  `yaml:"bomb_rate"`
	State    string   `yaml:"state"`
	Content  []string `yaml:"content,flow"`
	Overlay  []string `yaml:"overlay,flow"`
}

func contentChar(c Content) byte {
	switch c {
	case Bomb:
		return '*'
	case BombExploded:
		return 'X'
	default:
		return '.'
	}
}

func overlayChar(o Overlay) byte {
	switch o {
	case Awake:
		return '!'
	case Open:
		return 'o'
	case Flagged:
		return 'f'
	case Secret:
		return '?'
	default:
		return '#'
	}
}

func parseOverlay(ch rune) (Overlay, bool) {
	switch ch {
	case '#':
		return Sleeping, true
	case '!':
		return Awake, true
	case 'o':
		return Open, true
	case 'f':
		return Flagged, true
	case '?':
		return Secret, true
	default:
		return 0, false
	}
}

func parseState(s string) (State, bool) {
	switch s {
	case "", Playing.String():
		return Playing, true
	case Lost.String():
		return Lost, true
	case Won.String():
		return Won, true
	default:
		return 0, false
	}
}

// Snapshot captures the current game.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Seed:     e.seed,
		Width:    e.width,
		Height:   e.height,
		BombRate: e.bombRate,
		State:    e.state.String(),
		Content:  make([]string, e.height),
		Overlay:  make([]string, e.height),
	}

	var content, overlay strings.Builder
	for y := 1; y <= e.height; y++ {
		content.Reset()
		overlay.Reset()
		for x := 1; x <= e.width; x++ {
			i := e.Index(x, y)
			content.WriteByte(contentChar(e.content[i]))
			overlay.WriteByte(overlayChar(e.overlay[i]))
		}
		snap.Content[y-1] = content.String()
		snap.Overlay[y-1] = overlay.String()
	}

	return snap
}

// Marshal encodes the snapshot as YAML.
func (s Snapshot) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("mines: cannot encode snapshot: %w", err)
	}
	return out, nil
}

// ParseSnapshot decodes a YAML snapshot.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return &snap, nil
}

// Restore rebuilds the engine the snapshot was taken from.
// With fresh set, the overlay is discarded and the game starts over on the
// same bombs; an exploded bomb is re-armed.
func (s Snapshot) Restore(fresh bool) (*Engine, error) {
	if len(s.Content) != s.Height || len(s.Overlay) != s.Height {
		return nil, fmt.Errorf("%w: expected %d rows", ErrInvalidSnapshot, s.Height)
	}

	rows := s.Content
	if fresh {
		rows = make([]string, len(s.Content))
		for i, row := range s.Content {
			rows[i] = strings.ReplaceAll(row, "X", "*")
		}
	}

	e, err := FromLayout(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if e.width != s.Width {
		return nil, fmt.Errorf("%w: content width %d, want %d", ErrInvalidSnapshot, e.width, s.Width)
	}
	if !(s.BombRate >= 0 && s.BombRate <= 1) {
		return nil, fmt.Errorf("%w: bomb rate %v", ErrInvalidSnapshot, s.BombRate)
	}

	e.seed = s.Seed
	e.bombRate = s.BombRate
	e.rng.Seed(s.Seed)

	if fresh {
		e.state = Playing
		return e, nil
	}

	state, ok := parseState(s.State)
	if !ok {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidSnapshot, s.State)
	}
	e.state = state

	for y, row := range s.Overlay {
		if len(row) != s.Width {
			return nil, fmt.Errorf("%w: overlay row %d has length %d, want %d", ErrInvalidSnapshot, y, len(row), s.Width)
		}
		for x, ch := range row {
			o, ok := parseOverlay(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unexpected overlay %q at (%d, %d)", ErrInvalidSnapshot, ch, x+1, y+1)
			}
			e.overlay[e.Index(x+1, y+1)] = o
		}
	}

	if err := e.checkConsistent(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return e, nil
}

// checkConsistent verifies that the state agrees with the layers: a lost game
// has its exploded bomb and every bomb open, and a won game has every safe
// cell open.
func (e *Engine) checkConsistent() error {
	exploded := false
	for i, c := range e.content {
		p := e.Coords(i)
		switch c {
		case BombExploded:
			exploded = true
			if e.overlay[i] != Open {
				return fmt.Errorf("exploded bomb at (%d, %d) is not open", p.X, p.Y)
			}
		case Bomb:
			if e.state == Lost && e.overlay[i] != Open {
				return fmt.Errorf("bomb at (%d, %d) is hidden in a lost game", p.X, p.Y)
			}
		}
	}

	switch {
	case exploded != (e.state == Lost):
		return fmt.Errorf("state %s does not match exploded bomb", e.state)
	case e.state == Won && !e.IsWon():
		return fmt.Errorf("state won with closed safe cells")
	}
	return nil
}
