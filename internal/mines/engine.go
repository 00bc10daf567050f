// Package mines implements the grid reveal/flag puzzle engine.
//
// The board is stored as two parallel flat layers over a (width+2)x(height+2)
// grid: content (walls, safe cells, bombs) and overlay (what the player sees).
// The outer ring is a wall border so neighbour lookups never need bounds checks.
// An Engine is owned by a single caller and is not safe for concurrent use.
package mines

import (
	"fmt"
	"math/rand"
	"strings"
)

// MaxCells bounds the interior area of a board.
const MaxCells = 1 << 20

// Config holds the parameters of a new game.
type Config struct {
	Width    int     // interior columns
	Height   int     // interior rows
	BombRate float64 // per-cell bomb probability in [0, 1]
	Seed     int64   // RNG seed for bomb placement
}

// Validate reports whether the parameters describe a playable board.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "width", Reason: fmt.Sprintf("must be positive, got %d", c.Width)}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "height", Reason: fmt.Sprintf("must be positive, got %d", c.Height)}
	}
	if err := checkSize(c.Width, c.Height); err != nil {
		return err
	}
	if !(c.BombRate >= 0 && c.BombRate <= 1) {
		return &ConfigError{Field: "bomb rate", Reason: fmt.Sprintf("must be within [0, 1], got %v", c.BombRate)}
	}
	return nil
}

// checkSize rejects boards above MaxCells without overflowing width*height.
func checkSize(width, height int) error {
	if width > MaxCells/height {
		return &ConfigError{Field: "size", Reason: fmt.Sprintf("%dx%d exceeds %d cells", width, height, MaxCells)}
	}
	return nil
}

// Engine is the state of one game.
type Engine struct {
	width, height int
	bombRate      float64
	seed          int64
	rng           *rand.Rand

	content []Content
	overlay []Overlay
	state   State
}

// New creates a game with bombs placed by independent Bernoulli trials.
// The total bomb count is random.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := alloc(cfg.Width, cfg.Height)
	e.bombRate = cfg.BombRate
	e.seed = cfg.Seed
	e.rng = rand.New(rand.NewSource(cfg.Seed))

	for i := range e.content {
		p := e.Coords(i)
		if !e.IsInterior(p.X, p.Y) {
			continue
		}
		if e.rng.Float64() < cfg.BombRate {
			e.content[i] = Bomb
		} else {
			e.content[i] = Safe
		}
	}

	return e, nil
}

// FromLayout builds a game from interior rows of equal length, top row first.
// '.' is a safe cell, '*' a bomb and 'X' an exploded bomb. A layout with an
// exploded bomb starts lost, with the loss reveal already applied.
func FromLayout(rows []string) (*Engine, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty board", ErrInvalidLayout)
	}

	width, height := len(rows[0]), len(rows)
	if err := checkSize(width, height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	e := alloc(width, height)
	e.rng = rand.New(rand.NewSource(0))

	exploded, trigger := 0, 0
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrInvalidLayout, y, len(row), width)
		}
		for x, ch := range row {
			i := e.Index(x+1, y+1)
			switch ch {
			case '.':
				e.content[i] = Safe
			case '*':
				e.content[i] = Bomb
			case 'X':
				e.content[i] = BombExploded
				trigger = i
				exploded++
			default:
				return nil, fmt.Errorf("%w: unexpected %q at (%d, %d)", ErrInvalidLayout, ch, x+1, y+1)
			}
		}
	}

	switch {
	case exploded > 1:
		return nil, fmt.Errorf("%w: %d exploded bombs", ErrInvalidLayout, exploded)
	case exploded == 1:
		e.explode(trigger)
	}

	e.bombRate = float64(e.Stats().Bombs) / float64(width*height)
	return e, nil
}

// alloc creates an engine with the wall border in place and an all-sleeping overlay.
func alloc(width, height int) *Engine {
	size := (width + 2) * (height + 2)
	e := &Engine{
		width:   width,
		height:  height,
		content: make([]Content, size),
		overlay: make([]Overlay, size),
		state:   Playing,
	}
	// Wall and Sleeping are the zero values, so both layers start correct.
	return e
}

// Retry discards this game and starts a new one with the same parameters.
// The new seed is drawn from this game's RNG so bombs are placed afresh.
func (e *Engine) Retry() *Engine {
	next, err := New(Config{
		Width:    e.width,
		Height:   e.height,
		BombRate: e.bombRate,
		Seed:     e.rng.Int63(),
	})
	if err != nil {
		// Parameters were validated when this engine was built.
		panic(err)
	}
	return next
}

// Width returns the number of interior columns.
func (e *Engine) Width() int { return e.width }

// Height returns the number of interior rows.
func (e *Engine) Height() int { return e.height }

// BombRate returns the per-cell bomb probability used at generation.
func (e *Engine) BombRate() float64 { return e.bombRate }

// Seed returns the seed the bombs were placed with.
func (e *Engine) Seed() int64 { return e.seed }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// ContentAt returns the content at (x, y); out-of-grid coordinates read as Wall.
func (e *Engine) ContentAt(x, y int) Content {
	if !e.InBounds(x, y) {
		return Wall
	}
	return e.content[e.Index(x, y)]
}

// OverlayAt returns the overlay at (x, y); out-of-grid coordinates read as Sleeping.
func (e *Engine) OverlayAt(x, y int) Overlay {
	if !e.InBounds(x, y) {
		return Sleeping
	}
	return e.overlay[e.Index(x, y)]
}

// Stats summarises the board.
type Stats struct {
	Cells     int // interior cells
	Bombs     int
	Safe      int
	Opened    int // opened safe cells
	Flags     int
	Remaining int // safe cells still closed
}

// Stats counts cells by kind. Bombs is hidden information and is meant for
// end-of-game summaries and tests.
func (e *Engine) Stats() Stats {
	var s Stats
	for i, c := range e.content {
		if c == Wall {
			continue
		}
		s.Cells++
		if c.IsBomb() {
			s.Bombs++
		} else {
			s.Safe++
			if e.overlay[i] == Open {
				s.Opened++
			}
		}
		if e.overlay[i] == Flagged {
			s.Flags++
		}
	}
	s.Remaining = s.Safe - s.Opened
	return s
}

// String renders the content layer, one row per line, for debugging.
func (e *Engine) String() string {
	var sb strings.Builder
	for y := 1; y <= e.height; y++ {
		if y > 1 {
			sb.WriteByte('\n')
		}
		for x := 1; x <= e.width; x++ {
			sb.WriteByte(contentChar(e.content[e.Index(x, y)]))
		}
	}
	return sb.String()
}
