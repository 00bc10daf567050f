package httpapi

import (
	"strings"
	"time"

	"github.com/vovakirdan/tui-sweeper/internal/mines"
)

// CreateRequest is the body of POST /games.
// Layout, when set, fixes the board and the other fields are ignored.
// Zero fields fall back to the preset, then to the configured board.
type CreateRequest struct {
	Preset   string   `json:"preset,omitempty"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	BombRate *float64 `json:"bomb_rate,omitempty"`
	Seed     int64    `json:"seed,omitempty"`
	Theme    string   `json:"theme,omitempty"`
	Layout   []string `json:"layout,omitempty"`
}

// MoveRequest is the body of open and flag calls. Coordinates are 1-based.
type MoveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// UnlockRequest is the body of POST /games/{id}/unlock.
type UnlockRequest struct {
	Word string `json:"word"`
}

// StatsView is the public part of mines.Stats. Bombs and Remaining, which
// together with Cells give away the bomb count, stay hidden until the round
// is over.
type StatsView struct {
	Cells     int  `json:"cells"`
	Opened    int  `json:"opened"`
	Flags     int  `json:"flags"`
	Remaining *int `json:"remaining,omitempty"`
	Bombs     *int `json:"bombs,omitempty"`
}

// View is the JSON shape of a board.
type View struct {
	ID        string     `json:"id"`
	State     string     `json:"state"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	BombRate  float64    `json:"bomb_rate"`
	Seed      int64      `json:"seed"`
	Rows      []string   `json:"rows"`
	Cells     [][]string `json:"cells"`
	Stats     StatsView  `json:"stats"`
	ElapsedMS int64      `json:"elapsed_ms"`
	CreatedAt time.Time  `json:"created_at"`
}

// MoveResult is the response to open and flag calls.
type MoveResult struct {
	Outcome string `json:"outcome"`
	Message string `json:"message,omitempty"`
	Opened  int    `json:"opened"`
	Game    View   `json:"game"`
}

// UnlockResult is the response to a successful unlock.
type UnlockResult struct {
	Changed int  `json:"changed"`
	Game    View `json:"game"`
}

// ErrorResponse is written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// view projects a board. Callers hold the hub lock.
func (h *Hub) view(b *board) View {
	e := b.engine
	st := e.Stats()

	stats := StatsView{
		Cells:  st.Cells,
		Opened: st.Opened,
		Flags:  st.Flags,
	}
	if e.State().Over() {
		bombs, remaining := st.Bombs, st.Remaining
		stats.Bombs = &bombs
		stats.Remaining = &remaining
	}

	cells := e.Rows(b.theme)
	rows := make([]string, len(cells))
	for i, row := range cells {
		rows[i] = strings.Join(row, "")
	}

	return View{
		ID:        b.id.String(),
		State:     e.State().String(),
		Width:     e.Width(),
		Height:    e.Height(),
		BombRate:  e.BombRate(),
		Seed:      e.Seed(),
		Rows:      rows,
		Cells:     cells,
		Stats:     stats,
		ElapsedMS: b.elapsed(h.now()).Milliseconds(),
		CreatedAt: b.created,
	}
}

// themeOrDefault resolves a theme name, falling back to def for empty names.
func themeOrDefault(name string, def mines.Theme) (mines.Theme, bool) {
	if name == "" {
		return def, true
	}
	return mines.ThemeByName(name)
}
