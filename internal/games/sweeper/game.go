// Package sweeper adapts the mines engine to the platform game loop:
// a cursor on the board, a ticking clock, scoring and a HUD.
package sweeper

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/mines"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
)

// Settings applied by the CLI before a game is created.
var (
	configPath    string
	presetName    config.DifficultyPreset
	boardOverride *config.BoardConfig
	themeOverride string
	loadSnapshot  *mines.Snapshot
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetPreset selects the board preset for the default variant.
func SetPreset(preset config.DifficultyPreset) {
	presetName = preset
}

// SetBoard overrides the board of the default variant. Pass nil to clear.
func SetBoard(b *config.BoardConfig) {
	boardOverride = b
}

// SetTheme overrides the configured glyph theme.
func SetTheme(name string) {
	themeOverride = name
}

// SetLoadSnapshot makes the next Reset continue the given board instead of
// generating a new one. It is consumed by that Reset.
func SetLoadSnapshot(s *mines.Snapshot) {
	loadSnapshot = s
}

// Game implements registry.Game for the sweeper board.
type Game struct {
	id     string
	title  string
	preset config.DifficultyPreset

	cfg    config.SweeperConfig
	theme  mines.Theme
	engine *mines.Engine
	cursor mines.Point

	tick        uint64
	tickRate    int
	startTick   uint64 // first open; the clock runs from here
	endTick     uint64
	pausedTicks uint64 // ticks spent paused since the first open
	started     bool

	score    int
	message  string
	paused   bool
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates the default variant, configured from YAML and CLI settings.
func New() *Game {
	return &Game{id: "sweeper", title: "Sweeper"}
}

// NewPreset creates a variant locked to a difficulty preset.
func NewPreset(preset config.DifficultyPreset, title string) *Game {
	return &Game{
		id:     "sweeper_" + string(preset),
		title:  title,
		preset: preset,
	}
}

func init() {
	registry.Register("sweeper", func() registry.Game {
		return New()
	})
	registry.Register("sweeper_easy", func() registry.Game {
		return NewPreset(config.DifficultyEasy, "Sweeper (Easy)")
	})
	registry.Register("sweeper_hard", func() registry.Game {
		return NewPreset(config.DifficultyHard, "Sweeper (Hard)")
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Reset loads configuration and starts a new board.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultSweeperConfig()
		g.message = fmt.Sprintf("config: %v", err)
	} else {
		g.message = ""
	}

	preset := g.preset
	if preset == "" {
		preset = presetName
	}
	if preset != "" {
		if err := config.ApplyPreset(&cfg, preset); err != nil {
			g.message = err.Error()
		}
	}
	if g.preset == "" && boardOverride != nil {
		cfg.Board = *boardOverride
	}
	g.cfg = cfg

	themeName := cfg.Display.Theme
	if themeOverride != "" {
		themeName = themeOverride
	}
	theme, ok := mines.ThemeByName(themeName)
	if !ok {
		theme = mines.ASCII
	}
	g.theme = theme

	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.paused = false
	g.resetRound()

	if snap := loadSnapshot; snap != nil && g.preset == "" {
		loadSnapshot = nil // Consume after use
		if e, err := snap.Restore(false); err == nil {
			g.engine = e
			g.message = fmt.Sprintf("📂 loaded %dx%d board", e.Width(), e.Height())
		} else {
			g.message = err.Error()
		}
	}

	if g.engine == nil {
		e, err := mines.New(g.engineConfig(rc.Seed))
		if err != nil {
			// Invalid board settings fall back to the classic board.
			g.message = err.Error()
			g.cfg.Board, _ = cfg.PresetBoard(config.DifficultyClassic)
			e, _ = mines.New(g.engineConfig(rc.Seed))
		}
		g.engine = e
	}
	// A board without safe cells is already cleared.
	g.engine.CheckWin()

	g.centerCursor()
	g.Resize(rc.ScreenW, rc.ScreenH)
}

func (g *Game) engineConfig(seed int64) mines.Config {
	return mines.Config{
		Width:    g.cfg.Board.Width,
		Height:   g.cfg.Board.Height,
		BombRate: g.cfg.Board.BombRate,
		Seed:     seed,
	}
}

// resetRound clears per-round counters.
func (g *Game) resetRound() {
	g.engine = nil
	g.tick = 0
	g.startTick = 0
	g.endTick = 0
	g.pausedTicks = 0
	g.started = false
	g.score = 0
}

// centerCursor puts the cursor in the middle of the board.
func (g *Game) centerCursor() {
	g.cursor = mines.Point{X: (g.engine.Width() + 1) / 2, Y: (g.engine.Height() + 1) / 2}
}

// Resize adapts the layout to new screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := g.minScreen()
	g.tooSmall = w < minW || h < minH
}

// Retry throws the board away and starts a new one with the same parameters.
func (g *Game) Retry() {
	next := g.engine.Retry()
	g.resetRound()
	g.engine = next
	g.engine.CheckWin()
	g.paused = false
	g.message = "🔄 new board"
	g.centerCursor()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.Retry()
		return core.StepResult{State: g.State(), Message: g.message}
	}

	if in.Has(core.ActionPause) && g.engine.State() == mines.Playing {
		g.paused = !g.paused
	}
	if g.paused {
		if g.started {
			g.pausedTicks++
		}
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	var res mines.Result
	switch {
	case in.Has(core.ActionOpen):
		res = g.open()
	case in.Has(core.ActionFlag):
		res = g.engine.Flag(g.cursor.X, g.cursor.Y)
	default:
		return core.StepResult{State: g.State()}
	}

	if res.Message != "" {
		g.message = res.Message
	}
	return core.StepResult{State: g.State(), Message: res.Message}
}

func (g *Game) moveCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y--
	case in.Has(core.ActionDown):
		g.cursor.Y++
	case in.Has(core.ActionLeft):
		g.cursor.X--
	case in.Has(core.ActionRight):
		g.cursor.X++
	}
	g.cursor.X = core.Clamp(g.cursor.X, 1, g.engine.Width())
	g.cursor.Y = core.Clamp(g.cursor.Y, 1, g.engine.Height())
}

// open reveals the cell under the cursor and settles score and clock.
func (g *Game) open() mines.Result {
	res := g.engine.Open(g.cursor.X, g.cursor.Y)
	if !res.Changed() {
		return res
	}

	if !g.started {
		g.started = true
		g.startTick = g.tick
	}

	switch {
	case res.Lost():
		g.endTick = g.tick
	default:
		g.score += res.Opened * g.cfg.Scoring.PointsPerCell
		if g.engine.CheckWin() {
			g.endTick = g.tick
			g.score += g.cfg.Scoring.TimeBonus(g.Elapsed().Seconds())
			res.Message = fmt.Sprintf("🏆 cleared in %s", formatClock(g.Elapsed()))
		}
	}
	return res
}

// Elapsed returns the time since the first open, frozen once the round ends.
func (g *Game) Elapsed() time.Duration {
	if !g.started {
		return 0
	}
	end := g.tick
	if g.engine.State().Over() {
		end = g.endTick
	}
	ticks := end - g.startTick - g.pausedTicks
	return time.Duration(ticks) * time.Second / time.Duration(g.tickRate)
}

// Engine exposes the underlying board.
func (g *Game) Engine() *mines.Engine { return g.engine }

// Cursor returns the cursor position on the board.
func (g *Game) Cursor() mines.Point { return g.cursor }

// Message returns the feedback for the last move.
func (g *Game) Message() string { return g.message }

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.engine.State().Over(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Summary describes the finished round; ok is false while it is still in play.
func (g *Game) Summary() (core.RoundSummary, bool) {
	if !g.engine.State().Over() {
		return core.RoundSummary{}, false
	}

	snapshot := ""
	if data, err := g.engine.Snapshot().Marshal(); err == nil {
		snapshot = string(data)
	}

	return core.RoundSummary{
		GameID:   g.id,
		Width:    g.engine.Width(),
		Height:   g.engine.Height(),
		BombRate: g.engine.BombRate(),
		Seed:     g.engine.Seed(),
		Outcome:  g.engine.State().String(),
		Opened:   g.engine.Stats().Opened,
		Duration: g.Elapsed(),
		Snapshot: snapshot,
	}, true
}

var (
	_ registry.Summarizer = (*Game)(nil)
	_ registry.Resizer    = (*Game)(nil)
)
