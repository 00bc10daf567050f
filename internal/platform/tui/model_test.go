package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

// fakeBoard ends the round whenever it sees ActionOpen and starts a new
// one on ActionRestart.
type fakeBoard struct {
	over    bool
	resets  int
	resized [2]int
	seen    []core.Action
}

func (b *fakeBoard) ID() string { return "fake" }

func (b *fakeBoard) Title() string { return "Fake" }

func (b *fakeBoard) Reset(core.RuntimeConfig) { b.resets++; b.over = false }

func (b *fakeBoard) Render(dst *core.Screen) { dst.DrawText(0, 0, "board") }

func (b *fakeBoard) Resize(w, h int) { b.resized = [2]int{w, h} }

func (b *fakeBoard) Step(in core.InputFrame) core.StepResult {
	for a, on := range in.Actions {
		if on {
			b.seen = append(b.seen, a)
		}
	}
	if in.Has(core.ActionRestart) {
		b.over = false
	}
	if in.Has(core.ActionOpen) {
		b.over = true
	}
	return core.StepResult{State: b.State()}
}

func (b *fakeBoard) State() core.GameState {
	score := 0
	if b.over {
		score = 42
	}
	return core.GameState{Score: score, GameOver: b.over}
}

func (b *fakeBoard) Summary() (core.RoundSummary, bool) {
	if !b.over {
		return core.RoundSummary{}, false
	}
	return core.RoundSummary{GameID: "fake", Width: 2, Height: 2, Outcome: "lost"}, true
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func step(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModelSavesRoundOnce(t *testing.T) {
	store := testStore(t)
	board := &fakeBoard{}
	m := NewModel(board, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})

	m = step(t, m, runeKey(' '), TickMsg{}, TickMsg{}, TickMsg{})
	assert.True(t, m.gameState.GameOver)

	rounds, err := store.RecentRounds("fake", 10)
	require.NoError(t, err)
	assert.Len(t, rounds, 1)
	scores, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 42, scores[0].Score)

	// Restart and lose again: a second round is recorded
	m = step(t, m, runeKey('r'), TickMsg{}, runeKey(' '), TickMsg{}, TickMsg{})
	rounds, err = store.RecentRounds("fake", 10)
	require.NoError(t, err)
	assert.Len(t, rounds, 2)
}

func TestModelPassesActionsThrough(t *testing.T) {
	board := &fakeBoard{}
	m := NewModel(board, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})

	m = step(t, m, runeKey('f'), runeKey('l'), TickMsg{}, TickMsg{})
	assert.ElementsMatch(t, []core.Action{core.ActionFlag, core.ActionRight}, board.seen)
	assert.True(t, m.inputFrame.Empty(), "input is cleared after each tick")
}

func TestModelResizeKeepsBoard(t *testing.T) {
	board := &fakeBoard{}
	m := NewModel(board, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})

	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, [2]int{100, 30}, board.resized)
	assert.Zero(t, board.resets)
	assert.Equal(t, 100, m.screen.Width())
}

func TestModelQuitAndBack(t *testing.T) {
	m := NewModel(&fakeBoard{}, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})

	next, cmd := m.Update(runeKey('q'))
	assert.NotNil(t, cmd)
	assert.True(t, next.(Model).Quitting())
	assert.Empty(t, next.(Model).View())

	m.embedded = true
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd, "embedded models hand control back without quitting")
	assert.True(t, next.(Model).BackToMenu())
	assert.False(t, next.(Model).Quitting())
}

func TestModelView(t *testing.T) {
	m := NewModel(&fakeBoard{}, nil, core.RuntimeConfig{ScreenW: 10, ScreenH: 2, TickRate: 30, Seed: 1})
	assert.True(t, strings.HasPrefix(m.View(), "board"))
}

func TestRenderScreenSkipsContinuationCells(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetGlyph(0, 0, "😴", 2, core.ColorDefault)
	s.SetGlyph(2, 0, "a", 1, core.ColorDefault)

	out := RenderScreen(s)
	assert.Equal(t, 1, strings.Count(out, "😴"))
	assert.Contains(t, out, "a")
}

func TestSessionModelFlow(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}, "tester")
	assert.Contains(t, m.View(), "M I N E S W E E P E R")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(SessionModel)
	assert.Equal(t, screenScores, m.screen)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	assert.Equal(t, screenMenu, m.screen)
}
