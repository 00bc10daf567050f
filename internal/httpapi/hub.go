// Package httpapi serves sweeper boards over HTTP.
//
// A Hub owns every live board. Engines are single-owner, so all access to
// them goes through the hub's mutex.
package httpapi

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/mines"
)

// GameID is the storage id under which HTTP rounds are recorded.
const GameID = "sweeper_api"

var (
	// ErrNotFound is returned for ids the hub does not know.
	ErrNotFound = errors.New("httpapi: game not found")

	// ErrHubFull is returned when the live game limit is reached.
	ErrHubFull = errors.New("httpapi: too many live games")

	// ErrWrongWord is returned by Unlock for a word that does not match.
	ErrWrongWord = errors.New("httpapi: wrong word")
)

// RoundRecorder persists finished rounds. *storage.Store implements it.
type RoundRecorder interface {
	RecordRound(summary core.RoundSummary) error
}

// board is one live game.
type board struct {
	id       uuid.UUID
	engine   *mines.Engine
	theme    mines.Theme
	created  time.Time
	started  time.Time // first move, zero until then
	finished time.Time
}

func (b *board) elapsed(now time.Time) time.Duration {
	if b.started.IsZero() {
		return 0
	}
	end := now
	if !b.finished.IsZero() {
		end = b.finished
	}
	return end.Sub(b.started)
}

// Hub holds live boards keyed by id.
type Hub struct {
	mu       sync.Mutex
	games    map[uuid.UUID]*board
	maxGames int
	recorder RoundRecorder
	logger   *log.Logger
	now      func() time.Time
}

// NewHub creates a hub. maxGames <= 0 means no limit; recorder may be nil.
func NewHub(maxGames int, recorder RoundRecorder, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		games:    make(map[uuid.UUID]*board),
		maxGames: maxGames,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Len returns the number of live boards.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.games)
}

// Create starts a new board from cfg.
func (h *Hub) Create(cfg mines.Config, theme mines.Theme) (View, error) {
	engine, err := mines.New(cfg)
	if err != nil {
		return View{}, err
	}
	return h.add(engine, theme)
}

// CreateFromLayout starts a board with a fixed layout.
func (h *Hub) CreateFromLayout(rows []string, theme mines.Theme) (View, error) {
	engine, err := mines.FromLayout(rows)
	if err != nil {
		return View{}, err
	}
	return h.add(engine, theme)
}

// Import restores a board from a YAML snapshot. A fresh import re-arms it.
func (h *Hub) Import(data []byte, fresh bool, theme mines.Theme) (View, error) {
	snap, err := mines.ParseSnapshot(data)
	if err != nil {
		return View{}, err
	}
	engine, err := snap.Restore(fresh)
	if err != nil {
		return View{}, err
	}
	return h.add(engine, theme)
}

func (h *Hub) add(engine *mines.Engine, theme mines.Theme) (View, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.maxGames > 0 && len(h.games) >= h.maxGames {
		return View{}, ErrHubFull
	}

	// A board without safe cells is won before the first move.
	engine.CheckWin()

	b := &board{
		id:      uuid.New(),
		engine:  engine,
		theme:   theme,
		created: h.now(),
	}
	h.games[b.id] = b

	h.logger.Debug("game created",
		"id", b.id,
		"width", engine.Width(),
		"height", engine.Height(),
		"seed", engine.Seed(),
	)
	return h.view(b), nil
}

// Get returns the current view of a board.
func (h *Hub) Get(id uuid.UUID) (View, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.games[id]
	if !ok {
		return View{}, ErrNotFound
	}
	return h.view(b), nil
}

// Open reveals the cell at (x, y) on board id.
func (h *Hub) Open(id uuid.UUID, x, y int) (MoveResult, error) {
	return h.move(id, func(e *mines.Engine) mines.Result { return e.Open(x, y) })
}

// Flag toggles the flag at (x, y) on board id.
func (h *Hub) Flag(id uuid.UUID, x, y int) (MoveResult, error) {
	return h.move(id, func(e *mines.Engine) mines.Result { return e.Flag(x, y) })
}

func (h *Hub) move(id uuid.UUID, apply func(*mines.Engine) mines.Result) (MoveResult, error) {
	h.mu.Lock()

	b, ok := h.games[id]
	if !ok {
		h.mu.Unlock()
		return MoveResult{}, ErrNotFound
	}

	res := apply(b.engine)
	if res.Changed() && b.started.IsZero() {
		b.started = h.now()
	}

	var summary *core.RoundSummary
	if res.Changed() {
		b.engine.CheckWin()
		if b.engine.State().Over() && b.finished.IsZero() {
			b.finished = h.now()
			s := h.summary(b)
			summary = &s
		}
	}

	out := MoveResult{
		Outcome: res.Outcome.String(),
		Message: res.Message,
		Opened:  res.Opened,
		Game:    h.view(b),
	}
	h.mu.Unlock()

	// Storage writes happen outside the lock.
	if summary != nil {
		h.record(*summary)
	}
	return out, nil
}

// Retry replaces board id with a fresh board of the same parameters.
func (h *Hub) Retry(id uuid.UUID) (View, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.games[id]
	if !ok {
		return View{}, ErrNotFound
	}

	b.engine = b.engine.Retry()
	b.engine.CheckWin()
	b.created = h.now()
	b.started = time.Time{}
	b.finished = time.Time{}
	return h.view(b), nil
}

// Unlock marks the secret pattern on board id when word matches.
func (h *Hub) Unlock(id uuid.UUID, word string) (View, int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.games[id]
	if !ok {
		return View{}, 0, ErrNotFound
	}
	if !mines.MatchesUnlock(word) {
		return View{}, 0, ErrWrongWord
	}

	changed := b.engine.RevealSecret(mines.SecretPattern)
	return h.view(b), changed, nil
}

// Snapshot returns board id as YAML.
func (h *Hub) Snapshot(id uuid.UUID) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	data, err := b.engine.Snapshot().Marshal()
	if err != nil {
		return nil, fmt.Errorf("httpapi: cannot snapshot game: %w", err)
	}
	return data, nil
}

// Delete drops board id.
func (h *Hub) Delete(id uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.games[id]; !ok {
		return ErrNotFound
	}
	delete(h.games, id)
	h.logger.Debug("game deleted", "id", id)
	return nil
}

func (h *Hub) summary(b *board) core.RoundSummary {
	snapshot := ""
	if data, err := b.engine.Snapshot().Marshal(); err == nil {
		snapshot = string(data)
	}
	return core.RoundSummary{
		GameID:   GameID,
		Width:    b.engine.Width(),
		Height:   b.engine.Height(),
		BombRate: b.engine.BombRate(),
		Seed:     b.engine.Seed(),
		Outcome:  b.engine.State().String(),
		Opened:   b.engine.Stats().Opened,
		Duration: b.elapsed(h.now()),
		Snapshot: snapshot,
	}
}

func (h *Hub) record(s core.RoundSummary) {
	h.logger.Info("round finished", "won", s.Won(), "opened", s.Opened, "duration", s.Duration)
	if h.recorder == nil {
		return
	}
	if err := h.recorder.RecordRound(s); err != nil {
		h.logger.Warn("could not record round", "error", err)
	}
}
