package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/mines"
)

// maxBody bounds request bodies, snapshots included.
const maxBody = 1 << 20

// Handler serves the board endpoints.
type Handler struct {
	hub   *Hub
	cfg   config.SweeperConfig
	theme mines.Theme
	seed  func() int64
}

// NewHandler creates a handler. cfg supplies default boards, presets and theme.
func NewHandler(hub *Hub, cfg config.SweeperConfig) *Handler {
	theme, ok := mines.ThemeByName(cfg.Display.Theme)
	if !ok {
		theme = mines.ASCII
	}
	return &Handler{
		hub:   hub,
		cfg:   cfg,
		theme: theme,
		seed:  func() int64 { return time.Now().UnixNano() },
	}
}

// Health reports liveness and the number of live games.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "games": h.hub.Len()})
}

// Create starts a new board.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decode(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	theme, ok := themeOrDefault(req.Theme, h.theme)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown theme %q", req.Theme))
		return
	}

	var (
		view View
		err  error
	)
	if len(req.Layout) > 0 {
		view, err = h.hub.CreateFromLayout(req.Layout, theme)
	} else {
		var cfg mines.Config
		cfg, err = h.boardConfig(req)
		if err == nil {
			view, err = h.hub.Create(cfg, theme)
		}
	}
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// boardConfig merges a request over the preset and configured board.
func (h *Handler) boardConfig(req CreateRequest) (mines.Config, error) {
	board := h.cfg.Board
	if req.Preset != "" {
		preset, err := config.ParsePreset(req.Preset)
		if err != nil {
			return mines.Config{}, &mines.ConfigError{Field: "preset", Reason: err.Error()}
		}
		pb, ok := h.cfg.PresetBoard(preset)
		if !ok {
			return mines.Config{}, &mines.ConfigError{Field: "preset", Reason: fmt.Sprintf("%q is not configured", req.Preset)}
		}
		board = pb
	}
	if req.Width != 0 {
		board.Width = req.Width
	}
	if req.Height != 0 {
		board.Height = req.Height
	}
	if req.BombRate != nil {
		board.BombRate = *req.BombRate
	}

	seed := req.Seed
	if seed == 0 {
		seed = h.seed()
	}
	return mines.Config{
		Width:    board.Width,
		Height:   board.Height,
		BombRate: board.BombRate,
		Seed:     seed,
	}, nil
}

// Import restores a board from a YAML snapshot body.
// With ?fresh=true the board is re-armed instead of continued.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	theme, ok := themeOrDefault(r.URL.Query().Get("theme"), h.theme)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown theme %q", r.URL.Query().Get("theme")))
		return
	}

	view, err := h.hub.Import(data, r.URL.Query().Get("fresh") == "true", theme)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// Get returns one board.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}

	view, err := h.hub.Get(id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Open reveals a cell.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	h.handleMove(w, r, h.hub.Open)
}

// Flag toggles a flag.
func (h *Handler) Flag(w http.ResponseWriter, r *http.Request) {
	h.handleMove(w, r, h.hub.Flag)
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request, move func(uuid.UUID, int, int) (MoveResult, error)) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}

	var req MoveRequest
	if err := decode(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := move(id, req.X, req.Y)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Retry replaces a board with a fresh one.
func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}

	view, err := h.hub.Retry(id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Unlock checks a word and marks the hidden pattern.
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}

	var req UnlockRequest
	if err := decode(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view, changed, err := h.hub.Unlock(id, req.Word)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, UnlockResult{Changed: changed, Game: view})
}

// Snapshot returns a board as YAML.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}

	data, err := h.hub.Snapshot(id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck // client went away
}

// Delete drops a board.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}

	if err := h.hub.Delete(id); err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// gameID parses the {id} URL parameter. Malformed ids are unknown games.
func gameID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrHubFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrWrongWord):
		return http.StatusForbidden
	case errors.Is(err, mines.ErrInvalidConfig),
		errors.Is(err, mines.ErrInvalidLayout),
		errors.Is(err, mines.ErrInvalidSnapshot):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decode(body io.Reader, v any) error {
	dec := json.NewDecoder(io.LimitReader(body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("httpapi: bad request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
