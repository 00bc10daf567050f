package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sweeper/internal/config"
)

type apiClient struct {
	t      *testing.T
	router http.Handler
}

func newAPI(t *testing.T, maxGames int, rec RoundRecorder) *apiClient {
	t.Helper()
	logger := log.New(io.Discard)
	hub := NewHub(maxGames, rec, logger)
	return &apiClient{t: t, router: NewRouter(NewHandler(hub, config.DefaultSweeperConfig()), logger)}
}

func (c *apiClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&v), rec.Body.String())
	return v
}

func TestAPIPlayRound(t *testing.T) {
	rec := &fakeRecorder{}
	api := newAPI(t, 0, rec)

	resp := api.do(http.MethodPost, "/games", `{"layout": ["..*", "...", "..."]}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
	game := decodeBody[View](t, resp)
	assert.Equal(t, []string{"###", "###", "###"}, game.Rows)

	resp = api.do(http.MethodPost, "/games/"+game.ID+"/flag", `{"x": 3, "y": 1}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "flagged", decodeBody[MoveResult](t, resp).Outcome)

	resp = api.do(http.MethodPost, "/games/"+game.ID+"/open", `{"x": 1, "y": 3}`)
	require.Equal(t, http.StatusOK, resp.Code)
	move := decodeBody[MoveResult](t, resp)
	assert.Equal(t, "opened", move.Outcome)
	assert.Equal(t, "won", move.Game.State)
	assert.Equal(t, 1, rec.count())

	resp = api.do(http.MethodGet, "/games/"+game.ID, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "won", decodeBody[View](t, resp).State)

	resp = api.do(http.MethodPost, "/games/"+game.ID+"/retry", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "playing", decodeBody[View](t, resp).State)
}

func TestAPICreateFromPreset(t *testing.T) {
	api := newAPI(t, 0, nil)

	resp := api.do(http.MethodPost, "/games", `{"preset": "easy", "seed": 7}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	game := decodeBody[View](t, resp)
	assert.Equal(t, 9, game.Width)
	assert.Equal(t, 9, game.Height)
	assert.Equal(t, int64(7), game.Seed)

	resp = api.do(http.MethodPost, "/games", `{"width": 5, "height": 4, "bomb_rate": 0, "theme": "emoji"}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	game = decodeBody[View](t, resp)
	assert.Equal(t, 5, game.Width)
	assert.Equal(t, 0.0, game.BombRate)
	assert.Equal(t, "😴", game.Cells[0][0])

	// Empty body fields fall back to the configured board
	resp = api.do(http.MethodPost, "/games", `{}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	game = decodeBody[View](t, resp)
	assert.Equal(t, 16, game.Width)
	assert.Equal(t, 8, game.Height)
}

func TestAPIBadRequests(t *testing.T) {
	api := newAPI(t, 0, nil)

	tests := []struct {
		name string
		body string
	}{
		{"negative width", `{"width": -1}`},
		{"bomb rate above one", `{"bomb_rate": 1.5}`},
		{"unknown preset", `{"preset": "insane"}`},
		{"unknown theme", `{"theme": "neon"}`},
		{"ragged layout", `{"layout": ["..", "."]}`},
		{"unknown field", `{"mines": 10}`},
		{"not json", `width=3`},
		{"board too large", `{"width": 4294967294, "height": 4294967294, "bomb_rate": 0}`},
		{"too many cells", `{"width": 2048, "height": 1024}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.do(http.MethodPost, "/games", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.NotEmpty(t, decodeBody[ErrorResponse](t, resp).Error)
		})
	}

	resp := api.do(http.MethodPost, "/games/import", "width: 2\nheight: 1\nstate: playing\ncontent: [X*]\noverlay: ['##']\n")
	assert.Equal(t, http.StatusBadRequest, resp.Code, "exploded bomb in a running game")
}

func TestAPIUnknownGame(t *testing.T) {
	api := newAPI(t, 0, nil)

	for _, path := range []string{
		"/games/not-a-uuid",
		"/games/6f1c1d7e-8d5e-4f8e-9a53-0d8c2b2f3a10",
		"/games/6f1c1d7e-8d5e-4f8e-9a53-0d8c2b2f3a10/snapshot",
	} {
		resp := api.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, resp.Code, path)
	}

	resp := api.do(http.MethodPost, "/games/6f1c1d7e-8d5e-4f8e-9a53-0d8c2b2f3a10/open", `{"x": 1, "y": 1}`)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAPISnapshotImportDelete(t *testing.T) {
	api := newAPI(t, 0, nil)

	resp := api.do(http.MethodPost, "/games", `{"layout": ["*..", "..."]}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	game := decodeBody[View](t, resp)

	resp = api.do(http.MethodGet, "/games/"+game.ID+"/snapshot", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/yaml", resp.Header().Get("Content-Type"))
	snapshot := resp.Body.String()
	assert.Contains(t, snapshot, "state: playing")

	resp = api.do(http.MethodPost, "/games/import", snapshot)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	imported := decodeBody[View](t, resp)
	assert.NotEqual(t, game.ID, imported.ID)
	assert.Equal(t, 3, imported.Width)

	resp = api.do(http.MethodPost, "/games/import", "content: [")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = api.do(http.MethodDelete, "/games/"+game.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.Code)
	resp = api.do(http.MethodGet, "/games/"+game.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAPIUnlock(t *testing.T) {
	api := newAPI(t, 0, nil)

	resp := api.do(http.MethodPost, "/games", `{"width": 16, "height": 8, "bomb_rate": 0, "seed": 1}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	game := decodeBody[View](t, resp)

	resp = api.do(http.MethodPost, "/games/"+game.ID+"/unlock", `{"word": "minesweeper"}`)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = api.do(http.MethodPost, "/games/"+game.ID+"/unlock", `{"word": "jig.jp"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Positive(t, decodeBody[UnlockResult](t, resp).Changed)
}

func TestAPIHealthAndLimit(t *testing.T) {
	api := newAPI(t, 1, nil)

	resp := api.do(http.MethodPost, "/games", `{"layout": ["."]}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = api.do(http.MethodPost, "/games", `{"layout": ["."]}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)

	resp = api.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, resp.Code)
	health := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, 1.0, health["games"])
}
