package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := SweeperConfig{}
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))

	assert.Equal(t, DefaultSweeperConfig(), cfg)
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweeper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
board:
  width: 10
  height: 5
  bomb_rate: 0.3
display:
  theme: emoji
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BoardConfig{Width: 10, Height: 5, BombRate: 0.3}, cfg.Board)
	assert.Equal(t, "emoji", cfg.Display.Theme)
	// Unset sections keep their defaults.
	assert.Equal(t, 10, cfg.Scoring.PointsPerCell)
	assert.Equal(t, ":2222", cfg.Server.SSHAddr)
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("board: [1, 2"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("board: {width: 0, height: 3, bomb_rate: 0.1}"), 0o644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/x.db")
	t.Setenv(EnvSSHAddr, ":3333")
	t.Setenv(EnvHTTPAddr, "")
	t.Setenv(EnvTheme, "emoji")

	cfg := DefaultSweeperConfig()
	ApplyEnv(&cfg)

	assert.Equal(t, "/tmp/x.db", cfg.Server.DBPath)
	assert.Equal(t, ":3333", cfg.Server.SSHAddr)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr, "empty values are ignored")
	assert.Equal(t, "emoji", cfg.Display.Theme)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SWEEPER_THEME=emoji\n"), 0o644))

	t.Setenv(EnvTheme, "")
	require.NoError(t, os.Unsetenv(EnvTheme))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "emoji", os.Getenv(EnvTheme))
}

func TestPresets(t *testing.T) {
	cfg := DefaultSweeperConfig()

	p, err := ParsePreset(" Hard ")
	require.NoError(t, err)
	require.NoError(t, ApplyPreset(&cfg, p))
	assert.Equal(t, BoardConfig{Width: 30, Height: 16, BombRate: 0.21}, cfg.Board)

	_, err = ParsePreset("insane")
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, ApplyPreset(&cfg, "insane"), ErrInvalid)

	cfg.Presets[DifficultyEasy] = BoardConfig{Width: 5, Height: 5, BombRate: 0.1}
	require.NoError(t, ApplyPreset(&cfg, DifficultyEasy))
	assert.Equal(t, 5, cfg.Board.Width, "YAML presets override builtins")

	assert.Equal(t, []string{"classic", "easy", "hard", "normal"}, cfg.PresetNames())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		board BoardConfig
		ok    bool
	}{
		{"classic", BoardConfig{16, 8, 0.2}, true},
		{"single cell", BoardConfig{1, 1, 0}, true},
		{"all bombs", BoardConfig{3, 3, 1}, true},
		{"zero width", BoardConfig{0, 8, 0.2}, false},
		{"negative height", BoardConfig{8, -1, 0.2}, false},
		{"rate too high", BoardConfig{8, 8, 1.01}, false},
		{"rate negative", BoardConfig{8, 8, -0.1}, false},
		{"largest board", BoardConfig{1024, 1024, 0.1}, true},
		{"too many cells", BoardConfig{1025, 1024, 0.1}, false},
		{"overflowing size", BoardConfig{math.MaxInt32, math.MaxInt32, 0.1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.board.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestTimeBonus(t *testing.T) {
	s := ScoringConfig{PointsPerCell: 10, WinBonus: 500, BonusWindow: 100}

	assert.Equal(t, 500, s.TimeBonus(0))
	assert.Equal(t, 250, s.TimeBonus(50))
	assert.Equal(t, 0, s.TimeBonus(100))
	assert.Equal(t, 0, s.TimeBonus(1000))
	assert.Equal(t, 500, s.TimeBonus(-5))

	assert.Equal(t, 0, ScoringConfig{}.TimeBonus(10))
	assert.Equal(t, 42, ScoringConfig{WinBonus: 42}.TimeBonus(10))
}
