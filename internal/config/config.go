// Package config provides YAML-based board configuration loading,
// difficulty presets and environment overrides for the sweeper platform.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-sweeper/internal/mines"
)

// ErrInvalid is returned by Validate for unusable configuration.
var ErrInvalid = errors.New("config: invalid configuration")

// SweeperConfig contains all configuration for the sweeper game and its servers.
type SweeperConfig struct {
	Board   BoardConfig                      `yaml:"board"`
	Presets map[DifficultyPreset]BoardConfig `yaml:"presets"`
	Display DisplayConfig                    `yaml:"display"`
	Scoring ScoringConfig                    `yaml:"scoring"`
	Server  ServerConfig                     `yaml:"server"`
}

// BoardConfig defines the parameters of a new board.
type BoardConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	BombRate float64 `yaml:"bomb_rate"` // per-cell probability, 0.0 to 1.0
}

// DisplayConfig defines how boards are drawn.
type DisplayConfig struct {
	Theme     string `yaml:"theme"`      // "ascii" or "emoji"
	ShowClock bool   `yaml:"show_clock"` // draw elapsed time in the HUD
}

// ScoringConfig defines how rounds are scored.
type ScoringConfig struct {
	PointsPerCell int `yaml:"points_per_cell"` // per opened safe cell
	WinBonus      int `yaml:"win_bonus"`       // maximum time bonus on a win
	BonusWindow   int `yaml:"bonus_window"`    // seconds until the bonus reaches zero
}

// ServerConfig defines the network surfaces and persistence.
type ServerConfig struct {
	SSHAddr     string `yaml:"ssh_addr"`
	HostKeyPath string `yaml:"host_key_path"`
	HTTPAddr    string `yaml:"http_addr"`
	DBPath      string `yaml:"db_path"`
	MaxGames    int    `yaml:"max_games"` // live games kept by the HTTP API
}

// Validate checks the active board and every preset.
func (c SweeperConfig) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	for name, preset := range c.Presets {
		if err := preset.Validate(); err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
	}
	if c.Scoring.PointsPerCell < 0 || c.Scoring.WinBonus < 0 || c.Scoring.BonusWindow < 0 {
		return fmt.Errorf("%w: scoring values must not be negative", ErrInvalid)
	}
	return nil
}

// Validate checks board bounds, the cell limit and the bomb rate.
func (b BoardConfig) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalid, b.Width, b.Height)
	}
	if b.Width > mines.MaxCells/b.Height {
		return fmt.Errorf("%w: board %dx%d exceeds %d cells", ErrInvalid, b.Width, b.Height, mines.MaxCells)
	}
	if math.IsNaN(b.BombRate) || b.BombRate < 0 || b.BombRate > 1 {
		return fmt.Errorf("%w: bomb_rate must be within [0, 1], got %v", ErrInvalid, b.BombRate)
	}
	return nil
}
