package config

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DifficultyPreset represents a named board size and density.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyClassic DifficultyPreset = "classic"
)

// builtinPresets are used when the YAML does not define a preset.
var builtinPresets = map[DifficultyPreset]BoardConfig{
	DifficultyEasy:    {Width: 9, Height: 9, BombRate: 0.12},
	DifficultyNormal:  {Width: 16, Height: 12, BombRate: 0.16},
	DifficultyHard:    {Width: 30, Height: 16, BombRate: 0.21},
	DifficultyClassic: {Width: 16, Height: 8, BombRate: 0.2},
}

// ParsePreset normalises a preset name.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := builtinPresets[p]; !ok {
		return "", fmt.Errorf("%w: unknown preset %q", ErrInvalid, name)
	}
	return p, nil
}

// PresetNames returns the names of all presets known to cfg, sorted.
func (c SweeperConfig) PresetNames() []string {
	seen := make(map[string]bool)
	for p := range builtinPresets {
		seen[string(p)] = true
	}
	for p := range c.Presets {
		seen[string(p)] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PresetBoard returns the board for a preset, preferring the YAML definition.
func (c SweeperConfig) PresetBoard(preset DifficultyPreset) (BoardConfig, bool) {
	if b, ok := c.Presets[preset]; ok {
		return b, true
	}
	b, ok := builtinPresets[preset]
	return b, ok
}

// ApplyPreset replaces the active board with a preset.
func ApplyPreset(cfg *SweeperConfig, preset DifficultyPreset) error {
	b, ok := cfg.PresetBoard(preset)
	if !ok {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalid, preset)
	}
	cfg.Board = b
	return nil
}

// TimeBonus returns the win bonus for a round that took elapsedSec seconds.
// The bonus decays linearly from WinBonus to zero over BonusWindow.
func (s ScoringConfig) TimeBonus(elapsedSec float64) int {
	if s.WinBonus <= 0 {
		return 0
	}
	window := float64(s.BonusWindow)
	if window <= 0 {
		return s.WinBonus
	}

	progress := clampF(elapsedSec/window, 0.0, 1.0)
	return int(math.Round(float64(s.WinBonus) * (1.0 - progress)))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
