package config

import (
	_ "embed"
)

//go:embed defaults/sweeper.yaml
var defaultSweeperYAML []byte

// DefaultSweeperConfig returns the hardcoded configuration used when no YAML
// can be read.
func DefaultSweeperConfig() SweeperConfig {
	presets := make(map[DifficultyPreset]BoardConfig, len(builtinPresets))
	for name, b := range builtinPresets {
		presets[name] = b
	}

	return SweeperConfig{
		Board:   builtinPresets[DifficultyClassic],
		Presets: presets,
		Display: DisplayConfig{
			Theme:     "ascii",
			ShowClock: true,
		},
		Scoring: ScoringConfig{
			PointsPerCell: 10,
			WinBonus:      500,
			BonusWindow:   300,
		},
		Server: ServerConfig{
			SSHAddr:     ":2222",
			HostKeyPath: ".ssh/sweeper_ed25519",
			HTTPAddr:    ":8080",
			DBPath:      "~/.sweeper/scores.db",
			MaxGames:    256,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSweeperYAML
}
