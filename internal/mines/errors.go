package mines

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when board parameters cannot describe a game.
	ErrInvalidConfig = errors.New("mines: invalid config")

	// ErrInvalidLayout is returned when a textual board cannot be parsed.
	ErrInvalidLayout = errors.New("mines: invalid layout")

	// ErrInvalidSnapshot is returned when a snapshot is inconsistent.
	ErrInvalidSnapshot = errors.New("mines: invalid snapshot")
)

// ConfigError names the offending Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mines: invalid config: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
