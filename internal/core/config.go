package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for bomb placement
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State   GameState
	Message string // Feedback for the last move, empty when nothing happened
}

// RoundSummary describes a finished round for persistence.
type RoundSummary struct {
	GameID   string
	Width    int
	Height   int
	BombRate float64
	Seed     int64
	Outcome  string // "won" or "lost"
	Opened   int
	Duration time.Duration
	Snapshot string // YAML board snapshot
}

// Won reports whether the round ended in a win.
func (r RoundSummary) Won() bool {
	return r.Outcome == "won"
}
