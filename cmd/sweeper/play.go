package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/games/sweeper"
	"github.com/vovakirdan/tui-sweeper/internal/mines"
	"github.com/vovakirdan/tui-sweeper/internal/platform/tui"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var (
	flagPreset   string
	flagWidth    int
	flagHeight   int
	flagBombRate float64
	flagTheme    string
	flagLoad     string
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board (default: sweeper).

Controls:
  Arrows/WASD/HJKL  - Move cursor
  Space/Enter/O     - Open cell
  F/X               - Toggle flag
  P                 - Pause the clock
  R                 - New board
  Esc/B             - Leave the board
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a text screenshot

Presets:
  easy     - 9x9, rate 0.12
  normal   - 16x12, rate 0.16
  hard     - 30x16, rate 0.21
  classic  - 16x8, rate 0.2

Board flags apply to the default board and override the preset.

Examples:
  sweeper play
  sweeper play sweeper_easy
  sweeper play --preset hard
  sweeper play --width 20 --height 10 --bomb-rate 0.15
  sweeper play --theme emoji
  sweeper play --load board.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard, classic")
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width in cells")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height in cells")
	playCmd.Flags().Float64Var(&flagBombRate, "bomb-rate", 0, "Per-cell bomb probability, 0.0 to 1.0")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Glyph theme: ascii or emoji")
	playCmd.Flags().StringVar(&flagLoad, "load", "", "Continue a board from a YAML snapshot")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := "sweeper"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q (run 'sweeper list' to see available boards)", gameID)
	}

	if err := applyBoardFlags(cmd); err != nil {
		return err
	}

	if flagLoad != "" {
		data, err := os.ReadFile(flagLoad)
		if err != nil {
			return fmt.Errorf("cannot read snapshot: %w", err)
		}
		snap, err := mines.ParseSnapshot(data)
		if err != nil {
			return err
		}
		sweeper.SetLoadSnapshot(snap)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(dbPath())
	if err != nil {
		log.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, runtimeConfig())

	if store != nil {
		store.Close()
	}

	return runErr
}

// applyBoardFlags passes --preset, --theme and the board flags to the game.
func applyBoardFlags(cmd *cobra.Command) error {
	board := appConfig.Board

	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return err
		}
		sweeper.SetPreset(preset)
		if pb, ok := appConfig.PresetBoard(preset); ok {
			board = pb
		}
	}

	if flagTheme != "" {
		if _, ok := mines.ThemeByName(flagTheme); !ok {
			return fmt.Errorf("unknown theme %q", flagTheme)
		}
		sweeper.SetTheme(flagTheme)
	}

	flags := cmd.Flags()
	if !flags.Changed("width") && !flags.Changed("height") && !flags.Changed("bomb-rate") {
		return nil
	}
	if flags.Changed("width") {
		board.Width = flagWidth
	}
	if flags.Changed("height") {
		board.Height = flagHeight
	}
	if flags.Changed("bomb-rate") {
		board.BombRate = flagBombRate
	}
	if err := board.Validate(); err != nil {
		return err
	}
	sweeper.SetBoard(&board)
	return nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}
