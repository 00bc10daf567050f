package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/mines"
)

var (
	flagReveal bool
	flagSecret string
	flagYAML   bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a seeded board as text",
	Long: `Generate a board and print it without playing. Uses the same board
flags as 'play'. With --seed the output is reproducible.

Examples:
  sweeper show --seed 42
  sweeper show --seed 42 --reveal
  sweeper show --preset easy --theme emoji
  sweeper show --secret <word>
  sweeper show --seed 42 --yaml > board.yaml`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard, classic")
	showCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width in cells")
	showCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height in cells")
	showCmd.Flags().Float64Var(&flagBombRate, "bomb-rate", 0, "Per-cell bomb probability, 0.0 to 1.0")
	showCmd.Flags().StringVar(&flagTheme, "theme", "", "Glyph theme: ascii or emoji")
	showCmd.Flags().BoolVar(&flagReveal, "reveal", false, "Show every cell as if opened")
	showCmd.Flags().StringVar(&flagSecret, "secret", "", "Word that unlocks the hidden pattern")
	showCmd.Flags().BoolVar(&flagYAML, "yaml", false, "Print a YAML snapshot instead of glyphs")
}

func runShow(cmd *cobra.Command, _ []string) error {
	board, err := showBoard(cmd)
	if err != nil {
		return err
	}

	themeName := appConfig.Display.Theme
	if flagTheme != "" {
		themeName = flagTheme
	}
	theme, ok := mines.ThemeByName(themeName)
	if !ok {
		return fmt.Errorf("unknown theme %q", themeName)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine, err := mines.New(mines.Config{
		Width:    board.Width,
		Height:   board.Height,
		BombRate: board.BombRate,
		Seed:     seed,
	})
	if err != nil {
		return err
	}

	if flagSecret != "" {
		if !mines.MatchesUnlock(flagSecret) {
			return errors.New("wrong word")
		}
		engine.RevealSecret(mines.SecretPattern)
	}

	if flagYAML {
		data, err := engine.Snapshot().Marshal()
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	stats := engine.Stats()
	fmt.Printf("Seed %d  %dx%d  bomb rate %.2f  bombs %d\n\n",
		seed, engine.Width(), engine.Height(), engine.BombRate(), stats.Bombs)

	if flagReveal {
		fmt.Print(revealed(engine, theme))
		return nil
	}
	fmt.Print(engine.Render(theme))
	return nil
}

// showBoard resolves the board from config, --preset and the board flags.
func showBoard(cmd *cobra.Command) (config.BoardConfig, error) {
	board := appConfig.Board
	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return board, err
		}
		if pb, ok := appConfig.PresetBoard(preset); ok {
			board = pb
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		board.Width = flagWidth
	}
	if flags.Changed("height") {
		board.Height = flagHeight
	}
	if flags.Changed("bomb-rate") {
		board.BombRate = flagBombRate
	}
	return board, board.Validate()
}

// revealed projects every interior cell as opened, leaving the engine as is.
func revealed(e *mines.Engine, theme mines.Theme) string {
	var sb strings.Builder
	for y := 1; y <= e.Height(); y++ {
		for x := 1; x <= e.Width(); x++ {
			sb.WriteString(theme.Symbol(e.ContentAt(x, y), mines.Open, e.BombCount(x, y), mines.EdgeNone))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
