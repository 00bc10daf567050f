// sweeper is a minesweeper for the terminal, playable locally, over SSH or
// through an HTTP API.
//
// Usage:
//
//	sweeper list              - List available boards
//	sweeper play [board]      - Play a board
//	sweeper menu              - Start menu to pick boards interactively
//	sweeper scores [board]    - Show high scores and round stats
//	sweeper serve             - Start SSH server for remote play
//	sweeper api               - Start HTTP API server
//	sweeper show              - Print a seeded board
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: from config, ~/.sweeper/scores.db)
//	--config <path>      - Path to a custom sweeper.yaml
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/games/sweeper"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	// appConfig is loaded once before any subcommand runs.
	appConfig = config.DefaultSweeperConfig()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sweeper",
	Short: "Sweeper - minesweeper in your terminal",
	Long: `Sweeper is a terminal minesweeper. Bombs are placed by chance, so every
board holds a different number of them.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board picker menu
  scores   - View high scores and round stats
  serve    - Start SSH server for remote play
  api      - Start HTTP API server
  show     - Print a seeded board as text

Examples:
  sweeper list
  sweeper play
  sweeper play sweeper_hard
  sweeper play --width 20 --height 10 --bomb-rate 0.15
  sweeper menu
  sweeper serve --ssh :2222
  sweeper api --http :8080
  sweeper scores sweeper`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom sweeper.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(showCmd)
}

// setup loads .env, configures logging and reads the config file.
func setup(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn("could not load .env", "error", err)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	log.SetLevel(level)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	appConfig = cfg
	sweeper.SetConfigPath(flagConfig)

	log.Debug("config loaded",
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"bomb_rate", cfg.Board.BombRate,
		"theme", cfg.Display.Theme,
	)
	return nil
}

// dbPath prefers --db over the configured path.
func dbPath() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return appConfig.Server.DBPath
}
