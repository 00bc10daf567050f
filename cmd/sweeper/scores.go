package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/httpapi"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var (
	flagRounds int
	flagClear  bool
	flagAll    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show high scores and round stats for a board",
	Long: `Display the top 10 high scores, win/loss stats and optionally the most
recent rounds for the specified board. Rounds played through the HTTP API are
stored under "sweeper_api".

Examples:
  sweeper scores sweeper
  sweeper scores sweeper_hard --rounds 5
  sweeper scores sweeper_api
  sweeper scores sweeper --clear
  sweeper scores --all`,
	Args: cobra.RangeArgs(0, 1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRounds, "rounds", 0, "Also list this many recent rounds")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and rounds of the board")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Summarise every board with recorded scores")
}

func runScores(cmd *cobra.Command, args []string) error {
	if flagAll {
		return printAllStats()
	}
	if len(args) == 0 {
		return fmt.Errorf("a board is required (or pass --all)")
	}
	gameID := args[0]

	title := "HTTP API"
	if gameID != httpapi.GameID {
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown board %q (run 'sweeper list' to see available boards)", gameID)
		}
		game, err := registry.Create(gameID)
		if err != nil {
			return err
		}
		title = game.Title()
	}

	store, err := storage.Open(dbPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores and rounds of %s.\n", title)
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sweeper play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
		}

		gs, err := store.GetGameStats(gameID)
		if err != nil {
			return err
		}
		fmt.Printf("\n  %d scored rounds, average %.0f\n", gs.GamesCount, gs.AvgScore)
	}

	stats, err := store.RoundStats(gameID)
	if err != nil {
		return err
	}
	if stats.Played > 0 {
		fmt.Println()
		fmt.Printf("Rounds: %d  Won: %d  Lost: %d  Win rate: %.0f%%\n",
			stats.Played, stats.Wins, stats.Losses, stats.WinRate()*100)
		if stats.BestTime > 0 {
			fmt.Printf("Fastest win: %s\n", stats.BestTime)
		}
	}

	if flagRounds > 0 {
		return printRounds(store, gameID, flagRounds)
	}
	return nil
}

func printRounds(store *storage.Store, gameID string, limit int) error {
	rounds, err := store.RecentRounds(gameID, limit)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Recent rounds:")
	fmt.Printf("  %-8s  %-6s  %-6s  %-8s  %-20s  %s\n", "Board", "Rate", "Result", "Time", "Seed", "Date")
	for _, r := range rounds {
		fmt.Printf("  %-8s  %-6.2f  %-6s  %-8s  %-20d  %s\n",
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.BombRate,
			r.Outcome,
			r.Duration.Round(100*time.Millisecond),
			r.Seed,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return nil
}

func printAllStats() error {
	store, err := storage.Open(dbPath())
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-14s  %-6s  %-8s  %-8s  %s\n", "Board", "Games", "Best", "Average", "Last played")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-14s  %-6d  %-8d  %-8.0f  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
