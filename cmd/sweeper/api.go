package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/httpapi"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var (
	flagHTTPAddr string
	flagMaxGames int
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the sweeper HTTP API server",
	Long: `Start an HTTP server that hosts boards as JSON resources.

Endpoints:
  GET    /healthz
  POST   /games                 {"preset", "width", "height", "bomb_rate", "seed", "theme", "layout"}
  POST   /games/import          YAML snapshot body, ?fresh=true to re-arm
  GET    /games/{id}
  DELETE /games/{id}
  POST   /games/{id}/open       {"x": 1, "y": 1}
  POST   /games/{id}/flag       {"x": 1, "y": 1}
  POST   /games/{id}/retry
  POST   /games/{id}/unlock     {"word": "..."}
  GET    /games/{id}/snapshot

Finished rounds are recorded under "sweeper_api".

Examples:
  sweeper api
  sweeper api --http :9090 --max-games 64
  curl -X POST localhost:8080/games -d '{"preset": "easy"}'`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (default from config)")
	apiCmd.Flags().IntVar(&flagMaxGames, "max-games", 0, "Maximum live boards (default from config)")
}

func runAPI(_ *cobra.Command, _ []string) error {
	maxGames := appConfig.Server.MaxGames
	if flagMaxGames > 0 {
		maxGames = flagMaxGames
	}

	cfg := httpapi.ServerConfig{
		Address:  firstNonEmpty(flagHTTPAddr, appConfig.Server.HTTPAddr),
		MaxGames: maxGames,
		Sweeper:  appConfig,
	}

	var recorder httpapi.RoundRecorder
	store, err := storage.Open(dbPath())
	if err != nil {
		log.Warn("could not open scores database, rounds will not be recorded", "error", err)
	} else {
		defer store.Close()
		recorder = store
	}

	server := httpapi.NewServer(cfg, recorder)

	fmt.Printf("Starting sweeper HTTP API on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
