package httpapi

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sweeper/internal/config"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// MaxGames caps live boards; zero means no limit.
	MaxGames int

	// Sweeper supplies default boards, presets and the theme.
	Sweeper config.SweeperConfig
}

// Server is the HTTP front end of a Hub.
type Server struct {
	config ServerConfig
	hub    *Hub
	http   *http.Server
	logger *log.Logger
}

// NewServer creates a server. recorder may be nil.
func NewServer(cfg ServerConfig, recorder RoundRecorder) *Server {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sweeper-http",
		Level:           log.GetLevel(),
	})

	hub := NewHub(cfg.MaxGames, recorder, logger)
	router := NewRouter(NewHandler(hub, cfg.Sweeper), logger)

	return &Server{
		config: cfg,
		hub:    hub,
		logger: logger,
		http: &http.Server{
			Addr:              cfg.Address,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Hub returns the server's game hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// ListenAndServe starts the HTTP server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting HTTP server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-done:
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
