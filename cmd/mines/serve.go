package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-cli/internal/config"
	"github.com/vancomm/minesweeper-cli/internal/database"
	"github.com/vancomm/minesweeper-cli/internal/handlers"
	"github.com/vancomm/minesweeper-cli/internal/middleware"
	"github.com/vancomm/minesweeper-cli/internal/repository"
)

var (
	serveAddr    string
	serveOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the leaderboard over HTTP",
	Long: `Start a read-only HTTP server exposing the best times as JSON.

Endpoints:
  GET /highscores?preset=&width=&height=&mine_count=&player=&limit=

Examples:
  mines serve
  mines serve --addr :9090 --origin https://mines.example`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080 or APP_PORT)")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "origin", nil, "Allowed CORS origins (default any)")
}

func buildHandler(store repository.Store, presets *config.Presets) http.Handler {
	highscores := handlers.NewHighscoreHandler(log, store, presets)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /highscores", highscores.Fetch)

	return middleware.Wrap(mux,
		middleware.Logging(log),
		middleware.Cors(serveOrigins...),
	)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if serveAddr == "" {
		serveAddr = config.Addr()
	}

	presets, err := loadPresets()
	if err != nil {
		return err
	}

	store, err := database.Open(ctx, log, flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	server := &http.Server{
		Addr:         serveAddr,
		Handler:      buildHandler(store, presets),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	log.Infof("ready to serve @ %s", serveAddr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("server stopped")
		return err
	}
	log.Info("server stopped")
	return nil
}
