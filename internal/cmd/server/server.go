// Package server parses server command flags and starts the game service.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/omerta/internal/api"
	"github.com/louisbranch/omerta/internal/engine"
	entrypoint "github.com/louisbranch/omerta/internal/platform/cmd"
	"github.com/louisbranch/omerta/internal/storage"
	"github.com/louisbranch/omerta/internal/storage/sqlite"
)

// Config holds server command configuration.
type Config struct {
	Port       int    `env:"OMERTA_PORT" envDefault:"8080"`
	Addr       string `env:"OMERTA_ADDR"`
	DBPath     string `env:"OMERTA_DB_PATH" envDefault:"omerta.db"`
	MinPlayers int    `env:"OMERTA_MIN_PLAYERS" envDefault:"6"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The server listen address (overrides -port)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path (empty disables persistence)")
	fs.IntVar(&cfg.MinPlayers, "min-players", cfg.MinPlayers, "Minimum roster size to start a match")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the game service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		return serve(ctx, cfg)
	})
}

func serve(ctx context.Context, cfg Config) error {
	var store storage.PlayerStore
	if cfg.DBPath != "" {
		sqliteStore, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() {
			if err := sqliteStore.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()
		store = sqliteStore
	}

	settings := engine.DefaultSettings()
	if cfg.MinPlayers > 0 {
		settings.MinPlayers = cfg.MinPlayers
	}

	feed := api.NewFeed()
	match := engine.New(settings, feed, engine.WithStore(store))
	go match.Run(ctx)

	addr := cfg.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Port)
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: api.NewRouter(match, store, feed),
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
