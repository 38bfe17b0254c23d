package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/javiermolinar/plando/internal/config"
	"github.com/javiermolinar/plando/internal/logging"
	"github.com/javiermolinar/plando/internal/storage"
	"github.com/javiermolinar/plando/internal/store"
	"github.com/javiermolinar/plando/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The logger must exist before cobra parses flags, so --debug is
	// detected directly.
	debug := slices.Contains(os.Args[1:], "--debug")
	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	logger, logCloser, err := logging.New(logging.Options{
		Path:    cfg.Log.Path,
		Level:   level,
		Console: debug,
	})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	if logCloser != nil {
		defer func() { _ = logCloser.Close() }()
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() { _ = provider.Close() }()

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("resolving timezone: %w", err)
	}

	st := store.New(store.Options{
		Location:            loc,
		DuplicateTaskPolicy: store.DuplicatePolicy(cfg.Week.DuplicateTaskPolicy),
		Provider:            provider,
		Logger:              logger,
	})

	app := ui.NewApp(st, cfg, logger)
	return app.Execute()
}

func newProvider(cfg *config.Config) (storage.Provider, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		return nil, err
	}
	switch cfg.Storage.Backend {
	case "sqlite":
		return storage.NewSQLiteStore(cfg.Storage.Path)
	default:
		return storage.NewJSONStore(cfg.Storage.Path), nil
	}
}
