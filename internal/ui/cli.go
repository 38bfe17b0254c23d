// Package ui provides the command-line interface for plando.
package ui

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/plando/internal/config"
	"github.com/javiermolinar/plando/internal/grid"
	"github.com/javiermolinar/plando/internal/store"
	"github.com/javiermolinar/plando/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  *store.Store
	config *config.Config
	geom   grid.Config
	log    zerolog.Logger
	root   *cobra.Command
}

// NewApp creates a new CLI application.
func NewApp(st *store.Store, cfg *config.Config, logger zerolog.Logger) *App {
	a := &App{
		store:  st,
		config: cfg,
		log:    logger,
		geom: grid.Config{
			OriginHour:    cfg.Grid.OriginHour,
			EndHour:       cfg.Grid.EndHour,
			PixelsPerHour: cfg.Grid.PixelsPerHour,
		},
	}

	a.root = &cobra.Command{
		Use:   "plando",
		Short: "A weekly plan/do time blocking planner",
		Long: `Plando is a weekly planner built around two lanes per week: what you
plan to do and what you actually did. Blocks snap to a half-hour grid.

Run without arguments to open the interactive planner.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if a.config.UI.NoColor {
				DisableColor()
			}
			return tui.Run(tui.Options{
				Store:  a.store,
				Grid:   a.geom,
				Logger: a.log,
			})
		},
	}

	// Parsed before cobra runs, in main; registered here so cobra accepts it.
	a.root.PersistentFlags().Bool("debug", false, "Log at debug level and mirror logs to stderr")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.reviewCmd())
	a.root.AddCommand(a.tasksCmd())
	a.root.AddCommand(a.resetCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("plando %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
