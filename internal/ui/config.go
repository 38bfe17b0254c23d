package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/plando/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the configuration",
		Long: `Print the resolved configuration and where it comes from.

If no config file exists, one is created with default values.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfig(a.config)
		},
	}
}

func showConfig(cfg *config.Config) error {
	path := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", path)
	}

	fmt.Printf("%s\n", formatHeader("[grid]"))
	fmt.Printf("  origin_hour     = %v\n", cfg.Grid.OriginHour)
	fmt.Printf("  end_hour        = %v\n", cfg.Grid.EndHour)
	fmt.Printf("  pixels_per_hour = %v\n", cfg.Grid.PixelsPerHour)

	fmt.Printf("%s\n", formatHeader("[week]"))
	tz := cfg.Week.Timezone
	if tz == "" {
		tz = "(local)"
	}
	fmt.Printf("  timezone              = %s\n", tz)
	fmt.Printf("  duplicate_task_policy = %s\n", cfg.Week.DuplicateTaskPolicy)

	fmt.Printf("%s\n", formatHeader("[storage]"))
	fmt.Printf("  backend = %s\n", cfg.Storage.Backend)
	fmt.Printf("  path    = %s\n", cfg.Storage.Path)

	fmt.Printf("%s\n", formatHeader("[llm]"))
	fmt.Printf("  provider = %s\n", cfg.LLM.Provider)
	fmt.Printf("  model    = %s\n", cfg.LLM.Model)
	fmt.Printf("  base_url = %s\n", cfg.LLM.BaseURL)

	fmt.Printf("%s\n", formatHeader("[log]"))
	fmt.Printf("  path  = %s\n", cfg.Log.Path)
	fmt.Printf("  level = %s\n", cfg.Log.Level)

	return nil
}
