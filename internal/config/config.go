// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Week    WeekConfig    `toml:"week"`
	Storage StorageConfig `toml:"storage"`
	LLM     LLMConfig     `toml:"llm"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// GridConfig holds the time grid geometry.
type GridConfig struct {
	OriginHour    float64 `toml:"origin_hour"`     // first visible hour, e.g. 6
	EndHour       float64 `toml:"end_hour"`        // last visible hour, e.g. 24
	PixelsPerHour float64 `toml:"pixels_per_hour"` // vertical scale
}

// WeekConfig holds week normalization settings.
type WeekConfig struct {
	Timezone            string `toml:"timezone"`              // IANA name, e.g. "Europe/Madrid"; empty means local
	DuplicateTaskPolicy string `toml:"duplicate_task_policy"` // "ignore" or "update"
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Backend string `toml:"backend"` // "json" or "sqlite"
	Path    string `toml:"path"`
}

// LLMConfig holds review provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "openai", "ollama", "lmstudio"
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	NoColor bool `toml:"no_color"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string `toml:"path"`  // empty disables file logging
	Level string `toml:"level"` // zerolog level name
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			OriginHour:    6,
			EndHour:       24,
			PixelsPerHour: 32,
		},
		Week: WeekConfig{
			Timezone:            "",
			DuplicateTaskPolicy: "ignore",
		},
		Storage: StorageConfig{
			Backend: "json",
			Path:    defaultStoragePath("plando.json"),
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.2",
			BaseURL:  "http://localhost:11434/v1",
		},
		UI: UIConfig{},
		Log: LogConfig{
			Path:  defaultStoragePath("plando.log"),
			Level: "info",
		},
	}
}

// defaultStoragePath returns a path under the user data directory.
func defaultStoragePath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "plando", name)
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "plando", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Log.Path = expandPath(cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := envFloat("PLANDO_GRID_ORIGIN_HOUR"); v != nil {
		cfg.Grid.OriginHour = *v
	}
	if v := envFloat("PLANDO_GRID_END_HOUR"); v != nil {
		cfg.Grid.EndHour = *v
	}
	if v := envFloat("PLANDO_GRID_PIXELS_PER_HOUR"); v != nil {
		cfg.Grid.PixelsPerHour = *v
	}

	if v := os.Getenv("PLANDO_TIMEZONE"); v != "" {
		cfg.Week.Timezone = v
	}
	if v := os.Getenv("PLANDO_DUPLICATE_TASK_POLICY"); v != "" {
		cfg.Week.DuplicateTaskPolicy = v
	}

	if v := os.Getenv("PLANDO_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("PLANDO_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}

	if v := os.Getenv("PLANDO_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("PLANDO_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("PLANDO_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("PLANDO_NO_COLOR"); v != "" {
		cfg.UI.NoColor = v == "1" || strings.EqualFold(v, "true")
	}

	if v := os.Getenv("PLANDO_LOG_PATH"); v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv("PLANDO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func envFloat(name string) *float64 {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Grid.OriginHour < 0 || c.Grid.OriginHour >= 24 {
		return fmt.Errorf("origin_hour must be in [0, 24), got %v", c.Grid.OriginHour)
	}
	if c.Grid.EndHour <= c.Grid.OriginHour || c.Grid.EndHour > 24 {
		return fmt.Errorf("end_hour must be in (origin_hour, 24], got %v", c.Grid.EndHour)
	}
	if !onHalfHour(c.Grid.OriginHour) || !onHalfHour(c.Grid.EndHour) {
		return errors.New("origin_hour and end_hour must fall on half-hour boundaries")
	}
	if c.Grid.PixelsPerHour <= 0 {
		return fmt.Errorf("pixels_per_hour must be positive, got %v", c.Grid.PixelsPerHour)
	}

	if c.Week.Timezone != "" {
		if _, err := time.LoadLocation(c.Week.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Week.Timezone, err)
		}
	}
	switch c.Week.DuplicateTaskPolicy {
	case "ignore", "update":
	default:
		return fmt.Errorf("duplicate_task_policy must be \"ignore\" or \"update\", got %q", c.Week.DuplicateTaskPolicy)
	}

	switch c.Storage.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("storage backend must be \"json\" or \"sqlite\", got %q", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return errors.New("storage path must be set")
	}

	switch c.LLM.Provider {
	case "openai", "ollama", "lmstudio":
	default:
		return fmt.Errorf("llm provider must be \"openai\", \"ollama\" or \"lmstudio\", got %q", c.LLM.Provider)
	}

	return nil
}

// Save writes the configuration to the default config path, creating parent
// directories as needed.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the given path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Location resolves the configured timezone. An empty setting means the
// system's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Week.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Week.Timezone)
}

func onHalfHour(h float64) bool {
	return h*2 == math.Trunc(h*2)
}
