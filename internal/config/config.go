// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/weekgrid/internal/geometry"
	"github.com/javiermolinar/weekgrid/internal/gesture"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Keys    KeysConfig    `toml:"keys"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// GridConfig holds the week grid geometry.
type GridConfig struct {
	IntervalPx      float64 `toml:"interval_px"`       // Height of one 15-minute interval
	HeaderPx        float64 `toml:"header_px"`         // Day header height above the body
	EdgeThresholdPx float64 `toml:"edge_threshold_px"` // Resize grab distance
	RecentWindow    string  `toml:"recent_window"`     // e.g., "1500ms"
}

// KeysConfig maps terminal modifiers to gestures.
type KeysConfig struct {
	Meta       string `toml:"meta"`       // "alt" or "ctrl"
	Duplicate  string `toml:"duplicate"`  // e.g., "meta"
	Reposition string `toml:"reposition"` // e.g., "meta+shift"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // Built-in theme name or path to a .toml theme
}

// Meta key names.
const (
	MetaAlt  = "alt"
	MetaCtrl = "ctrl"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			IntervalPx:      geometry.DefaultIntervalPx,
			HeaderPx:        geometry.DefaultHeaderPx,
			EdgeThresholdPx: geometry.DefaultEdgeThresholdPx,
			RecentWindow:    gesture.DefaultRecentWindow.String(),
		},
		Keys: KeysConfig{
			Meta:       MetaAlt,
			Duplicate:  "meta",
			Reposition: "meta+shift",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "weekgrid.db"
	}
	return filepath.Join(home, ".local", "share", "weekgrid", "weekgrid.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "weekgrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.UI.Theme = expandPath(cfg.UI.Theme)

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
func applyEnvOverrides(cfg *Config) error {
	floats := []struct {
		env string
		dst *float64
	}{
		{"WEEKGRID_INTERVAL_PX", &cfg.Grid.IntervalPx},
		{"WEEKGRID_HEADER_PX", &cfg.Grid.HeaderPx},
		{"WEEKGRID_EDGE_THRESHOLD_PX", &cfg.Grid.EdgeThresholdPx},
	}
	for _, f := range floats {
		v := os.Getenv(f.env)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.env, err)
		}
		*f.dst = n
	}

	if v := os.Getenv("WEEKGRID_RECENT_WINDOW"); v != "" {
		cfg.Grid.RecentWindow = v
	}
	if v := os.Getenv("WEEKGRID_META_KEY"); v != "" {
		cfg.Keys.Meta = v
	}
	if v := os.Getenv("WEEKGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("WEEKGRID_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
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
	if c.Grid.IntervalPx <= 0 {
		return errors.New("interval_px must be positive")
	}
	if c.Grid.HeaderPx < 0 {
		return errors.New("header_px must not be negative")
	}
	if c.Grid.EdgeThresholdPx <= 0 {
		return errors.New("edge_threshold_px must be positive")
	}
	if _, err := time.ParseDuration(c.Grid.RecentWindow); err != nil {
		return fmt.Errorf("recent_window must be a duration, got %q", c.Grid.RecentWindow)
	}

	switch strings.ToLower(c.Keys.Meta) {
	case MetaAlt, MetaCtrl:
	default:
		return fmt.Errorf("meta must be %q or %q, got %q", MetaAlt, MetaCtrl, c.Keys.Meta)
	}
	b, err := gesture.ParseBindings(c.Keys.Reposition, c.Keys.Duplicate)
	if err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	if !b.Reposition.Meta || !b.Duplicate.Meta {
		return errors.New("keys: gesture chords must include meta")
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Metrics returns the grid geometry.
func (c *Config) Metrics() geometry.Metrics {
	return geometry.Metrics{
		IntervalPx:      c.Grid.IntervalPx,
		HeaderPx:        c.Grid.HeaderPx,
		EdgeThresholdPx: c.Grid.EdgeThresholdPx,
	}
}

// RecentWindow returns how long a committed block stays highlighted.
func (c *Config) RecentWindow() time.Duration {
	d, err := time.ParseDuration(c.Grid.RecentWindow)
	if err != nil {
		return gesture.DefaultRecentWindow
	}
	return d
}

// Bindings returns the gesture chords. Call after Validate.
func (c *Config) Bindings() gesture.Bindings {
	b, err := gesture.ParseBindings(c.Keys.Reposition, c.Keys.Duplicate)
	if err != nil {
		return gesture.DefaultBindings()
	}
	return b
}

// MetaIsCtrl reports whether Ctrl acts as the meta modifier.
func (c *Config) MetaIsCtrl() bool {
	return strings.EqualFold(c.Keys.Meta, MetaCtrl)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
