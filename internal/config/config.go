// Package config loads user preferences for the notary CLI and TUI.
//
// Sources in priority order: defaults, then the user config file
// (~/.config/notary/notary.toml or the OS equivalent), then environment
// variables. Command flags override on top of the loaded config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds editor and persistence preferences.
type Config struct {
	// DataDir is where notary.db lives. Empty selects the per-user default.
	DataDir string `toml:"data_dir"`

	// Theme overrides the theme stored in settings: "", "light" or "dark".
	Theme string `toml:"theme"`

	// Debounce is the quiet period before an edited note is written.
	Debounce Duration `toml:"debounce"`

	// LiteralTab makes Tab on a text line insert a literal indent marker at
	// the caret instead of doing nothing. Tab on todo lines always indents.
	LiteralTab bool `toml:"literal_tab"`
}

// Duration wraps time.Duration so TOML and env values parse from strings
// like "750ms" or "2s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func defaults() Config {
	return Config{
		Debounce: Duration{2 * time.Second},
	}
}

// Load builds the effective config from defaults, config file and env.
func Load() (Config, error) {
	cfg := defaults()

	if path := userConfigFile(); path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	loadFromEnv(&cfg)

	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.Debounce.Duration <= 0 {
		cfg.Debounce = Duration{2 * time.Second}
	}
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("NOTARY_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("NOTARY_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("NOTARY_DEBOUNCE"); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			cfg.Debounce = Duration{dur}
		}
	}
	if v := os.Getenv("NOTARY_LITERAL_TAB"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LiteralTab = b
		}
	}
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "notary", "notary.toml")
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "notary")
}
