// Package config loads switchboard settings from a TOML file.
//
//	log_level = "debug"
//	log_path = "/tmp/switchboard/editor.log"
//	locale = "es"
//	state_path = "~/.local/state/switchboard/state.db"
//	history_limit = 20
//
//	[[shortcut]]
//	keys = "ctrl+shift+l"
//	command = "library"
//	description = "shortcut_library"
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard/constants"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/route"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/shortcuts"
)

// Shortcut binds a key combo to a command.
type Shortcut struct {
	Keys        string `toml:"keys"`
	Command     string `toml:"command"`
	Description string `toml:"description"` // locale message ID
}

// Config is the full settings file.
type Config struct {
	LogLevel     string     `toml:"log_level"`
	LogPath      string     `toml:"log_path"`
	Locale       string     `toml:"locale"`
	StatePath    string     `toml:"state_path"` // empty keeps saved states in memory
	HistoryLimit int        `toml:"history_limit"`
	Shortcuts    []Shortcut `toml:"shortcut"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Locale:   "en",
		Shortcuts: []Shortcut{
			{Keys: "ctrl+p", Command: constants.RoutePanelElements, Description: "shortcut_panel_elements"},
			{Keys: "ctrl+shift+s", Command: constants.RoutePanelPageSettings, Description: "shortcut_panel_page_settings"},
			{Keys: "ctrl+shift+h", Command: constants.RoutePanelHistory, Description: "shortcut_panel_history"},
			{Keys: "ctrl+i", Command: constants.RouteNavigator, Description: "shortcut_navigator"},
			{Keys: "ctrl+shift+l", Command: constants.RouteLibrary, Description: "shortcut_library"},
		},
	}
}

// Load reads path on top of Default. Keys the file does not set keep their
// default; a [[shortcut]] list replaces the default bindings entirely. The
// SWITCHBOARD_LOG_LEVEL environment variable overrides log_level.
func Load(path string) (Config, error) {
	cfg := Default()

	var file Config
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if md.IsDefined("log_level") {
		cfg.LogLevel = file.LogLevel
	}
	if md.IsDefined("log_path") {
		cfg.LogPath = file.LogPath
	}
	if md.IsDefined("locale") {
		cfg.Locale = file.Locale
	}
	if md.IsDefined("state_path") {
		cfg.StatePath = file.StatePath
	}
	if md.IsDefined("history_limit") {
		cfg.HistoryLimit = file.HistoryLimit
	}
	if md.IsDefined("shortcut") {
		cfg.Shortcuts = file.Shortcuts
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path if it is set and exists, otherwise returns Default
// with environment overrides applied.
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}
	cfg := Default()
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv applies environment variable overrides.
func (c *Config) ApplyEnv() {
	if level := os.Getenv(constants.LogLevelEnvVar); level != "" {
		c.LogLevel = level
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}

	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			errs = append(errs, fmt.Errorf("locale %q: %w", c.Locale, err))
		}
	}

	if c.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("history_limit must not be negative"))
	}

	seen := make(map[string]bool)
	for i, s := range c.Shortcuts {
		combo, err := shortcuts.ParseCombo(s.Keys)
		if err != nil {
			errs = append(errs, fmt.Errorf("shortcut %d: %w", i, err))
			continue
		}
		if seen[combo.String()] {
			errs = append(errs, fmt.Errorf("shortcut %d: %s is bound twice", i, combo))
		}
		seen[combo.String()] = true
		if _, err := route.Parse(s.Command); err != nil {
			errs = append(errs, fmt.Errorf("shortcut %d: command %q: %w", i, s.Command, err))
		}
	}

	return errors.Join(errs...)
}
