// Package switchboard wires the editor's command routing layer together: a
// component registry, the route router, the lifecycle event bus, keyboard
// shortcuts and persisted container states.
//
// Applications register their components on the Session's Registry, register
// routes on its Router, and feed key presses to its Shortcuts manager.
package switchboard

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard/commands"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/component"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/config"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/constants"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/events"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/internal"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/locale"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/router"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/shortcuts"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/store"
)

// Options configures a Session.
type Options struct {
	Config     *config.Config      // Takes precedence over ConfigPath
	ConfigPath string              // TOML file; empty falls back to SWITCHBOARD_CONFIG, then defaults
	Registry   *component.Registry // Existing registry to route through; nil creates one
	Store      store.Store         // Overrides state_path from the config
	LogLevel   string              // Overrides log_level from the config
}

// Session is one editor session's routing state.
type Session struct {
	Config    config.Config
	Registry  *component.Registry
	Router    *router.Router
	Bus       *events.Bus
	Shortcuts *shortcuts.Manager
	Catalog   *locale.Catalog
	Localizer *locale.Localizer

	store store.Store
}

// New builds a Session. Saved states persisted by earlier sessions are
// loaded before it returns.
func New(options Options) (*Session, error) {
	cfg, err := resolveConfig(options)
	if err != nil {
		return nil, err
	}

	if cfg.LogPath != "" {
		internal.SetLogPath(cfg.LogPath)
	}
	if constants.IsDevMode() {
		internal.SetLogLevel(slog.LevelDebug)
	} else {
		internal.SetRawLogLevel(cfg.LogLevel)
	}
	logger := internal.GetLogger()

	registry := options.Registry
	if registry == nil {
		registry = component.NewRegistry()
	}

	st := options.Store
	if st == nil {
		if cfg.StatePath != "" {
			st, err = store.OpenBolt(cfg.StatePath)
			if err != nil {
				return nil, err
			}
		} else {
			st = store.NewMemory()
		}
	}

	bus := events.NewBus(logger)

	r := router.New(registry,
		router.WithCommandOptions(commands.WithLogger(logger), commands.WithBus(bus)),
		router.WithStateStore(st),
		router.WithHistoryLimit(cfg.HistoryLimit),
	)
	if err := r.LoadStates(); err != nil {
		logger.Warn("Failed to load saved states", "error", err)
	}

	catalog, err := locale.New()
	if err != nil {
		bus.Close()
		st.Close()
		return nil, err
	}

	manager := shortcuts.NewManager(r, logger)
	for _, s := range cfg.Shortcuts {
		if err := manager.Bind(s.Keys, s.Command, s.Description); err != nil {
			bus.Close()
			st.Close()
			return nil, fmt.Errorf("switchboard: %w", err)
		}
	}

	logger.Debug("session started", "components", registry.Count(), "shortcuts", len(cfg.Shortcuts), "locale", cfg.Locale)

	return &Session{
		Config:    cfg,
		Registry:  registry,
		Router:    r,
		Bus:       bus,
		Shortcuts: manager,
		Catalog:   catalog,
		Localizer: catalog.Localizer(cfg.Locale),
		store:     st,
	}, nil
}

func resolveConfig(options Options) (config.Config, error) {
	var cfg config.Config
	if options.Config != nil {
		cfg = *options.Config
	} else {
		path := options.ConfigPath
		if path == "" {
			path = os.Getenv(constants.ConfigPathEnvVar)
		}
		loaded, err := config.LoadOrDefault(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if options.LogLevel != "" {
		cfg.LogLevel = options.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("switchboard: %w", err)
	}
	return cfg, nil
}

// Help lists the shortcut bindings in the session's language.
func (s *Session) Help() []shortcuts.HelpLine {
	return s.Shortcuts.Help(s.Localizer)
}

// Close releases the event bus and the state store.
func (s *Session) Close() error {
	return errors.Join(s.Bus.Close(), s.store.Close())
}

// SetLogPath sets the full path for the log file, including filename.
// Call before New to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the logger used by every session.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// CloseLogger closes the log file, if any.
func CloseLogger() {
	internal.CloseLogger()
}
