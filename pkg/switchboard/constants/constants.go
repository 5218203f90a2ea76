// Package constants defines shared constants and environment variable names
// used throughout switchboard.
package constants

import (
	"os"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// LogLevelEnvVar overrides the configured log level.
const LogLevelEnvVar = "SWITCHBOARD_LOG_LEVEL"

// ConfigPathEnvVar points at the TOML configuration file.
const ConfigPathEnvVar = "SWITCHBOARD_CONFIG"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Containers of the page-builder editor.
const (
	ContainerPanel     = "panel"     // Left-hand editing panel
	ContainerNavigator = "navigator" // Element tree
	ContainerLibrary   = "library"   // Template library modal
)

// Built-in routes bound to the default shortcuts.
const (
	RoutePanelElements     = ContainerPanel + "/elements"
	RoutePanelPageSettings = ContainerPanel + "/page-settings"
	RoutePanelHistory      = ContainerPanel + "/history"
	RouteNavigator         = ContainerNavigator
	RouteLibrary           = ContainerLibrary
)
