package switchboard

import (
	"errors"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard/commands"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/component"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/router"
)

// IsRoutingError checks if an error is a fatal dispatch or routing error.
// These indicate a programming error or diverged router state and must not
// be retried. A rejected navigation is never an error.
func IsRoutingError(err error) bool {
	return commands.IsError(err)
}

// IsNotFound checks if an error reports an unregistered command or component.
func IsNotFound(err error) bool {
	return errors.Is(err, commands.ErrNotFound) || errors.Is(err, component.ErrNotFound)
}

// IsNoCurrentRoute checks if an error reports clearing a container that had
// no current route.
func IsNoCurrentRoute(err error) bool {
	return errors.Is(err, router.ErrNoCurrentRoute)
}
