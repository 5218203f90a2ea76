// Package component defines the UI component contract driven by the router
// and the registry that resolves routes to components.
package component

import (
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard/route"
)

// Component is a controllable UI unit (a panel, a modal, a navigator) with an
// open/close/route lifecycle.
//
// The router writes the open flag with SetOpen(false) before it calls Close.
// Close implementations may call back into the router, including closing the
// same container again; that nested call sees the component as closed and
// returns without recursing.
type Component interface {
	// Open activates the component. Returning false declines the navigation.
	Open() bool
	// Close releases the component's resources.
	Close()
	// Inactivate is the secondary deactivation hook, called after Close.
	Inactivate()
	// OnRoute is called after navigation into one of the component's routes.
	OnRoute(args route.Args)
	// OnCloseRoute is called when navigation leaves the component's route.
	OnCloseRoute()

	IsOpen() bool
	SetOpen(open bool)
}

// DependencyChecker is implemented by components that gate commands on a
// precondition (a document being loaded, a selection existing).
type DependencyChecker interface {
	Dependency(r route.Route, args route.Args) bool
}

// Base provides the open flag and no-op lifecycle hooks.
// Embed it and override the hooks a component cares about.
type Base struct {
	open atomic.Bool
}

// Open accepts every navigation.
func (b *Base) Open() bool { return true }

func (b *Base) Close()                  {}
func (b *Base) Inactivate()             {}
func (b *Base) OnRoute(args route.Args) {}
func (b *Base) OnCloseRoute()           {}

// IsOpen reports the open flag.
func (b *Base) IsOpen() bool { return b.open.Load() }

// SetOpen sets the open flag.
func (b *Base) SetOpen(open bool) { b.open.Store(open) }
