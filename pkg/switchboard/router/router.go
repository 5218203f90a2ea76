package router

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard/commands"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/component"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/events"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/route"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/store"
)

// ErrNoCurrentRoute is wrapped by the error ClearCurrent returns for a
// container with nothing recorded. It means the router's tables and the UI
// have diverged.
var ErrNoCurrentRoute = errors.New("no current route")

// Navigation options, see commands.Flags.
var (
	WithRefresh = commands.WithRefresh
	WithReOpen  = commands.WithReOpen
)

// Option configures a Router.
type Option func(*options)

type options struct {
	commandOpts  []commands.Option
	store        store.Store
	historyLimit int
}

// WithCommandOptions passes options through to the underlying commands.Base.
func WithCommandOptions(opts ...commands.Option) Option {
	return func(o *options) { o.commandOpts = append(o.commandOpts, opts...) }
}

// WithStateStore persists saved states to s.
func WithStateStore(s store.Store) Option {
	return func(o *options) { o.store = s }
}

// WithHistoryLimit caps the per-container history. Zero or less means
// DefaultHistoryLimit.
func WithHistoryLimit(n int) Option {
	return func(o *options) { o.historyLimit = n }
}

// Router specializes the command pipeline with route semantics: a container
// keeps its current route after the route's callback finishes, moving to
// another route notifies the outgoing one, and containers can be closed,
// reloaded, saved and restored.
//
// Router is not safe for concurrent use.
type Router struct {
	*commands.Base

	savedStates  map[string]store.Snapshot
	history      map[string]*Stack
	historyLimit int
	store        store.Store
}

// New creates a Router resolving components through registry.
func New(registry *component.Registry, opts ...Option) *Router {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.historyLimit <= 0 {
		o.historyLimit = DefaultHistoryLimit
	}

	r := &Router{
		Base:         commands.New(registry, o.commandOpts...),
		savedStates:  make(map[string]store.Snapshot),
		history:      make(map[string]*Stack),
		historyLimit: o.historyLimit,
		store:        o.store,
	}
	r.Base.SetHooks(r)
	r.Base.SetScope("routes")
	return r
}

// MustRegister registers a route and panics on error.
func (r *Router) MustRegister(path string, cb commands.Callback) *Router {
	if err := r.Register(path, cb); err != nil {
		panic(err)
	}
	return r
}

// To navigates to path. Navigating to the route and args that are already
// current is a no-op.
func (r *Router) To(path string, args route.Args, opts ...commands.RunOption) error {
	_, _, err := r.Run(path, args, opts...)
	return err
}

// Is reports whether path is the current route of its container and args
// deep-equal the current args. Nil args equal empty args.
func (r *Router) Is(path string, args route.Args) bool {
	rt, err := route.Parse(path)
	if err != nil {
		return false
	}
	return r.is(rt, args)
}

func (r *Router) is(rt route.Route, args route.Args) bool {
	cur, ok := r.Current(rt.Container())
	if !ok || !cur.Equal(rt) {
		return false
	}
	curArgs, _ := r.CurrentArgs(rt.Container())
	return route.Equal(args, curArgs)
}

// IsPartOf reports whether path is the current route of its container or one
// of its ancestors.
func (r *Router) IsPartOf(path string) bool {
	rt, err := route.Parse(path)
	if err != nil {
		return false
	}
	cur, ok := r.Current(rt.Container())
	if !ok {
		return false
	}
	return cur.HasPrefix(rt)
}

// BeforeRun gates navigation. It rejects routes that are already current,
// notifies the container's outgoing route, and opens the target component if
// it is not open yet. A component declining Open rejects the navigation.
func (r *Router) BeforeRun(inv commands.Invocation) (bool, error) {
	ok, err := r.Base.BeforeRun(inv)
	if err != nil || !ok {
		return false, err
	}

	if r.is(inv.Route, inv.Args) && !inv.Flags.Refresh {
		return false, nil
	}

	container := inv.Route.Container()

	// Only the outgoing view is notified here. The tables keep the old route
	// until Run records the new one.
	if old, ok := r.Current(container); ok {
		oldComponent, err := r.Component(old)
		if err != nil {
			return false, err
		}
		oldComponent.OnCloseRoute()
		r.Bus().Publish(events.Event{Type: events.RouteLeave, Container: container, Route: old.String()})
	}

	c, err := r.Component(inv.Route)
	if err != nil {
		return false, err
	}
	if !c.IsOpen() || inv.Flags.ReOpen {
		c.SetOpen(c.Open())
		if c.IsOpen() {
			r.Bus().Publish(events.Event{Type: events.RouteOpen, Container: container, Route: inv.Route.String()})
		} else {
			r.Logger().Debug("component declined to open", "route", inv.Route.String())
		}
	}

	return c.IsOpen(), nil
}

// AfterRun tells the target component it has been routed to. Unlike the
// commands default, the container's current entry is kept.
func (r *Router) AfterRun(inv commands.Invocation, result any) error {
	c, err := r.Component(inv.Route)
	if err != nil {
		return err
	}
	c.OnRoute(inv.Args.Clone())

	container := inv.Route.Container()
	r.historyFor(container).PushUnique(inv.Route, inv.Args)
	r.Bus().Publish(events.Event{Type: events.RouteEnter, Container: container, Route: inv.Route.String(), Args: inv.Args})
	return nil
}

// Close closes the component open in container. It is a no-op when nothing
// is open there.
//
// The component's open flag is cleared before its Close hook runs, so a Close
// hook that closes the same container again returns immediately.
func (r *Router) Close(container string) error {
	c := r.containerComponent(container)
	if c == nil || !c.IsOpen() {
		return nil
	}

	c.SetOpen(false)
	c.Close()
	c.Inactivate()

	r.Logger().Debug("container closed", "container", container)
	r.Bus().Publish(events.Event{Type: events.ContainerClose, Container: container})

	return r.ClearCurrent(container)
}

// containerComponent returns the component serving container's current
// route, or the component registered at the container itself.
func (r *Router) containerComponent(container string) component.Component {
	if cur, ok := r.Current(container); ok {
		if c, err := r.Component(cur); err == nil {
			return c
		}
	}
	if c, ok := r.Registry().Get(container); ok {
		return c
	}
	return nil
}

// ClearCurrent drops container's current route and args and notifies the
// route's component. A container with nothing recorded is an error.
func (r *Router) ClearCurrent(container string) error {
	cur, ok := r.Current(container)
	if !ok {
		return &commands.Error{
			Scope:   "routes",
			Message: fmt.Sprintf("`%s` cannot be cleared", container),
			Err:     ErrNoCurrentRoute,
		}
	}

	r.DeleteCurrent(container)

	c, err := r.Component(cur)
	if err != nil {
		return err
	}
	c.OnCloseRoute()
	r.Bus().Publish(events.Event{Type: events.RouteLeave, Container: container, Route: cur.String()})
	return nil
}

// Reload clears path's container and navigates to path again, so the
// component sees OnCloseRoute followed by OnRoute even when path and args are
// already current.
func (r *Router) Reload(path string, args route.Args) error {
	rt, err := route.Parse(path)
	if err != nil {
		return r.Error(fmt.Sprintf("`%s` is not a valid route: %v", path, err))
	}
	if _, ok := r.Current(rt.Container()); ok {
		if err := r.ClearCurrent(rt.Container()); err != nil {
			return err
		}
	}
	return r.To(path, args)
}

// RefreshContainer reloads container's current route with its current args.
// It does nothing if the container has no current route.
func (r *Router) RefreshContainer(container string) error {
	cur, ok := r.Current(container)
	if !ok {
		return nil
	}
	args, _ := r.CurrentArgs(container)
	return r.Reload(cur.String(), args)
}

// SaveState snapshots container's current route and args, replacing any
// earlier snapshot. Saving a container with no current route stores an empty
// snapshot, which RestoreState treats as nothing to restore.
func (r *Router) SaveState(container string) error {
	snap := store.Snapshot{}
	if cur, ok := r.Current(container); ok {
		snap.Route = cur.String()
		snap.Args, _ = r.CurrentArgs(container)
	}
	r.savedStates[container] = snap

	r.Bus().Publish(events.Event{Type: events.StateSave, Container: container, Route: snap.Route, Args: snap.Args})

	if r.store == nil {
		return nil
	}
	if err := r.store.SaveSnapshot(container, snap); err != nil {
		return fmt.Errorf("routes: persist state of %q: %w", container, err)
	}
	return nil
}

// RestoreState navigates container back to its saved snapshot. It returns
// false without navigating when there is nothing saved.
func (r *Router) RestoreState(container string) (bool, error) {
	snap, ok := r.savedStates[container]
	if !ok || snap.Route == "" {
		return false, nil
	}

	r.Bus().Publish(events.Event{Type: events.StateRestore, Container: container, Route: snap.Route, Args: snap.Args})

	if err := r.To(snap.Route, snap.Args.Clone()); err != nil {
		return true, err
	}
	return true, nil
}

// SavedState returns container's snapshot.
func (r *Router) SavedState(container string) (store.Snapshot, bool) {
	snap, ok := r.savedStates[container]
	return snap, ok
}

// LoadStates merges the snapshots persisted in the state store into the
// router. Snapshots saved during this session win.
func (r *Router) LoadStates() error {
	if r.store == nil {
		return nil
	}
	snaps, err := r.store.LoadSnapshots()
	if err != nil {
		return fmt.Errorf("routes: load saved states: %w", err)
	}
	for container, snap := range snaps {
		if _, ok := r.savedStates[container]; !ok {
			r.savedStates[container] = snap
		}
	}
	return nil
}

// RunShortcut navigates to command. The keyboard event is not forwarded.
func (r *Router) RunShortcut(command string, event any) error {
	return r.To(command, nil)
}
