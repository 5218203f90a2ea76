// Package commands is the generic command dispatch pipeline.
//
// A command is a route registered with a callback. Run resolves the command's
// component, asks the installed Hooks whether it may run, records it as the
// current command of its container, invokes the callback and then calls the
// post-run hook. The router package specializes this pipeline by installing
// itself as the Hooks.
package commands

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard/component"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/events"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/route"
)

// Callback is the body of a command.
type Callback func(args route.Args) (any, error)

// Flags alter how a single run is gated.
type Flags struct {
	Refresh bool // run even if already current
	ReOpen  bool // open the component even if it is open
}

// RunOption sets Flags for one run.
type RunOption func(*Flags)

// WithRefresh bypasses the already-current guard.
func WithRefresh() RunOption {
	return func(f *Flags) { f.Refresh = true }
}

// WithReOpen forces the component's Open hook to run again.
func WithReOpen() RunOption {
	return func(f *Flags) { f.ReOpen = true }
}

// Invocation is what the hooks see for one run.
type Invocation struct {
	Route route.Route
	Args  route.Args
	Flags Flags
}

// Hooks are the pre/post points of the pipeline.
// BeforeRun returning false halts the run without changing any state.
type Hooks interface {
	BeforeRun(inv Invocation) (bool, error)
	AfterRun(inv Invocation, result any) error
}

// Option configures a Base.
type Option func(*Base)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Base) { b.logger = logger }
}

// WithBus publishes lifecycle events to bus.
func WithBus(bus *events.Bus) Option {
	return func(b *Base) { b.bus = bus }
}

type currentEntry struct {
	route route.Route
	args  route.Args
}

// Base holds the command table, the current command per container and the
// run trace. It is not safe for concurrent use; all calls happen on the UI
// dispatch turn.
type Base struct {
	registry *component.Registry
	hooks    Hooks
	scope    string

	commands map[string]Callback
	current  map[string]currentEntry
	trace    []route.Route

	logger *slog.Logger
	bus    *events.Bus
}

// New creates a Base that uses its own default hooks.
func New(registry *component.Registry, opts ...Option) *Base {
	b := &Base{
		registry: registry,
		scope:    "commands",
		commands: make(map[string]Callback),
		current:  make(map[string]currentEntry),
		logger:   slog.New(slog.DiscardHandler),
	}
	b.hooks = b
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetHooks installs h as the pre/post hooks of Run.
func (b *Base) SetHooks(h Hooks) {
	b.hooks = h
}

// SetScope names the layer reported in errors created by Error.
func (b *Base) SetScope(scope string) {
	b.scope = scope
}

func (b *Base) Registry() *component.Registry { return b.registry }
func (b *Base) Logger() *slog.Logger          { return b.logger }
func (b *Base) Bus() *events.Bus              { return b.bus }

// Register adds command with its callback. A nil callback is allowed for
// commands whose only effect is the component lifecycle.
func (b *Base) Register(command string, cb Callback) error {
	r, err := route.Parse(command)
	if err != nil {
		return fmt.Errorf("%s: register %q: %w", b.scope, command, err)
	}
	if _, err := b.registry.Resolve(r); err != nil {
		return fmt.Errorf("%s: register %q: %w", b.scope, command, err)
	}
	b.commands[r.String()] = cb
	return nil
}

// IsRegistered reports whether command has been registered.
func (b *Base) IsRegistered(command string) bool {
	_, ok := b.commands[command]
	return ok
}

// Commands returns the registered commands, sorted.
func (b *Base) Commands() []string {
	out := make([]string, 0, len(b.commands))
	for c := range b.commands {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Component resolves the component serving r.
func (b *Base) Component(r route.Route) (component.Component, error) {
	c, err := b.registry.Resolve(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.scope, err)
	}
	return c, nil
}

// Run executes command. ran is false when the pre-run hook rejected it.
// A nil args is treated as an empty mapping. When the callback fails the
// container's previous entry is put back and the post-run hook is skipped.
func (b *Base) Run(command string, args route.Args, opts ...RunOption) (result any, ran bool, err error) {
	r, err := route.Parse(command)
	if err != nil {
		return nil, false, &Error{Scope: b.scope, Message: fmt.Sprintf("`%s` is not a valid command", command), Err: err}
	}
	cb, ok := b.commands[r.String()]
	if !ok {
		return nil, false, &Error{Scope: b.scope, Message: fmt.Sprintf("`%s` not found", command), Err: ErrNotFound}
	}

	inv := Invocation{Route: r, Args: args.Clone()}
	for _, opt := range opts {
		opt(&inv.Flags)
	}

	ok, err = b.hooks.BeforeRun(inv)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		b.logger.Debug("command rejected", "scope", b.scope, "command", command)
		return nil, false, nil
	}

	container := r.Container()
	prev, hadPrev := b.current[container]
	b.SetCurrent(container, r, inv.Args)
	b.trace = append(b.trace, r)
	defer func() { b.trace = b.trace[:len(b.trace)-1] }()

	b.logger.Debug("running command", "scope", b.scope, "command", command, "container", container)

	if cb != nil {
		result, err = cb(inv.Args.Clone())
		if err != nil {
			// A failed command never becomes current.
			if hadPrev {
				b.current[container] = prev
			} else {
				b.DeleteCurrent(container)
			}
			return nil, true, fmt.Errorf("%s: %s: %w", b.scope, command, err)
		}
	}

	b.bus.Publish(events.Event{Type: events.CommandRun, Container: container, Route: command, Args: inv.Args})

	if err := b.hooks.AfterRun(inv, result); err != nil {
		return result, true, err
	}
	return result, true, nil
}

// BeforeRun is the default pre-run hook: the command's component may veto it
// through component.DependencyChecker.
func (b *Base) BeforeRun(inv Invocation) (bool, error) {
	c, err := b.Component(inv.Route)
	if err != nil {
		return false, err
	}
	if dc, ok := c.(component.DependencyChecker); ok {
		return dc.Dependency(inv.Route, inv.Args.Clone()), nil
	}
	return true, nil
}

// AfterRun is the default post-run hook. Plain commands are transient, so the
// container's current entry is dropped once the command finishes.
func (b *Base) AfterRun(inv Invocation, result any) error {
	b.DeleteCurrent(inv.Route.Container())
	return nil
}

// Is reports whether command is the current command of its container.
func (b *Base) Is(command string) bool {
	r, err := route.Parse(command)
	if err != nil {
		return false
	}
	cur, ok := b.current[r.Container()]
	return ok && cur.route.Equal(r)
}

// Current returns the current route of container.
func (b *Base) Current(container string) (route.Route, bool) {
	cur, ok := b.current[container]
	return cur.route, ok
}

// CurrentArgs returns a copy of the current args of container.
func (b *Base) CurrentArgs(container string) (route.Args, bool) {
	cur, ok := b.current[container]
	if !ok {
		return nil, false
	}
	return cur.args.Clone(), true
}

// SetCurrent records r and args as container's current entry.
// Route and args are always written together.
func (b *Base) SetCurrent(container string, r route.Route, args route.Args) {
	b.current[container] = currentEntry{route: r, args: args.Clone()}
}

// DeleteCurrent drops container's current entry without notifying anyone.
func (b *Base) DeleteCurrent(container string) {
	delete(b.current, container)
}

// Containers returns the containers that have a current entry, sorted.
func (b *Base) Containers() []string {
	out := make([]string, 0, len(b.current))
	for c := range b.current {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Trace returns the commands currently executing, outermost first.
func (b *Base) Trace() []route.Route {
	out := make([]route.Route, len(b.trace))
	copy(out, b.trace)
	return out
}

// IsRunning reports whether command is somewhere on the run trace.
func (b *Base) IsRunning(command string) bool {
	for _, r := range b.trace {
		if r.String() == command {
			return true
		}
	}
	return false
}

// RunShortcut runs command in response to a keyboard shortcut. The triggering
// event is forwarded to the callback as args["event"].
func (b *Base) RunShortcut(command string, event any) error {
	_, _, err := b.Run(command, route.Args{"event": event})
	return err
}

// Error returns a fatal dispatch error for message.
func (b *Base) Error(message string) error {
	return &Error{Scope: b.scope, Message: message}
}
