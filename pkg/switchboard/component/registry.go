package component

import (
	"errors"
	"fmt"
	"sort"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard/route"
)

// ErrNotFound is returned when no component is registered for a route.
var ErrNotFound = errors.New("component not found")

// Registry maps namespaces to components. A component registered at
// "panel/editor" serves "panel/editor" and every route below it.
//
// The registry owns its components for the life of the session.
type Registry struct {
	components map[string]Component
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]Component),
	}
}

// Register adds c under namespace, replacing any previous registration.
func (reg *Registry) Register(namespace string, c Component) error {
	if c == nil {
		return fmt.Errorf("component: register %q: nil component", namespace)
	}
	ns, err := route.Parse(namespace)
	if err != nil {
		return fmt.Errorf("component: register %q: %w", namespace, err)
	}
	reg.components[ns.String()] = c
	return nil
}

// MustRegister is like Register but panics on error.
func (reg *Registry) MustRegister(namespace string, c Component) *Registry {
	if err := reg.Register(namespace, c); err != nil {
		panic(err)
	}
	return reg
}

// Get returns the component registered exactly at namespace.
func (reg *Registry) Get(namespace string) (Component, bool) {
	c, ok := reg.components[namespace]
	return c, ok
}

// Resolve returns the component registered at the longest namespace that is a
// prefix of r.
func (reg *Registry) Resolve(r route.Route) (Component, error) {
	for ns, ok := r, !r.IsZero(); ok; ns, ok = ns.Parent() {
		if c, found := reg.components[ns.String()]; found {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, r.String())
}

// Namespaces returns the registered namespaces, sorted.
func (reg *Registry) Namespaces() []string {
	out := make([]string, 0, len(reg.components))
	for ns := range reg.components {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of registered components.
func (reg *Registry) Count() int {
	return len(reg.components)
}
