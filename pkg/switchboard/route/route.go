// Package route provides the typed, hierarchical route path used by the
// command and router layers.
//
// A route such as "panel/editor/style" is parsed once into ordered segments.
// The first segment names the container the route lives in.
package route

import (
	"errors"
	"strings"
)

// Separator joins route segments.
const Separator = "/"

var (
	// ErrEmptyRoute is returned when parsing an empty route string.
	ErrEmptyRoute = errors.New("route is empty")

	// ErrEmptySegment is returned when a route contains an empty segment,
	// e.g. "panel//style" or a trailing separator.
	ErrEmptySegment = errors.New("route has an empty segment")
)

// Route is an immutable, non-empty sequence of path segments.
// The zero value is not a valid route.
type Route struct {
	segments []string
}

// Parse splits s on Separator.
func Parse(s string) (Route, error) {
	if s == "" {
		return Route{}, ErrEmptyRoute
	}
	parts := strings.Split(s, Separator)
	for _, p := range parts {
		if p == "" {
			return Route{}, ErrEmptySegment
		}
	}
	return Route{segments: parts}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Route {
	r, err := Parse(s)
	if err != nil {
		panic("route: " + s + ": " + err.Error())
	}
	return r
}

// IsZero reports whether r is the zero Route.
func (r Route) IsZero() bool {
	return len(r.segments) == 0
}

// Container returns the first segment.
func (r Route) Container() string {
	if r.IsZero() {
		return ""
	}
	return r.segments[0]
}

// Segments returns a copy of the segments.
func (r Route) Segments() []string {
	out := make([]string, len(r.segments))
	copy(out, r.segments)
	return out
}

// Len returns the number of segments.
func (r Route) Len() int {
	return len(r.segments)
}

func (r Route) String() string {
	return strings.Join(r.segments, Separator)
}

// Equal reports whether both routes have identical segments.
func (r Route) Equal(o Route) bool {
	if len(r.segments) != len(o.segments) {
		return false
	}
	for i := range r.segments {
		if r.segments[i] != o.segments[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a segment-wise prefix of r.
// A route is a prefix of itself.
//
// The current route's segments are rebuilt one at a time and each partial
// path is compared against prefix, so "panel/edit" is not a prefix of
// "panel/editor".
func (r Route) HasPrefix(prefix Route) bool {
	if prefix.IsZero() {
		return false
	}
	for n := 1; n <= len(r.segments); n++ {
		if (Route{segments: r.segments[:n]}).Equal(prefix) {
			return true
		}
	}
	return false
}

// Parent returns r without its last segment. ok is false for single-segment
// routes.
func (r Route) Parent() (Route, bool) {
	if len(r.segments) <= 1 {
		return Route{}, false
	}
	return Route{segments: r.Segments()[:len(r.segments)-1]}, true
}
