package router

import (
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/route"
)

// DefaultHistoryLimit is the per-container history depth.
const DefaultHistoryLimit = 50

// StackEntry is one visited route and the args it was visited with.
type StackEntry struct {
	Route route.Route
	Args  route.Args
}

// Stack is the navigation history of one container, oldest entry first.
// When full, the oldest entry is dropped.
type Stack struct {
	entries []StackEntry
	limit   int
}

// NewStack creates an empty stack holding at most limit entries.
func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Stack{
		entries: make([]StackEntry, 0),
		limit:   limit,
	}
}

// Push adds an entry on top.
func (s *Stack) Push(r route.Route, args route.Args) {
	s.entries = append(s.entries, StackEntry{Route: r, Args: args.Clone()})
	if len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}
}

// PushUnique pushes unless the top entry already has the same route and args.
func (s *Stack) PushUnique(r route.Route, args route.Args) {
	if top := s.Peek(); top != nil && top.Route.Equal(r) && route.Equal(top.Args, args) {
		return
	}
	s.Push(r, args)
}

// Pop removes and returns the top entry, or nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear removes all entries.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}

// Entries returns a copy of the entries, oldest first.
func (s *Stack) Entries() []StackEntry {
	out := make([]StackEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (r *Router) historyFor(container string) *Stack {
	h, ok := r.history[container]
	if !ok {
		h = NewStack(r.historyLimit)
		r.history[container] = h
	}
	return h
}

// History returns container's visited routes, oldest first.
func (r *Router) History(container string) []StackEntry {
	h, ok := r.history[container]
	if !ok {
		return nil
	}
	return h.Entries()
}

// ClearHistory forgets container's visited routes.
func (r *Router) ClearHistory(container string) {
	delete(r.history, container)
}

// Back navigates container to the route visited before the current one.
// It returns false when there is no earlier entry or the navigation did not
// land; the history is left as it was in that case.
func (r *Router) Back(container string) (bool, error) {
	h, ok := r.history[container]
	if !ok || h.Len() < 2 {
		return false, nil
	}
	cur := h.Pop()
	prev := h.Pop()
	if err := r.To(prev.Route.String(), prev.Args); err != nil || !r.is(prev.Route, prev.Args) {
		h.Push(prev.Route, prev.Args)
		h.Push(cur.Route, cur.Args)
		return false, err
	}
	return true, nil
}
