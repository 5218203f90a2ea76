// Package store persists saved container states between editor sessions.
package store

import (
	"sync"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard/route"
)

// Snapshot is a container's saved route and args. An empty Route means the
// container had nothing open when it was saved.
type Snapshot struct {
	Route string     `json:"route"`
	Args  route.Args `json:"args,omitempty"`
}

// Store keeps one Snapshot per container.
type Store interface {
	SaveSnapshot(container string, snap Snapshot) error
	LoadSnapshots() (map[string]Snapshot, error)
	Close() error
}

// Memory is an in-process Store.
type Memory struct {
	mu    sync.Mutex
	snaps map[string]Snapshot
}

func NewMemory() *Memory {
	return &Memory{snaps: make(map[string]Snapshot)}
}

func (m *Memory) SaveSnapshot(container string, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[container] = Snapshot{Route: snap.Route, Args: snap.Args.Clone()}
	return nil
}

func (m *Memory) LoadSnapshots() (map[string]Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Snapshot, len(m.snaps))
	for k, v := range m.snaps {
		out[k] = Snapshot{Route: v.Route, Args: v.Args.Clone()}
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
