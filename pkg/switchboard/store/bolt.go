package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketSavedStates = "saved_states"

// Bolt is a Store backed by a bbolt database file. Args go through JSON, so
// numbers come back as float64.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database at path.
func OpenBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("store: create directory for %s: %w", path, err)
	}
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSavedStates))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: initialize %s: %w", path, err)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) SaveSnapshot(container string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("store: encode snapshot of %q: %w", container, err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSavedStates)).Put([]byte(container), data)
	})
}

func (b *Bolt) LoadSnapshots() (map[string]Snapshot, error) {
	out := make(map[string]Snapshot)
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSavedStates)).ForEach(func(k, v []byte) error {
			var snap Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				return fmt.Errorf("decode snapshot of %q: %w", k, err)
			}
			out[string(k)] = snap
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return out, nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
