package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPrefs = []byte("prefs")
)

// PrefStore implements domain.KeyValueStore using BoltDB.
type PrefStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access).
	// Removed keys are dropped, so a miss always falls through to disk.
	cache map[string]string
}

// Ensure PrefStore implements KeyValueStore at compile time.
var _ domain.KeyValueStore = (*PrefStore)(nil)

// NewPrefStore opens (or creates) the bolt file at path. An empty path gives
// a memory-only store that forgets everything on exit.
func NewPrefStore(path string) (*PrefStore, error) {
	if path == "" {
		// Memory-only mode (no persistence)
		return &PrefStore{cache: make(map[string]string)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPrefs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PrefStore{db: db, cache: make(map[string]string)}, nil
}

// Persistent reports whether values survive a restart.
func (s *PrefStore) Persistent() bool {
	return s.db != nil
}

func (s *PrefStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored under key. A missing key is ("", false).
func (s *PrefStore) Get(key string) (string, bool) {
	// Check memory cache first
	s.mu.RLock()
	if v, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return v, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return "", false
	}

	var (
		value string
		found bool
	)
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPrefs)
		if b == nil {
			return nil
		}
		// Bolt memory is only valid inside the transaction; string() copies.
		if v := b.Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})

	if !found {
		return "", false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()

	return value, true
}

// Set stores value under key, replacing any previous value.
func (s *PrefStore) Set(key, value string) error {
	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketPrefs).Put([]byte(key), []byte(value))
		})
		if err != nil {
			return fmt.Errorf("write %q: %w", key, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *PrefStore) Remove(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPrefs)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Clear removes every stored value.
func (s *PrefStore) Clear() error {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketPrefs); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketPrefs)
		return err
	})
}

// Keys returns the stored keys in byte order.
func (s *PrefStore) Keys() []string {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		keys := make([]string, 0, len(s.cache))
		for k := range s.cache {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return keys
	}

	var keys []string
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPrefs)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys
}
