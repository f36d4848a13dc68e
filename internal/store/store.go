package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// All personal state lives in a single bucket; each logical store owns one
// key holding its full JSON-marshalled list or mapping.
var bucketUserData = []byte("userdata")

// UserDataStore implements domain.Storage using BoltDB with an in-memory
// cache promoted on access. With an empty data dir it runs memory-only
// (no persistence), which is what the tests use.
type UserDataStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
}

func NewUserDataStore(dataDir string) (*UserDataStore, error) {
	if dataDir == "" {
		// Memory-only mode (no persistence)
		return &UserDataStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "filmdb.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketUserData)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &UserDataStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *UserDataStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get reads the value under key into dest. Returns false if absent.
func (s *UserDataStore) Get(key string, dest interface{}) (bool, error) {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		if err := json.Unmarshal(data, dest); err != nil {
			return false, fmt.Errorf("failed to decode %q: %w", key, err)
		}
		return true, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false, nil
	}

	// Read from BoltDB
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUserData)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

// Set writes the value under key, replacing any previous value.
func (s *UserDataStore) Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	// Update memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUserData)
		return b.Put([]byte(key), data)
	})
}

// Delete removes the value under key.
func (s *UserDataStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUserData)
		if b != nil {
			return b.Delete([]byte(key))
		}
		return nil
	})
}
