// Package store provides the persistent key-value store behind the counter.
//
// The counter value and the two feedback preferences are plain strings under
// fixed keys. Backends: an in-memory map for tests and a database/sql store
// over SQLite (modernc or mattn driver) or PostgreSQL.
package store

import (
	"fmt"
	"sort"
	"sync"
)

// KV is a synchronous string-keyed store.
type KV interface {
	// Get returns the value under key; ok is false when no entry exists.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous entry.
	Set(key, value string) error
	// Keys lists the stored keys in ascending order.
	Keys() ([]string, error)
	Close() error
}

// MemoryStore is a map-backed KV that lives as long as the process.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) Close() error { return nil }

// Options selects and locates a backend.
type Options struct {
	Driver string // sqlite, sqlite3, postgres, memory
	DSN    string
}

// Open returns the backend named by opts.Driver.
func Open(opts Options) (KV, error) {
	switch opts.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case DriverSQLite, DriverSQLite3, DriverPostgres:
		return NewSQLStore(opts.Driver, opts.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver: %q", opts.Driver)
	}
}
