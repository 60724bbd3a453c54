// internal/store/memory.go
//
// In-memory implementation of Store.
// Used for ephemeral play and in tests.
//
// Characteristics:
//   - Values kept in a map keyed by the full key.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Writes are visible immediately; Flush has nothing to commit.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex     // guards values and closed
	values map[string]value // keyed by full key
	closed bool
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{values: make(map[string]value)}
}

// GetString returns the string at key, or def when missing.
func (m *memory) GetString(_ context.Context, key, def string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return def, ErrClosed
	}
	v, ok := m.values[key]
	if !ok {
		return def, nil
	}
	if v.kind != kindString {
		return def, ErrWrongKind
	}
	return v.str, nil
}

// SetString stores s at key, replacing any value of either kind.
func (m *memory) SetString(_ context.Context, key, s string) error {
	return m.set(key, value{kind: kindString, str: s})
}

// GetInt returns the integer at key, or def when missing.
func (m *memory) GetInt(_ context.Context, key string, def int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return def, ErrClosed
	}
	v, ok := m.values[key]
	if !ok {
		return def, nil
	}
	if v.kind != kindInt {
		return def, ErrWrongKind
	}
	return v.num, nil
}

// SetInt stores n at key, replacing any value of either kind.
func (m *memory) SetInt(_ context.Context, key string, n int) error {
	return m.set(key, value{kind: kindInt, num: n})
}

func (m *memory) set(key string, v value) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = v
	return nil
}

// HasKey reports whether key holds a value.
func (m *memory) HasKey(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return false, ErrClosed
	}
	_, ok := m.values[key]
	return ok, nil
}

// Delete removes key; a missing key is not an error.
func (m *memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.values, key)
	return nil
}

// Flush is a no-op beyond the closed check; writes are already visible.
func (m *memory) Flush(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Close makes every later call fail with ErrClosed.
func (m *memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
