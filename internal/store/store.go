// internal/store/store.go
//
// Store is the persistence backend for saved games, statistics and settings.
// It is a flat key/value space of string and integer values, in the spirit of
// a preferences file. Callers qualify keys themselves (e.g. "Easy_SavedWord").
//
// Implementations:
//   - memory (this package): map-based, lost on restart.
//   - sqlite (this package):  durable, writes buffered until Flush.

package store

import (
	"context"
	"errors"
)

var (
	// ErrWrongKind is returned when a key holds a value of the other kind.
	ErrWrongKind = errors.New("store: value has a different kind")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store: closed")
)

// Store defines the key/value persistence interface.
type Store interface {
	// GetString returns the string at key, or def if the key is missing.
	GetString(ctx context.Context, key, def string) (string, error)
	SetString(ctx context.Context, key, value string) error

	// GetInt returns the integer at key, or def if the key is missing.
	GetInt(ctx context.Context, key string, def int) (int, error)
	SetInt(ctx context.Context, key string, value int) error

	HasKey(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error

	// Flush commits pending writes.
	Flush(ctx context.Context) error
	Close() error
}

type kind byte

const (
	kindString kind = 's'
	kindInt    kind = 'i'
)

// value is a single stored entry.
type value struct {
	kind kind
	str  string
	num  int
}
