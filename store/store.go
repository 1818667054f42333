package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by GetString when the key does not exist.
var ErrNotFound = errors.New("store: key not found")

// Value represents a string value that may be absent.
// Valid is false when the key did not exist at read time.
type Value struct {
	String string
	Valid  bool
}

// Writer groups the mutating store primitives.
type Writer interface {
	// AddToSet inserts member into the set stored at key,
	// creating the set if it does not exist.
	AddToSet(ctx context.Context, key, member string) error

	// RemoveFromSet removes member from the set stored at key.
	// Removing from a missing set or a missing member is not an error.
	RemoveFromSet(ctx context.Context, key, member string) error

	// SetString stores value under key, overwriting any previous value.
	SetString(ctx context.Context, key, value string) error

	// DeleteKey removes key and whatever it holds.
	// Deleting a missing key is not an error.
	DeleteKey(ctx context.Context, key string) error
}

// Conn is a connection to a key-value/set store.
type Conn interface {
	Writer

	// SetMembers returns every member of the set stored at key.
	// A missing key reads as an empty set. Member order follows the
	// store's set iteration and is not guaranteed.
	SetMembers(ctx context.Context, key string) ([]string, error)

	// GetString returns the string stored at key,
	// or ErrNotFound if the key does not exist.
	GetString(ctx context.Context, key string) (string, error)

	// MultiGetStrings returns the values for keys in one round trip.
	// The result is aligned with keys; absent keys yield an invalid Value.
	MultiGetStrings(ctx context.Context, keys ...string) ([]Value, error)

	// Batch applies every write issued through the callback's Writer
	// atomically. If the callback returns an error, nothing is applied.
	Batch(ctx context.Context, fn func(Writer) error) error

	// Close releases the connection.
	Close() error
}
