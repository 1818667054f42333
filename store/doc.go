// Package store provides the storage abstraction for graphkv.
//
// This package defines the interfaces and types used for store-specific
// operations, allowing graphkv to run against any key-value/set store
// that exposes set and string primitives.
//
// # Conn Interface
//
// The package defines the Conn interface for store operations:
//
//	type Conn interface {
//	    Writer
//	    SetMembers(ctx context.Context, key string) ([]string, error)
//	    GetString(ctx context.Context, key string) (string, error)
//	    MultiGetStrings(ctx context.Context, keys ...string) ([]Value, error)
//	    Batch(ctx context.Context, fn func(Writer) error) error
//	    Close() error
//	}
//
// # Writer Interface
//
// The Writer interface groups the mutating primitives. It is implemented
// by Conn for direct writes, and handed to the callback of Conn.Batch for
// atomic write groups:
//
//	type Writer interface {
//	    AddToSet(ctx context.Context, key, member string) error
//	    RemoveFromSet(ctx context.Context, key, member string) error
//	    SetString(ctx context.Context, key, value string) error
//	    DeleteKey(ctx context.Context, key string) error
//	}
//
// # Batches
//
// Conn.Batch applies every write issued through the callback's Writer as
// one atomic unit: either all of the queued writes are applied, or none
// are. Drivers map this onto their store's native transaction facility.
// The callback must not issue reads; Batch exists so that compound graph
// operations spanning multiple keys cannot be observed half-applied.
//
// # Absence
//
// A missing set key reads as an empty set, not an error. A missing string
// key is reported by GetString as ErrNotFound, and by MultiGetStrings as
// a Value with Valid set to false.
//
// # Sub-packages
//
// The store package contains two driver implementations:
//
//   - store/redis: Redis driver built on go-redis
//   - store/memstore: embedded in-memory driver
package store
