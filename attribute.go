package graphkv

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/graphkv/store"
)

const (
	// attrPrefix marks a node's attribute keyspace.
	attrPrefix = "_"
	// attrSep separates the node prefix from the attribute key.
	attrSep = "|"
)

// Attribute is a per-node key/value bag.
//
// It is stored as an index set "_name" holding the attribute keys,
// plus one string entry "_name|key" per attribute. Set and Delete
// update both in one atomic batch, so a key appears in the index if
// and only if its value entry exists — except for data written by
// non-atomic producers, which All tolerates by skipping indexed keys
// whose value is missing.
type Attribute struct {
	conn  store.Conn
	name  string
	index string
}

func newAttribute(conn store.Conn, name string) *Attribute {
	return &Attribute{
		conn:  conn,
		name:  name,
		index: attrPrefix + name,
	}
}

func (a *Attribute) valueKey(key string) string {
	return a.index + attrSep + key
}

// Keys returns the indexed attribute keys.
func (a *Attribute) Keys(ctx context.Context) ([]string, error) {
	return a.conn.SetMembers(ctx, a.index)
}

// All returns every attribute as a key/value map. An empty index
// returns an empty map without a second round trip; otherwise all
// values are fetched in one multi-get. Indexed keys with no value
// are skipped.
func (a *Attribute) All(ctx context.Context) (map[string]string, error) {
	keys, err := a.Keys(ctx)
	if err != nil {
		return nil, err
	}
	attrs := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return attrs, nil
	}
	valueKeys := make([]string, len(keys))
	for i, k := range keys {
		valueKeys[i] = a.valueKey(k)
	}
	values, err := a.conn.MultiGetStrings(ctx, valueKeys...)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if v.Valid {
			attrs[keys[i]] = v.String
		}
	}
	return attrs, nil
}

// Get returns the value stored under key. An unset key is reported
// as a *NotFoundError satisfying IsNotFound, which callers should
// treat as a normal terminal state.
func (a *Attribute) Get(ctx context.Context, key string) (string, error) {
	v, err := a.conn.GetString(ctx, a.valueKey(key))
	if errors.Is(err, store.ErrNotFound) {
		return "", &NotFoundError{label: "attribute", key: key}
	}
	return v, err
}

// Set stores value under key, indexing the key and writing the value
// in one atomic batch.
func (a *Attribute) Set(ctx context.Context, key, value string) error {
	return a.conn.Batch(ctx, func(w store.Writer) error {
		if err := w.AddToSet(ctx, a.index, key); err != nil {
			return err
		}
		return w.SetString(ctx, a.valueKey(key), value)
	})
}

// Delete removes key from the index and deletes its value in one
// atomic batch. Deleting an unset key is not an error.
func (a *Attribute) Delete(ctx context.Context, key string) error {
	return a.conn.Batch(ctx, func(w store.Writer) error {
		if err := w.RemoveFromSet(ctx, a.index, key); err != nil {
			return err
		}
		return w.DeleteKey(ctx, a.valueKey(key))
	})
}

// Clear removes the whole attribute bag: every value entry plus the
// index set, in one atomic batch. Clearing an empty bag issues no write.
func (a *Attribute) Clear(ctx context.Context) error {
	keys, err := a.Keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return a.conn.Batch(ctx, func(w store.Writer) error {
		for _, k := range keys {
			if err := w.DeleteKey(ctx, a.valueKey(k)); err != nil {
				return err
			}
		}
		return w.DeleteKey(ctx, a.index)
	})
}

// SetValue stores an arbitrary Go value under key, encoded with msgpack.
func (a *Attribute) SetValue(ctx context.Context, key string, v any) error {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("graphkv: encode attribute %q: %w", key, err)
	}
	return a.Set(ctx, key, string(b))
}

// GetValue reads the msgpack-encoded value stored under key into v.
// An unset key is reported the same way as Get.
func (a *Attribute) GetValue(ctx context.Context, key string, v any) error {
	s, err := a.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := msgpack.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("graphkv: decode attribute %q: %w", key, err)
	}
	return nil
}
