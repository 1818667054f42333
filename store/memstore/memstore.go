// Package memstore provides an embedded in-memory store.Conn.
//
// It keeps sets and strings in process memory behind a single RWMutex,
// which makes Batch trivially atomic. It is the backend the graphkv
// tests run against, and works as a real store for single-process use.
package memstore

import (
	"context"
	"sync"

	"github.com/syssam/graphkv/store"
)

// Store is an in-memory store.Conn implementation.
// The zero value is not usable; construct with New.
type Store struct {
	mu      sync.RWMutex
	sets    map[string]map[string]struct{}
	strings map[string]string
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		sets:    make(map[string]map[string]struct{}),
		strings: make(map[string]string),
	}
}

// AddToSet implements store.Writer.
func (s *Store) AddToSet(_ context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addToSet(key, member)
	return nil
}

// RemoveFromSet implements store.Writer.
func (s *Store) RemoveFromSet(_ context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeFromSet(key, member)
	return nil
}

// SetMembers implements store.Conn. A missing key reads as an empty set.
func (s *Store) SetMembers(_ context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.sets[key]
	if !ok {
		return nil, nil
	}
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	return members, nil
}

// GetString implements store.Conn.
func (s *Store) GetString(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.strings[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

// MultiGetStrings implements store.Conn.
func (s *Store) MultiGetStrings(_ context.Context, keys ...string) ([]store.Value, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make([]store.Value, len(keys))
	for i, key := range keys {
		if v, ok := s.strings[key]; ok {
			values[i] = store.Value{String: v, Valid: true}
		}
	}
	return values, nil
}

// SetString implements store.Writer.
func (s *Store) SetString(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strings[key] = value
	return nil
}

// DeleteKey implements store.Writer. It removes key from both keyspaces.
func (s *Store) DeleteKey(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, key)
	delete(s.strings, key)
	return nil
}

// Batch implements store.Conn. Writes issued through the callback are
// queued and, if the callback succeeds, applied under one write lock.
// A callback error discards the queue.
func (s *Store) Batch(ctx context.Context, fn func(store.Writer) error) error {
	q := &queue{}
	if err := fn(q); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range q.ops {
		switch op.kind {
		case opAddToSet:
			s.addToSet(op.key, op.arg)
		case opRemoveFromSet:
			s.removeFromSet(op.key, op.arg)
		case opSetString:
			s.strings[op.key] = op.arg
		case opDeleteKey:
			delete(s.sets, op.key)
			delete(s.strings, op.key)
		}
	}
	return nil
}

// Close implements store.Conn. It drops all data.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = make(map[string]map[string]struct{})
	s.strings = make(map[string]string)
	return nil
}

// Len reports the total number of live keys across both keyspaces.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets) + len(s.strings)
}

func (s *Store) addToSet(key, member string) {
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	set[member] = struct{}{}
}

// removeFromSet drops empty sets, matching Redis behavior where a set
// key stops existing once its last member is removed.
func (s *Store) removeFromSet(key, member string) {
	set, ok := s.sets[key]
	if !ok {
		return
	}
	delete(set, member)
	if len(set) == 0 {
		delete(s.sets, key)
	}
}

type opKind int

const (
	opAddToSet opKind = iota
	opRemoveFromSet
	opSetString
	opDeleteKey
)

type op struct {
	kind opKind
	key  string
	arg  string
}

type queue struct {
	ops []op
}

func (q *queue) AddToSet(_ context.Context, key, member string) error {
	q.ops = append(q.ops, op{kind: opAddToSet, key: key, arg: member})
	return nil
}

func (q *queue) RemoveFromSet(_ context.Context, key, member string) error {
	q.ops = append(q.ops, op{kind: opRemoveFromSet, key: key, arg: member})
	return nil
}

func (q *queue) SetString(_ context.Context, key, value string) error {
	q.ops = append(q.ops, op{kind: opSetString, key: key, arg: value})
	return nil
}

func (q *queue) DeleteKey(_ context.Context, key string) error {
	q.ops = append(q.ops, op{kind: opDeleteKey, key: key})
	return nil
}

var (
	_ store.Conn   = (*Store)(nil)
	_ store.Writer = (*queue)(nil)
)
