package graphkv

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/graphkv/store"
)

// keySep joins a relationship label with a node name to form a set key.
const keySep = "_"

// Edge encodes one directed relationship family for a single node.
//
// The relationship is stored twice, once from each endpoint's
// perspective: the forward set "kind_name" holds every target this
// node relates to, and for each target the inverse set "alt_target"
// holds this node's name. Either endpoint can list its neighbors with
// one set read, no reverse scan.
type Edge struct {
	conn store.Conn
	name string
	kind string
	alt  string

	forwardKey string
}

func newEdge(conn store.Conn, name, kind, alt string) *Edge {
	return &Edge{
		conn:       conn,
		name:       name,
		kind:       kind,
		alt:        alt,
		forwardKey: kind + keySep + name,
	}
}

// Kind returns the relationship label, e.g. "has".
func (e *Edge) Kind() string { return e.kind }

// Alternate returns the inverse relationship label, e.g. "in".
func (e *Edge) Alternate() string { return e.alt }

func (e *Edge) inverseKey(target string) string {
	return e.alt + keySep + target
}

// Add links this node to every target. Targets are processed
// concurrently; each target's forward and inverse entries are written
// in one atomic batch, so no reader can observe a half-linked pair.
// Failed targets do not roll back succeeded ones; their errors are
// aggregated into a *BatchError.
func (e *Edge) Add(ctx context.Context, targets ...string) error {
	return e.each(ctx, "edge add", targets, func(ctx context.Context, target string) error {
		return e.conn.Batch(ctx, func(w store.Writer) error {
			if err := w.AddToSet(ctx, e.forwardKey, target); err != nil {
				return err
			}
			return w.AddToSet(ctx, e.inverseKey(target), e.name)
		})
	})
}

// Remove unlinks this node from every target. It is the exact inverse
// of Add, with the same concurrency and partial-failure shape.
// Removing a target that was never linked is not an error.
func (e *Edge) Remove(ctx context.Context, targets ...string) error {
	return e.each(ctx, "edge remove", targets, func(ctx context.Context, target string) error {
		return e.conn.Batch(ctx, func(w store.Writer) error {
			if err := w.RemoveFromSet(ctx, e.forwardKey, target); err != nil {
				return err
			}
			return w.RemoveFromSet(ctx, e.inverseKey(target), e.name)
		})
	})
}

// All returns every target in the forward set. A missing key reads as
// an empty relationship; order follows the store's set iteration.
func (e *Edge) All(ctx context.Context) ([]string, error) {
	return e.conn.SetMembers(ctx, e.forwardKey)
}

// Delete removes the whole relationship family: this node's name is
// removed from every member's inverse set and the forward set key is
// deleted, all in one atomic batch. It returns the members that were
// linked before deletion; a nil result with nil error means there was
// nothing to delete and no write was issued.
func (e *Edge) Delete(ctx context.Context) ([]string, error) {
	members, err := e.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}
	err = e.conn.Batch(ctx, func(w store.Writer) error {
		for _, m := range members {
			if err := w.RemoveFromSet(ctx, e.inverseKey(m), e.name); err != nil {
				return err
			}
		}
		return w.DeleteKey(ctx, e.forwardKey)
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

// each fans fn out over targets and aggregates per-target failures.
// Siblings run to completion regardless of each other's outcome.
func (e *Edge) each(ctx context.Context, op string, targets []string, fn func(context.Context, string) error) error {
	switch len(targets) {
	case 0:
		return nil
	case 1:
		if err := fn(ctx, targets[0]); err != nil {
			return newBatchError(op, []error{&TargetError{Target: targets[0], Err: err}})
		}
		return nil
	}
	errs := make([]error, len(targets))
	var g errgroup.Group
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			if err := fn(ctx, target); err != nil {
				errs[i] = &TargetError{Target: target, Err: err}
			}
			return nil
		})
	}
	// Goroutines report through errs; Wait only synchronizes.
	_ = g.Wait()
	return newBatchError(op, errs)
}
