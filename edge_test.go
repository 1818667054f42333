package graphkv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/graphkv"
	"github.com/syssam/graphkv/store"
	"github.com/syssam/graphkv/store/memstore"
)

var errStoreDown = errors.New("store down")

// flakyConn fails any batched set insert on the configured keys,
// simulating one target's writes failing while siblings succeed.
type flakyConn struct {
	store.Conn
	fail map[string]bool
}

func (c *flakyConn) Batch(ctx context.Context, fn func(store.Writer) error) error {
	return c.Conn.Batch(ctx, func(w store.Writer) error {
		return fn(&flakyWriter{Writer: w, fail: c.fail})
	})
}

type flakyWriter struct {
	store.Writer
	fail map[string]bool
}

func (w *flakyWriter) AddToSet(ctx context.Context, key, member string) error {
	if w.fail[key] {
		return errStoreDown
	}
	return w.Writer.AddToSet(ctx, key, member)
}

func TestEdgeAdd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, conn := newTestClient(t)

	cats := client.Node("cats")
	require.NoError(t, cats.Members.Add(ctx, "garfield"))

	// Forward: garfield is in cats' member list.
	members, err := cats.Members.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"garfield"}, members)

	// Inverse: cats shows up in garfield's membership.
	membership, err := client.Node("garfield").Membership.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cats"}, membership)

	// Wire encoding: forward set "has_cats", inverse set "in_garfield".
	forward, err := conn.SetMembers(ctx, "has_cats")
	require.NoError(t, err)
	assert.Equal(t, []string{"garfield"}, forward)
	inverse, err := conn.SetMembers(ctx, "in_garfield")
	require.NoError(t, err)
	assert.Equal(t, []string{"cats"}, inverse)
}

func TestEdgeAddRemoveRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, conn := newTestClient(t)

	cats := client.Node("cats")
	require.NoError(t, cats.Members.Add(ctx, "tom"))
	require.NoError(t, cats.Members.Remove(ctx, "tom"))

	members, err := cats.Members.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)

	membership, err := client.Node("tom").Membership.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, membership)

	// Both derived sets are back to their pre-add state: gone.
	assert.Zero(t, conn.Len())
}

func TestEdgeAddBatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, _ := newTestClient(t)

	cats := client.Node("cats")
	require.NoError(t, cats.Members.Add(ctx, "x", "y", "z"))

	members, err := cats.Members.All(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"x", "y", "z"}, members)

	for _, name := range []string{"x", "y", "z"} {
		membership, err := client.Node(name).Membership.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"cats"}, membership, "reverse link for %s", name)
	}
}

func TestEdgeAddNoTargets(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, conn := newTestClient(t)

	require.NoError(t, client.Node("cats").Members.Add(ctx))
	assert.Zero(t, conn.Len())
}

func TestEdgeAddPartialFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, err := graphkv.NewClient(&flakyConn{
		Conn: memstore.New(),
		fail: map[string]bool{"in_b": true},
	})
	require.NoError(t, err)

	cats := client.Node("cats")
	err = cats.Members.Add(ctx, "a", "b", "c")

	// The failed target is reported...
	require.Error(t, err)
	assert.True(t, graphkv.IsBatch(err))
	var batchErr *graphkv.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, "edge add", batchErr.Op())
	var targetErr *graphkv.TargetError
	require.ErrorAs(t, err, &targetErr)
	assert.Equal(t, "b", targetErr.Target)
	assert.ErrorIs(t, err, errStoreDown)

	// ...its pair is not half-applied...
	members, allErr := cats.Members.All(ctx)
	require.NoError(t, allErr)
	assert.ElementsMatch(t, []string{"a", "c"}, members)

	// ...and the siblings stay applied.
	for _, name := range []string{"a", "c"} {
		membership, allErr := client.Node(name).Membership.All(ctx)
		require.NoError(t, allErr)
		assert.Equal(t, []string{"cats"}, membership)
	}
}

func TestEdgeRemoveMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, _ := newTestClient(t)

	// Removing a target that was never linked is a no-op, not an error.
	assert.NoError(t, client.Node("cats").Members.Remove(ctx, "nobody"))
}

func TestEdgeAllEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, _ := newTestClient(t)

	members, err := client.Node("cats").Members.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestEdgeDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		client, conn := newTestClient(t)
		deleted, err := client.Node("cats").Members.Delete(ctx)
		require.NoError(t, err)
		assert.Nil(t, deleted)
		assert.Zero(t, conn.Len(), "nothing to delete must issue no writes")
	})

	t.Run("Members", func(t *testing.T) {
		client, conn := newTestClient(t)
		cats := client.Node("cats")
		require.NoError(t, cats.Members.Add(ctx, "a", "b"))

		deleted, err := cats.Members.Delete(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, deleted)

		// Back-references are cleared under the inverse label.
		for _, name := range []string{"a", "b"} {
			membership, err := client.Node(name).Membership.All(ctx)
			require.NoError(t, err)
			assert.Empty(t, membership)
		}

		// The forward set key no longer exists.
		forward, err := conn.SetMembers(ctx, "has_cats")
		require.NoError(t, err)
		assert.Empty(t, forward)
		assert.Zero(t, conn.Len())
	})
}
