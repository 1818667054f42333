package graphkv

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/graphkv/store"
)

// Node is a named vertex in the graph. It carries no stored record of
// its own; a node exists through its derived edge and attribute keys.
//
// The two edges are always complementary: Membership is labeled with
// the client's inner label and inverted by the outer one, Members the
// other way around, so a link added through one node's Members shows
// up in the target node's Membership.
type Node struct {
	name string

	// Membership lists the nodes this node is related from
	// (inner label, "in" by default).
	Membership *Edge

	// Members lists the nodes this node relates to
	// (outer label, "has" by default).
	Members *Edge

	// Attrs is the node's attribute bag.
	Attrs *Attribute
}

func newNode(conn store.Conn, name string, cfg config) *Node {
	return &Node{
		name:       name,
		Membership: newEdge(conn, name, cfg.inner, cfg.outer),
		Members:    newEdge(conn, name, cfg.outer, cfg.inner),
		Attrs:      newAttribute(conn, name),
	}
}

// Name returns the node identity.
func (n *Node) Name() string { return n.name }

// Delete removes the node's full graph footprint: both relationship
// families, including the back-references held by its neighbors, and
// the attribute bag. The three cleanups run concurrently.
func (n *Node) Delete(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := n.Membership.Delete(ctx)
		return err
	})
	g.Go(func() error {
		_, err := n.Members.Delete(ctx)
		return err
	})
	g.Go(func() error {
		return n.Attrs.Clear(ctx)
	})
	return g.Wait()
}
