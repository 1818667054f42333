// Package graphkv layers a minimal graph data model on a remote
// key-value/set store.
//
// Nodes are identified by name, relationships are encoded as pairs of
// named sets kept bidirectionally consistent, and arbitrary key/value
// attributes attach to a node as an indexed bag. There is no query
// engine and no schema; the package owns only the encoding of graph
// semantics onto the set/string primitives of a store.Conn.
//
//	conn := memstore.New()
//	client, err := graphkv.NewClient(conn)
//	...
//	cats := client.Node("cats")
//	err = cats.Members.Add(ctx, "garfield", "tom")
//	err = cats.Attrs.Set(ctx, "sound", "meow")
package graphkv

import (
	"errors"

	"github.com/google/uuid"

	"github.com/syssam/graphkv/store"
)

// Default relationship labels.
const (
	DefaultInner = "in"
	DefaultOuter = "has"
)

type config struct {
	inner string
	outer string
}

// Option configures a Client.
type Option func(*config) error

// WithLabels overrides the stored relationship labels. inner labels
// the "related from" direction, outer the "relates to" direction;
// they become the key prefixes of every edge set the client writes,
// so all clients of one dataset must agree on them.
func WithLabels(inner, outer string) Option {
	return func(c *config) error {
		if inner == "" || outer == "" {
			return errors.New("graphkv: relationship labels cannot be empty")
		}
		if inner == outer {
			return errors.New("graphkv: inner and outer labels must differ")
		}
		c.inner, c.outer = inner, outer
		return nil
	}
}

// Client hands out graph handles bound to one store connection.
// Every Node, Edge and Attribute it constructs captures the
// connection it was built with.
type Client struct {
	conn store.Conn
	cfg  config
}

// NewClient returns a Client on the given store connection.
func NewClient(conn store.Conn, opts ...Option) (*Client, error) {
	cfg := config{inner: DefaultInner, outer: DefaultOuter}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Client{conn: conn, cfg: cfg}, nil
}

// Node returns a handle on the named node. No store round trip is
// made: a node exists only through its derived keys.
func (c *Client) Node(name string) *Node {
	return newNode(c.conn, name, c.cfg)
}

// NewNode returns a handle on a node with a freshly generated
// unique name.
func (c *Client) NewNode() *Node {
	return c.Node(uuid.NewString())
}

// Edge returns a standalone edge handle for name under the given
// labels, without constructing a Node around it.
func (c *Client) Edge(name, kind, alternate string) *Edge {
	return newEdge(c.conn, name, kind, alternate)
}

// Close closes the underlying store connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
