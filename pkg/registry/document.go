package registry

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"
)

// DefaultPath is the conventional location of the registry graph,
// relative to the repository root.
const DefaultPath = "registry/modules-graph.json"

// EdgeDependency is the only edge type drawn by the renderers.
const EdgeDependency = "dependency"

// ErrDuplicateNode is returned when a node key appears twice in one document.
var ErrDuplicateNode = errors.New("duplicate node")

// Document is the root of a registry graph file.
type Document struct {
	Metadata Metadata `json:"metadata" yaml:"metadata" toml:"metadata"`
	Graph    *Graph   `json:"graph" yaml:"graph" toml:"graph" validate:"required"`
}

// Metadata holds the free-form descriptive fields of a document.
type Metadata map[string]any

// LastUpdated returns the "last_updated" field as text, or "" when absent.
// TOML datetimes are formatted as RFC 3339.
func (m Metadata) LastUpdated() string {
	switch v := m["last_updated"].(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// Graph is the rendered part of a document.
type Graph struct {
	Nodes Nodes  `json:"nodes" yaml:"nodes" toml:"-"`
	Edges []Edge `json:"edges" yaml:"edges" toml:"edges" validate:"dive"`
}

// Node is a single module.
type Node struct {
	ID     string `json:"id" yaml:"id" toml:"id"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Status string `json:"status,omitempty" yaml:"status,omitempty" toml:"status,omitempty"`
}

// Edge is a directed relationship between two modules.
type Edge struct {
	From string `json:"from" yaml:"from" toml:"from" validate:"required"`
	To   string `json:"to" yaml:"to" toml:"to" validate:"required"`
	Type string `json:"type" yaml:"type" toml:"type"`
}

// IsDependency reports whether e is drawn as an arrow.
// The comparison is exact; "Dependency" does not match.
func (e Edge) IsDependency() bool {
	return e.Type == EdgeDependency
}

// Nodes is an insertion-ordered set of nodes keyed by id.
// The zero value is an empty set ready to use.
type Nodes struct {
	keys []string
	byID map[string]Node
}

// Set stores node under key. A new key is appended to the iteration order;
// an existing key keeps its position and has its node replaced.
func (n *Nodes) Set(key string, node Node) {
	if n.byID == nil {
		n.byID = make(map[string]Node)
	}
	if _, ok := n.byID[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.byID[key] = node
}

// Get returns the node stored under key.
func (n *Nodes) Get(key string) (Node, bool) {
	node, ok := n.byID[key]
	return node, ok
}

// Len returns the number of nodes.
func (n *Nodes) Len() int {
	return len(n.keys)
}

// Keys returns the node keys in insertion order.
func (n *Nodes) Keys() []string {
	return slices.Clone(n.keys)
}

// All iterates over key/node pairs in insertion order.
func (n *Nodes) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, k := range n.keys {
			if !yield(k, n.byID[k]) {
				return
			}
		}
	}
}

// add is the decoder entry point: it rejects duplicate keys and fills an
// empty node id from its key.
func (n *Nodes) add(key string, node Node) error {
	if _, dup := n.byID[key]; dup {
		return fmt.Errorf("node %s: %w", key, ErrDuplicateNode)
	}
	if node.ID == "" {
		node.ID = key
	}
	n.Set(key, node)
	return nil
}
