// Package network stores the graphs of a meta-network.
//
// A network is a typed, optionally weighted graph between two nodesets. The
// package separates the wire-level description ([Metadata], [Edge]) from the
// materialized representation ([Graph]), which is produced by a [Builder].
// Two builders exist: a dependency-free adjacency-map backend and a Graphviz
// backend that renders networks to DOT and materializes them with
// goccy/go-graphviz. The builder is chosen once, when the owning model is
// constructed, and never changes for the model's lifetime.
package network

import (
	"github.com/pmlandwehr/dynetml2other/pkg/errors"
)

// Metadata describes a network: its id, the nodeclass/nodeset pair each
// endpoint is drawn from, and its structural flags.
type Metadata struct {
	ID         string
	SourceType string // nodeclass of source endpoints
	Source     string // nodeset of source endpoints
	TargetType string // nodeclass of target endpoints
	Target     string // nodeset of target endpoints

	Directed       bool
	AllowSelfLoops bool
	Binary         bool // edges carry no weight on the wire
}

// Edge is one logical link. Undirected networks store each edge once here;
// materialized representations expose the reciprocal direction themselves.
type Edge struct {
	Source string
	Target string
	Weight float64
}

// Graph is a materialized network representation.
type Graph interface {
	// Metadata returns the network description the graph was built from.
	Metadata() Metadata
	// NodeCount returns the number of distinct endpoint ids.
	NodeCount() int
	// EdgeCount returns the number of logical edges.
	EdgeCount() int
	// Edges returns the logical edges in insertion order. Callers must not
	// modify the returned slice.
	Edges() []Edge
	// Nodes returns the endpoint ids in first-seen order. The position of an
	// id in this slice is its stable integer handle.
	Nodes() []string
}

// Kind selects a graph backend.
type Kind int

const (
	// KindAdjacency stores networks as nested adjacency maps.
	KindAdjacency Kind = iota
	// KindGraphviz stores networks as Graphviz DOT graphs.
	KindGraphviz
)

var kindNames = map[Kind]string{
	KindAdjacency: "adjacency",
	KindGraphviz:  "graphviz",
}

var namesToKind = map[string]Kind{
	"adjacency": KindAdjacency,
	"graphviz":  KindGraphviz,
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind converts a configuration name to a Kind.
// Returns an INVALID_VALUE error for unrecognized names.
func ParseKind(s string) (Kind, error) {
	if k, ok := namesToKind[s]; ok {
		return k, nil
	}
	return KindAdjacency, errors.New(errors.ErrCodeInvalidValue,
		`network backend must be "adjacency" or "graphviz"; got %q`, s)
}

// Builder materializes networks for one backend kind.
type Builder interface {
	Kind() Kind
	Build(meta Metadata, edges []Edge) (Graph, error)
}

// NewBuilder returns the builder for a kind.
// Returns an INVALID_VALUE error for unrecognized kinds.
func NewBuilder(kind Kind) (Builder, error) {
	switch kind {
	case KindAdjacency:
		return adjacencyBuilder{}, nil
	case KindGraphviz:
		return graphvizBuilder{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidValue, "unrecognized network backend kind %d", int(kind))
}

// normalize copies edges, forcing weights to 1.0 for binary networks so the
// in-memory default matches what the wire format implies.
func normalize(meta Metadata, edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	if meta.Binary {
		for i := range out {
			out[i].Weight = 1.0
		}
	}
	return out
}

// handles assigns stable, order-preserving integer handles to first-seen
// endpoint ids.
func handles(edges []Edge) (order []string, index map[string]int) {
	index = make(map[string]int)
	for _, e := range edges {
		if _, ok := index[e.Source]; !ok {
			index[e.Source] = len(order)
			order = append(order, e.Source)
		}
		if _, ok := index[e.Target]; !ok {
			index[e.Target] = len(order)
			order = append(order, e.Target)
		}
	}
	return order, index
}
