package network

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/pmlandwehr/dynetml2other/pkg/errors"
)

type graphvizBuilder struct{}

func (graphvizBuilder) Kind() Kind { return KindGraphviz }

func (graphvizBuilder) Build(meta Metadata, edges []Edge) (Graph, error) {
	norm := normalize(meta, edges)
	order, index := handles(norm)

	return &GraphvizGraph{
		meta:  meta,
		edges: norm,
		order: order,
		index: index,
		dot:   toDOT(meta, norm, order),
	}, nil
}

// GraphvizGraph is the external-library backend. The network is rendered to
// DOT with its metadata attached as first-class graph attributes; the DOT can
// be materialized into a goccy/go-graphviz graph for rendering or export.
type GraphvizGraph struct {
	meta  Metadata
	edges []Edge
	order []string
	index map[string]int
	dot   string
}

// Metadata returns the network description the graph was built from.
func (g *GraphvizGraph) Metadata() Metadata { return g.meta }

// NodeCount returns the number of distinct endpoint ids.
func (g *GraphvizGraph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of logical edges.
func (g *GraphvizGraph) EdgeCount() int { return len(g.edges) }

// Edges returns the logical edges in insertion order.
func (g *GraphvizGraph) Edges() []Edge { return g.edges }

// Nodes returns the endpoint ids in first-seen order.
func (g *GraphvizGraph) Nodes() []string { return g.order }

// Handle returns the stable integer handle assigned to an endpoint id.
func (g *GraphvizGraph) Handle(id string) (int, bool) {
	h, ok := g.index[id]
	return h, ok
}

// DOT returns the network in Graphviz DOT format. Undirected networks render
// as "graph" with "--" edges, so Graphviz itself exposes the reciprocal
// adjacency.
func (g *GraphvizGraph) DOT() string { return g.dot }

// Materialize parses the DOT representation into a goccy/go-graphviz graph.
// The caller owns the returned graph and must Close it.
func (g *GraphvizGraph) Materialize() (*graphviz.Graph, error) {
	gv, err := graphviz.ParseBytes([]byte(g.dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse DOT for network %s", g.meta.ID)
	}
	return gv, nil
}

func toDOT(meta Metadata, edges []Edge, order []string) string {
	keyword, arrow := "graph", "--"
	if meta.Directed {
		keyword, arrow = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %q {\n", keyword, meta.ID)
	fmt.Fprintf(&buf, "  graph [id=%q, sourceType=%q, source=%q, targetType=%q, target=%q, isDirected=%q, allowSelfLoops=%q, isBinary=%q];\n",
		meta.ID, meta.SourceType, meta.Source, meta.TargetType, meta.Target,
		boolAttr(meta.Directed), boolAttr(meta.AllowSelfLoops), boolAttr(meta.Binary))
	buf.WriteString("\n")

	for _, id := range order {
		fmt.Fprintf(&buf, "  %q;\n", id)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		if meta.Binary {
			fmt.Fprintf(&buf, "  %q %s %q;\n", e.Source, arrow, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q %s %q [weight=%s];\n", e.Source, arrow, e.Target,
			strconv.FormatFloat(e.Weight, 'g', -1, 64))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
