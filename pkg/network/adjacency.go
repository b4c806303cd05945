package network

type adjacencyBuilder struct{}

func (adjacencyBuilder) Kind() Kind { return KindAdjacency }

func (adjacencyBuilder) Build(meta Metadata, edges []Edge) (Graph, error) {
	norm := normalize(meta, edges)
	order, index := handles(norm)

	g := &AdjacencyGraph{
		meta:  meta,
		edges: norm,
		order: order,
		index: index,
		adj:   make(map[string]map[string]float64, len(order)),
	}
	for _, e := range norm {
		g.set(e.Source, e.Target, e.Weight)
		if !meta.Directed {
			g.set(e.Target, e.Source, e.Weight)
		}
	}
	return g, nil
}

// AdjacencyGraph is the dependency-free backend: a nested mapping from source
// id to target id to weight. For undirected networks the mapping is
// symmetric, while Edges still reports each logical edge once.
type AdjacencyGraph struct {
	meta  Metadata
	edges []Edge
	order []string
	index map[string]int
	adj   map[string]map[string]float64
}

func (g *AdjacencyGraph) set(src, dst string, w float64) {
	row, ok := g.adj[src]
	if !ok {
		row = make(map[string]float64)
		g.adj[src] = row
	}
	row[dst] = w
}

// Metadata returns the network description the graph was built from.
func (g *AdjacencyGraph) Metadata() Metadata { return g.meta }

// NodeCount returns the number of distinct endpoint ids.
func (g *AdjacencyGraph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of logical edges.
func (g *AdjacencyGraph) EdgeCount() int { return len(g.edges) }

// Edges returns the logical edges in insertion order.
func (g *AdjacencyGraph) Edges() []Edge { return g.edges }

// Nodes returns the endpoint ids in first-seen order.
func (g *AdjacencyGraph) Nodes() []string { return g.order }

// Handle returns the stable integer handle assigned to an endpoint id.
func (g *AdjacencyGraph) Handle(id string) (int, bool) {
	h, ok := g.index[id]
	return h, ok
}

// Weight returns the weight of the src→dst adjacency, if present. For
// undirected networks both orientations are present.
func (g *AdjacencyGraph) Weight(src, dst string) (float64, bool) {
	w, ok := g.adj[src][dst]
	return w, ok
}

// Neighbors returns the adjacency row for src. Callers must not modify the
// returned map.
func (g *AdjacencyGraph) Neighbors(src string) map[string]float64 {
	return g.adj[src]
}
