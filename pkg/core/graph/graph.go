package graph

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/heaviest/pkg/core/adjacency"
	"github.com/matzehuels/heaviest/pkg/core/hashindex"
	"github.com/matzehuels/heaviest/pkg/core/heap"
)

// Absent is returned by [Graph.NeighborhoodWeight] for ids that are not in
// the graph.
const Absent = -1

// Vertex is an immutable (id, weight) pair fixed at construction.
type Vertex struct {
	ID     int `json:"id" toml:"id"`
	Weight int `json:"weight" toml:"weight"`
}

// Edge is an undirected edge between two present vertices, reported with
// U < V.
type Edge struct {
	U int `json:"u"`
	V int `json:"v"`
}

// Option configures a Graph.
type Option func(*config)

type config struct {
	strict bool
	rng    *rand.Rand
}

// WithStrictEdges makes AddEdge reject an edge that already exists, at the
// cost of an O(min(deg u, deg v)) existence check per call. Without it,
// adding an existing edge is a caller error and corrupts the weights.
func WithStrictEdges() Option {
	return func(c *config) { c.strict = true }
}

// WithRand draws the vertex index hash coefficients from r. Intended for
// reproducible tests; by default every graph draws fresh coefficients.
func WithRand(r *rand.Rand) Option {
	return func(c *config) { c.rng = r }
}

// Graph maintains the vertex with the maximum neighborhood weight while edges
// are added and vertices are deleted.
//
// Vertices live in an arena indexed by their fixed slot (their position in
// the constructor's input). The slot addresses the vertex's adjacency list
// and its heap element, so none of the three structures holds a pointer into
// another.
//
// Graph is not safe for concurrent use; callers sharing one across
// goroutines must serialize every call.
type Graph struct {
	vertices []Vertex
	heap     *heap.MaxHeap
	index    *hashindex.Table
	adj      *adjacency.Store
	strict   bool
}

// New builds a graph over vertices with no edges. Ids must be pairwise
// distinct; with duplicates only the first occurrence is reachable by id.
// O(n) expected.
func New(vertices []Vertex, opts ...Option) *Graph {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(vertices)
	arena := slices.Clone(vertices)
	keys := make([]int, n)
	for slot, v := range arena {
		keys[slot] = v.Weight
	}

	var indexOpts []hashindex.Option
	if cfg.rng != nil {
		indexOpts = append(indexOpts, hashindex.WithRand(cfg.rng))
	}
	index := hashindex.New(n, indexOpts...)
	for slot, v := range arena {
		index.Insert(v.ID, slot)
	}

	return &Graph{
		vertices: arena,
		heap:     heap.Build(keys),
		index:    index,
		adj:      adjacency.New(n),
		strict:   cfg.strict,
	}
}

// MaxNeighborhoodWeight returns the present vertex with the largest
// neighborhood weight, or false when no vertex remains. O(1).
// Among tied vertices the choice is unspecified.
func (g *Graph) MaxNeighborhoodWeight() (Vertex, bool) {
	top, ok := g.heap.Peek()
	if !ok {
		return Vertex{}, false
	}
	return g.vertices[top.Slot], true
}

// NeighborhoodWeight returns the weight of id plus the weights of its present
// neighbors, or [Absent] if id is not in the graph. O(1) expected.
func (g *Graph) NeighborhoodWeight(id int) int {
	rec, ok := g.index.Find(id)
	if !ok {
		return Absent
	}
	return g.heap.Key(rec.Slot)
}

// AddEdge connects u and v and reports whether an edge was added.
// It returns false without changing anything when u == v or either id is
// absent, and, with [WithStrictEdges], when the edge already exists.
// O(log n) expected.
func (g *Graph) AddEdge(u, v int) bool {
	if u == v {
		return false
	}
	ru, ok := g.index.Find(u)
	if !ok {
		return false
	}
	rv, ok := g.index.Find(v)
	if !ok {
		return false
	}
	if g.strict && g.adj.Connected(ru.Slot, rv.Slot) {
		return false
	}

	g.adj.Connect(endpoint(ru), endpoint(rv))
	g.heap.IncreaseKey(ru.Slot, g.vertices[rv.Slot].Weight)
	g.heap.IncreaseKey(rv.Slot, g.vertices[ru.Slot].Weight)
	return true
}

// DeleteNode removes id and every edge incident to it, and reports whether
// the vertex was present. Each former neighbor loses id's weight.
// O((deg(id)+1)·log n) expected.
func (g *Graph) DeleteNode(id int) bool {
	rec, ok := g.index.Find(id)
	if !ok {
		return false
	}

	w := g.vertices[rec.Slot].Weight
	g.adj.DisconnectAll(rec.Slot, func(nb adjacency.Endpoint) {
		g.heap.DecreaseKey(nb.Slot, w)
	})
	g.heap.Remove(rec.Slot)
	g.index.Remove(id)
	return true
}

// NumNodes returns the number of present vertices. O(1).
func (g *Graph) NumNodes() int { return g.heap.Len() }

// NumEdges returns the number of present edges. O(1).
func (g *Graph) NumEdges() int { return g.adj.Edges() }

// Has reports whether id is present.
func (g *Graph) Has(id int) bool {
	_, ok := g.index.Find(id)
	return ok
}

// Vertex returns the static attributes of a present vertex.
func (g *Graph) Vertex(id int) (Vertex, bool) {
	rec, ok := g.index.Find(id)
	if !ok {
		return Vertex{}, false
	}
	return g.vertices[rec.Slot], true
}

// Degree returns the number of present neighbors of id, or 0 if absent.
func (g *Graph) Degree(id int) int {
	rec, ok := g.index.Find(id)
	if !ok {
		return 0
	}
	return g.adj.Degree(rec.Slot)
}

// Neighbors returns the ids adjacent to id in ascending order, or nil if id
// is absent.
func (g *Graph) Neighbors(id int) []int {
	rec, ok := g.index.Find(id)
	if !ok {
		return nil
	}
	out := make([]int, 0, g.adj.Degree(rec.Slot))
	for nb := range g.adj.Neighbors(rec.Slot) {
		out = append(out, nb.ID)
	}
	slices.Sort(out)
	return out
}

// Vertices returns the present vertices sorted by id. O(n log n).
func (g *Graph) Vertices() []Vertex {
	out := make([]Vertex, 0, g.heap.Len())
	for slot, v := range g.vertices {
		if g.heap.Contains(slot) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b Vertex) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Edges returns every present edge once, sorted by (U, V).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.adj.Edges())
	for slot, v := range g.vertices {
		if g.adj.Vacant(slot) {
			continue
		}
		for nb := range g.adj.Neighbors(slot) {
			if v.ID < nb.ID {
				out = append(out, Edge{U: v.ID, V: nb.ID})
			}
		}
	}
	slices.SortFunc(out, func(a, b Edge) int {
		return cmp.Or(cmp.Compare(a.U, b.U), cmp.Compare(a.V, b.V))
	})
	return out
}

func endpoint(r hashindex.Record) adjacency.Endpoint {
	return adjacency.Endpoint{ID: r.ID, Slot: r.Slot}
}
