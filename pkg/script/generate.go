package script

import (
	"math/rand/v2"

	"github.com/matzehuels/heaviest/pkg/core/graph"
)

// Mix weights the operation kinds drawn by [Generate]. Kinds with a zero or
// missing weight are never drawn.
type Mix map[Kind]int

// DefaultMix favors edge insertions so graphs grow dense enough for
// deletions to touch many neighbors.
var DefaultMix = Mix{
	KindAdd:    50,
	KindDelete: 8,
	KindWeight: 20,
	KindMax:    15,
	KindNodes:  4,
	KindEdges:  3,
}

// kindOrder fixes the draw order so a seed always yields the same script.
var kindOrder = []Kind{KindAdd, KindDelete, KindWeight, KindMax, KindNodes, KindEdges}

// RandomVertices returns n vertices with distinct ids drawn from [0, 4n) and
// weights drawn from [0, maxWeight].
func RandomVertices(rng *rand.Rand, n, maxWeight int) []graph.Vertex {
	ids := rng.Perm(4 * max(n, 1))[:n]
	out := make([]graph.Vertex, n)
	for i, id := range ids {
		out[i] = graph.Vertex{ID: id, Weight: rng.IntN(maxWeight + 1)}
	}
	return out
}

// Generate draws n operations over vertices and attaches to each the result
// a graph built with [graph.WithStrictEdges] must return, as computed by a
// naive reference model. About one argument in twenty is an id that was
// never in the graph.
func Generate(rng *rand.Rand, vertices []graph.Vertex, n int, mix Mix) []Op {
	m := newModel(vertices)
	total := 0
	for _, k := range kindOrder {
		total += max(mix[k], 0)
	}
	if total == 0 || len(vertices) == 0 {
		return nil
	}

	unknown := 0
	for _, v := range vertices {
		unknown = max(unknown, v.ID+1)
	}
	pick := func() int {
		if rng.IntN(20) == 0 {
			return unknown
		}
		return vertices[rng.IntN(len(vertices))].ID
	}

	ops := make([]Op, 0, n)
	for range n {
		var kind Kind
		r := rng.IntN(total)
		for _, k := range kindOrder {
			if r -= max(mix[k], 0); r < 0 {
				kind = k
				break
			}
		}

		switch kind {
		case KindAdd:
			u, v := pick(), pick()
			ops = append(ops, Add(u, v).ExpectBool(m.add(u, v)))
		case KindDelete:
			id := pick()
			ops = append(ops, Delete(id).ExpectBool(m.delete(id)))
		case KindWeight:
			id := pick()
			ops = append(ops, Weight(id).ExpectInt(m.weight(id)))
		case KindMax:
			if w, ok := m.max(); ok {
				ops = append(ops, Max().ExpectInt(w))
			} else {
				ops = append(ops, Max().ExpectNone())
			}
		case KindNodes:
			ops = append(ops, Nodes().ExpectInt(len(m.weights)))
		case KindEdges:
			ops = append(ops, Edges().ExpectInt(m.edges))
		}
	}
	return ops
}

// model recomputes every answer from plain maps.
type model struct {
	weights map[int]int
	adj     map[int]map[int]bool
	edges   int
}

func newModel(vertices []graph.Vertex) *model {
	m := &model{weights: make(map[int]int), adj: make(map[int]map[int]bool)}
	for _, v := range vertices {
		if _, dup := m.weights[v.ID]; dup {
			continue
		}
		m.weights[v.ID] = v.Weight
		m.adj[v.ID] = make(map[int]bool)
	}
	return m
}

func (m *model) add(u, v int) bool {
	_, okU := m.weights[u]
	_, okV := m.weights[v]
	if u == v || !okU || !okV || m.adj[u][v] {
		return false
	}
	m.adj[u][v] = true
	m.adj[v][u] = true
	m.edges++
	return true
}

func (m *model) delete(id int) bool {
	if _, ok := m.weights[id]; !ok {
		return false
	}
	for nb := range m.adj[id] {
		delete(m.adj[nb], id)
		m.edges--
	}
	delete(m.adj, id)
	delete(m.weights, id)
	return true
}

func (m *model) weight(id int) int {
	w, ok := m.weights[id]
	if !ok {
		return graph.Absent
	}
	for nb := range m.adj[id] {
		w += m.weights[nb]
	}
	return w
}

func (m *model) max() (int, bool) {
	best, ok := 0, false
	for id := range m.weights {
		if w := m.weight(id); !ok || w > best {
			best, ok = w, true
		}
	}
	return best, ok
}
