package graph

import (
	errs "github.com/matzehuels/heaviest/pkg/errors"
)

// Stats summarizes the current state of a graph and its vertex index.
type Stats struct {
	Nodes        int    `json:"nodes"`
	Edges        int    `json:"edges"`
	Buckets      int    `json:"buckets"`
	LongestChain int    `json:"longest_chain"`
	Max          Vertex `json:"max"`
	MaxWeight    int    `json:"max_weight"`
	Empty        bool   `json:"empty"`
}

// Stats returns counters, the current maximum and index chain statistics.
// It scans the bucket array, so it costs O(buckets).
func (g *Graph) Stats() Stats {
	st := Stats{
		Nodes:   g.NumNodes(),
		Edges:   g.NumEdges(),
		Buckets: g.index.Buckets(),
	}
	for _, l := range g.index.ChainLengths() {
		st.LongestChain = max(st.LongestChain, l)
	}
	if v, ok := g.MaxNeighborhoodWeight(); ok {
		st.Max = v
		st.MaxWeight = g.NeighborhoodWeight(v.ID)
	} else {
		st.Empty = true
	}
	return st
}

// Verify recomputes every invariant from scratch and returns an
// INVARIANT_VIOLATION error describing the first one that fails:
//
//   - heap order and heap position table
//   - twin links and the edge counter of the adjacency store
//   - presence agreement between the index, the heap and the adjacency store
//   - every present vertex's key equals its weight plus its neighbors' weights
//
// It costs O(n + m) and is meant for tests and diagnostics.
func (g *Graph) Verify() error {
	if err := g.heap.Verify(); err != nil {
		return errs.Wrap(errs.ErrCodeInvariantViolation, err, "priority index")
	}
	if err := g.adj.Verify(); err != nil {
		return errs.Wrap(errs.ErrCodeInvariantViolation, err, "adjacency store")
	}
	if g.index.Len() != g.heap.Len() {
		return errs.New(errs.ErrCodeInvariantViolation, "index holds %d records, heap holds %d", g.index.Len(), g.heap.Len())
	}

	for slot, v := range g.vertices {
		live := g.heap.Contains(slot)
		if live == g.adj.Vacant(slot) {
			return errs.New(errs.ErrCodeInvariantViolation, "vertex %d: heap live=%v but adjacency vacant=%v", v.ID, live, g.adj.Vacant(slot))
		}
		if !live {
			continue
		}
		rec, ok := g.index.Find(v.ID)
		if !ok || rec.Slot != slot {
			return errs.New(errs.ErrCodeInvariantViolation, "vertex %d: index record missing or points at wrong slot", v.ID)
		}

		want := v.Weight
		for nb := range g.adj.Neighbors(slot) {
			if !g.heap.Contains(nb.Slot) {
				return errs.New(errs.ErrCodeInvariantViolation, "vertex %d: neighbor %d is not present", v.ID, nb.ID)
			}
			want += g.vertices[nb.Slot].Weight
		}
		if got := g.heap.Key(slot); got != want {
			return errs.New(errs.ErrCodeInvariantViolation, "vertex %d: neighborhood weight %d, want %d", v.ID, got, want)
		}
	}
	return nil
}
