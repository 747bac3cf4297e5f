// Package graph maintains the heaviest neighborhood of a dynamic,
// vertex-weighted, undirected graph.
//
// # Overview
//
// A vertex's neighborhood weight is its own weight plus the weights of its
// present neighbors. The vertex set is fixed by [New]; afterwards edges can
// be added with [Graph.AddEdge] and vertices removed with [Graph.DeleteNode].
// At every point [Graph.MaxNeighborhoodWeight] answers in O(1).
//
//	g := graph.New([]graph.Vertex{{ID: 7, Weight: 1}, {ID: 5, Weight: 2}, {ID: 9, Weight: 4}})
//	g.AddEdge(7, 5)
//	g.AddEdge(7, 9)
//	v, _ := g.MaxNeighborhoodWeight() // vertex 7, neighborhood weight 7
//
// # Structure
//
// Three structures are kept in step, all addressed by the vertex's fixed slot
// (its index in the constructor input):
//
//   - [heap.MaxHeap] orders slots by neighborhood weight
//   - [hashindex.Table] maps ids to slots with universal hashing
//   - [adjacency.Store] holds twin-linked neighbor lists
//
// AddEdge resolves both ids through the index, links two twin records and
// raises both heap keys. DeleteNode walks the vertex's list once, unlinking
// each twin and lowering each neighbor's key, then removes the heap element
// and the index record.
//
// # Costs
//
//   - MaxNeighborhoodWeight, NumNodes, NumEdges: O(1)
//   - NeighborhoodWeight: O(1) expected
//   - AddEdge: O(log n) expected
//   - DeleteNode: O((deg+1)·log n) expected
//
// # Absence
//
// Unknown ids are not errors: NeighborhoodWeight returns [Absent], AddEdge
// and DeleteNode return false, and MaxNeighborhoodWeight returns false on an
// empty graph. Duplicate ids at construction and adding an edge that already
// exists are caller errors; [WithStrictEdges] turns the latter into a
// rejected call.
//
// # Verification
//
// [Graph.Verify] recomputes every invariant from scratch. It is O(n+m) and
// is used by tests, the script runner and the stress command.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Callers must serialize
// access if multiple goroutines read or modify the same graph.
//
// [heap.MaxHeap]: github.com/matzehuels/heaviest/pkg/core/heap
// [hashindex.Table]: github.com/matzehuels/heaviest/pkg/core/hashindex
// [adjacency.Store]: github.com/matzehuels/heaviest/pkg/core/adjacency
package graph
