// Package pkg holds the heaviest libraries.
//
// # Overview
//
// heaviest tracks, for a vertex-weighted undirected graph, the vertex whose
// neighborhood weight (its own weight plus its neighbors' weights) is
// largest, while edges are inserted and vertices are deleted. The answer is
// always available in O(1).
//
// The packages are organized in layers:
//
//  1. [core] - the graph and the three structures it keeps in step
//     ([core/heap], [core/hashindex], [core/adjacency], [core/list])
//  2. [graphio], [script] - vertex files, operation scripts and the runner
//  3. [render], [server] - Graphviz diagrams and the HTTP interface
//  4. [cache], [config], [errors], [observability], [buildinfo] - support
//
// # Quick Start
//
//	import "github.com/matzehuels/heaviest/pkg/core/graph"
//
//	g := graph.New([]graph.Vertex{{ID: 7, Weight: 1}, {ID: 5, Weight: 2}, {ID: 9, Weight: 4}})
//	g.AddEdge(7, 5)
//	g.AddEdge(7, 9)
//	v, _ := g.MaxNeighborhoodWeight()   // vertex 7
//	w := g.NeighborhoodWeight(v.ID)     // 7
//
// Replay a script from a file:
//
//	f, _ := graphio.Import("vertices.toml", "")
//	g, _ := f.Build()
//	ops, _ := script.Load("ops.txt", "")
//	res, err := script.NewRunner(nil).Run(ctx, g, ops)
//
// # Concurrency
//
// A [core/graph.Graph] is not safe for concurrent use. [server] serializes
// access with a mutex; [script.Runner] may be shared as long as every
// goroutine uses its own graph.
//
// [core]: github.com/matzehuels/heaviest/pkg/core
// [core/heap]: github.com/matzehuels/heaviest/pkg/core/heap
// [core/hashindex]: github.com/matzehuels/heaviest/pkg/core/hashindex
// [core/adjacency]: github.com/matzehuels/heaviest/pkg/core/adjacency
// [core/list]: github.com/matzehuels/heaviest/pkg/core/list
// [core/graph.Graph]: github.com/matzehuels/heaviest/pkg/core/graph#Graph
// [graphio]: github.com/matzehuels/heaviest/pkg/graphio
// [script]: github.com/matzehuels/heaviest/pkg/script
// [script.Runner]: github.com/matzehuels/heaviest/pkg/script#Runner
// [render]: github.com/matzehuels/heaviest/pkg/render
// [server]: github.com/matzehuels/heaviest/pkg/server
// [cache]: github.com/matzehuels/heaviest/pkg/cache
// [config]: github.com/matzehuels/heaviest/pkg/config
// [errors]: github.com/matzehuels/heaviest/pkg/errors
// [observability]: github.com/matzehuels/heaviest/pkg/observability
// [buildinfo]: github.com/matzehuels/heaviest/pkg/buildinfo
package pkg
