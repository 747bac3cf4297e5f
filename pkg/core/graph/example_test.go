package graph_test

import (
	"fmt"

	"github.com/matzehuels/heaviest/pkg/core/graph"
)

func ExampleGraph_MaxNeighborhoodWeight() {
	g := graph.New([]graph.Vertex{
		{ID: 7, Weight: 1},
		{ID: 5, Weight: 2},
		{ID: 9, Weight: 4},
	})

	g.AddEdge(7, 5)
	g.AddEdge(7, 9)
	v, _ := g.MaxNeighborhoodWeight()
	fmt.Println("max:", v.ID, g.NeighborhoodWeight(v.ID))

	g.DeleteNode(7)
	v, _ = g.MaxNeighborhoodWeight()
	fmt.Println("max:", v.ID, g.NeighborhoodWeight(v.ID))
	fmt.Println("nodes:", g.NumNodes(), "edges:", g.NumEdges())
	// Output:
	// max: 7 7
	// max: 9 4
	// nodes: 2 edges: 0
}

func ExampleGraph_NeighborhoodWeight() {
	g := graph.New([]graph.Vertex{{ID: 1, Weight: 3}, {ID: 2, Weight: 4}})
	g.AddEdge(1, 2)

	fmt.Println(g.NeighborhoodWeight(1))
	fmt.Println(g.NeighborhoodWeight(42) == graph.Absent)
	// Output:
	// 7
	// true
}
