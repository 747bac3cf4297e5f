package graphio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/heaviest/pkg/core/graph"
)

// Snapshot is the serialized state of a graph at one point in time.
type Snapshot struct {
	Vertices []VertexState `json:"vertices"`
	Edges    []graph.Edge  `json:"edges"`
	Max      *VertexState  `json:"max,omitempty"`
	Nodes    int           `json:"nodes"`
	NumEdges int           `json:"num_edges"`
}

// VertexState is a present vertex with its current neighborhood weight.
type VertexState struct {
	ID                 int `json:"id"`
	Weight             int `json:"weight"`
	NeighborhoodWeight int `json:"neighborhood_weight"`
	Degree             int `json:"degree"`
}

// TakeSnapshot captures the present vertices, edges and maximum of g.
func TakeSnapshot(g *graph.Graph) Snapshot {
	s := Snapshot{
		Vertices: make([]VertexState, 0, g.NumNodes()),
		Edges:    g.Edges(),
		Nodes:    g.NumNodes(),
		NumEdges: g.NumEdges(),
	}
	for _, v := range g.Vertices() {
		s.Vertices = append(s.Vertices, state(g, v))
	}
	if v, ok := g.MaxNeighborhoodWeight(); ok {
		st := state(g, v)
		s.Max = &st
	}
	return s
}

func state(g *graph.Graph, v graph.Vertex) VertexState {
	return VertexState{
		ID:                 v.ID,
		Weight:             v.Weight,
		NeighborhoodWeight: g.NeighborhoodWeight(v.ID),
		Degree:             g.Degree(v.ID),
	}
}

// WriteSnapshot encodes a snapshot of g as indented JSON.
func WriteSnapshot(g *graph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(TakeSnapshot(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteJSON encodes f in the JSON vertex file format, so a snapshot's
// vertices and edges can be reloaded with [ReadJSON].
func WriteJSON(f *File, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// FromGraph returns the present vertices and edges of g as a File.
func FromGraph(g *graph.Graph) *File {
	return &File{Vertices: g.Vertices(), Edges: g.Edges()}
}
