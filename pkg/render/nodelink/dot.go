package nodelink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/heaviest/pkg/core/graph"
)

// Options configures diagram generation.
type Options struct {
	// ShowWeights adds "w" (own weight) and "n" (neighborhood weight) lines
	// to each label.
	ShowWeights bool

	// HighlightMax fills the current maximum vertex.
	HighlightMax bool
}

// ToDOT converts the present vertices and edges of g to an undirected
// Graphviz graph. Vertices and edges are emitted in ascending id order, so
// equal graphs produce identical DOT and hence identical cache keys.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	maxID, hasMax := 0, false
	if opts.HighlightMax {
		if v, ok := g.MaxNeighborhoodWeight(); ok {
			maxID, hasMax = v.ID, true
		}
	}

	for _, v := range g.Vertices() {
		attrs := []string{fmt.Sprintf("label=%q", label(g, v, opts.ShowWeights))}
		if hasMax && v.ID == maxID {
			attrs = append(attrs, "fillcolor=\"#f4a261\"", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  \"%d\" [%s];\n", v.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  \"%d\" -- \"%d\";\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(g *graph.Graph, v graph.Vertex, weights bool) string {
	if !weights {
		return fmt.Sprint(v.ID)
	}
	return fmt.Sprintf("%d\nw=%d\nn=%d", v.ID, v.Weight, g.NeighborhoodWeight(v.ID))
}
