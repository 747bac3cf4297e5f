// Package nodelink draws a weighted graph as a node-link diagram.
//
// # Usage
//
// Convert a graph to DOT, then render it with Graphviz:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{ShowWeights: true, HighlightMax: true})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineNeato)
//
// Each present vertex is a circle labelled with its id and, with
// ShowWeights, its own and neighborhood weight. Edges are undirected. With
// HighlightMax, the vertex returned by MaxNeighborhoodWeight is filled.
//
// # Caching
//
// Layout is the slow step. [Renderer] stores rendered bytes in a
// [cache.Cache] keyed by the hash of the DOT source, the engine and the
// output format, so re-rendering an unchanged graph is a lookup.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process; no external binaries are needed for SVG or PNG.
//
// [cache.Cache]: github.com/matzehuels/heaviest/pkg/cache
package nodelink
