// Package render groups the graph renderers.
//
// The [nodelink] subpackage converts a graph to Graphviz DOT, with each
// vertex labelled by its weight and neighborhood weight and the current
// maximum highlighted, and lays it out to SVG or PNG with the embedded
// Graphviz library. No external binaries are required.
//
// [nodelink]: github.com/matzehuels/heaviest/pkg/render/nodelink
package render
