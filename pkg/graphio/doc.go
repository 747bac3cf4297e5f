// Package graphio reads vertex files and writes graph snapshots.
//
// # Formats
//
// Three input formats describe the same thing, a vertex list with optional
// initial edges:
//
// JSON:
//
//	{
//	  "vertices": [{"id": 7, "weight": 1}, {"id": 5, "weight": 2}],
//	  "edges": [{"u": 7, "v": 5}]
//	}
//
// TOML:
//
//	[[vertex]]
//	id = 7
//	weight = 1
//
//	[[edge]]
//	u = 7
//	v = 5
//
// Text, one "id weight" pair per line; blank lines and "#" comments are
// ignored. The text form carries no edges.
//
//	# id weight
//	7 1
//	5 2
//
// [Import] picks the format from the file extension unless one is given.
//
// # Validation
//
// Vertex ids must be unique: the graph itself leaves duplicates undefined,
// so readers reject them with DUPLICATE_ID. Edges are checked when the file
// is turned into a graph by [File.Build]; an edge naming an unknown vertex,
// a self loop or a repeated edge fails with INVALID_INPUT.
//
// # Snapshots
//
// [WriteSnapshot] encodes the present vertices with their neighborhood
// weights, the present edges and the current maximum as indented JSON.
package graphio
