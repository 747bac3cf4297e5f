package graphio

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/heaviest/pkg/core/graph"
	errs "github.com/matzehuels/heaviest/pkg/errors"
)

// Supported input formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatText = "text"
)

// Formats lists every accepted format name.
var Formats = []string{FormatJSON, FormatTOML, FormatText}

// File is the decoded content of a vertex file.
type File struct {
	Vertices []graph.Vertex `json:"vertices" toml:"vertex"`
	Edges    []graph.Edge   `json:"edges,omitempty" toml:"edge"`
}

// Build constructs a graph over f.Vertices and adds f.Edges in order.
// The graph is always built with strict edges so a repeated edge in the
// file is reported instead of corrupting the weights; opts are applied
// after that.
func (f *File) Build(opts ...graph.Option) (*graph.Graph, error) {
	g := graph.New(f.Vertices, append([]graph.Option{graph.WithStrictEdges()}, opts...)...)
	for i, e := range f.Edges {
		if !g.AddEdge(e.U, e.V) {
			return nil, errs.New(errs.ErrCodeInvalidInput, "edge %d (%d, %d): unknown vertex, self loop or repeated edge", i, e.U, e.V)
		}
	}
	return g, nil
}

// FormatFromPath infers the format from a file extension. Anything other
// than .json and .toml is read as text.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

// Read decodes a vertex file in the given format from r.
func Read(r io.Reader, format string) (*File, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatText:
		return ReadText(r)
	default:
		return nil, errs.ValidateFormat(format, Formats...)
	}
}

// Import reads the vertex file at path. An empty format is inferred with
// [FormatFromPath].
func Import(path, format string) (*File, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatFromPath(path)
	}
	fh, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "vertex file %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer fh.Close()

	f, err := Read(fh, format)
	if err != nil {
		return nil, errs.Wrap(errs.GetCode(err), err, "read %s", path)
	}
	return f, nil
}

// ReadJSON decodes {"vertices": [...], "edges": [...]} from r.
// Unknown fields are rejected.
func ReadJSON(r io.Reader) (*File, error) {
	var f File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode json")
	}
	return validate(&f)
}

// ReadTOML decodes [[vertex]] and [[edge]] tables from r.
// Unknown keys are rejected.
func ReadTOML(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "decode toml: unknown key %q", undecoded[0].String())
	}
	return validate(&f)
}

// ReadText parses "id weight" lines from r.
func ReadText(r io.Reader) (*File, error) {
	var f File
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "line %d: want \"id weight\", got %d fields", line, len(fields))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "line %d: id", line)
		}
		w, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "line %d: weight", line)
		}
		f.Vertices = append(f.Vertices, graph.Vertex{ID: id, Weight: w})
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read text")
	}
	return validate(&f)
}

func validate(f *File) (*File, error) {
	if err := errs.ValidateVertexCount(len(f.Vertices)); err != nil {
		return nil, err
	}
	seen := make(map[int]int, len(f.Vertices))
	for i, v := range f.Vertices {
		if j, dup := seen[v.ID]; dup {
			return nil, errs.New(errs.ErrCodeDuplicateID, "vertex id %d appears at positions %d and %d", v.ID, j, i)
		}
		seen[v.ID] = i
	}
	return f, nil
}
