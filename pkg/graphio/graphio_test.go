package graphio

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/heaviest/pkg/core/graph"
	errs "github.com/matzehuels/heaviest/pkg/errors"
)

var scenario = []graph.Vertex{{ID: 7, Weight: 1}, {ID: 5, Weight: 2}, {ID: 9, Weight: 4}}

func TestRead(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		input     string
		wantEdges []graph.Edge
	}{
		{
			name:      "json",
			format:    FormatJSON,
			input:     `{"vertices":[{"id":7,"weight":1},{"id":5,"weight":2},{"id":9,"weight":4}],"edges":[{"u":7,"v":5}]}`,
			wantEdges: []graph.Edge{{U: 7, V: 5}},
		},
		{
			name:   "toml",
			format: FormatTOML,
			input: `
[[vertex]]
id = 7
weight = 1

[[vertex]]
id = 5
weight = 2

[[vertex]]
id = 9
weight = 4

[[edge]]
u = 7
v = 5
`,
			wantEdges: []graph.Edge{{U: 7, V: 5}},
		},
		{
			name:   "text",
			format: FormatText,
			input:  "# id weight\n7 1\n\n5   2  # trailing comment\n\t9 4\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !slices.Equal(f.Vertices, scenario) {
				t.Errorf("Vertices = %v, want %v", f.Vertices, scenario)
			}
			if !slices.Equal(f.Edges, tt.wantEdges) {
				t.Errorf("Edges = %v, want %v", f.Edges, tt.wantEdges)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
		code   errs.Code
	}{
		{name: "json duplicate", format: FormatJSON, input: `{"vertices":[{"id":1,"weight":1},{"id":1,"weight":2}]}`, code: errs.ErrCodeDuplicateID},
		{name: "json malformed", format: FormatJSON, input: `{"vertices":[`, code: errs.ErrCodeInvalidFormat},
		{name: "json unknown field", format: FormatJSON, input: `{"nodes":[]}`, code: errs.ErrCodeInvalidFormat},
		{name: "toml duplicate", format: FormatTOML, input: "[[vertex]]\nid = 3\n[[vertex]]\nid = 3\n", code: errs.ErrCodeDuplicateID},
		{name: "toml unknown key", format: FormatTOML, input: "[[vertex]]\nid = 3\ncolor = \"red\"\n", code: errs.ErrCodeInvalidFormat},
		{name: "text duplicate", format: FormatText, input: "1 1\n1 2\n", code: errs.ErrCodeDuplicateID},
		{name: "text field count", format: FormatText, input: "1 1 1\n", code: errs.ErrCodeInvalidFormat},
		{name: "text bad id", format: FormatText, input: "x 1\n", code: errs.ErrCodeInvalidFormat},
		{name: "text bad weight", format: FormatText, input: "1 heavy\n", code: errs.ErrCodeInvalidFormat},
		{name: "unknown format", format: "yaml", input: "", code: errs.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (%v)", errs.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"g.json":        FormatJSON,
		"dir/G.JSON":    FormatJSON,
		"g.toml":        FormatTOML,
		"g.txt":         FormatText,
		"vertices":      FormatText,
		"archive.tar.x": FormatText,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.toml")
	if err := os.WriteFile(path, []byte("[[vertex]]\nid = 1\nweight = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Import(path, "")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(f.Vertices) != 1 || f.Vertices[0] != (graph.Vertex{ID: 1, Weight: 5}) {
		t.Errorf("Vertices = %v", f.Vertices)
	}

	if _, err := Import(filepath.Join(dir, "missing.json"), ""); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v, want FILE_NOT_FOUND", err)
	}
	if _, err := Import("", ""); !errs.Is(err, errs.ErrCodeInvalidPath) {
		t.Errorf("empty path: %v, want INVALID_PATH", err)
	}
}

func TestBuild(t *testing.T) {
	f := &File{Vertices: scenario, Edges: []graph.Edge{{U: 7, V: 5}, {U: 7, V: 9}}}
	g, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if v, _ := g.MaxNeighborhoodWeight(); v.ID != 7 || g.NeighborhoodWeight(7) != 7 {
		t.Errorf("max = %d (%d), want 7 (7)", v.ID, g.NeighborhoodWeight(v.ID))
	}

	for _, bad := range [][]graph.Edge{
		{{U: 7, V: 7}},
		{{U: 7, V: 100}},
		{{U: 7, V: 5}, {U: 5, V: 7}},
	} {
		f := &File{Vertices: scenario, Edges: bad}
		if _, err := f.Build(); !errs.Is(err, errs.ErrCodeInvalidInput) {
			t.Errorf("Build(%v) err = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestSnapshot(t *testing.T) {
	g := graph.New(scenario)
	g.AddEdge(7, 5)
	g.AddEdge(7, 9)
	g.DeleteNode(5)

	var buf bytes.Buffer
	if err := WriteSnapshot(g, &buf); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	var s Snapshot
	if err := json.Unmarshal(buf.Bytes(), &s); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if s.Nodes != 2 || s.NumEdges != 1 {
		t.Errorf("counts = %d/%d, want 2/1", s.Nodes, s.NumEdges)
	}
	want := []VertexState{
		{ID: 7, Weight: 1, NeighborhoodWeight: 5, Degree: 1},
		{ID: 9, Weight: 4, NeighborhoodWeight: 5, Degree: 1},
	}
	if !slices.Equal(s.Vertices, want) {
		t.Errorf("Vertices = %+v, want %+v", s.Vertices, want)
	}
	if s.Max == nil || s.Max.NeighborhoodWeight != 5 {
		t.Errorf("Max = %+v, want neighborhood weight 5", s.Max)
	}
}

func TestWriteJSONReloads(t *testing.T) {
	g := graph.New(scenario)
	g.AddEdge(9, 5)
	g.DeleteNode(7)

	var buf bytes.Buffer
	if err := WriteJSON(FromGraph(g), &buf); err != nil {
		t.Fatal(err)
	}
	f, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	g2, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g2.NumNodes() != 2 || g2.NumEdges() != 1 || g2.NeighborhoodWeight(5) != 6 {
		t.Errorf("reloaded graph: nodes=%d edges=%d w(5)=%d", g2.NumNodes(), g2.NumEdges(), g2.NeighborhoodWeight(5))
	}
}
