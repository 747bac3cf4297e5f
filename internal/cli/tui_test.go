package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/heaviest/pkg/core/graph"
)

func newTestRepl() ReplModel {
	g := graph.New([]graph.Vertex{{ID: 7, Weight: 1}, {ID: 5, Weight: 2}, {ID: 9, Weight: 4}})
	return NewReplModel(context.Background(), g)
}

// typeLine sends s key by key, then enter.
func typeLine(m ReplModel, s string) (ReplModel, tea.Cmd) {
	for _, r := range s {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace}
		}
		next, _ := m.Update(msg)
		m = next.(ReplModel)
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(ReplModel), cmd
}

func TestReplAppliesOperations(t *testing.T) {
	m := newTestRepl()
	m, _ = typeLine(m, "add 7 5 => true")
	m, _ = typeLine(m, "add 7 9")
	m, _ = typeLine(m, "max => 7")

	if len(m.History) != 3 {
		t.Fatalf("history has %d entries, want 3", len(m.History))
	}
	for i, e := range m.History {
		if !e.ok {
			t.Errorf("entry %d (%s) failed: %s", i, e.input, e.text)
		}
	}
	if m.graph.NumEdges() != 2 {
		t.Errorf("edges = %d, want 2", m.graph.NumEdges())
	}
	if !strings.Contains(m.History[2].text, "(vertex 7)") {
		t.Errorf("max entry = %q", m.History[2].text)
	}
	if m.Input != "" {
		t.Errorf("input not cleared: %q", m.Input)
	}
}

func TestReplReportsErrors(t *testing.T) {
	m := newTestRepl()
	m, _ = typeLine(m, "frobnicate 1")
	m, _ = typeLine(m, "weight 9 => 5")

	if len(m.History) != 2 {
		t.Fatalf("history has %d entries, want 2", len(m.History))
	}
	if m.History[0].ok {
		t.Error("unknown operation accepted")
	}
	if m.History[1].ok || !strings.Contains(m.History[1].text, "want: weight 9 => 5") {
		t.Errorf("failed expectation entry = %+v", m.History[1])
	}
}

func TestReplEditing(t *testing.T) {
	m := newTestRepl()
	m, _ = typeLine(m, "nodes")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("edgesx")})
	m = next.(ReplModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(ReplModel)
	if m.Input != "edges" {
		t.Errorf("after backspace input = %q, want %q", m.Input, "edges")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(ReplModel)
	if m.Input != "nodes" {
		t.Errorf("after up input = %q, want %q", m.Input, "nodes")
	}

	m, _ = typeLine(m, "")
	m, _ = typeLine(m, "clear")
	if len(m.History) != 0 {
		t.Errorf("clear left %d entries", len(m.History))
	}
}

func TestReplQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		if _, cmd := newTestRepl().Update(msg); cmd == nil {
			t.Errorf("%s did not quit", msg)
		}
	}
	if _, cmd := typeLine(newTestRepl(), "quit"); cmd == nil {
		t.Error("quit did not quit")
	}
}

func TestReplView(t *testing.T) {
	m := newTestRepl()
	m, _ = typeLine(m, "delete 9")
	view := m.View()
	for _, want := range []string{"NEIGHBORHOOD", "2 nodes", "delete 9 => true"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
