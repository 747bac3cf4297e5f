package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heaviest/pkg/core/graph"
	"github.com/matzehuels/heaviest/pkg/graphio"
	"github.com/matzehuels/heaviest/pkg/script"
)

var (
	replPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	replOKStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	replErrStyle    = lipgloss.NewStyle().Foreground(colorRed)
	replDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

const replHelp = "add U V · delete ID · weight ID · max · nodes · edges · append => EXPECTED to check · ↑ recall · esc quit"

// replEntry is one line of REPL history.
type replEntry struct {
	input string
	text  string
	ok    bool
}

// ReplModel is the bubbletea model for interactively applying operations to
// a graph. Each submitted line is parsed with the text script syntax and
// applied immediately; the weights table reflects the result.
type ReplModel struct {
	ctx    context.Context
	graph  *graph.Graph
	runner *script.Runner

	Input   string
	History []replEntry
	Height  int

	recall int
}

// NewReplModel creates a REPL over g.
func NewReplModel(ctx context.Context, g *graph.Graph) ReplModel {
	return ReplModel{
		ctx:    ctx,
		graph:  g,
		runner: script.NewRunner(nil),
		Height: 10,
		recall: -1,
	}
}

func (m ReplModel) Init() tea.Cmd {
	return nil
}

func (m ReplModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.Input)
			m.Input = ""
			m.recall = -1
			switch line {
			case "":
				return m, nil
			case "quit", "exit", "q":
				return m, tea.Quit
			case "clear":
				m.History = nil
				return m, nil
			}
			m.History = append(m.History, m.submit(line))
		case tea.KeyBackspace:
			if r := []rune(m.Input); len(r) > 0 {
				m.Input = string(r[:len(r)-1])
			}
		case tea.KeyUp:
			m.Input = m.previous()
		case tea.KeySpace:
			m.Input += " "
		case tea.KeyRunes:
			m.Input += string(msg.Runes)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height/3, 3)
	}
	return m, nil
}

// submit parses and applies one line.
func (m ReplModel) submit(line string) replEntry {
	ops, err := script.ParseText(strings.NewReader(line))
	if err != nil {
		return replEntry{input: line, text: err.Error()}
	}
	if len(ops) != 1 {
		return replEntry{input: line, text: "enter one operation per line"}
	}
	res, err := m.runner.Run(m.ctx, m.graph, ops)
	if res == nil || len(res.Outcomes) == 0 {
		return replEntry{input: line, text: err.Error()}
	}
	o := res.Outcomes[0]
	text := describeOutcome(o)
	if !o.OK {
		text += "  want: " + o.Op.String()
	}
	return replEntry{input: line, text: text, ok: o.OK}
}

// previous walks back through submitted lines.
func (m *ReplModel) previous() string {
	if len(m.History) == 0 {
		return m.Input
	}
	if m.recall < 0 {
		m.recall = len(m.History)
	}
	m.recall = max(m.recall-1, 0)
	return m.History[m.recall].input
}

func (m ReplModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("heaviest"))
	b.WriteString("  ")
	b.WriteString(replDimStyle.Render(replHelp))
	b.WriteString("\n\n")

	b.WriteString(weightsTable(graphio.TakeSnapshot(m.graph)))
	b.WriteString("\n")

	st := m.graph.Stats()
	if st.Empty {
		b.WriteString(replDimStyle.Render(fmt.Sprintf("%d nodes · %d edges · empty", st.Nodes, st.Edges)))
	} else {
		b.WriteString(replDimStyle.Render(fmt.Sprintf("%d nodes · %d edges · max ", st.Nodes, st.Edges)))
		b.WriteString(StyleMax.Render(fmt.Sprintf("%d (%d)", st.Max.ID, st.MaxWeight)))
	}
	b.WriteString("\n\n")

	start := max(len(m.History)-m.Height, 0)
	for _, e := range m.History[start:] {
		if e.ok {
			b.WriteString(replOKStyle.Render(iconSuccess) + " " + e.text)
		} else {
			b.WriteString(replErrStyle.Render(iconError) + " " + e.text)
		}
		b.WriteString("\n")
	}

	b.WriteString(replPromptStyle.Render(iconInfo+" ") + m.Input + replDimStyle.Render("█"))
	return b.String()
}

// replCommand creates the repl command.
func (c *CLI) replCommand() *cobra.Command {
	var flags graphFlags

	cmd := &cobra.Command{
		Use:   "repl <vertices>",
		Short: "Apply operations interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(args[0], flags)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(NewReplModel(cmd.Context(), g), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(ReplModel); ok {
				printInfo("%d lines entered", len(m.History))
			}
			printStats(g.Stats())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
