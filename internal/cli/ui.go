package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/heaviest/pkg/core/graph"
	"github.com/matzehuels/heaviest/pkg/graphio"
	"github.com/matzehuels/heaviest/pkg/script"
)

// stdout receives all user-facing output. Tests replace it.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorOrange = lipgloss.Color("208") // Orange - the heaviest vertex
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleMax marks the vertex with the heaviest neighborhood.
	StyleMax = lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Fprintln(stdout, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Graph Output
// =============================================================================

// printStats prints graph counters and the current maximum on one line.
func printStats(st graph.Stats) {
	parts := []string{
		fmt.Sprintf("%d nodes", st.Nodes),
		fmt.Sprintf("%d edges", st.Edges),
	}
	if st.Empty {
		parts = append(parts, "empty")
	} else {
		parts = append(parts, fmt.Sprintf("max %d (%d)", st.Max.ID, st.MaxWeight))
	}
	printDetail("%s", strings.Join(parts, " · "))
}

// printRendered prints whether a render came from the cache.
func printRendered(path string, cached bool) {
	status, style := iconFresh, styleComputed
	if cached {
		status, style = iconCached, styleCached
	}
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path)+" "+style.Render(status))
}

// weightsTable renders one row per present vertex, marking the maximum.
func weightsTable(s graphio.Snapshot) string {
	maxID, hasMax := 0, s.Max != nil
	if hasMax {
		maxID = s.Max.ID
	}
	rows := make([][]string, 0, len(s.Vertices))
	for _, v := range s.Vertices {
		rows = append(rows, []string{
			strconv.Itoa(v.ID),
			strconv.Itoa(v.Weight),
			strconv.Itoa(v.NeighborhoodWeight),
			strconv.Itoa(v.Degree),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("ID", "WEIGHT", "NEIGHBORHOOD", "DEGREE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if hasMax && row >= 0 && row < len(rows) && rows[row][0] == strconv.Itoa(maxID) {
				return styleTableCell.Inherit(StyleMax)
			}
			return styleTableCell
		}).
		String()
}

// describeOutcome renders an outcome as "call => got", naming the vertex
// returned by max.
func describeOutcome(o script.Outcome) string {
	call := o.Op
	call.Expect = nil
	got := o.Got()
	if o.Op.Kind == script.KindMax && !o.None {
		got += fmt.Sprintf(" (vertex %d)", o.MaxID)
	}
	return call.String() + " => " + got
}

// printOutcome prints one applied script operation, with the expectation
// when it failed.
func printOutcome(o script.Outcome) {
	if o.OK {
		fmt.Fprintln(stdout, "  "+styleIconSuccess.Render(iconSuccess)+" "+describeOutcome(o))
		return
	}
	fmt.Fprintln(stdout, "  "+styleIconError.Render(iconError)+" "+describeOutcome(o)+StyleWarning.Render("  want: "+o.Op.String()))
}

// =============================================================================
// Utilities
// =============================================================================

// printLine prints s unstyled.
func printLine(s string) {
	fmt.Fprintln(stdout, s)
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Fprintln(stdout)
}
