package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mariinkys/cedilla/internal/markdown"
)

// Element is one node of the visual tree. Render realizes it as
// terminal text; a non-positive width means "natural width, no wrap".
type Element interface {
	Render(width int) string
}

// Span is a run of realized rich text.
type Span struct {
	spans []markdown.RenderSpan
}

// NewSpan creates a text element from realized spans.
func NewSpan(spans []markdown.RenderSpan) Span {
	return Span{spans: spans}
}

func (t Span) Render(width int) string {
	var b strings.Builder
	for _, sp := range t.spans {
		b.WriteString(sp.Style.Render(sp.Content))
	}
	s := b.String()
	if width > 0 {
		s = wordwrap.String(s, width)
	}
	return s
}

// Stack lays out children vertically with a fixed number of blank
// lines between them.
type Stack struct {
	children []Element
	blank    int
}

// NewStack creates a vertical stack with spacing derived from the
// abstract spacing value.
func NewStack(children []Element, spacing float64) Stack {
	return Stack{children: children, blank: blankLines(spacing)}
}

func (s Stack) Render(width int) string {
	parts := make([]string, 0, len(s.children))
	for _, c := range s.children {
		parts = append(parts, c.Render(width))
	}
	sep := strings.Repeat("\n", s.blank+1)
	return strings.Join(parts, sep)
}

// Prefixed renders an inner element with a gutter: First in front of
// the first line, Rest in front of every following one. Quotes and
// list bullets are both gutters.
type Prefixed struct {
	First string
	Rest  string
	Style lipgloss.Style
	Inner Element
}

func (p Prefixed) Render(width int) string {
	inner := width
	if inner > 0 {
		inner -= runewidth.StringWidth(p.First)
		if inner < 1 {
			inner = 1
		}
	}
	lines := strings.Split(p.Inner.Render(inner), "\n")
	for i, line := range lines {
		prefix := p.Rest
		if i == 0 {
			prefix = p.First
		}
		lines[i] = p.Style.Render(prefix) + line
	}
	return strings.Join(lines, "\n")
}

// Divider is a horizontal rule.
type Divider struct {
	Style lipgloss.Style
}

func (d Divider) Render(width int) string {
	if width <= 0 {
		width = 8
	}
	return d.Style.Render(strings.Repeat("─", width))
}

// Box wraps an inner element in a styled block, used for code blocks
// and image placeholders.
type Box struct {
	Inner Element
	Style lipgloss.Style
}

func (b Box) Render(width int) string {
	inner := width
	if inner > 0 {
		inner -= b.Style.GetHorizontalFrameSize()
		if inner < 1 {
			inner = 1
		}
	}
	return b.Style.Render(b.Inner.Render(inner))
}

// Grid renders table cells measured at natural width and padded per
// column alignment.
type Grid struct {
	Header     []Element
	Rows       [][]Element
	Alignments []markdown.Alignment
	Style      lipgloss.Style
}

func (g Grid) Render(width int) string {
	columns := len(g.Header)
	for _, row := range g.Rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	if columns == 0 {
		return ""
	}

	cell := func(row []Element, i int) string {
		if i < len(row) && row[i] != nil {
			return row[i].Render(0)
		}
		return ""
	}

	widths := make([]int, columns)
	measure := func(row []Element) {
		for i := range widths {
			if w := cellWidth(cell(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(g.Header)
	for _, row := range g.Rows {
		measure(row)
	}

	var b strings.Builder
	writeRow := func(row []Element, bold bool) {
		parts := make([]string, columns)
		for i := range parts {
			aligned := alignCell(cell(row, i), widths[i], g.alignment(i))
			if bold {
				aligned = lipgloss.NewStyle().Bold(true).Render(aligned)
			}
			parts[i] = aligned
		}
		b.WriteString(strings.Join(parts, "  "))
		b.WriteString("\n")
	}

	writeRow(g.Header, true)
	sep := make([]string, columns)
	for i := range sep {
		sep[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(g.Style.Render(strings.Join(sep, "──")))
	b.WriteString("\n")
	for _, row := range g.Rows {
		writeRow(row, false)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (g Grid) alignment(i int) markdown.Alignment {
	if i < len(g.Alignments) {
		return g.Alignments[i]
	}
	return markdown.AlignNone
}

// cellWidth measures the widest line of a rendered cell, ignoring
// escape sequences.
func cellWidth(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		if lw := ansi.PrintableRuneWidth(line); lw > w {
			w = lw
		}
	}
	return w
}

func alignCell(s string, width int, align markdown.Alignment) string {
	pad := width - ansi.PrintableRuneWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case markdown.AlignRight:
		return strings.Repeat(" ", pad) + s
	case markdown.AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
