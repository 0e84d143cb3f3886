package markdown

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Span is one styled run of inline text within a block.
type Span interface {
	isSpan()
}

// StandardSpan is regular inline text with Markdown attributes.
type StandardSpan struct {
	Text          string
	Strong        bool
	Emphasis      bool
	Strikethrough bool
	Code          bool
	Link          *url.URL
}

// HighlightSpan is a syntax-highlighted run inside a code block. Color
// is a hex string like "#a6e22e", empty when the token has no color.
type HighlightSpan struct {
	Text   string
	Color  string
	Bold   bool
	Italic bool
}

func (StandardSpan) isSpan()  {}
func (HighlightSpan) isSpan() {}

// Style configures how spans are realized for rendering. It is a plain
// comparable value so realized spans can be cached against it.
type Style struct {
	TextColor            string
	LinkColor            string
	InlineCodeColor      string
	InlineCodeBackground string
	HighlightColor       string
}

// DefaultStyle returns the style used when no theme is configured.
func DefaultStyle() Style {
	return Style{
		TextColor:            "#FCFCFA",
		LinkColor:            "#6495ED",
		InlineCodeColor:      "#FFFFFF",
		InlineCodeBackground: "#111111",
		HighlightColor:       "#FFD866",
	}
}

// RenderSpan is a span realized against a Style, ready to print.
type RenderSpan struct {
	Content string
	Style   lipgloss.Style
	Link    *url.URL
}

// Text is an ordered sequence of spans plus a cache of the spans
// realized for the last Style used. The cache is a memoization detail:
// dropping it and recomputing on every call would be equally correct.
type Text struct {
	spans []Span

	lastStyle    Style
	lastRendered []RenderSpan
	cached       bool
}

// NewText creates a Text from the given spans.
func NewText(spans []Span) *Text {
	return &Text{spans: spans}
}

// Spans returns the raw parsed spans.
func (t *Text) Spans() []Span { return t.spans }

// Raw returns the concatenated text content, without styling.
func (t *Text) Raw() string {
	var b strings.Builder
	for _, s := range t.spans {
		switch s := s.(type) {
		case StandardSpan:
			b.WriteString(s.Text)
		case HighlightSpan:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// Rendered returns the realized spans for the given style, recomputing
// only when the style differs from the one cached.
func (t *Text) Rendered(style Style) []RenderSpan {
	if !t.cached || style != t.lastStyle {
		rendered := make([]RenderSpan, 0, len(t.spans))
		for _, s := range t.spans {
			rendered = append(rendered, realize(s, style))
		}
		t.lastRendered = rendered
		t.lastStyle = style
		t.cached = true
	}
	return t.lastRendered
}

func realize(s Span, style Style) RenderSpan {
	switch s := s.(type) {
	case StandardSpan:
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(style.TextColor))
		if s.Code {
			st = st.
				Foreground(lipgloss.Color(style.InlineCodeColor)).
				Background(lipgloss.Color(style.InlineCodeBackground))
		} else {
			if s.Strong {
				st = st.Bold(true)
			}
			if s.Emphasis {
				st = st.Italic(true)
			}
		}
		if s.Strikethrough {
			st = st.Strikethrough(true)
		}
		if s.Link != nil {
			st = st.Foreground(lipgloss.Color(style.LinkColor)).Underline(true)
		}
		return RenderSpan{Content: s.Text, Style: st, Link: s.Link}
	case HighlightSpan:
		st := lipgloss.NewStyle()
		if s.Color != "" {
			st = st.Foreground(lipgloss.Color(s.Color))
		}
		if s.Bold {
			st = st.Bold(true)
		}
		if s.Italic {
			st = st.Italic(true)
		}
		return RenderSpan{Content: s.Text, Style: st}
	default:
		return RenderSpan{}
	}
}
