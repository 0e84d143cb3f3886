package markdown

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightStyle names the chroma style used for code blocks. It is set
// once at startup by the theme layer and read-only afterwards.
var HighlightStyle = "monokai"

// Highlighter tokenizes code block lines for one language. It keeps the
// previously highlighted lines keyed by their content, so re-parsing an
// unchanged block reuses the cached spans instead of running the lexer
// again. When a line diverges from the cache, that line and everything
// after it are re-highlighted.
type Highlighter struct {
	language string
	lexer    chroma.Lexer
	style    *chroma.Style

	lines   []highlightedLine
	current int
}

type highlightedLine struct {
	source string
	spans  []Span
}

// NewHighlighter creates a highlighter for the given language token.
// Unknown languages fall back to plain text tokenization.
func NewHighlighter(language string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get(HighlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		language: language,
		lexer:    chroma.Coalesce(lexer),
		style:    style,
	}
}

// Language returns the language token the highlighter was built for.
func (h *Highlighter) Language() string { return h.language }

// Prepare rewinds the highlighter to the first line of the block. Call
// it before feeding the block's lines in order.
func (h *Highlighter) Prepare() { h.current = 0 }

// HighlightLine tokenizes one line, consulting the line cache first.
func (h *Highlighter) HighlightLine(line string) []Span {
	if h.current < len(h.lines) && h.lines[h.current].source == line {
		h.current++
		return h.lines[h.current-1].spans
	}

	// The line changed: drop it and every cached line after it.
	h.lines = h.lines[:h.current]

	spans := h.tokenize(line)
	h.lines = append(h.lines, highlightedLine{source: line, spans: spans})
	h.current++
	return spans
}

func (h *Highlighter) tokenize(line string) []Span {
	it, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return []Span{HighlightSpan{Text: line}}
	}

	var spans []Span
	for tok := it(); tok != chroma.EOF; tok = it() {
		value := strings.TrimRight(tok.Value, "\n")
		if value == "" {
			continue
		}
		entry := h.style.Get(tok.Type)
		span := HighlightSpan{
			Text:   value,
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			span.Color = entry.Colour.String()
		}
		spans = append(spans, span)
	}
	if spans == nil {
		spans = []Span{HighlightSpan{Text: line}}
	}
	return spans
}
