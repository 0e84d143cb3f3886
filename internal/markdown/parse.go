// Package markdown converts raw Markdown into an ordered sequence of
// styled blocks. Parsing can run wholesale over a string or
// incrementally through Content.Push, which re-parses only the trailing
// unfinished section of the document on every call.
package markdown

import (
	"net/url"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// The event parser. Safe to share: per-parse state lives in the
// parser.Context, never in the parser itself.
var gm = goldmark.New(goldmark.WithExtensions(
	extension.Table,
	extension.Strikethrough,
	extension.TaskList,
))

// Content holds a parsed document plus the state needed to keep
// parsing it incrementally. One Content per open document; it is not
// safe for concurrent use.
type Content struct {
	items      []Block
	incomplete map[int]*section
	state      parserState
}

// section records a block whose parse referenced labels that were not
// defined yet, keyed in Content.incomplete by the block's index.
type section struct {
	source string
	broken map[string]struct{}
}

// parserState persists across incremental pushes.
type parserState struct {
	leftover    string
	references  map[string]string
	images      map[string]*url.URL
	highlighter *Highlighter
}

func newParserState() parserState {
	return parserState{
		references: make(map[string]string),
		images:     make(map[string]*url.URL),
	}
}

// NewContent creates an empty document.
func NewContent() *Content {
	return &Content{
		incomplete: make(map[int]*section),
		state:      newParserState(),
	}
}

// ParseContent parses a whole document into a Content ready for
// further pushes.
func ParseContent(markdown string) *Content {
	c := NewContent()
	c.Push(markdown)
	return c
}

// Parse is the stateless entry point: it parses the given Markdown and
// returns the resulting blocks.
func Parse(markdown string) []Block {
	state := newParserState()
	produced := parseWith(&state, markdown)
	blocks := make([]Block, 0, len(produced))
	for _, p := range produced {
		blocks = append(blocks, p.block)
	}
	return blocks
}

// Blocks returns the parsed blocks in document order.
func (c *Content) Blocks() []Block { return c.items }

// Images returns every accepted image URL seen so far, in a stable
// order.
func (c *Content) Images() []*url.URL {
	urls := make([]*url.URL, 0, len(c.state.images))
	for _, u := range c.state.images {
		urls = append(urls, u)
	}
	sort.Slice(urls, func(i, j int) bool { return urls[i].String() < urls[j].String() })
	return urls
}

// Push feeds more Markdown into the document and re-parses the
// trailing section. The last block of the previous push is always
// speculative: it is dropped and re-parsed, since the parser cannot
// know whether it was complete without seeing what follows. Consumers
// should therefore key UI diffing on block position, not identity.
func (c *Content) Push(delta string) {
	if delta == "" {
		return
	}

	leftover := c.state.leftover + delta
	c.state.leftover = ""

	// A trailing bare pipe is almost always a table row being typed.
	// Strip it before parsing so the half row does not degrade into a
	// paragraph, and restore it to the leftover afterwards.
	input := leftover
	if trimmed := strings.TrimRight(leftover, " \t\r\n"); strings.HasSuffix(trimmed, "|") {
		input = strings.TrimRight(trimmed, "|")
	}

	if n := len(c.items); n > 0 {
		c.items = c.items[:n-1]
	}

	for _, p := range parseWith(&c.state, input) {
		if len(p.broken) > 0 {
			c.incomplete[len(c.items)] = &section{source: p.source, broken: p.broken}
		}
		c.items = append(c.items, p.block)
	}

	c.state.leftover += leftover[len(input):]

	c.resolveIncomplete()
}

// resolveIncomplete re-parses registered sections whose broken
// reference labels have since gained definitions, replacing the block
// at the recorded index.
func (c *Content) resolveIncomplete() {
	for index, sec := range c.incomplete {
		if index >= len(c.items) {
			delete(c.incomplete, index)
			continue
		}

		before := len(sec.broken)
		for label := range sec.broken {
			if _, ok := c.state.references[label]; ok {
				delete(sec.broken, label)
			}
		}

		if len(sec.broken) != before {
			scratch := newParserState()
			for label, dest := range c.state.references {
				scratch.references[label] = dest
			}

			if produced := parseWith(&scratch, sec.source); len(produced) > 0 {
				c.items[index] = produced[0].block
			}
			for key, u := range scratch.images {
				c.state.images[key] = u
			}
		}

		if len(sec.broken) == 0 {
			delete(c.incomplete, index)
		}
	}
}

// produced is one finalized top-level block together with the source
// slice it consumed and the reference labels that failed to resolve
// while parsing it.
type produced struct {
	block  Block
	source string
	broken map[string]struct{}
	start  int
}

// scope is a currently open nested structure during event translation.
type listScope struct {
	start   *uint64
	bullets []Bullet
}

type quoteScope struct {
	items []Block
}

type tableScope struct {
	aligns  []Alignment
	columns []Column
	rows    []Row
	current []Block
}

// parseWith runs the event parser over input and translates the events
// into blocks using an explicit stack of open scopes. Finalizing a
// top-level block records its source range and updates state.leftover
// to everything from that block's start onwards.
func parseWith(state *parserState, input string) []produced {
	src := []byte(input)

	ctx := parser.NewContext()
	for label, dest := range state.references {
		ctx.AddReference(parser.NewReference([]byte(label), []byte(dest), nil))
	}

	doc := gm.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))

	for _, ref := range ctx.References() {
		state.references[normalizeLabel(string(ref.Label()))] = string(ref.Destination())
	}

	extents := topLevelExtents(doc, src)
	matches := brokenCandidates(doc, src, state.references)

	var (
		out    []produced
		stack  []any
		spans  []Span
		cur    extent
		topIdx = -1
		mi     int

		strong, emphasis, strike int
		link                     *url.URL

		codeLanguage string
		codeHl       *Highlighter
	)

	drain := func() []Span {
		s := spans
		spans = nil
		return s
	}

	curSpan := func(text string) StandardSpan {
		return StandardSpan{
			Text:          text,
			Strong:        strong > 0,
			Emphasis:      emphasis > 0,
			Strikethrough: strike > 0,
			Link:          link,
		}
	}

	takeBroken := func(end int) map[string]struct{} {
		var broken map[string]struct{}
		for mi < len(matches) && matches[mi].offset < end {
			if broken == nil {
				broken = make(map[string]struct{})
			}
			broken[matches[mi].label] = struct{}{}
			mi++
		}
		return broken
	}

	produce := func(item Block) {
		if len(stack) > 0 {
			switch sc := stack[len(stack)-1].(type) {
			case *listScope:
				if len(sc.bullets) > 0 {
					sc.bullets[len(sc.bullets)-1].push(item)
				}
			case *quoteScope:
				sc.items = append(sc.items, item)
			case *tableScope:
				sc.current = append(sc.current, item)
			}
			return
		}

		state.leftover = input[cur.start:]
		out = append(out, produced{
			block:  item,
			source: input[cur.start:cur.end],
			broken: takeBroken(cur.end),
			start:  cur.start,
		})
	}

	flushParagraph := func() {
		if len(spans) > 0 {
			produce(Paragraph{Text: NewText(drain())})
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Parent() == doc {
			topIdx++
			if topIdx < len(extents) {
				cur = extents[topIdx]
			}
		}

		switch n := n.(type) {
		case *ast.Document:
			return ast.WalkContinue, nil

		case *ast.Heading:
			if !entering {
				produce(Heading{Level: n.Level, Text: NewText(drain())})
			}

		case *ast.Paragraph, *ast.TextBlock:
			if !entering {
				flushParagraph()
			}

		case *ast.Text:
			if entering {
				if value := string(n.Segment.Value(src)); value != "" {
					spans = append(spans, curSpan(value))
				}
				if n.HardLineBreak() {
					spans = append(spans, curSpan("\n"))
				} else if n.SoftLineBreak() {
					spans = append(spans, curSpan(" "))
				}
			}

		case *ast.String:
			if entering {
				if value := string(n.Value); value != "" {
					spans = append(spans, curSpan(value))
				}
			}

		case *ast.CodeSpan:
			if entering {
				span := curSpan(gatherString(n, src))
				span.Code = true
				spans = append(spans, span)
				return ast.WalkSkipChildren, nil
			}

		case *ast.Emphasis:
			delta := 1
			if !entering {
				delta = -1
			}
			if n.Level >= 2 {
				strong += delta
			} else {
				emphasis += delta
			}

		case *east.Strikethrough:
			if entering {
				strike++
			} else {
				strike--
			}

		case *ast.Link:
			if entering {
				link = acceptLinkURL(string(n.Destination))
			} else {
				link = nil
			}

		case *ast.AutoLink:
			if entering {
				dest := string(n.URL(src))
				span := curSpan(string(n.Label(src)))
				span.Link = acceptLinkURL(dest)
				spans = append(spans, span)
				return ast.WalkSkipChildren, nil
			}

		case *ast.Image:
			if entering {
				if u := acceptImageURL(string(n.Destination)); u != nil {
					alt := NewText(gatherAltSpans(n, src))
					state.images[u.String()] = u
					produce(Image{URL: u, Title: string(n.Title), Alt: alt})
				}
				// Unsupported schemes drop the image, alt text included.
				return ast.WalkSkipChildren, nil
			}

		case *ast.FencedCodeBlock:
			if entering {
				codeLanguage = ""
				if n.Info != nil {
					codeLanguage = strings.TrimSpace(string(n.Info.Segment.Value(src)))
				}
				codeHl = takeHighlighter(state, codeLanguage)
			} else {
				produce(finishCodeBlock(state, n, codeLanguage, codeHl, src))
				codeHl = nil
			}
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			if entering {
				codeLanguage = ""
				codeHl = nil
			} else {
				produce(finishCodeBlock(state, n, "", nil, src))
			}
			return ast.WalkSkipChildren, nil

		case *ast.List:
			if entering {
				flushParagraph()
				var start *uint64
				if n.IsOrdered() {
					v := uint64(n.Start)
					start = &v
				}
				stack = append(stack, &listScope{start: start})
			} else {
				sc, ok := popScope(&stack).(*listScope)
				if ok {
					produce(List{Start: sc.start, Bullets: sc.bullets})
				}
			}

		case *ast.ListItem:
			if entering {
				if sc, ok := topScope(stack).(*listScope); ok {
					sc.bullets = append(sc.bullets, &Point{})
				}
			} else {
				flushParagraph()
			}

		case *east.TaskCheckBox:
			if entering {
				if sc, ok := topScope(stack).(*listScope); ok && len(sc.bullets) > 0 {
					if point, ok := sc.bullets[len(sc.bullets)-1].(*Point); ok {
						sc.bullets[len(sc.bullets)-1] = &Task{Items: point.Items, Done: n.IsChecked}
					}
				}
			}

		case *ast.Blockquote:
			if entering {
				flushParagraph()
				stack = append(stack, &quoteScope{})
			} else {
				sc, ok := popScope(&stack).(*quoteScope)
				if ok {
					produce(Quote{Items: sc.items})
				}
			}

		case *ast.ThematicBreak:
			if entering {
				produce(Rule{})
			}

		case *east.Table:
			if entering {
				aligns := make([]Alignment, len(n.Alignments))
				for i, a := range n.Alignments {
					aligns[i] = convertAlignment(a)
				}
				stack = append(stack, &tableScope{aligns: aligns})
			} else {
				sc, ok := popScope(&stack).(*tableScope)
				if ok {
					produce(Table{Columns: sc.columns, Rows: sc.rows})
				}
			}

		case *east.TableHeader:
			if entering {
				strong++
			} else {
				strong--
			}

		case *east.TableRow:
			if entering {
				if sc, ok := topScope(stack).(*tableScope); ok {
					sc.rows = append(sc.rows, Row{})
				}
			}

		case *east.TableCell:
			if !entering {
				flushParagraph()
				if sc, ok := topScope(stack).(*tableScope); ok {
					if len(sc.columns) < len(sc.aligns) {
						sc.columns = append(sc.columns, Column{
							Header:    sc.current,
							Alignment: sc.aligns[len(sc.columns)],
						})
						sc.current = nil
					} else if len(sc.rows) > 0 {
						row := &sc.rows[len(sc.rows)-1]
						row.Cells = append(row.Cells, sc.current)
						sc.current = nil
					}
				}
			}

		case *ast.HTMLBlock, *ast.RawHTML:
			// No block variant for raw HTML; it is dropped.
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	if len(out) == 0 {
		state.leftover = input
	}

	return out
}

// takeHighlighter hands the document's live highlighter to a new code
// block when the fence language is unchanged, or builds a fresh one
// keyed on the token before the first comma of the info string.
func takeHighlighter(state *parserState, language string) *Highlighter {
	if language == "" {
		return nil
	}
	if state.highlighter != nil && state.highlighter.language == language {
		hl := state.highlighter
		state.highlighter = nil
		hl.Prepare()
		return hl
	}
	token := strings.TrimSpace(strings.Split(language, ",")[0])
	hl := NewHighlighter(token)
	hl.Prepare()
	return hl
}

// finishCodeBlock collects the block's raw code and per-line styled
// text, then parks the highlighter back in the parser state for the
// next push.
func finishCodeBlock(state *parserState, block ast.Node, language string, hl *Highlighter, src []byte) CodeBlock {
	var (
		code  strings.Builder
		lines []*Text
	)

	segments := block.Lines()
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		raw := string(seg.Value(src))
		code.WriteString(raw)

		line := strings.TrimRight(raw, "\r\n")
		if hl != nil {
			lines = append(lines, NewText(hl.HighlightLine(line)))
		} else {
			lines = append(lines, NewText([]Span{StandardSpan{Text: line}}))
		}
	}

	if hl != nil {
		state.highlighter = hl
	}

	return CodeBlock{Language: language, Code: code.String(), Lines: lines}
}

func topScope(stack []any) any {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

func popScope(stack *[]any) any {
	s := *stack
	if len(s) == 0 {
		return nil
	}
	top := s[len(s)-1]
	*stack = s[:len(s)-1]
	return top
}

// acceptLinkURL returns the parsed URL when it is an http(s) link and
// nil otherwise; non-web links render as plain text.
func acceptLinkURL(dest string) *url.URL {
	u, err := url.Parse(dest)
	if err != nil {
		return nil
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return u
	}
	return nil
}

// acceptImageURL admits http, https and file image URLs; anything else
// is dropped.
func acceptImageURL(dest string) *url.URL {
	u, err := url.Parse(dest)
	if err != nil {
		return nil
	}
	switch u.Scheme {
	case "http", "https", "file":
		return u
	}
	return nil
}

func convertAlignment(a east.Alignment) Alignment {
	switch a {
	case east.AlignLeft:
		return AlignLeft
	case east.AlignCenter:
		return AlignCenter
	case east.AlignRight:
		return AlignRight
	}
	return AlignNone
}

// gatherString concatenates the literal text under a node.
func gatherString(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
		case *ast.String:
			b.Write(c.Value)
		default:
			b.WriteString(gatherString(c, src))
		}
	}
	return b.String()
}

// gatherAltSpans flattens an image's children into plain spans for its
// alt text.
func gatherAltSpans(n ast.Node, src []byte) []Span {
	if alt := gatherString(n, src); alt != "" {
		return []Span{StandardSpan{Text: alt}}
	}
	return nil
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}
