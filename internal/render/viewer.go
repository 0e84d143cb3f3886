package render

import (
	"fmt"
	"net/url"

	"github.com/charmbracelet/lipgloss"

	"github.com/mariinkys/cedilla/internal/markdown"
)

// Viewer is the strategy that turns one Block into an Element, one
// method per block kind. DefaultViewer provides the standard look;
// hosts embed it and override single capabilities.
type Viewer interface {
	Image(settings Settings, u *url.URL, title string, alt *markdown.Text) Element
	Heading(settings Settings, level int, text *markdown.Text, index int) Element
	Paragraph(settings Settings, text *markdown.Text) Element
	CodeBlock(settings Settings, language, code string, lines []*markdown.Text) Element
	UnorderedList(settings Settings, bullets []markdown.Bullet) Element
	OrderedList(settings Settings, start uint64, bullets []markdown.Bullet) Element
	Quote(settings Settings, items []markdown.Block) Element
	Rule(settings Settings) Element
	Table(settings Settings, columns []markdown.Column, rows []markdown.Row) Element
}

// View renders a block sequence with the given viewer. Blocks appear
// in parse order; order is meaning, not decoration.
func View(blocks []markdown.Block, settings Settings, viewer Viewer) Element {
	children := make([]Element, 0, len(blocks))
	for i, block := range blocks {
		children = append(children, Item(viewer, settings, block, i))
	}
	return NewStack(children, settings.Spacing)
}

// Item dispatches one block to the viewer method for its kind.
func Item(viewer Viewer, settings Settings, block markdown.Block, index int) Element {
	switch b := block.(type) {
	case markdown.Image:
		return viewer.Image(settings, b.URL, b.Title, b.Alt)
	case markdown.Heading:
		return viewer.Heading(settings, b.Level, b.Text, index)
	case markdown.Paragraph:
		return viewer.Paragraph(settings, b.Text)
	case markdown.CodeBlock:
		return viewer.CodeBlock(settings, b.Language, b.Code, b.Lines)
	case markdown.List:
		if b.Start == nil {
			return viewer.UnorderedList(settings, b.Bullets)
		}
		return viewer.OrderedList(settings, *b.Start, b.Bullets)
	case markdown.Quote:
		return viewer.Quote(settings, b.Items)
	case markdown.Rule:
		return viewer.Rule(settings)
	case markdown.Table:
		return viewer.Table(settings, b.Columns, b.Rows)
	default:
		return NewSpan(nil)
	}
}

// Items renders a nested block sequence, used inside bullets, quotes
// and table cells.
func Items(viewer Viewer, settings Settings, blocks []markdown.Block) Element {
	children := make([]Element, 0, len(blocks))
	for i, block := range blocks {
		children = append(children, Item(viewer, settings, block, i))
	}
	return NewStack(children, settings.Spacing)
}

// DefaultViewer renders every block kind with the default look.
type DefaultViewer struct{}

func (DefaultViewer) Image(settings Settings, u *url.URL, title string, alt *markdown.Text) Element {
	return ImagePlaceholder(settings, u, title, alt)
}

func (DefaultViewer) Heading(settings Settings, level int, text *markdown.Text, index int) Element {
	return HeadingElement(settings, level, text, index)
}

func (DefaultViewer) Paragraph(settings Settings, text *markdown.Text) Element {
	return ParagraphElement(settings, text)
}

func (DefaultViewer) CodeBlock(settings Settings, language, code string, lines []*markdown.Text) Element {
	return CodeBlockElement(settings, lines)
}

func (v DefaultViewer) UnorderedList(settings Settings, bullets []markdown.Bullet) Element {
	return UnorderedList(v, settings, bullets)
}

func (v DefaultViewer) OrderedList(settings Settings, start uint64, bullets []markdown.Bullet) Element {
	return OrderedList(v, settings, start, bullets)
}

func (v DefaultViewer) Quote(settings Settings, items []markdown.Block) Element {
	return QuoteElement(v, settings, items)
}

func (DefaultViewer) Rule(settings Settings) Element {
	return RuleElement(settings)
}

func (v DefaultViewer) Table(settings Settings, columns []markdown.Column, rows []markdown.Row) Element {
	return TableElement(v, settings, columns, rows)
}

// ImagePlaceholder shows a boxed alt text in place of the image.
func ImagePlaceholder(settings Settings, u *url.URL, title string, alt *markdown.Text) Element {
	label := alt.Raw()
	if label == "" {
		label = u.String()
	}
	if title != "" {
		label = fmt.Sprintf("%s (%s)", label, title)
	}
	spans := []markdown.RenderSpan{{
		Content: "▨ " + label,
		Style:   lipgloss.NewStyle().Foreground(lipgloss.Color(settings.Style.TextColor)),
	}}
	return Box{
		Inner: NewSpan(spans),
		Style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(settings.Style.InlineCodeBackground)).
			Padding(0, 1),
	}
}

// HeadingElement renders a heading; deeper levels fade from bold
// double emphasis down to plain bold.
func HeadingElement(settings Settings, level int, text *markdown.Text, index int) Element {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(settings.Style.HighlightColor))
	if level > 2 {
		style = style.Foreground(lipgloss.Color(settings.Style.TextColor))
	}
	if level == 1 {
		style = style.Underline(true)
	}

	spans := text.Rendered(settings.Style)
	styled := make([]markdown.RenderSpan, len(spans))
	for i, sp := range spans {
		styled[i] = markdown.RenderSpan{Content: sp.Content, Style: style, Link: sp.Link}
	}
	return NewSpan(styled)
}

// ParagraphElement renders a plain rich-text paragraph.
func ParagraphElement(settings Settings, text *markdown.Text) Element {
	return NewSpan(text.Rendered(settings.Style))
}

// CodeBlockElement renders highlighted code lines as a padded box.
func CodeBlockElement(settings Settings, lines []*markdown.Text) Element {
	children := make([]Element, 0, len(lines))
	for _, line := range lines {
		children = append(children, NewSpan(line.Rendered(settings.Style)))
	}
	return Box{
		Inner: Stack{children: children},
		Style: lipgloss.NewStyle().
			Background(lipgloss.Color(settings.Style.InlineCodeBackground)).
			Padding(0, 1),
	}
}

// UnorderedList renders bullets, delegating nested content back to the
// viewer with the list's reduced spacing.
func UnorderedList(viewer Viewer, settings Settings, bullets []markdown.Bullet) Element {
	nested := settings.WithSpacing(settings.Spacing * 0.6)
	children := make([]Element, 0, len(bullets))
	for _, bullet := range bullets {
		children = append(children, Prefixed{
			First: bulletMarker(bullet),
			Rest:  "    ",
			Style: lipgloss.NewStyle().Foreground(lipgloss.Color(settings.Style.LinkColor)),
			Inner: View(bullet.Blocks(), nested, viewer),
		})
	}
	return NewStack(children, nested.Spacing)
}

func bulletMarker(bullet markdown.Bullet) string {
	switch b := bullet.(type) {
	case *markdown.Task:
		if b.Done {
			return "[✓] "
		}
		return "[ ] "
	default:
		return "  • "
	}
}

// OrderedList renders numbered items starting at start.
func OrderedList(viewer Viewer, settings Settings, start uint64, bullets []markdown.Bullet) Element {
	nested := settings.WithSpacing(settings.Spacing * 0.6)
	children := make([]Element, 0, len(bullets))
	for i, bullet := range bullets {
		marker := fmt.Sprintf("%d. ", start+uint64(i))
		children = append(children, Prefixed{
			First: marker,
			Rest:  "    ",
			Style: lipgloss.NewStyle().Foreground(lipgloss.Color(settings.Style.LinkColor)),
			Inner: View(bullet.Blocks(), nested, viewer),
		})
	}
	return NewStack(children, nested.Spacing)
}

// QuoteElement renders nested blocks behind a vertical gutter.
func QuoteElement(viewer Viewer, settings Settings, items []markdown.Block) Element {
	return Prefixed{
		First: "│ ",
		Rest:  "│ ",
		Style: lipgloss.NewStyle().Foreground(lipgloss.Color(settings.Style.LinkColor)),
		Inner: View(items, settings, viewer),
	}
}

// RuleElement renders a horizontal separator.
func RuleElement(settings Settings) Element {
	return Divider{Style: lipgloss.NewStyle().Foreground(lipgloss.Color(settings.Style.InlineCodeBackground))}
}

// TableElement renders header and body cells through the viewer and
// lays them out per the declared column alignments.
func TableElement(viewer Viewer, settings Settings, columns []markdown.Column, rows []markdown.Row) Element {
	aligns := make([]markdown.Alignment, len(columns))
	header := make([]Element, len(columns))
	for i, col := range columns {
		aligns[i] = col.Alignment
		header[i] = Items(viewer, settings, col.Header)
	}

	body := make([][]Element, 0, len(rows))
	for _, row := range rows {
		cells := make([]Element, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, Items(viewer, settings, cell))
		}
		body = append(body, cells)
	}

	return Grid{
		Header:     header,
		Rows:       body,
		Alignments: aligns,
		Style:      lipgloss.NewStyle().Foreground(lipgloss.Color(settings.Style.InlineCodeBackground)),
	}
}
