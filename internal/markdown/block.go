package markdown

import "net/url"

// Block is one structural unit of parsed Markdown. The top level of a
// document is a flat, ordered sequence of blocks; nesting happens only
// through List, Quote and Table.
type Block interface {
	isBlock()
}

// Heading is a Markdown heading, levels 1 through 6.
type Heading struct {
	Level int
	Text  *Text
}

// Paragraph is a run of inline text.
type Paragraph struct {
	Text *Text
}

// CodeBlock is a fenced or indented code block. Language is the full
// fence info string, empty when the fence carries none. Lines holds one
// styled Text per source line, produced by the highlighter when a
// language is set.
type CodeBlock struct {
	Language string
	Code     string
	Lines    []*Text
}

// List is an ordered or unordered list. Start is nil for unordered
// lists and the first item number otherwise.
type List struct {
	Start   *uint64
	Bullets []Bullet
}

// Image is an image reference. Only http, https and file URLs make it
// this far; other schemes are dropped during parsing.
type Image struct {
	URL   *url.URL
	Title string
	Alt   *Text
}

// Quote is a block quote holding nested blocks.
type Quote struct {
	Items []Block
}

// Rule is a horizontal separator.
type Rule struct{}

// Table is a GFM table.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Column describes one table column: its header blocks and the
// alignment declared in the separator row.
type Column struct {
	Header    []Block
	Alignment Alignment
}

// Row is one table body row.
type Row struct {
	Cells [][]Block
}

// Alignment is a table column alignment.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (Heading) isBlock()   {}
func (Paragraph) isBlock() {}
func (CodeBlock) isBlock() {}
func (List) isBlock()      {}
func (Image) isBlock()     {}
func (Quote) isBlock()     {}
func (Rule) isBlock()      {}
func (Table) isBlock()     {}

// Bullet is one list item: either a plain Point or a Task with a done
// flag. A bullet starts life as a Point and is converted in place when
// a task-list marker follows it.
type Bullet interface {
	// Blocks returns the nested content of the bullet.
	Blocks() []Block

	push(Block)
}

// Point is a plain bullet point.
type Point struct {
	Items []Block
}

// Task is a task-list bullet with a checked state.
type Task struct {
	Items []Block
	Done  bool
}

// Blocks returns the nested content of the point.
func (p *Point) Blocks() []Block { return p.Items }

// Blocks returns the nested content of the task.
func (t *Task) Blocks() []Block { return t.Items }

func (p *Point) push(b Block) { p.Items = append(p.Items, b) }
func (t *Task) push(b Block)  { t.Items = append(t.Items, b) }
