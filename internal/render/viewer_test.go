package render

import (
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/mariinkys/cedilla/internal/markdown"
)

func plainText(s string) *markdown.Text {
	return markdown.NewText([]markdown.Span{markdown.StandardSpan{Text: s}})
}

func TestViewRendersAllKinds(t *testing.T) {
	u, _ := url.Parse("https://example.com/a.png")
	start := uint64(1)
	blocks := []markdown.Block{
		markdown.Heading{Level: 1, Text: plainText("Title")},
		markdown.Paragraph{Text: plainText("body")},
		markdown.Image{URL: u, Alt: plainText("pic")},
		markdown.CodeBlock{Language: "go", Code: "x := 1\n", Lines: []*markdown.Text{plainText("x := 1")}},
		markdown.List{Bullets: []markdown.Bullet{&markdown.Point{Items: []markdown.Block{markdown.Paragraph{Text: plainText("item")}}}}},
		markdown.List{Start: &start, Bullets: []markdown.Bullet{&markdown.Point{Items: []markdown.Block{markdown.Paragraph{Text: plainText("first")}}}}},
		markdown.Quote{Items: []markdown.Block{markdown.Paragraph{Text: plainText("quoted")}}},
		markdown.Rule{},
	}

	out := View(blocks, DefaultSettings(), DefaultViewer{}).Render(60)

	for _, want := range []string{"Title", "body", "pic", "x := 1", "item", "1. ", "first", "│ ", "quoted", "─"} {
		if !strings.Contains(out, want) {
			t.Errorf("Rendered output missing %q", want)
		}
	}
}

func TestTaskBulletMarkers(t *testing.T) {
	blocks := []markdown.Block{
		markdown.List{Bullets: []markdown.Bullet{
			&markdown.Task{Done: true, Items: []markdown.Block{markdown.Paragraph{Text: plainText("done")}}},
			&markdown.Task{Done: false, Items: []markdown.Block{markdown.Paragraph{Text: plainText("todo")}}},
			&markdown.Point{Items: []markdown.Block{markdown.Paragraph{Text: plainText("plain")}}},
		}},
	}

	out := View(blocks, DefaultSettings(), DefaultViewer{}).Render(60)

	if !strings.Contains(out, "[✓] done") {
		t.Errorf("Checked task marker missing:\n%s", out)
	}
	if !strings.Contains(out, "[ ] todo") {
		t.Errorf("Unchecked task marker missing:\n%s", out)
	}
	if !strings.Contains(out, "• plain") {
		t.Errorf("Point marker missing:\n%s", out)
	}
}

// markerViewer overrides only the image capability
type markerViewer struct {
	DefaultViewer
	calls int
}

func (v *markerViewer) Image(settings Settings, u *url.URL, title string, alt *markdown.Text) Element {
	v.calls++
	return NewSpan([]markdown.RenderSpan{{Content: "<image:" + u.String() + ">"}})
}

func TestViewerCapabilityOverride(t *testing.T) {
	u, _ := url.Parse("https://example.com/a.png")
	blocks := []markdown.Block{
		markdown.Heading{Level: 2, Text: plainText("Title")},
		markdown.Image{URL: u, Alt: plainText("pic")},
	}

	v := &markerViewer{}
	out := View(blocks, DefaultSettings(), v).Render(0)

	if v.calls != 1 {
		t.Errorf("Image override called %d times, want 1", v.calls)
	}
	if !strings.Contains(out, "<image:https://example.com/a.png>") {
		t.Errorf("Override output missing:\n%s", out)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("Default heading rendering should be kept:\n%s", out)
	}
}

func TestStackSpacing(t *testing.T) {
	children := []Element{
		NewSpan([]markdown.RenderSpan{{Content: "a"}}),
		NewSpan([]markdown.RenderSpan{{Content: "b"}}),
	}

	wide := NewStack(children, 14).Render(0)
	if wide != "a\n\nb" {
		t.Errorf("Spacing 14 should leave one blank line, got %q", wide)
	}

	tight := NewStack(children, 5).Render(0)
	if tight != "a\nb" {
		t.Errorf("Spacing 5 should leave no blank line, got %q", tight)
	}
}

func TestNestedListTightensSpacing(t *testing.T) {
	// Two sibling bullets at 16pt base: top-level blocks get a blank
	// line, bullets sit on consecutive lines.
	blocks := []markdown.Block{
		markdown.Paragraph{Text: plainText("intro")},
		markdown.List{Bullets: []markdown.Bullet{
			&markdown.Point{Items: []markdown.Block{markdown.Paragraph{Text: plainText("one")}}},
			&markdown.Point{Items: []markdown.Block{markdown.Paragraph{Text: plainText("two")}}},
		}},
	}

	out := View(blocks, DefaultSettings(), DefaultViewer{}).Render(0)

	if !strings.Contains(out, "intro\n\n") {
		t.Errorf("Top-level spacing missing:\n%q", out)
	}
	if !strings.Contains(out, "one\n\n") {
		// 16 * 0.875 * 0.6 = 8.4, still one blank line between bullets
		t.Errorf("First-level bullets should keep a blank line:\n%q", out)
	}
}

func TestPrefixedGutter(t *testing.T) {
	p := Prefixed{
		First: "> ",
		Rest:  "> ",
		Style: lipgloss.NewStyle(),
		Inner: NewSpan([]markdown.RenderSpan{{Content: "one two three four"}}),
	}

	out := p.Render(12)
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "> ") {
			t.Errorf("Line missing gutter: %q", line)
		}
	}
	if !strings.Contains(out, "\n") {
		t.Errorf("Inner content should wrap at the narrowed width: %q", out)
	}
}

func TestGridAlignment(t *testing.T) {
	g := Grid{
		Header: []Element{
			NewSpan([]markdown.RenderSpan{{Content: "L"}}),
			NewSpan([]markdown.RenderSpan{{Content: "R"}}),
		},
		Rows: [][]Element{{
			NewSpan([]markdown.RenderSpan{{Content: "aa"}}),
			NewSpan([]markdown.RenderSpan{{Content: "bb"}}),
		}, {
			NewSpan([]markdown.RenderSpan{{Content: "aaaa"}}),
			NewSpan([]markdown.RenderSpan{{Content: "bbbb"}}),
		}},
		Alignments: []markdown.Alignment{markdown.AlignLeft, markdown.AlignRight},
	}

	out := g.Render(0)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines (header, separator, 2 rows), got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "L") {
		t.Errorf("Header missing: %q", lines[0])
	}
	if !strings.Contains(lines[1], "─") {
		t.Errorf("Separator missing: %q", lines[1])
	}
	if !strings.Contains(lines[2], "aa  ") {
		t.Errorf("Left column should pad on the right: %q", lines[2])
	}
	if !strings.Contains(lines[2], "  bb") {
		t.Errorf("Right column should pad on the left: %q", lines[2])
	}
}

func TestDividerWidth(t *testing.T) {
	d := Divider{Style: lipgloss.NewStyle()}
	out := d.Render(10)
	if out != strings.Repeat("─", 10) {
		t.Errorf("Divider should fill the width, got %q", out)
	}
}
