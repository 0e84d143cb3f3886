package markdown

import "testing"

func TestTextRaw(t *testing.T) {
	text := NewText([]Span{
		StandardSpan{Text: "plain "},
		StandardSpan{Text: "bold", Strong: true},
		HighlightSpan{Text: " token"},
	})
	if got := text.Raw(); got != "plain bold token" {
		t.Errorf("Raw() = %q", got)
	}
}

func TestRenderedCachesPerStyle(t *testing.T) {
	text := NewText([]Span{StandardSpan{Text: "hello"}})

	style := DefaultStyle()
	first := text.Rendered(style)
	second := text.Rendered(style)

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("Expected 1 rendered span, got %d and %d", len(first), len(second))
	}
	// Same style must return the cached slice, not a rebuild
	if &first[0] != &second[0] {
		t.Error("Same style should hit the cache")
	}
}

func TestRenderedInvalidatesOnStyleChange(t *testing.T) {
	text := NewText([]Span{StandardSpan{Text: "hello"}})

	first := text.Rendered(DefaultStyle())

	changed := DefaultStyle()
	changed.TextColor = "#000000"
	second := text.Rendered(changed)

	if &first[0] == &second[0] {
		t.Error("Changed style must rebuild the rendered spans")
	}

	// And the new style is now the cached one
	third := text.Rendered(changed)
	if &second[0] != &third[0] {
		t.Error("Repeated changed style should hit the cache")
	}
}

func TestRenderedSpanAttributes(t *testing.T) {
	u := mustURL(t, "https://example.com")
	text := NewText([]Span{
		StandardSpan{Text: "link", Link: u},
		StandardSpan{Text: "code", Code: true},
	})

	rendered := text.Rendered(DefaultStyle())
	if len(rendered) != 2 {
		t.Fatalf("Expected 2 rendered spans, got %d", len(rendered))
	}
	if rendered[0].Link == nil || rendered[0].Link.Host != "example.com" {
		t.Error("Link should carry through to the rendered span")
	}
	if rendered[1].Link != nil {
		t.Error("Code span should not carry a link")
	}
}
