package editor

import "testing"

func TestToggleHeading(t *testing.T) {
	tests := []struct {
		name  string
		input string
		level int
		want  string
	}{
		{"add h1", "Title", 1, "# Title"},
		{"add h3", "Title", 3, "### Title"},
		{"remove same level", "# Title", 1, "Title"},
		{"remove h6", "###### Title", 6, "Title"},
		{"switch level", "## Title", 1, "# Title"},
		{"switch down", "# Title", 3, "### Title"},
		{"empty line", "", 2, "## "},
		{"bare marker", "#", 1, ""},
		{"hashtag word gains level", "#tag", 1, "# tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleHeading(tt.input, tt.level)
			if got != tt.want {
				t.Errorf("ToggleHeading(%q, %d) = %q, want %q", tt.input, tt.level, got, tt.want)
			}
		})
	}
}

func TestToggleInline(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		marker string
		want   string
	}{
		{"add bold", "word", "**", "**word**"},
		{"remove bold", "**word**", "**", "word"},
		{"add italic", "word", "*", "*word*"},
		{"remove italic", "*word*", "*", "word"},
		{"italic wraps bold", "**word**", "*", "***word***"},
		{"add code", "x + y", "`", "`x + y`"},
		{"remove code", "`x + y`", "`", "x + y"},
		{"empty selection", "", "**", "**"},
		{"lone marker stays", "*", "*", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleInline(tt.input, tt.marker)
			if got != tt.want {
				t.Errorf("ToggleInline(%q, %q) = %q, want %q", tt.input, tt.marker, got, tt.want)
			}
		})
	}
}

func TestToggleHyperlink(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "docs", "[docs](url)"},
		{"bare url", "https://example.com", "[https://example.com](https://example.com)"},
		{"existing link", "[docs](https://example.com)", "docs"},
		{"empty", "", "[](url)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleHyperlink(tt.input)
			if got != tt.want {
				t.Errorf("ToggleHyperlink(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToggleCodeBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"fence plain text", "let x = 1", "```\nlet x = 1\n```"},
		{"unfence", "```\nlet x = 1\n```", "let x = 1"},
		{"unfence with language", "```go\nlet x = 1\n```", "let x = 1"},
		{"first line with spaces kept", "```not a lang\nbody\n```", "not a lang\nbody"},
		{"empty", "", "```\n\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleCodeBlock(tt.input)
			if got != tt.want {
				t.Errorf("ToggleCodeBlock(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToggleImage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "diagram", "![diagram](image-url)"},
		{"bare url", "https://example.com/a.png", "![alt text](https://example.com/a.png)"},
		{"existing image", "![diagram](a.png)", "diagram"},
		{"empty", "", "![alt text](image-url)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleImage(tt.input)
			if got != tt.want {
				t.Errorf("ToggleImage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToggleList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ListKind
		want  string
	}{
		{"add bullets", "one\ntwo", Bulleted, "- one\n- two"},
		{"remove bullets", "- one\n- two", Bulleted, "one\ntwo"},
		{"mixed bullet markers removed", "- one\n* two\n+ three", Bulleted, "one\ntwo\nthree"},
		{"add numbers", "one\ntwo\nthree", Numbered, "1. one\n2. two\n3. three"},
		{"remove numbers", "1. one\n2. two", Numbered, "one\ntwo"},
		{"renumber from bullets", "- one\n- two", Numbered, "1. one\n2. two"},
		{"add checkboxes", "one\ntwo", Checkbox, "- [ ] one\n- [ ] two"},
		{"remove checkboxes", "- [ ] one\n- [x] two", Checkbox, "one\ntwo"},
		{"checkbox converts to plain bullet", "- [ ] one", Bulleted, "- one"},
		{"blank line kept blank", "one\n\ntwo", Bulleted, "- one\n- \n- two"},
		{"empty selection bulleted", "", Bulleted, "- "},
		{"empty selection numbered", "", Numbered, "1. "},
		{"empty selection checkbox", "", Checkbox, "- [ ] "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleList(tt.input, tt.kind)
			if got != tt.want {
				t.Errorf("ToggleList(%q, %v) = %q, want %q", tt.input, tt.kind, got, tt.want)
			}
		})
	}
}

func TestStripListMarker(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"- item", "item"},
		{"* item", "item"},
		{"+ item", "item"},
		{"12. item", "item"},
		{"- [ ] item", "item"},
		{"- [x] item", "item"},
		{"plain", "plain"},
		{"a. not numbered", "a. not numbered"},
	}

	for _, tt := range tests {
		got := StripListMarker(tt.input)
		if got != tt.want {
			t.Errorf("StripListMarker(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToggleRule(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"insert", "", "---"},
		{"append after text", "para", "para\n\n---"},
		{"remove dashes", "---", ""},
		{"remove stars", "***", ""},
		{"remove underscores", "___", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleRule(tt.input)
			if got != tt.want {
				t.Errorf("ToggleRule(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApplyRoundTrips(t *testing.T) {
	// Applying the same action twice should return to the original text
	tests := []struct {
		action Action
		input  string
	}{
		{Heading2, "Title"},
		{Bold, "word"},
		{Code, "snippet"},
		{BulletedList, "one\ntwo"},
		{NumberedList, "one\ntwo"},
		{CheckboxList, "one"},
	}

	for _, tt := range tests {
		once := Apply(tt.action, tt.input)
		twice := Apply(tt.action, once)
		if twice != tt.input {
			t.Errorf("Apply(%v) round trip: %q -> %q -> %q", tt.action, tt.input, once, twice)
		}
	}
}
