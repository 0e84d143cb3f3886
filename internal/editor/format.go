// Package editor holds the pure text transformations behind the
// formatting actions. Each toggle adds its marker when absent and
// strips it when already present, so repeating an action undoes it.
package editor

import (
	"fmt"
	"strings"
	"unicode"
)

// Action identifies a formatting toggle applied to the selection
type Action int

const (
	Heading1 Action = iota + 1
	Heading2
	Heading3
	Heading4
	Heading5
	Heading6
	Bold
	Italic
	Hyperlink
	Code
	CodeBlock
	Image
	BulletedList
	NumberedList
	CheckboxList
	Rule
)

// Apply runs the toggle for action over the selected text
func Apply(action Action, text string) string {
	switch action {
	case Heading1, Heading2, Heading3, Heading4, Heading5, Heading6:
		return ToggleHeading(text, int(action-Heading1)+1)
	case Bold:
		return ToggleInline(text, "**")
	case Italic:
		return ToggleInline(text, "*")
	case Hyperlink:
		return ToggleHyperlink(text)
	case Code:
		return ToggleInline(text, "`")
	case CodeBlock:
		return ToggleCodeBlock(text)
	case Image:
		return ToggleImage(text)
	case BulletedList:
		return ToggleList(text, Bulleted)
	case NumberedList:
		return ToggleList(text, Numbered)
	case CheckboxList:
		return ToggleList(text, Checkbox)
	case Rule:
		return ToggleRule(text)
	}
	return text
}

// ToggleHeading switches the line to the given heading level, or back
// to plain text when it already carries that level.
func ToggleHeading(text string, level int) string {
	hashes := strings.Repeat("#", level)

	trimmed := strings.TrimSpace(text)
	if stripped, ok := strings.CutPrefix(trimmed, hashes); ok {
		if stripped == "" || strings.HasPrefix(stripped, " ") {
			return strings.TrimSpace(stripped)
		}
	}

	stripped := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))

	if stripped == "" {
		return hashes + " "
	}
	return fmt.Sprintf("%s %s", hashes, stripped)
}

// ToggleInline wraps the selection in an inline marker such as "**",
// "*" or "`", or unwraps it when already wrapped.
func ToggleInline(text, marker string) string {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return marker
	}

	// Bold text gains an italic wrap rather than losing a star
	if marker == "*" {
		if strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") {
			return fmt.Sprintf("*%s*", trimmed)
		}
	}

	if strings.HasPrefix(trimmed, marker) && strings.HasSuffix(trimmed, marker) && len(trimmed) > len(marker)*2 {
		return trimmed[len(marker) : len(trimmed)-len(marker)]
	}
	return fmt.Sprintf("%s%s%s", marker, trimmed, marker)
}

// ToggleHyperlink turns the selection into a markdown link. Bare URLs
// become self-links; an existing link collapses to its display text.
func ToggleHyperlink(text string) string {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return "[](url)"
	}

	if strings.HasPrefix(trimmed, "[") && strings.Contains(trimmed, "](") && strings.HasSuffix(trimmed, ")") {
		if displayEnd := strings.Index(trimmed, "]("); displayEnd >= 0 {
			return trimmed[1:displayEnd]
		}
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return fmt.Sprintf("[%s](%s)", trimmed, trimmed)
	}

	return fmt.Sprintf("[%s](url)", trimmed)
}

// ToggleCodeBlock fences the selection, or removes an existing fence
// along with its language line.
func ToggleCodeBlock(text string) string {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return "```\n\n```"
	}

	if strings.HasPrefix(trimmed, "```") && strings.HasSuffix(trimmed, "```") && len(trimmed) > 6 {
		inner := strings.TrimSpace(trimmed[3 : len(trimmed)-3])

		if newline := strings.IndexByte(inner, '\n'); newline >= 0 {
			firstLine := strings.TrimSpace(inner[:newline])
			if isLanguageToken(firstLine) {
				inner = strings.TrimSpace(inner[newline:])
			}
		}
		return inner
	}

	return fmt.Sprintf("```\n%s\n```", trimmed)
}

func isLanguageToken(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

// ToggleImage turns the selection into an image reference, or strips
// one back to its alt text.
func ToggleImage(text string) string {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return "![alt text](image-url)"
	}

	if strings.HasPrefix(trimmed, "![") && strings.Contains(trimmed, "](") && strings.HasSuffix(trimmed, ")") {
		if altEnd := strings.Index(trimmed, "]("); altEnd >= 0 {
			return trimmed[2:altEnd]
		}
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return fmt.Sprintf("![alt text](%s)", trimmed)
	}

	return fmt.Sprintf("![%s](image-url)", trimmed)
}

// ListKind selects the list marker family for ToggleList
type ListKind int

const (
	Bulleted ListKind = iota
	Numbered
	Checkbox
)

// ToggleList converts every line of the selection to the given list
// kind. When all lines already carry that kind the markers are removed
// instead.
func ToggleList(text string, kind ListKind) string {
	if strings.TrimSpace(text) == "" {
		switch kind {
		case Numbered:
			return "1. "
		case Checkbox:
			return "- [ ] "
		default:
			return "- "
		}
	}

	lines := strings.Split(text, "\n")

	allMatch := true
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		switch kind {
		case Bulleted:
			bullet := strings.HasPrefix(t, "- ") || strings.HasPrefix(t, "* ") || strings.HasPrefix(t, "+ ")
			if !bullet || isCheckboxLine(t) {
				allMatch = false
			}
		case Numbered:
			if !startsWithDigit(t) || !strings.Contains(t, ". ") {
				allMatch = false
			}
		case Checkbox:
			if !isCheckboxLine(t) {
				allMatch = false
			}
		}
		if !allMatch {
			break
		}
	}

	out := make([]string, len(lines))
	if allMatch {
		for i, line := range lines {
			t := strings.TrimSpace(line)
			if t == "" {
				out[i] = ""
				continue
			}
			switch kind {
			case Bulleted:
				out[i] = trimAll(trimAll(trimAll(t, "- "), "* "), "+ ")
			case Numbered:
				if dot := strings.Index(t, ". "); dot >= 0 {
					out[i] = t[dot+2:]
				} else {
					out[i] = t
				}
			case Checkbox:
				out[i] = trimAll(trimAll(trimAll(t, "- [ ] "), "- [x] "), "- [X] ")
			}
		}
	} else {
		for i, line := range lines {
			t := StripListMarker(strings.TrimSpace(line))
			if t == "" {
				switch kind {
				case Numbered:
					out[i] = fmt.Sprintf("%d. ", i+1)
				case Checkbox:
					out[i] = "- [ ] "
				default:
					out[i] = "- "
				}
				continue
			}
			switch kind {
			case Numbered:
				out[i] = fmt.Sprintf("%d. %s", i+1, t)
			case Checkbox:
				out[i] = fmt.Sprintf("- [ ] %s", t)
			default:
				out[i] = fmt.Sprintf("- %s", t)
			}
		}
	}
	return strings.Join(out, "\n")
}

// StripListMarker removes any known list prefix from a line
func StripListMarker(text string) string {
	// Checkbox
	for _, prefix := range []string{"- [ ] ", "- [x] ", "- [X] "} {
		if s, ok := strings.CutPrefix(text, prefix); ok {
			return s
		}
	}

	// Bulleted
	for _, prefix := range []string{"- ", "* ", "+ "} {
		if s, ok := strings.CutPrefix(text, prefix); ok {
			return s
		}
	}

	// Numbered
	if dot := strings.Index(text, ". "); dot >= 0 {
		if isAllDigits(text[:dot]) {
			return text[dot+2:]
		}
	}
	return text
}

// ToggleRule inserts a thematic break after the selection, or removes
// a selection that is nothing but the break.
func ToggleRule(text string) string {
	trimmed := strings.TrimSpace(text)

	if trimmed == "---" || trimmed == "***" || trimmed == "___" {
		return ""
	}

	if trimmed == "" {
		return "---"
	}
	return fmt.Sprintf("%s\n\n---", trimmed)
}

func trimAll(s, prefix string) string {
	for strings.HasPrefix(s, prefix) {
		s = s[len(prefix):]
	}
	return s
}

func isCheckboxLine(t string) bool {
	return strings.HasPrefix(t, "- [ ]") || strings.HasPrefix(t, "- [x]") || strings.HasPrefix(t, "- [X]")
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
