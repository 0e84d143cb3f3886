package markdown

import (
	"regexp"

	"github.com/yuin/goldmark/ast"
)

// extent is the byte range of one top-level block, widened to whole
// source lines. It feeds leftover tracking and the incomplete-section
// registry, so line granularity is all that is needed.
type extent struct {
	start int
	end   int
}

// topLevelExtents computes, in document order, the source range of each
// top-level child. Blocks that expose no content segments (a thematic
// break is just a marker line) fall back to the next non-blank line
// after the previous block.
func topLevelExtents(doc ast.Node, src []byte) []extent {
	var extents []extent
	pos := 0
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		var e extent
		if s, stop, ok := segmentExtent(c, src); ok {
			start := lineStart(src, s)
			if start < pos {
				start = pos
			}
			end := lineEnd(src, stop)
			if _, fenced := c.(*ast.FencedCodeBlock); fenced {
				end = extendClosingFence(src, end)
			}
			e = extent{start: start, end: end}
		} else {
			start := nextNonBlankLine(src, pos)
			e = extent{start: start, end: containingLineEnd(src, start)}
		}
		extents = append(extents, e)
		pos = e.end
	}
	return extents
}

// segmentExtent returns the minimal byte range spanned by the node's
// content lines and those of its descendants.
func segmentExtent(n ast.Node, src []byte) (int, int, bool) {
	var (
		start, stop int
		ok          bool
	)
	merge := func(s, e int) {
		if !ok {
			start, stop, ok = s, e, true
			return
		}
		if s < start {
			start = s
		}
		if e > stop {
			stop = e
		}
	}

	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			merge(seg.Start, seg.Stop)
		}
	}
	if t, isText := n.(*ast.Text); isText {
		merge(t.Segment.Start, t.Segment.Stop)
	}
	if fc, isFenced := n.(*ast.FencedCodeBlock); isFenced && fc.Info != nil {
		merge(fc.Info.Segment.Start, fc.Info.Segment.Stop)
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s, e, childOK := segmentExtent(c, src); childOK {
			merge(s, e)
		}
	}
	return start, stop, ok
}

func lineStart(src []byte, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	for i := pos - 1; i >= 0; i-- {
		if src[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// lineEnd widens an exclusive end position to the end of its line. A
// position just past a newline already is a line end and stays put.
func lineEnd(src []byte, pos int) int {
	if pos > 0 && pos <= len(src) && src[pos-1] == '\n' {
		return pos
	}
	return containingLineEnd(src, pos)
}

// containingLineEnd returns the exclusive end of the line containing
// pos, newline included. Unlike lineEnd it treats pos as a position
// inside the line, so a line-start position spans its whole line
// instead of collapsing to an empty range.
func containingLineEnd(src []byte, pos int) int {
	for i := pos; i < len(src); i++ {
		if src[i] == '\n' {
			return i + 1
		}
	}
	return len(src)
}

// extendClosingFence includes the closing fence line, which content
// segments never cover.
func extendClosingFence(src []byte, end int) int {
	i := end
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	if i+3 <= len(src) {
		marker := string(src[i : i+3])
		if marker == "```" || marker == "~~~" {
			return lineEnd(src, i)
		}
	}
	return end
}

func nextNonBlankLine(src []byte, pos int) int {
	start := pos
	for i := pos; i < len(src); i++ {
		switch src[i] {
		case '\n':
			start = i + 1
		case ' ', '\t', '\r':
		default:
			return start
		}
	}
	return pos
}

// refMatch is a reference-style link or image candidate whose label has
// no definition, recorded with its byte offset so it can be attributed
// to the block that consumed it.
type refMatch struct {
	offset int
	label  string
}

var refPattern = regexp.MustCompile(`\[([^\[\]]+)\](\[([^\[\]]*)\])?`)

// brokenCandidates scans the source for reference links whose labels
// resolve to nothing. The event parser renders those as literal text;
// recording the labels here lets the incomplete-section registry
// re-parse the affected blocks once the definitions arrive.
func brokenCandidates(doc ast.Node, src []byte, references map[string]string) []refMatch {
	codeRegions := collectCodeRegions(doc, src)
	inCode := func(pos int) bool {
		for _, r := range codeRegions {
			if pos >= r.start && pos < r.end {
				return true
			}
		}
		return false
	}

	var matches []refMatch
	for _, m := range refPattern.FindAllSubmatchIndex(src, -1) {
		off := m[0]
		if inCode(off) {
			continue
		}

		after := m[1]
		if after < len(src) && (src[after] == '(' || src[after] == ':') {
			// Inline link or a reference definition, not a use.
			continue
		}

		first := string(src[m[2]:m[3]])
		label := first
		if m[6] >= 0 {
			if second := string(src[m[6]:m[7]]); second != "" {
				label = second
			}
		} else if isTaskMarker(src, off, first) {
			continue
		}

		norm := normalizeLabel(label)
		if norm == "" {
			continue
		}
		if _, ok := references[norm]; ok {
			continue
		}
		matches = append(matches, refMatch{offset: off, label: norm})
	}
	return matches
}

type byteRange struct {
	start int
	end   int
}

func collectCodeRegions(doc ast.Node, src []byte) []byteRange {
	var regions []byteRange
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.CodeSpan:
			if s, e, ok := segmentExtent(n, src); ok {
				regions = append(regions, byteRange{start: s, end: e})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return regions
}

// isTaskMarker reports whether a shortcut-style candidate like "[x]" is
// actually a task-list checkbox at the start of a bullet.
func isTaskMarker(src []byte, off int, label string) bool {
	if label != " " && label != "x" && label != "X" {
		return false
	}
	start := lineStart(src, off)
	prefix := src[start:off]
	i := 0
	for i < len(prefix) && (prefix[i] == ' ' || prefix[i] == '\t') {
		i++
	}
	rest := prefix[i:]
	if len(rest) != 2 {
		return false
	}
	return (rest[0] == '-' || rest[0] == '*' || rest[0] == '+') && rest[1] == ' '
}
