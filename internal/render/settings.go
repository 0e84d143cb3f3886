// Package render turns a parsed block sequence into a tree of visual
// elements. Each block kind is dispatched through a Viewer, so a host
// can intercept exactly one kind (typically images, to inject lazy
// loading) while keeping the defaults for everything else.
package render

import "github.com/mariinkys/cedilla/internal/markdown"

// Settings controls sizing and styling of rendered Markdown. Sizes are
// abstract units derived from the base text size; the terminal
// realization maps them onto spacing and emphasis, but the ratios are
// part of the rendering contract.
type Settings struct {
	TextSize float64
	H1Size   float64
	H2Size   float64
	H3Size   float64
	H4Size   float64
	H5Size   float64
	H6Size   float64
	CodeSize float64
	Spacing  float64
	Style    markdown.Style
}

// NewSettings derives all sizes from the given base text size: the
// first heading level is twice the base and each level after that is
// 25% smaller down to the base, code runs at 0.75x and element spacing
// at 0.875x.
func NewSettings(textSize float64, style markdown.Style) Settings {
	return Settings{
		TextSize: textSize,
		H1Size:   textSize * 2.0,
		H2Size:   textSize * 1.75,
		H3Size:   textSize * 1.5,
		H4Size:   textSize * 1.25,
		H5Size:   textSize,
		H6Size:   textSize,
		CodeSize: textSize * 0.75,
		Spacing:  textSize * 0.875,
		Style:    style,
	}
}

// DefaultSettings returns settings for a base text size of 16.
func DefaultSettings() Settings {
	return NewSettings(16, markdown.DefaultStyle())
}

// HeadingSize returns the size for a heading level.
func (s Settings) HeadingSize(level int) float64 {
	switch level {
	case 1:
		return s.H1Size
	case 2:
		return s.H2Size
	case 3:
		return s.H3Size
	case 4:
		return s.H4Size
	default:
		return s.TextSize
	}
}

// WithSpacing returns a copy of the settings with the given spacing,
// used when descending into nested structures.
func (s Settings) WithSpacing(spacing float64) Settings {
	s.Spacing = spacing
	return s
}

// blankLines maps an abstract spacing value onto whole terminal lines.
func blankLines(spacing float64) int {
	if spacing >= 8 {
		return 1
	}
	return 0
}
