package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mariinkys/cedilla/internal/images"
	"github.com/mariinkys/cedilla/internal/markdown"
	"github.com/mariinkys/cedilla/internal/render"
	"github.com/mariinkys/cedilla/internal/theme"
)

// previewViewer renders images according to the coordinator's current
// knowledge of each URL. Every other block kind falls through to the
// default rendering.
type previewViewer struct {
	render.DefaultViewer
	coordinator *images.Coordinator
}

func (v previewViewer) Image(settings render.Settings, u *url.URL, title string, alt *markdown.Text) render.Element {
	entry, ok := v.coordinator.Entry(u.String())
	if !ok {
		return render.ImagePlaceholder(settings, u, title, alt)
	}

	label := altLabel(u, alt)
	switch entry.Status {
	case images.StatusReady:
		bounds := entry.Image.Bounds()
		line := fmt.Sprintf("▨ %s (%d×%d)", label, bounds.Dx(), bounds.Dy())
		if title != "" {
			line = fmt.Sprintf("%s — %s", line, title)
		}
		return render.Box{
			Inner: render.NewSpan([]markdown.RenderSpan{{
				Content: line,
				Style:   theme.DimStyle,
			}}),
			Style: theme.BorderStyle,
		}
	case images.StatusFailed:
		return render.NewSpan([]markdown.RenderSpan{{
			Content: fmt.Sprintf("✗ %s: %v", label, entry.Err),
			Style:   theme.ErrorStyle,
		}})
	default:
		return render.NewSpan([]markdown.RenderSpan{{
			Content: fmt.Sprintf("⟳ loading %s", label),
			Style:   theme.DimStyle,
		}})
	}
}

func altLabel(u *url.URL, alt *markdown.Text) string {
	if alt != nil {
		var b strings.Builder
		for _, span := range alt.Spans() {
			if s, ok := span.(markdown.StandardSpan); ok {
				b.WriteString(s.Text)
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return u.String()
}
