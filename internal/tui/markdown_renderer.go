package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const minMarkdownWrap = 24

// markdownRenderer caches one glamour renderer per wrap width.
type markdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{style: "dark"}
}

// render returns ANSI text for markdown. Renderer failures fall back to the raw source.
func (r *markdownRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}
	wrapWidth := max(width, minMarkdownWrap)

	if r.renderer == nil || r.width != wrapWidth {
		style := r.style
		if style == "" {
			style = "dark"
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}
