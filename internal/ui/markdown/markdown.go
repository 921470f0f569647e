// Package markdown renders the service's explanation and recommendation text.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with tokenlens-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width. style is "dark",
// "light" or empty for the dark default.
func New(width int, style string) (*Renderer, error) {
	switch style {
	case "":
		style = styles.DarkStyle
	case styles.DarkStyle, styles.LightStyle:
	default:
		return nil, fmt.Errorf("unknown markdown style %q", style)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output without trailing
// blank lines.
func (r *Renderer) Render(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n "), nil
}

// RenderList renders items as a bulleted list. A single item is rendered as
// a paragraph.
func (r *Renderer) RenderList(items []string) (string, error) {
	switch len(items) {
	case 0:
		return "", nil
	case 1:
		return r.Render(items[0])
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(strings.ReplaceAll(strings.TrimSpace(item), "\n", " "))
		b.WriteString("\n")
	}
	return r.Render(b.String())
}
