package tokenview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/zjrosen/tokenlens/internal/highlight"
	"github.com/zjrosen/tokenlens/internal/ui/styles"
)

// Blend composites fg over bg at the given opacity.
func Blend(bg, fg colorful.Color, alpha float64) colorful.Color {
	alpha = min(max(alpha, 0), 1)
	return bg.BlendRgb(fg, alpha).Clamped()
}

// palette resolves theme colors once per render.
type palette struct {
	dark  bool
	base  colorful.Color
	bg    colorful.Color
	plain lipgloss.Style
}

func newPalette(dark bool) palette {
	p := palette{dark: dark}
	p.base = p.color(styles.HighlightBaseColor)
	p.bg = p.color(styles.BackgroundColor)
	p.plain = lipgloss.NewStyle().
		TabWidth(lipgloss.NoTabConversion).
		Foreground(styles.TextPrimaryColor)
	return p
}

func (p palette) color(c lipgloss.AdaptiveColor) colorful.Color {
	hex := c.Light
	if p.dark {
		hex = c.Dark
	}
	parsed, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return parsed
}

// token returns the style for a highlighted token with probability prob.
func (p palette) token(policy highlight.Policy, prob float64, hovered bool) lipgloss.Style {
	bg := Blend(p.bg, p.base, policy.Intensity(prob))

	s := lipgloss.NewStyle().
		TabWidth(lipgloss.NoTabConversion).
		Background(lipgloss.Color(bg.Hex())).
		Foreground(styles.TextPrimaryColor)

	if policy.Contrast(prob) == highlight.ContrastStrong {
		s = s.Bold(true).Foreground(styles.HighlightTextColor)
	}
	if hovered {
		s = s.Underline(true).Foreground(styles.HighlightRingColor)
	}
	return s
}

// renderLines styles each line of s separately so lipgloss never pads a
// multi-line run to a block.
func renderLines(style lipgloss.Style, s string) string {
	if !strings.Contains(s, "\n") {
		return style.Render(s)
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
