package tokenview

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tokenlens/internal/highlight"
)

func TestBlend(t *testing.T) {
	bg, _ := colorful.Hex("#000000")
	fg, _ := colorful.Hex("#4F46E5")

	require.Equal(t, "#000000", Blend(bg, fg, 0).Hex())
	require.Equal(t, "#4f46e5", Blend(bg, fg, 1).Hex())
	require.Equal(t, "#4f46e5", Blend(bg, fg, 3).Hex(), "alpha is clamped")

	mid := Blend(bg, fg, 0.5)
	require.InDelta(t, fg.R/2, mid.R, 1e-9)
	require.InDelta(t, fg.B/2, mid.B, 1e-9)
}

func TestPalette_IntensityChangesBackground(t *testing.T) {
	pal := newPalette(true)
	policy := highlight.DefaultPolicy()

	low := pal.token(policy, 0.6, false).Render("x")
	high := pal.token(policy, 1.0, false).Render("x")

	require.NotEqual(t, low, high)
}

func TestPalette_HoverAddsUnderline(t *testing.T) {
	pal := newPalette(true)
	policy := highlight.DefaultPolicy()

	require.False(t, pal.token(policy, 0.9, false).GetUnderline())
	require.True(t, pal.token(policy, 0.9, true).GetUnderline())
	require.True(t, pal.token(policy, 0.9, false).GetBold(), "highlighted tokens use strong contrast")
}

func TestRenderLines_KeepsLineBreaks(t *testing.T) {
	pal := newPalette(true)

	out := renderLines(pal.plain, "a\n\nb")

	require.Equal(t, 2, countNewlines(out))
}

func countNewlines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
