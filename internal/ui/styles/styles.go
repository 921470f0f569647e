// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CCCCCC"} // Analyzed text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#BBBBBB"} // Labels, secondary info
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#696969"} // Hints, help text, footers

	// BackgroundColor is the color highlight intensity blends toward.
	BackgroundColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E1E"}

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"} // Focused pane

	StatusErrorColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Token highlighting. HighlightBaseColor is drawn at full strength only
	// when intensity reaches 1.
	HighlightBaseColor = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#4F46E5"}
	HighlightRingColor = lipgloss.AdaptiveColor{Light: "#3730A3", Dark: "#A5B4FC"}
	HighlightTextColor = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#FFFFFF"}

	// Verdict colors follow the score buckets: red, yellow, green.
	VerdictAIColor        = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF8787"}
	VerdictUncertainColor = lipgloss.AdaptiveColor{Light: "#CA8A04", Dark: "#FECA57"}
	VerdictHumanColor     = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#73F59F"}

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	LabelStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Tooltip line under the text pane
	TooltipStyle = lipgloss.NewStyle().
			Foreground(HighlightTextColor).
			Background(HighlightBaseColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)
