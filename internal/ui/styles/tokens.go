package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Terminal background that highlight intensity blends toward
	TokenBackground ColorToken = "background"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusError ColorToken = "status.error"

	// Token highlighting
	TokenHighlightBase ColorToken = "highlight.base"
	TokenHighlightRing ColorToken = "highlight.ring"
	TokenHighlightText ColorToken = "highlight.text"

	// Overall verdict
	TokenVerdictAI        ColorToken = "verdict.ai"
	TokenVerdictUncertain ColorToken = "verdict.uncertain"
	TokenVerdictHuman     ColorToken = "verdict.human"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,

		TokenBackground,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenStatusError,

		TokenHighlightBase,
		TokenHighlightRing,
		TokenHighlightText,

		TokenVerdictAI,
		TokenVerdictUncertain,
		TokenVerdictHuman,
	}
}
