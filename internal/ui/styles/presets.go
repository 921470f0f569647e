package styles

import (
	"maps"
	"slices"
)

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

// DefaultPreset uses the indigo highlight of the web report.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default tokenlens theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextSecondary: "#BBBBBB",
		TokenTextMuted:     "#696969",

		TokenBackground: "#1E1E1E",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#818CF8",

		TokenStatusError: "#FF8787",

		TokenHighlightBase: "#4F46E5",
		TokenHighlightRing: "#A5B4FC",
		TokenHighlightText: "#FFFFFF",

		TokenVerdictAI:        "#FF8787",
		TokenVerdictUncertain: "#FECA57",
		TokenVerdictHuman:     "#73F59F",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha palette.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CDD6F4", // text
		TokenTextSecondary: "#BAC2DE", // subtext1
		TokenTextMuted:     "#6C7086", // overlay0

		TokenBackground: "#1E1E2E", // base

		TokenBorderDefault: "#45475A", // surface1
		TokenBorderFocus:   "#B4BEFE", // lavender

		TokenStatusError: "#F38BA8", // red

		TokenHighlightBase: "#CBA6F7", // mauve
		TokenHighlightRing: "#F5C2E7", // pink
		TokenHighlightText: "#11111B", // crust

		TokenVerdictAI:        "#F38BA8", // red
		TokenVerdictUncertain: "#F9E2AF", // yellow
		TokenVerdictHuman:     "#A6E3A1", // green
	},
}

// CatppuccinLattePreset is the Catppuccin Latte palette.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Warm, cozy light theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#4C4F69", // text
		TokenTextSecondary: "#5C5F77", // subtext1
		TokenTextMuted:     "#9CA0B0", // overlay0

		TokenBackground: "#EFF1F5", // base

		TokenBorderDefault: "#BCC0CC", // surface1
		TokenBorderFocus:   "#7287FD", // lavender

		TokenStatusError: "#D20F39", // red

		TokenHighlightBase: "#8839EF", // mauve
		TokenHighlightRing: "#EA76CB", // pink
		TokenHighlightText: "#DCE0E8", // crust

		TokenVerdictAI:        "#D20F39", // red
		TokenVerdictUncertain: "#DF8E1D", // yellow
		TokenVerdictHuman:     "#40A02B", // green
	},
}

// DraculaPreset is the Dracula palette.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#F8F8F2",
		TokenTextSecondary: "#BFBFBF",
		TokenTextMuted:     "#6272A4",

		TokenBackground: "#282A36",

		TokenBorderDefault: "#44475A",
		TokenBorderFocus:   "#BD93F9",

		TokenStatusError: "#FF5555",

		TokenHighlightBase: "#BD93F9",
		TokenHighlightRing: "#FF79C6",
		TokenHighlightText: "#F8F8F2",

		TokenVerdictAI:        "#FF5555",
		TokenVerdictUncertain: "#F1FA8C",
		TokenVerdictHuman:     "#50FA7B",
	},
}

// NordPreset is the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#ECEFF4", // nord6
		TokenTextSecondary: "#D8DEE9", // nord4
		TokenTextMuted:     "#4C566A", // nord3

		TokenBackground: "#2E3440", // nord0

		TokenBorderDefault: "#4C566A",
		TokenBorderFocus:   "#88C0D0", // nord8

		TokenStatusError: "#BF616A", // nord11

		TokenHighlightBase: "#5E81AC", // nord10
		TokenHighlightRing: "#88C0D0",
		TokenHighlightText: "#ECEFF4",

		TokenVerdictAI:        "#BF616A",
		TokenVerdictUncertain: "#EBCB8B", // nord13
		TokenVerdictHuman:     "#A3BE8C", // nord14
	},
}

// HighContrastPreset maximizes contrast for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextSecondary: "#FFFFFF",
		TokenTextMuted:     "#C0C0C0",

		TokenBackground: "#000000",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",

		TokenStatusError: "#FF0000",

		TokenHighlightBase: "#0000FF",
		TokenHighlightRing: "#FFFF00",
		TokenHighlightText: "#FFFFFF",

		TokenVerdictAI:        "#FF0000",
		TokenVerdictUncertain: "#FFFF00",
		TokenVerdictHuman:     "#00FF00",
	},
}
