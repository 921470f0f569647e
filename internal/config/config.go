// Package config provides configuration types and defaults for tokenlens.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/tokenlens/internal/highlight"
	"github.com/zjrosen/tokenlens/internal/log"
	"github.com/zjrosen/tokenlens/internal/tracing"
)

// Config holds all configuration options for tokenlens.
type Config struct {
	Highlight HighlightConfig `mapstructure:"highlight"`
	UI        UIConfig        `mapstructure:"ui"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Tracing   tracing.Config  `mapstructure:"tracing"`
	Debug     bool            `mapstructure:"debug"`
}

// HighlightConfig controls which tokens are highlighted and how strongly.
type HighlightConfig struct {
	Policy      string  `mapstructure:"policy"`       // "thresholded" (default) or "proportional"
	Threshold   float64 `mapstructure:"threshold"`    // minimum AI probability to highlight
	BaseOpacity float64 `mapstructure:"base_opacity"` // intensity at the threshold
	MaxOpacity  float64 `mapstructure:"max_opacity"`  // intensity at probability 1.0
}

// ToPolicy converts the section into a highlight.Policy.
func (h HighlightConfig) ToPolicy() (highlight.Policy, error) {
	mode, err := highlight.ParseMode(h.Policy)
	if err != nil {
		return highlight.Policy{}, err
	}
	p := highlight.Policy{
		Mode:        mode,
		Threshold:   h.Threshold,
		BaseOpacity: h.BaseOpacity,
		MaxOpacity:  h.MaxOpacity,
	}
	if err := p.Validate(); err != nil {
		return highlight.Policy{}, err
	}
	return p, nil
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	WrapWidth     int    `mapstructure:"wrap_width"`     // 0 wraps at the terminal width
	ShowTooltip   bool   `mapstructure:"show_tooltip"`   // tooltip line under the text pane
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	Preset string `mapstructure:"preset"`

	// Colors overrides individual color tokens. Supports nested YAML and
	// quoted dot notation:
	//   colors:
	//     highlight:
	//       base: "#4F46E5"
	//     "verdict.ai": "#EF4444"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// WatchConfig controls reloading the result file when it changes on disk.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// DefaultTracesFilePath returns ~/.config/tokenlens/traces/traces.jsonl or
// an empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tokenlens", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Highlight: HighlightConfig{
			Policy:      string(highlight.ModeThresholded),
			Threshold:   highlight.DefaultThreshold,
			BaseOpacity: highlight.DefaultBaseOpacity,
			MaxOpacity:  highlight.DefaultMaxOpacity,
		},
		UI: UIConfig{
			ShowTooltip:   true,
			MarkdownStyle: "dark",
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks every section and returns all problems found.
func Validate(cfg Config) error {
	return errors.Join(
		ValidateHighlight(cfg.Highlight),
		ValidateUI(cfg.UI),
		ValidateWatch(cfg.Watch),
		ValidateTracing(cfg.Tracing),
	)
}

// ValidateHighlight checks the highlight policy settings.
func ValidateHighlight(h HighlightConfig) error {
	if _, err := h.ToPolicy(); err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	return nil
}

// ValidateUI checks user interface settings.
func ValidateUI(ui UIConfig) error {
	if ui.WrapWidth < 0 {
		return fmt.Errorf("ui.wrap_width must not be negative, got %d", ui.WrapWidth)
	}
	switch ui.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
	return nil
}

// ValidateWatch checks file watching settings.
func ValidateWatch(w WatchConfig) error {
	if w.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", w.Debounce)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" {
		switch t.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
		}
	}

	if t.Enabled {
		if t.Exporter == "file" && t.FilePath == "" {
			return errors.New("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
			return errors.New("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# tokenlens configuration

# Token highlighting
highlight:
  policy: thresholded   # "thresholded" (default) or "proportional"
  threshold: 0.6        # tokens at or above this AI probability are highlighted
  base_opacity: 0.1     # highlight strength at the threshold
  max_opacity: 0.6      # highlight strength at probability 1.0

# UI settings
ui:
  wrap_width: 0           # 0 wraps at the terminal width
  show_tooltip: true      # show the hovered token under the text
  # markdown_style: dark  # explanation rendering style: "dark" (default) or "light"

# Theme configuration
theme:
  # Use a preset (run 'tokenlens themes' to see available presets):
  # preset: catppuccin-mocha
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   highlight.base: "#4F46E5"
  #   verdict.ai: "#EF4444"

# Reload the result file when it changes on disk
watch:
  enabled: false
  debounce: 100ms

# Distributed tracing of alignment and loading
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/tokenlens/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
