package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tokenlens/internal/highlight"
	"github.com/zjrosen/tokenlens/internal/tracing"
)

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))

	p, err := cfg.Highlight.ToPolicy()
	require.NoError(t, err)
	require.Equal(t, highlight.DefaultPolicy(), p)
	require.True(t, cfg.UI.ShowTooltip)
	require.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
	require.False(t, cfg.Tracing.Enabled)
}

func TestValidateHighlight(t *testing.T) {
	h := Defaults().Highlight
	h.Threshold = 1.5
	err := ValidateHighlight(h)
	require.Error(t, err)
	require.Contains(t, err.Error(), "threshold must be between 0 and 1")

	h = Defaults().Highlight
	h.Policy = "rainbow"
	err = ValidateHighlight(h)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown highlight policy")

	h = Defaults().Highlight
	h.BaseOpacity = 0.9
	require.Error(t, ValidateHighlight(h))
}

func TestHighlightConfig_EmptyPolicyIsThresholded(t *testing.T) {
	h := Defaults().Highlight
	h.Policy = ""
	p, err := h.ToPolicy()
	require.NoError(t, err)
	require.Equal(t, highlight.ModeThresholded, p.Mode)
}

func TestValidateUI(t *testing.T) {
	require.NoError(t, ValidateUI(UIConfig{MarkdownStyle: "light"}))
	require.Error(t, ValidateUI(UIConfig{WrapWidth: -1}))

	err := ValidateUI(UIConfig{MarkdownStyle: "sepia"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "ui.markdown_style")
}

func TestValidateWatch(t *testing.T) {
	require.NoError(t, ValidateWatch(WatchConfig{Enabled: true}))
	require.Error(t, ValidateWatch(WatchConfig{Debounce: -time.Second}))
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     tracing.Config
		wantErr string
	}{
		{name: "defaults", cfg: tracing.DefaultConfig()},
		{name: "sample rate high", cfg: tracing.Config{SampleRate: 1.1}, wantErr: "sample_rate"},
		{name: "sample rate negative", cfg: tracing.Config{SampleRate: -0.1}, wantErr: "sample_rate"},
		{name: "bad exporter", cfg: tracing.Config{Exporter: "jaeger"}, wantErr: "tracing.exporter"},
		{name: "file without path", cfg: tracing.Config{Enabled: true, Exporter: "file"}, wantErr: "file_path"},
		{name: "otlp without endpoint", cfg: tracing.Config{Enabled: true, Exporter: "otlp"}, wantErr: "otlp_endpoint"},
		{name: "disabled file without path", cfg: tracing.Config{Exporter: "file"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_JoinsSections(t *testing.T) {
	cfg := Defaults()
	cfg.Highlight.Threshold = 2
	cfg.UI.WrapWidth = -5

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "threshold")
	require.Contains(t, err.Error(), "wrap_width")
}

func TestFlattenedColors(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"highlight": map[string]any{"base": "#111111", "ring": "#222222"},
			"verdict.ai": "#333333",
			"verdict":    map[any]any{"human": "#444444"},
		},
	}

	require.Equal(t, map[string]string{
		"highlight.base": "#111111",
		"highlight.ring": "#222222",
		"verdict.ai":     "#333333",
		"verdict.human":  "#444444",
	}, theme.FlattenedColors())
}

func TestDefaultConfigTemplate_LoadsAsDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())

	require.Equal(t, Defaults().Highlight, cfg.Highlight)
	require.True(t, cfg.UI.ShowTooltip)
	require.Equal(t, 100*time.Millisecond, cfg.Watch.Debounce)
	require.NoError(t, ValidateHighlight(cfg.Highlight))
}

func TestLoadConfig_DottedColorKeys(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
theme:
  preset: nord
  colors:
    highlight.base: "#FF0000"
    verdict:
      ai: "#00FF00"
`)

	require.Equal(t, "nord", cfg.Theme.Preset)
	colors := cfg.Theme.FlattenedColors()
	require.Equal(t, "#FF0000", colors["highlight.base"])
	require.Equal(t, "#00FF00", colors["verdict.ai"])
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

// loadConfigFromYAML mirrors the command's viper setup.
func loadConfigFromYAML(t *testing.T, yaml string) Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0o644))

	// "::" keeps dotted color tokens from being treated as nested paths.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}
