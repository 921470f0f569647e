package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveHighlight_CreatesNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dir", "config.yaml")

	h := Defaults().Highlight
	h.Threshold = 0.75
	require.NoError(t, SaveHighlight(path, h))

	cfg := loadConfigFromYAML(t, readFile(t, path))
	require.Equal(t, h, cfg.Highlight)
}

func TestSaveHighlight_PreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	h := Defaults().Highlight
	h.Threshold = 0.8
	h.Policy = "proportional"
	require.NoError(t, SaveHighlight(path, h))

	content := readFile(t, path)
	require.Contains(t, content, "# tokenlens configuration")
	require.Contains(t, content, "show the hovered token under the text")

	cfg := loadConfigFromYAML(t, content)
	require.Equal(t, 0.8, cfg.Highlight.Threshold)
	require.Equal(t, "proportional", cfg.Highlight.Policy)
	require.True(t, cfg.UI.ShowTooltip)
	require.Equal(t, Defaults().Watch.Debounce, cfg.Watch.Debounce)
}

func TestSaveHighlight_ReplacesScalarSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("highlight: off\ndebug: true\n"), 0o600))

	require.NoError(t, SaveHighlight(path, Defaults().Highlight))

	cfg := loadConfigFromYAML(t, readFile(t, path))
	require.Equal(t, Defaults().Highlight, cfg.Highlight)
	require.True(t, cfg.Debug)
}

func TestSaveHighlight_RejectsNonMappingRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))

	err := SaveHighlight(path, Defaults().Highlight)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a mapping")
}

func TestSaveHighlight_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, SaveHighlight(path, Defaults().Highlight))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "config.yaml", entries[0].Name())
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
