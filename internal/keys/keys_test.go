package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_KeyAssignments(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{name: "NextToken uses tab and n", binding: km.NextToken, expected: []string{"tab", "n"}},
		{name: "PrevToken uses shift+tab and N", binding: km.PrevToken, expected: []string{"shift+tab", "N"}},
		{name: "Select uses enter", binding: km.Select, expected: []string{"enter"}},
		{name: "Clear uses c", binding: km.Clear, expected: []string{"c"}},
		{name: "Quit uses q and ctrl+c", binding: km.Quit, expected: []string{"q", "ctrl+c"}},
		{name: "Save uses ctrl+s", binding: km.Save, expected: []string{"ctrl+s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_NoConflicts(t *testing.T) {
	km := DefaultKeyMap()

	seen := make(map[string]string)
	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				prev, dup := seen[k]
				require.False(t, dup, "key %q bound to both %q and %q", k, prev, b.Help().Desc)
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestDefaultKeyMap_HelpText(t *testing.T) {
	km := DefaultKeyMap()

	for _, group := range km.FullHelp() {
		for _, b := range group {
			help := b.Help()
			require.NotEmpty(t, help.Key)
			require.NotEmpty(t, help.Desc)
		}
	}
	require.Len(t, km.ShortHelp(), 5)
}
