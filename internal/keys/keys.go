// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the viewer.
type KeyMap struct {
	// Token navigation
	NextToken key.Binding
	PrevToken key.Binding
	Select    key.Binding
	Escape    key.Binding

	// Scrolling
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Actions
	Clear         key.Binding
	Reload        key.Binding
	ThresholdUp   key.Binding
	ThresholdDown key.Binding
	Save          key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextToken: key.NewBinding(
			key.WithKeys("tab", "n"),
			key.WithHelp("tab/n", "next token"),
		),
		PrevToken: key.NewBinding(
			key.WithKeys("shift+tab", "N"),
			key.WithHelp("shift+tab/N", "previous token"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show token details"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear selection"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),

		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear text"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload result"),
		),
		ThresholdUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "raise threshold"),
		),
		ThresholdDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "lower threshold"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save threshold"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextToken, k.Select, k.Clear, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextToken, k.PrevToken, k.Select, k.Escape},              // Tokens
		{k.Up, k.Down, k.PageUp, k.PageDown},                        // Scrolling
		{k.Clear, k.Reload, k.ThresholdUp, k.ThresholdDown, k.Save}, // Actions
		{k.Help, k.Quit},                                            // General
	}
}
