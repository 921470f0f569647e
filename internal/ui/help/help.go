// Package help contains the keybinding help overlay.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/tokenlens/internal/highlight"
	"github.com/zjrosen/tokenlens/internal/keys"
	"github.com/zjrosen/tokenlens/internal/ui/styles"
)

const footer = "Press ? or Esc to close"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.TextPrimaryColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().Foreground(styles.BorderFocusColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.TextPrimaryColor).
			MarginTop(1)

	keyStyle  = lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Width(13)
	descStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.BorderFocusColor)

	contentStyle = lipgloss.NewStyle().Padding(0, 2)
	columnStyle  = lipgloss.NewStyle().MarginRight(4)
	footerStyle  = lipgloss.NewStyle().Foreground(styles.TextMutedColor).MarginTop(1)
)

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	policy highlight.Policy
	width  int
	height int
}

// New creates a help view for km.
func New(km keys.KeyMap) Model {
	return Model{keys: km, policy: highlight.DefaultPolicy()}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// SetPolicy sets the policy described in the legend.
func (m Model) SetPolicy(p highlight.Policy) Model {
	m.policy = p
	return m
}

// View renders the help box centered on an empty screen.
func (m Model) View() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderContent())
}

// Overlay renders the help box centered on top of background.
func (m Model) Overlay(background string) string {
	if background == "" {
		return m.View()
	}
	return place(m.width, m.height, m.renderContent(), background)
}

func (m Model) renderContent() string {
	groups := m.keys.FullHelp()
	titles := []string{"Tokens", "Scrolling", "Actions", "General"}

	cols := make([]string, 0, len(groups))
	for i, group := range groups {
		var col strings.Builder
		col.WriteString(sectionStyle.Render(titles[i]))
		col.WriteString("\n")
		for _, b := range group {
			col.WriteString(renderBinding(b))
		}
		if i < len(groups)-1 {
			cols = append(cols, columnStyle.Render(col.String()))
		} else {
			cols = append(cols, col.String())
		}
	}
	columns := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	legend := sectionStyle.Render("Highlighting") + "\n" + descStyle.Render(m.legend())

	boxWidth := max(lipgloss.Width(columns), lipgloss.Width(legend)) + 4
	body := contentStyle.Render(columns + "\n" + legend + "\n" + footerStyle.Render(footer))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(dividerStyle.Render(strings.Repeat("─", boxWidth)))
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func (m Model) legend() string {
	if m.policy.Mode == highlight.ModeProportional {
		return "Every scored token is shaded by its AI probability."
	}
	return "Tokens at or above " + highlight.FormatPercent(m.policy.Threshold) +
		" AI probability are highlighted; darker means more likely."
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n"
}
