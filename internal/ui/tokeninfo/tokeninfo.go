// Package tokeninfo renders the detail panel for the selected token.
package tokeninfo

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/tokenlens/internal/highlight"
	"github.com/zjrosen/tokenlens/internal/ui/styles"
)

const labelWidth = 12

// Model shows one token's text, probability, examples and recommendations.
type Model struct {
	token    highlight.Token
	hasToken bool
	width    int
}

// New creates an empty panel.
func New() Model {
	return Model{}
}

// SetToken shows tok.
func (m Model) SetToken(tok highlight.Token) Model {
	m.token = tok
	m.hasToken = true
	return m
}

// Clear hides the panel content.
func (m Model) Clear() Model {
	m.token = highlight.Token{}
	m.hasToken = false
	return m
}

// SetWidth sets the render width.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// HasToken reports whether a token is shown.
func (m Model) HasToken() bool {
	return m.hasToken
}

// View renders the panel, or nothing when no token is selected.
func (m Model) View() string {
	if !m.hasToken {
		return ""
	}

	valueWidth := max(m.width-labelWidth, 8)
	label := styles.LabelStyle.Width(labelWidth)
	value := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)

	rows := []string{
		label.Render("Token") + styles.TitleStyle.Render(truncate(m.token.DisplayText(), valueWidth)),
		label.Render("AI prob") + value.Render(probability(m.token.AIProbability)),
	}
	rows = append(rows, listRows(label, value, "Examples", m.token.Examples, valueWidth)...)
	rows = append(rows, listRows(label, value, "Suggestions", m.token.Recommendations, valueWidth)...)

	return strings.Join(rows, "\n")
}

func listRows(label, value lipgloss.Style, title string, items []string, width int) []string {
	if len(items) == 0 {
		return nil
	}
	rows := make([]string, 0, len(items))
	for i, item := range items {
		heading := ""
		if i == 0 {
			heading = title
		}
		rows = append(rows, label.Render(heading)+value.Render(truncate("• "+item, width)))
	}
	return rows
}

func probability(p float64) string {
	if math.IsNaN(p) || p < 0 {
		return "n/a"
	}
	return highlight.FormatPercent(p)
}

// truncate cuts s to width display cells, collapsing line breaks.
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, width, "…")
}
