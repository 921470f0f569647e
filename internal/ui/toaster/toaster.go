// Package toaster provides a transient one-line notification for the footer.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/tokenlens/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleInfo shows ℹ️ in the secondary text color.
	StyleInfo Style = iota
	// StyleError shows ❌ in the error color.
	StyleError
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays a toast and returns a command that dismisses it after d.
// A later Show wins over the pending dismissal of an earlier one.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	return m, scheduleDismiss(m.seq, d)
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Update handles dismissal messages.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// View renders the toast line.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	switch m.style {
	case StyleError:
		return lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Render("❌ " + m.message)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Render("ℹ️ " + m.message)
	}
}

// DismissMsg signals that the toast with the matching sequence should hide.
type DismissMsg struct {
	seq int
}

func scheduleDismiss(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}
