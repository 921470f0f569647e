package toaster

import (
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New().Show("Reloaded result", StyleInfo, time.Second)

	require.NotNil(t, cmd)
	assert.True(t, m.Visible())
	assert.Equal(t, "ℹ️ Reloaded result", ansi.Strip(m.View()))
}

func TestShow_Error(t *testing.T) {
	m, _ := New().Show("decode failed", StyleError, time.Second)

	assert.Equal(t, "❌ decode failed", ansi.Strip(m.View()))
}

func TestHide(t *testing.T) {
	m, _ := New().Show("Hello", StyleInfo, time.Second)
	m = m.Hide()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestDismiss_MatchingSequence(t *testing.T) {
	m, _ := New().Show("Hello", StyleInfo, time.Second)
	m = m.Update(DismissMsg{seq: m.seq})

	assert.False(t, m.Visible())
}

func TestDismiss_StaleIgnored(t *testing.T) {
	m, _ := New().Show("First", StyleInfo, time.Second)
	stale := DismissMsg{seq: m.seq}
	m, _ = m.Show("Second", StyleError, time.Second)

	m = m.Update(stale)

	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "Second")
}

func TestDismiss_Fires(t *testing.T) {
	m, cmd := New().Show("Hello", StyleInfo, time.Millisecond)

	msg := cmd()
	m = m.Update(msg)

	assert.False(t, m.Visible())
}
