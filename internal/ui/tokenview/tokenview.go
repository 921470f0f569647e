// Package tokenview renders analyzed text with its suspicious tokens
// highlighted and reports hover and click interaction on those tokens.
//
// The view does not own interaction state. The host applies HoverMsg,
// LeaveMsg and SelectMsg to its interaction.State and hands the result back
// through SetState.
package tokenview

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/tokenlens/internal/highlight"
	"github.com/zjrosen/tokenlens/internal/interaction"
	"github.com/zjrosen/tokenlens/internal/log"
	"github.com/zjrosen/tokenlens/internal/ui/styles"
)

// HoverMsg is sent when the pointer enters a highlighted token.
type HoverMsg struct {
	Index int
}

// LeaveMsg is sent when the pointer leaves the hovered token without
// entering another one.
type LeaveMsg struct {
	Index int
}

// SelectMsg is sent when a highlighted token is clicked.
type SelectMsg struct {
	Index int
	Token highlight.Token
}

const emptyHint = "No text to display."

// Model is the highlighted text pane.
type Model struct {
	deriver     *highlight.Deriver
	derivation  highlight.Derivation
	text        string
	tokens      []highlight.Token
	highlighted []int
	state       interaction.State

	viewport    viewport.Model
	zonePrefix  string
	wrapWidth   int
	showTooltip bool
	dark        bool
	width       int
	height      int
}

// New creates an empty pane that derives segments with deriver.
func New(deriver *highlight.Deriver) Model {
	return Model{
		deriver:     deriver,
		viewport:    viewport.New(0, 0),
		zonePrefix:  zone.NewPrefix(),
		showTooltip: true,
		dark:        true,
	}
}

// WithWrapWidth caps the wrap width. Zero wraps at the pane width.
func (m Model) WithWrapWidth(width int) Model {
	m.wrapWidth = width
	return m.refresh()
}

// WithTooltip toggles the tooltip line under the text.
func (m Model) WithTooltip(show bool) Model {
	m.showTooltip = show
	return m.SetSize(m.width, m.height)
}

// WithDarkBackground selects which side of adaptive theme colors is blended.
func (m Model) WithDarkBackground(dark bool) Model {
	m.dark = dark
	return m.refresh()
}

// SetSize sets the outer size of the pane, tooltip line included.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-m.tooltipHeight(), 0)
	return m.refresh()
}

// SetContent aligns tokens with text. Derivation is memoized, so calling
// this again with the same content does no alignment work.
func (m Model) SetContent(ctx context.Context, text string, tokens []highlight.Token) Model {
	prevKey := m.derivation.Key
	m.text = text
	m.tokens = tokens
	m.derive(ctx)
	if m.derivation.Key != prevKey {
		m.viewport.GotoTop()
	}
	return m.refresh()
}

// Clear removes the text and all derived data.
func (m Model) Clear() Model {
	m.text = ""
	m.tokens = nil
	m.derivation = highlight.Derivation{}
	m.highlighted = nil
	m.state = m.state.Reset()
	m.viewport.GotoTop()
	return m.refresh()
}

// SetPolicy switches the highlight policy and re-derives the current content.
func (m Model) SetPolicy(ctx context.Context, policy highlight.Policy) Model {
	m.deriver = m.deriver.WithPolicy(policy)
	m.derive(ctx)
	return m.refresh()
}

// Policy returns the active highlight policy.
func (m Model) Policy() highlight.Policy {
	return m.deriver.Policy()
}

// Deriver returns the deriver backing the pane.
func (m Model) Deriver() *highlight.Deriver {
	return m.deriver
}

// SetState replaces the interaction state used for rendering.
func (m Model) SetState(s interaction.State) Model {
	prev, hadPrev := m.state.Hovered()
	m.state = s
	if cur, has := s.Hovered(); cur != prev || has != hadPrev {
		return m.refresh()
	}
	return m
}

// Derivation returns the segments currently displayed.
func (m Model) Derivation() highlight.Derivation {
	return m.derivation
}

// Highlighted returns the indices of highlighted tokens in text order.
func (m Model) Highlighted() []int {
	return m.highlighted
}

// Token returns the token at index.
func (m Model) Token(index int) (highlight.Token, bool) {
	if index < 0 || index >= len(m.tokens) {
		return highlight.Token{}, false
	}
	return m.tokens[index], true
}

// Step returns the highlighted token dir positions away from the hovered one,
// wrapping at either end. With nothing hovered it starts from the first or
// last highlighted token.
func (m Model) Step(dir int) (int, bool) {
	n := len(m.highlighted)
	if n == 0 {
		return 0, false
	}

	cur, has := m.state.Hovered()
	pos := slices.Index(m.highlighted, cur)
	if !has || pos < 0 {
		if dir < 0 {
			return m.highlighted[n-1], true
		}
		return m.highlighted[0], true
	}

	pos = ((pos+dir)%n + n) % n
	return m.highlighted[pos], true
}

// ScrollTo scrolls the minimum amount that brings the token at index into view.
func (m Model) ScrollTo(index int) Model {
	line, ok := m.lineOf(index)
	if !ok || m.viewport.Height <= 0 {
		return m
	}
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
	return m
}

// ScrollBy scrolls the text by n lines; negative n scrolls up.
func (m Model) ScrollBy(n int) Model {
	if n < 0 {
		m.viewport.ScrollUp(-n)
	} else {
		m.viewport.ScrollDown(n)
	}
	return m
}

// PageSize returns the number of visible text lines.
func (m Model) PageSize() int {
	return max(m.viewport.Height, 1)
}

// Tooltip returns the tooltip for the hovered token, if it is highlighted.
func (m Model) Tooltip() (string, bool) {
	idx, ok := m.state.Hovered()
	if !ok || !slices.Contains(m.highlighted, idx) {
		return "", false
	}
	return m.Policy().Tooltip(m.tokens[idx])
}

// Update handles mouse input. Keyboard navigation is driven by the host
// through Step and ScrollTo.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return m, nil
	}

	switch {
	case tea.MouseEvent(mouse).IsWheel():
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case mouse.Action == tea.MouseActionMotion:
		idx, inside := m.tokenAt(mouse)
		hovered, has := m.state.Hovered()
		switch {
		case inside && (!has || hovered != idx):
			return m, emit(HoverMsg{Index: idx})
		case !inside && has:
			return m, emit(LeaveMsg{Index: hovered})
		}

	case mouse.Button == tea.MouseButtonLeft && mouse.Action == tea.MouseActionRelease:
		if idx, inside := m.tokenAt(mouse); inside {
			return m, emit(SelectMsg{Index: idx, Token: m.tokens[idx]})
		}
	}

	return m, nil
}

// View renders the text pane and the tooltip line.
func (m Model) View() string {
	var body string
	if len(m.derivation.Segments) == 0 {
		body = styles.HintStyle.Render(emptyHint)
		body += strings.Repeat("\n", max(m.viewport.Height-1, 0))
	} else {
		body = m.viewport.View()
	}

	if !m.showTooltip {
		return body
	}
	return body + "\n" + m.tooltipLine()
}

func (m Model) tooltipLine() string {
	if tip, ok := m.Tooltip(); ok {
		return styles.TooltipStyle.Render(ansi.Truncate(tip, max(m.width-2, 1), "…"))
	}
	if len(m.highlighted) == 0 {
		return ""
	}
	return styles.HintStyle.Render(ansi.Truncate("tab or hover to inspect highlighted tokens", max(m.width, 1), "…"))
}

func (m Model) tooltipHeight() int {
	if m.showTooltip {
		return 1
	}
	return 0
}

func (m *Model) derive(ctx context.Context) {
	m.derivation = m.deriver.Derive(ctx, m.text, m.tokens)

	policy := m.deriver.Policy()
	m.highlighted = m.highlighted[:0:0]
	for _, seg := range m.derivation.Segments {
		if seg.IsToken && policy.Highlighted(seg.Token.AIProbability) {
			m.highlighted = append(m.highlighted, seg.TokenIndex)
		}
	}

	log.Debug(log.CatUI, "token view content",
		"key", m.derivation.Key, "segments", len(m.derivation.Segments), "highlighted", len(m.highlighted))
}

// refresh re-renders the viewport content from the current derivation and state.
func (m Model) refresh() Model {
	m.viewport.SetContent(m.renderContent())
	return m
}

func (m Model) renderContent() string {
	if len(m.derivation.Segments) == 0 {
		return ""
	}

	policy := m.deriver.Policy()
	pal := newPalette(m.dark)

	var b strings.Builder
	for _, seg := range m.derivation.Segments {
		if !seg.IsToken || !policy.Highlighted(seg.Token.AIProbability) {
			b.WriteString(renderLines(pal.plain, seg.Text))
			continue
		}
		style := pal.token(policy, seg.Token.AIProbability, m.state.IsHovered(seg.TokenIndex))
		b.WriteString(zone.Mark(m.zoneID(seg.TokenIndex), renderLines(style, seg.Text)))
	}

	return wrapText(b.String(), m.contentWidth())
}

// wrapText breaks lines at spaces and then hard-breaks any word still wider
// than width.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wrap.String(wordwrap.String(s, width), width)
}

func (m Model) contentWidth() int {
	if m.wrapWidth > 0 && (m.width <= 0 || m.wrapWidth < m.width) {
		return m.wrapWidth
	}
	return m.width
}

// lineOf returns the wrapped line the token at index starts on. Wrapping is
// greedy, so wrapping the text up to the end of the token's word breaks
// exactly like the full text does. The token's first line is found by walking
// back over its runes from the end of that prefix.
func (m Model) lineOf(index int) (int, bool) {
	i := slices.IndexFunc(m.derivation.Positions, func(p highlight.Position) bool {
		return p.TokenIndex == index
	})
	if i < 0 {
		return 0, false
	}

	end := m.derivation.Positions[i].End
	for end < len(m.text) {
		r, size := utf8.DecodeRuneInString(m.text[end:])
		if unicode.IsSpace(r) {
			break
		}
		end += size
	}

	// Rendering expands tabs the same way.
	prefix := strings.ReplaceAll(m.text[:end], "\t", "    ")
	wrapped := wrapText(prefix, m.contentWidth())

	line := strings.Count(wrapped, "\n")
	remaining := utf8.RuneCountInString(m.text[m.derivation.Positions[i].Start:end])
	for j := len(wrapped); remaining > 0 && j > 0; {
		r, size := utf8.DecodeLastRuneInString(wrapped[:j])
		j -= size
		if r == '\n' {
			line--
			continue
		}
		remaining--
	}
	return line, true
}

func (m Model) tokenAt(msg tea.MouseMsg) (int, bool) {
	for _, idx := range m.highlighted {
		if z := zone.Get(m.zoneID(idx)); z != nil && z.InBounds(msg) {
			return idx, true
		}
	}
	return 0, false
}

func (m Model) zoneID(index int) string {
	return m.zonePrefix + strconv.Itoa(index)
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
