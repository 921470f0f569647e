// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	bubbleshelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/tokenlens/internal/analysis"
	"github.com/zjrosen/tokenlens/internal/config"
	"github.com/zjrosen/tokenlens/internal/highlight"
	"github.com/zjrosen/tokenlens/internal/interaction"
	"github.com/zjrosen/tokenlens/internal/keys"
	"github.com/zjrosen/tokenlens/internal/log"
	"github.com/zjrosen/tokenlens/internal/ui/help"
	"github.com/zjrosen/tokenlens/internal/ui/markdown"
	"github.com/zjrosen/tokenlens/internal/ui/styles"
	"github.com/zjrosen/tokenlens/internal/ui/toaster"
	"github.com/zjrosen/tokenlens/internal/ui/tokeninfo"
	"github.com/zjrosen/tokenlens/internal/ui/tokenview"
	"github.com/zjrosen/tokenlens/internal/watcher"
)

// ThresholdStep is how much one +/- key press moves the threshold.
const ThresholdStep = 0.05

const toastDuration = 3 * time.Second

// ResultLoadedMsg carries a freshly loaded result, or the error that
// prevented loading it.
type ResultLoadedMsg struct {
	Result analysis.Result
	Err    error
}

// ResultChangedMsg is sent when the watched result file changes on disk.
type ResultChangedMsg struct{}

// Options configures a new Model.
type Options struct {
	Config         config.Config
	Deriver        *highlight.Deriver
	Result         analysis.Result
	ResultPath     string // reloaded on r and on file changes; "-" disables both
	ConfigPath     string // where ctrl+s saves the highlight settings
	DarkBackground bool
}

// Model is the root application state.
type Model struct {
	ctx       context.Context
	sessionID string

	cfg        config.Config
	resultPath string
	configPath string
	keys       keys.KeyMap

	result analysis.Result
	state  interaction.State

	tokenview tokenview.Model
	info      tokeninfo.Model
	help      help.Model
	shortHelp bubbleshelp.Model
	toaster   toaster.Model
	showHelp  bool

	markdown        *markdown.Renderer
	explanation     string
	recommendations string

	width  int
	height int

	// File watcher for auto-reload
	watcherHandle *watcher.Watcher
	changes       <-chan struct{}
}

// New creates the application model and, when enabled, starts watching the
// result file.
func New(opts Options) Model {
	ctx := context.Background()
	km := keys.DefaultKeyMap()

	deriver := opts.Deriver
	if deriver == nil {
		deriver = highlight.NewDeriver(highlight.DefaultPolicy())
	}

	m := Model{
		ctx:        ctx,
		sessionID:  uuid.NewString(),
		cfg:        opts.Config,
		resultPath: opts.ResultPath,
		configPath: opts.ConfigPath,
		keys:       km,
		tokenview: tokenview.New(deriver).
			WithWrapWidth(opts.Config.UI.WrapWidth).
			WithTooltip(opts.Config.UI.ShowTooltip).
			WithDarkBackground(opts.DarkBackground),
		info:      tokeninfo.New(),
		help:      help.New(km).SetPolicy(deriver.Policy()),
		shortHelp: bubbleshelp.New(),
		toaster:   toaster.New(),
	}

	if opts.Config.Watch.Enabled && reloadable(opts.ResultPath) {
		m.watcherHandle, m.changes = startWatcher(opts.ResultPath, opts.Config.Watch.Debounce)
	}

	log.Info(log.CatUI, "session started",
		"session", m.sessionID, "result", opts.ResultPath, "watching", m.watcherHandle != nil)

	return m.applyResult(opts.Result)
}

func startWatcher(path string, debounce time.Duration) (*watcher.Watcher, <-chan struct{}) {
	cfg := watcher.DefaultConfig(path)
	if debounce > 0 {
		cfg.DebounceDur = debounce
	}
	w, err := watcher.New(cfg)
	if err != nil {
		log.Warn(log.CatWatcher, "watcher unavailable", "error", err)
		return nil, nil
	}
	ch, err := w.Start()
	if err != nil {
		_ = w.Stop()
		log.Warn(log.CatWatcher, "watcher failed to start", "error", err)
		return nil, nil
	}
	return w, ch
}

func reloadable(path string) bool {
	return path != "" && path != "-"
}

// Init implements tea.Model. It starts listening for file changes when the
// watcher is running.
func (m Model) Init() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return waitForChange(m.changes)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return ResultChangedMsg{}
	}
}

func (m Model) loadResult() tea.Cmd {
	ctx, path := m.ctx, m.resultPath
	return func() tea.Msg {
		res, err := analysis.Load(ctx, path)
		return ResultLoadedMsg{Result: res, Err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.resize(), nil

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}
		var cmd tea.Cmd
		m.tokenview, cmd = m.tokenview.Update(msg)
		return m, cmd

	case tokenview.HoverMsg:
		return m.setState(m.state.Hover(msg.Index)), nil

	case tokenview.LeaveMsg:
		return m.setState(m.state.Leave(msg.Index)), nil

	case tokenview.SelectMsg:
		return m.selectToken(msg.Token), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResultLoadedMsg:
		if msg.Err != nil {
			log.ErrorErr(log.CatAnalysis, "reload failed", msg.Err, "path", m.resultPath)
			return m.toast(msg.Err.Error(), toaster.StyleError)
		}
		if err := msg.Result.Validate(); err != nil {
			log.Warn(log.CatAnalysis, "rejected reloaded result", "path", m.resultPath, "error", err)
			return m.toast(err.Error(), toaster.StyleError)
		}
		return m.applyResult(msg.Result), nil

	case ResultChangedMsg:
		log.Debug(log.CatWatcher, "result file changed, reloading", "path", m.resultPath)
		return m, tea.Batch(m.loadResult(), waitForChange(m.changes))

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.help = m.help.SetPolicy(m.tokenview.Policy())
		return m, nil

	case key.Matches(msg, m.keys.NextToken):
		return m.step(1), nil

	case key.Matches(msg, m.keys.PrevToken):
		return m.step(-1), nil

	case key.Matches(msg, m.keys.Select):
		idx, ok := m.state.Hovered()
		if !ok {
			return m, nil
		}
		if tok, ok := m.tokenview.Token(idx); ok {
			return m.selectToken(tok), nil
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.info = m.info.Clear()
		return m.setState(m.state.Reset()), nil

	case key.Matches(msg, m.keys.Up):
		m.tokenview = m.tokenview.ScrollBy(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.tokenview = m.tokenview.ScrollBy(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.tokenview = m.tokenview.ScrollBy(-m.tokenview.PageSize())
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.tokenview = m.tokenview.ScrollBy(m.tokenview.PageSize())
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m = m.clear()
		return m.toast("Text cleared", toaster.StyleInfo)

	case key.Matches(msg, m.keys.Reload):
		if !reloadable(m.resultPath) {
			return m.toast("Nothing to reload", toaster.StyleInfo)
		}
		return m, m.loadResult()

	case key.Matches(msg, m.keys.ThresholdUp):
		return m.adjustThreshold(ThresholdStep)

	case key.Matches(msg, m.keys.ThresholdDown):
		return m.adjustThreshold(-ThresholdStep)

	case key.Matches(msg, m.keys.Save):
		return m.saveHighlight()
	}

	return m, nil
}

// applyResult replaces the displayed result. Interaction state survives only
// when the text and token list are unchanged.
func (m Model) applyResult(res analysis.Result) Model {
	if res.ContentKey() != m.result.ContentKey() {
		m.state = m.state.Reset()
		m.info = m.info.Clear()
	}
	m.result = res
	m.tokenview = m.tokenview.SetContent(m.ctx, res.Text, res.Tokens).SetState(m.state)
	m = m.dropStaleHover()
	return m.renderMarkdown()
}

// clear empties the text and every piece of state derived from it.
func (m Model) clear() Model {
	m.result = analysis.Result{}
	m.state = m.state.Reset()
	m.info = m.info.Clear()
	m.tokenview = m.tokenview.Clear()
	log.Debug(log.CatUI, "text cleared", "session", m.sessionID)
	return m.renderMarkdown()
}

func (m Model) setState(s interaction.State) Model {
	m.state = s
	m.tokenview = m.tokenview.SetState(s)
	return m
}

func (m Model) selectToken(tok highlight.Token) Model {
	m.info = m.info.SetToken(tok)
	return m.setState(m.state.Select(tok))
}

func (m Model) step(dir int) Model {
	idx, ok := m.tokenview.Step(dir)
	if !ok {
		return m
	}
	m = m.setState(m.state.Hover(idx))
	m.tokenview = m.tokenview.ScrollTo(idx)
	return m
}

// dropStaleHover clears the hover when its token is no longer highlighted.
func (m Model) dropStaleHover() Model {
	idx, ok := m.state.Hovered()
	if !ok {
		return m
	}
	for _, h := range m.tokenview.Highlighted() {
		if h == idx {
			return m
		}
	}
	return m.setState(m.state.ClearHover())
}

func (m Model) adjustThreshold(delta float64) (tea.Model, tea.Cmd) {
	policy := m.tokenview.Policy()
	next := math.Round((policy.Threshold+delta)*100) / 100
	next = min(max(next, 0), 1)
	if next == policy.Threshold {
		return m, nil
	}
	policy.Threshold = next

	m.tokenview = m.tokenview.SetPolicy(m.ctx, policy)
	m.help = m.help.SetPolicy(policy)
	m = m.dropStaleHover()

	log.Debug(log.CatUI, "threshold changed", "threshold", next)
	return m.toast("Threshold "+highlight.FormatPercent(next), toaster.StyleInfo)
}

func (m Model) saveHighlight() (tea.Model, tea.Cmd) {
	if m.configPath == "" {
		return m.toast("No config file to save to", toaster.StyleError)
	}

	policy := m.tokenview.Policy()
	h := config.HighlightConfig{
		Policy:      string(policy.Mode),
		Threshold:   policy.Threshold,
		BaseOpacity: policy.BaseOpacity,
		MaxOpacity:  policy.MaxOpacity,
	}
	if err := config.SaveHighlight(m.configPath, h); err != nil {
		log.ErrorErr(log.CatConfig, "saving highlight settings failed", err, "path", m.configPath)
		return m.toast("Save failed: "+err.Error(), toaster.StyleError)
	}
	m.cfg.Highlight = h
	return m.toast("Saved threshold "+highlight.FormatPercent(policy.Threshold), toaster.StyleInfo)
}

func (m Model) toast(message string, style toaster.Style) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(message, style, toastDuration)
	return m, cmd
}

// Layout: header line, text pane, details pane, footer line.
func (m Model) paneHeights() (text, details int) {
	body := max(m.height-2, 0)
	text = max(body*3/5, 3)
	return text, max(body-text, 0)
}

func (m Model) resize() Model {
	textHeight, _ := m.paneHeights()
	m.tokenview = m.tokenview.SetSize(max(m.width-2, 1), max(textHeight-2, 1))
	m.info = m.info.SetWidth(max(m.width-4, 1))
	m.help = m.help.SetSize(m.width, m.height)
	m.shortHelp.Width = m.width

	mdWidth := max(m.width-4, 10)
	if m.markdown == nil || m.markdown.Width() != mdWidth {
		r, err := markdown.New(mdWidth, m.cfg.UI.MarkdownStyle)
		if err != nil {
			log.ErrorErr(log.CatUI, "markdown renderer unavailable", err)
		}
		m.markdown = r
	}
	return m.renderMarkdown()
}

// renderMarkdown caches the styled explanation and recommendations so View
// never runs glamour.
func (m Model) renderMarkdown() Model {
	m.explanation, m.recommendations = "", ""
	advice := m.result.Advice()
	if m.markdown == nil {
		m.explanation = m.result.Explanation
		m.recommendations = advice.String()
		return m
	}

	var err error
	if m.explanation, err = m.markdown.Render(m.result.Explanation); err != nil {
		log.ErrorErr(log.CatUI, "rendering explanation", err)
		m.explanation = m.result.Explanation
	}
	if m.recommendations, err = m.markdown.RenderList(advice); err != nil {
		log.ErrorErr(log.CatUI, "rendering recommendations", err)
		m.recommendations = advice.String()
	}
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	textHeight, detailsHeight := m.paneHeights()

	sections := []string{
		m.renderHeader(),
		styles.RenderPane(m.tokenview.View(), "Text", m.width, textHeight, true),
	}
	if detailsHeight > 2 {
		sections = append(sections, styles.RenderPane(m.renderDetails(), "Details", m.width, detailsHeight, false))
	}
	sections = append(sections, m.renderFooter())

	view := strings.Join(sections, "\n")
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	return zone.Scan(view)
}

func (m Model) renderHeader() string {
	header := styles.TitleStyle.Render("tokenlens")
	if m.result.Empty() {
		return header
	}

	verdict := m.result.Verdict()
	badge := verdict.String()
	if m.result.Scored() {
		badge = fmt.Sprintf("%s · %s human", badge, highlight.FormatPercent(m.result.Score))
	}
	chars := fmt.Sprintf("%d/%d chars", analysis.CharCount(m.result.Text), analysis.MaxChars)

	return header + "  " +
		lipgloss.NewStyle().Bold(true).Foreground(verdictColor(verdict)).Render(badge) + "  " +
		styles.HintStyle.Render(chars)
}

func verdictColor(v analysis.Verdict) lipgloss.TerminalColor {
	switch v {
	case analysis.VerdictAI:
		return styles.VerdictAIColor
	case analysis.VerdictUncertain:
		return styles.VerdictUncertainColor
	case analysis.VerdictHuman:
		return styles.VerdictHumanColor
	default:
		return styles.TextMutedColor
	}
}

func (m Model) renderDetails() string {
	var parts []string
	if m.info.HasToken() {
		parts = append(parts, m.info.View())
	}
	if m.explanation != "" {
		parts = append(parts, styles.LabelStyle.Render("Explanation")+"\n"+m.explanation)
	}
	if m.recommendations != "" {
		parts = append(parts, styles.LabelStyle.Render("Recommendations")+"\n"+m.recommendations)
	}
	if len(parts) == 0 {
		return styles.HintStyle.Render("Select a highlighted token to see its details.")
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderFooter() string {
	if m.toaster.Visible() {
		return m.toaster.View()
	}
	return m.shortHelp.ShortHelpView(m.keys.ShortHelp())
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
		m.watcherHandle = nil
	}
	log.Info(log.CatUI, "session ended", "session", m.sessionID)
	return nil
}
