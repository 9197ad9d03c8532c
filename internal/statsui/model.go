// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/zencounter/internal/model"
	"github.com/verte-zerg/zencounter/internal/stats"
	"github.com/verte-zerg/zencounter/internal/store"
)

const maxCurveWindow = 100

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	viewport viewport.Model
	width    int
	height   int
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store:    st,
		cfg:      cfg,
		viewport: viewport.New(0, 0),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = maxInt(1, msg.Height-2)
		m.renderContent()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := titleStyle.Render("ZenCounter stats") + "  " + headerStyle.Render(m.filterSummary())
	footer := headerStyle.Render("Scroll: up/down/pgup/pgdn  Window: -/=  Quit: q")
	if m.errMsg != "" {
		footer = errorStyle.Render(m.errMsg)
	}
	return strings.Join([]string{header, m.viewport.View(), footer}, "\n")
}

func (m *Model) filterSummary() string {
	decks := "any"
	if m.cfg.Decks > 0 {
		decks = fmt.Sprintf("%d", m.cfg.Decks)
	}
	mode := "any"
	if m.cfg.Mode != "" {
		mode = string(m.cfg.Mode)
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = fmt.Sprintf("%d", m.cfg.Last)
	}
	return fmt.Sprintf("decks=%s  mode=%s  since=%s  last=%s  window=%d", decks, mode, since, last, m.cfg.CurveWindow)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.viewport.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.renderContent()
}

func (m *Model) renderContent() {
	var buf bytes.Buffer
	if err := stats.RenderText(&buf, m.report, m.cfg.CurveWindow, m.width); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.viewport.SetContent(buf.String())
}

func nextCurveWindow(w int) int {
	if w < 1 {
		return 1
	}
	if w >= maxCurveWindow {
		return maxCurveWindow
	}
	return w + 1
}

func prevCurveWindow(w int) int {
	if w <= 1 {
		return 1
	}
	return w - 1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
