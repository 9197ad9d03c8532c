// Package tui provides the Bubble Tea counting trainer.
package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/zencounter/internal/engine"
	"github.com/verte-zerg/zencounter/internal/model"
	"github.com/verte-zerg/zencounter/internal/settings"
)

type screen int

const (
	screenHome screen = iota
	screenTraining
	screenResults
)

type inputKind int

const (
	inputNone inputKind = iota
	inputCheck
	inputFinal
)

// Recorder stores finished sessions.
type Recorder interface {
	InsertSession(ctx context.Context, rec model.SessionRecord) (int64, error)
}

// Model implements the Bubble Tea trainer UI. It is the only driver of its engine.
type Model struct {
	engine   *engine.Engine
	settings *settings.Holder
	recorder Recorder

	screen  screen
	dealGen int

	input      inputKind
	countInput textinput.Model
	inputErr   string
	errMsg     string

	width  int
	height int
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80")).Bold(true)
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	modalStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// NewModel constructs a trainer model. recorder may be nil.
func NewModel(e *engine.Engine, holder *settings.Holder, recorder Recorder) *Model {
	m := &Model{
		engine:   e,
		settings: holder,
		recorder: recorder,
	}
	m.countInput = newCountInput()
	return m
}

func newCountInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "Count: "
	input.Placeholder = "0"
	input.CharLimit = 5
	input.Width = 8
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
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
		return m, nil
	case dealTickMsg:
		return m, m.handleDealTick(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelDealer()
			return m, tea.Quit
		}
		if m.input != inputNone {
			return m.updateCountInput(msg)
		}
		switch m.screen {
		case screenHome:
			return m.updateHome(msg)
		case screenTraining:
			return m.updateTraining(msg)
		case screenResults:
			return m.updateResults(msg)
		}
	default:
		if m.input != inputNone {
			var cmd tea.Cmd
			m.countInput, cmd = m.countInput.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter", "s", " ":
		return m, m.startSession()
	case "]", "right":
		m.settings.IncrementDecks()
	case "[", "left":
		m.settings.DecrementDecks()
	case "=", "+", "up":
		m.settings.IncrementSpeed()
	case "-", "down":
		m.settings.DecrementSpeed()
	case "v":
		m.settings.ToggleShowCardValue()
	case "n":
		m.settings.ToggleShowRunningCount()
	case "r":
		m.settings.Reset()
	}
	return m, nil
}

func (m *Model) updateTraining(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	status, ok := m.engine.Status()
	if !ok {
		m.screen = screenHome
		return m, nil
	}
	key := msg.String()
	switch key {
	case "=", "+":
		m.settings.IncrementSpeed()
		return m, nil
	case "-":
		m.settings.DecrementSpeed()
		return m, nil
	case "v":
		m.settings.ToggleShowCardValue()
		return m, nil
	case "n":
		m.settings.ToggleShowRunningCount()
		return m, nil
	}
	switch status {
	case model.StatusPlaying:
		switch key {
		case " ", "p", "esc":
			m.pause()
		}
	case model.StatusPaused:
		switch key {
		case " ", "p", "enter":
			return m, m.resume()
		case "c":
			m.openCountInput(inputCheck)
			return m, textinput.Blink
		case "e", "q":
			m.endSession()
		}
	}
	return m, nil
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", "c", "r":
		if m.engine.CheckingCount() {
			m.engine.ContinueFromCheck()
			m.screen = screenTraining
			return m, nil
		}
		m.engine.Reset()
		return m, m.startSession()
	case "h", "esc":
		m.endSession()
	}
	return m, nil
}

func (m *Model) updateCountInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.input == inputCheck {
			m.closeCountInput()
		}
		return m, nil
	case tea.KeyEnter:
		raw := strings.TrimSpace(m.countInput.Value())
		if raw == "" {
			raw = m.countInput.Placeholder
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			m.inputErr = "enter a whole number, e.g. -3 or 4"
			return m, nil
		}
		kind := m.input
		m.closeCountInput()
		if kind == inputCheck {
			if m.engine.CheckCount(value) {
				m.screen = screenResults
			}
			return m, nil
		}
		m.finish(&value)
		return m, nil
	}
	var cmd tea.Cmd
	m.countInput, cmd = m.countInput.Update(msg)
	m.inputErr = ""
	return m, cmd
}

func (m *Model) startSession() tea.Cmd {
	if err := m.engine.Start(m.settings.Get()); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.errMsg = ""
	m.screen = screenTraining
	return m.armDealer()
}

func (m *Model) pause() {
	if m.engine.Pause() {
		m.cancelDealer()
	}
}

// resume rearms a fresh tick; ticks missed while paused are not replayed.
func (m *Model) resume() tea.Cmd {
	if !m.engine.Resume() {
		return nil
	}
	return m.armDealer()
}

func (m *Model) finish(userCount *int) {
	m.cancelDealer()
	if !m.engine.Finish(userCount) {
		return
	}
	mode := model.ModeExam
	if userCount == nil {
		mode = model.ModePractice
	}
	m.recordSession(mode)
	m.screen = screenResults
}

func (m *Model) endSession() {
	m.cancelDealer()
	m.closeCountInput()
	m.engine.Reset()
	m.screen = screenHome
}

func (m *Model) openCountInput(kind inputKind) {
	m.input = kind
	m.inputErr = ""
	m.countInput.Reset()
	m.countInput.Focus()
}

func (m *Model) closeCountInput() {
	m.input = inputNone
	m.inputErr = ""
	m.countInput.Blur()
}

func (m *Model) recordSession(mode model.Mode) {
	if m.recorder == nil {
		return
	}
	res, ok := m.engine.Result()
	if !ok {
		return
	}
	snap, _ := m.engine.Settings()
	rec := model.SessionRecord{
		StartedAt: m.engine.StartedAt(),
		EndedAt:   m.engine.EndedAt(),
		CardSpeed: snap.CardSpeed,
		Mode:      mode,
		Result:    res,
	}
	if _, err := m.recorder.InsertSession(context.Background(), rec); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
