package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/zencounter/internal/model"
	"github.com/verte-zerg/zencounter/internal/scoring"
)

// View implements tea.Model.
func (m *Model) View() string {
	var body, footer string
	switch m.screen {
	case screenTraining:
		body = m.renderTraining()
		footer = m.renderTrainingFooter()
	case screenResults:
		body = m.renderResults()
		footer = m.renderResultsHelp()
	default:
		body = m.renderHome()
		footer = footerStyle.Render("start: enter  decks: [ ]  speed: - =  value: v  count: n  defaults: r  quit: q")
	}
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	main := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	return main + "\n" + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m *Model) renderHome() string {
	s := m.settings.Get()
	rows := []string{
		settingRow("Decks", fmt.Sprintf("%d", s.NumberOfDecks)),
		settingRow("Speed", fmt.Sprintf("%.1fs", s.CardSpeed)),
		settingRow("Show card value", onOff(s.ShowCardValue)),
		settingRow("Show running count", onOff(s.ShowRunningCount)),
	}
	parts := []string{
		titleStyle.Render("ZenCounter"),
		mutedStyle.Render("Hi-Lo card counting trainer"),
		"",
		RenderReference(),
		"",
		strings.Join(rows, "\n"),
	}
	if m.errMsg != "" {
		parts = append(parts, "", wrongStyle.Render(m.errMsg))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderTraining() string {
	if m.input != inputNone {
		return m.renderCountModal()
	}
	status, ok := m.engine.Status()
	if !ok {
		return ""
	}
	if status == model.StatusPaused {
		return m.renderPauseMenu()
	}
	live := m.settings.Get()
	parts := []string{}
	if card, ok := m.engine.CurrentCard(); ok {
		parts = append(parts, renderCard(card))
		if live.ShowCardValue {
			parts = append(parts, "", mutedStyle.Render("Card value ")+renderBadge(card.HiLo()))
		}
	}
	if live.ShowRunningCount {
		parts = append(parts, "", mutedStyle.Render("RUNNING COUNT"), countStyle.Render(scoring.FormatCount(m.engine.RunningCount())))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m *Model) renderPauseMenu() string {
	lines := []string{
		titleStyle.Render("Paused"),
		"",
		valueStyle.Render("enter  resume"),
		valueStyle.Render("c      check count"),
		mutedStyle.Render("e      end session"),
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderCountModal() string {
	var title, hint string
	switch m.input {
	case inputFinal:
		title = "Session Complete"
		hint = fmt.Sprintf("All %d cards dealt. What's your final count?", m.engine.TotalCards())
	default:
		title = "What's the count?"
		hint = "enter: submit  esc: cancel"
	}
	lines := []string{
		titleStyle.Render(title),
		mutedStyle.Render(hint),
		"",
		m.countInput.View(),
	}
	if m.inputErr != "" {
		lines = append(lines, wrongStyle.Render(m.inputErr))
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTrainingFooter() string {
	live := m.settings.Get()
	segments := []string{
		fmt.Sprintf("Cards %d / %d", m.engine.CardsDealt(), m.engine.TotalCards()),
		fmt.Sprintf("Speed %.1fs", live.CardSpeed),
		fmt.Sprintf("Time %s", scoring.FormatElapsed(m.engine.Elapsed())),
	}
	if status, ok := m.engine.Status(); ok && status == model.StatusPlaying {
		segments = append(segments, "pause: space")
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderResults() string {
	res, ok := m.engine.Result()
	if !ok {
		return ""
	}
	var mark, headline, detail string
	userStyle := correctStyle
	if res.IsCorrect {
		mark = correctStyle.Render("✓")
		headline = "Perfect!"
		detail = "You nailed the count"
	} else {
		mark = wrongStyle.Render("✗")
		headline = "Not quite"
		detail = "The correct count was " + scoring.FormatCount(res.ActualCount)
		userStyle = wrongStyle
	}
	counts := lipgloss.JoinHorizontal(lipgloss.Top,
		modalStyle.Render(mutedStyle.Render("Your count")+"\n"+userStyle.Render(scoring.FormatCount(res.UserCount))),
		" ",
		modalStyle.Render(mutedStyle.Render("Actual count")+"\n"+countStyle.Render(scoring.FormatCount(res.ActualCount))),
	)
	details := strings.Join([]string{
		settingRow("Cards dealt", fmt.Sprintf("%d", res.CardsDealt)),
		settingRow("Decks used", fmt.Sprintf("%d", res.DecksUsed)),
		settingRow("Time elapsed", scoring.FormatElapsed(res.TimeElapsed)),
	}, "\n")
	return lipgloss.JoinVertical(lipgloss.Center,
		mark,
		titleStyle.Render(headline),
		mutedStyle.Render(detail),
		"",
		counts,
		"",
		details,
	)
}

func (m *Model) renderResultsHelp() string {
	if m.engine.CheckingCount() {
		return footerStyle.Render("continue: enter  home: h  quit: q")
	}
	return footerStyle.Render("try again: enter  home: h  quit: q")
}

func settingRow(label, value string) string {
	return mutedStyle.Render(fmt.Sprintf("%-20s", label)) + accentStyle.Render(value)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
