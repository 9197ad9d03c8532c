package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/zencounter/internal/deck"
	"github.com/verte-zerg/zencounter/internal/scoring"
)

const cardInnerWidth = 9

var (
	cardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Background(lipgloss.Color("#F0F0F0"))
	redSuitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D64545")).Background(lipgloss.Color("#F0F0F0"))
	blackSuitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#18181B")).Background(lipgloss.Color("#F0F0F0"))
	plusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#18181B")).Background(lipgloss.Color("#4ADE80")).Bold(true).Padding(0, 1)
	zeroStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#18181B")).Background(lipgloss.Color("#B0B0B0")).Bold(true).Padding(0, 1)
	minusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#D64545")).Bold(true).Padding(0, 1)
)

// cardFaceLines lays out the unstyled face: rank in the corners, suit in the middle.
func cardFaceLines(c deck.Card) []string {
	rank := c.Rank().String()
	suit := c.Suit().Symbol()
	blank := strings.Repeat(" ", cardInnerWidth)
	mid := runewidth.FillLeft(suit, (cardInnerWidth+runewidth.StringWidth(suit))/2)
	return []string{
		runewidth.FillRight(rank, cardInnerWidth),
		blank,
		runewidth.FillRight(mid, cardInnerWidth),
		blank,
		runewidth.FillLeft(rank, cardInnerWidth),
	}
}

func renderCard(c deck.Card) string {
	style := blackSuitStyle
	if c.Suit().Red() {
		style = redSuitStyle
	}
	lines := cardFaceLines(c)
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return cardFrameStyle.Render(strings.Join(lines, "\n"))
}

func renderBadge(value int) string {
	label := scoring.FormatCount(value)
	switch {
	case value > 0:
		return plusStyle.Render(label)
	case value < 0:
		return minusStyle.Render(label)
	default:
		return zeroStyle.Render("0")
	}
}

// RenderReference draws the Hi-Lo value table.
func RenderReference() string {
	rows := []struct {
		cards string
		value int
	}{
		{cards: "2, 3, 4, 5, 6", value: 1},
		{cards: "7, 8, 9", value: 0},
		{cards: "10, J, Q, K, A", value: -1},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := runewidth.FillRight(r.cards, 16)
		lines = append(lines, valueStyle.Render(label)+renderBadge(r.value))
	}
	return strings.Join(lines, "\n")
}
