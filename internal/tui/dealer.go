package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/zencounter/internal/model"
)

// dealTickMsg fires once per scheduled deal. Ticks from an older generation are stale.
type dealTickMsg struct {
	gen int
}

// armDealer schedules the next deal using the live card speed.
func (m *Model) armDealer() tea.Cmd {
	m.dealGen++
	gen := m.dealGen
	interval := speedInterval(m.settings.Get().CardSpeed)
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return dealTickMsg{gen: gen}
	})
}

// cancelDealer invalidates any pending tick.
func (m *Model) cancelDealer() {
	m.dealGen++
}

func (m *Model) handleDealTick(msg dealTickMsg) tea.Cmd {
	if msg.gen != m.dealGen {
		return nil
	}
	status, ok := m.engine.Status()
	if !ok || status != model.StatusPlaying {
		return nil
	}
	m.engine.DealNext()
	if status, _ := m.engine.Status(); status == model.StatusDeckExhausted {
		m.onDeckExhausted()
		return nil
	}
	return m.armDealer()
}

// onDeckExhausted finishes immediately when the learner could see the running
// count; otherwise it asks for a final count.
func (m *Model) onDeckExhausted() {
	m.cancelDealer()
	if m.settings.Get().ShowRunningCount {
		m.finish(nil)
		return
	}
	m.openCountInput(inputFinal)
}

func speedInterval(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
