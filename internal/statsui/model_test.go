package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/zencounter/internal/model"
	"github.com/verte-zerg/zencounter/internal/store"
)

func TestCurveWindowBounds(t *testing.T) {
	if nextCurveWindow(0) != 1 || nextCurveWindow(5) != 6 || nextCurveWindow(maxCurveWindow) != maxCurveWindow {
		t.Fatalf("unexpected next window")
	}
	if prevCurveWindow(1) != 1 || prevCurveWindow(5) != 4 {
		t.Fatalf("unexpected prev window")
	}
}

func TestModelRendersReport(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "zencounter.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	start := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	_, err = st.InsertSession(context.Background(), model.SessionRecord{
		StartedAt: start,
		EndedAt:   start.Add(time.Minute),
		CardSpeed: 1,
		Mode:      model.ModeExam,
		Result:    model.SessionResult{ActualCount: 2, UserCount: 2, IsCorrect: true, CardsDealt: 52, DecksUsed: 1, TimeElapsed: 60},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	m := NewModel(st, model.StatsConfig{CurveWindow: 5})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()
	for _, needle := range []string{"ZenCounter stats", "window=5", "Sessions: 1 (1 exam)"} {
		if !strings.Contains(view, needle) {
			t.Fatalf("view missing %q:\n%s", needle, view)
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("=")})
	if m.cfg.CurveWindow != 6 {
		t.Fatalf("expected window 6, got %d", m.cfg.CurveWindow)
	}
}
