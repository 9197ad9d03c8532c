// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/zencounter/internal/model"
	"github.com/verte-zerg/zencounter/internal/store"
)

const (
	defaultWidth = 80
	recentLimit  = 10
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate `yaml:"sessions"`
	WindowSessionIDs []int64                  `yaml:"-"`
	DeckAggsAll      []model.DeckAggregate    `yaml:"by_decks"`
	DeckAggsWindow   []model.DeckAggregate    `yaml:"by_decks_window"`
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	deckAggsAll, err := st.ListDeckAggregates(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	deckAggsWindow, err := st.ListDeckAggregates(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		DeckAggsAll:      deckAggsAll,
		DeckAggsWindow:   deckAggsWindow,
	}, nil
}

// RenderText prints the full report sized to width columns.
func RenderText(w io.Writer, r Report, window, width int) error {
	if width <= 0 {
		width = defaultWidth
	}
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if len(r.Sessions) == 0 {
		return nil
	}
	if err := RenderCurves(w, r.Sessions, window, width); err != nil {
		return err
	}
	if err := RenderDeckTable(w, r.DeckAggsAll); err != nil {
		return err
	}
	return RenderRecent(w, r.Sessions, recentLimit)
}

// RenderYAML writes the report as YAML.
func RenderYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// TerminalWidth returns the width of f when it is a terminal.
func TerminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
