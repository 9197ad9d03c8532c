package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/zencounter/internal/model"
	"github.com/verte-zerg/zencounter/internal/store"
)

func seedStore(t *testing.T) (*store.Store, []int64) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "zencounter.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		rec := model.SessionRecord{
			StartedAt: start,
			EndedAt:   end,
			CardSpeed: 1.5,
			Mode:      model.ModeExam,
			Result: model.SessionResult{
				ActualCount: 1,
				UserCount:   1,
				IsCorrect:   true,
				CardsDealt:  20,
				DecksUsed:   1 + i%2,
				TimeElapsed: 30,
			},
		}
		id, err := st.InsertSession(ctx, rec)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}
	return st, ids
}

func TestBuildReport(t *testing.T) {
	st, ids := seedStore(t)
	cfg := model.StatsConfig{
		Last:        2,
		CurveWindow: 1,
	}
	report, err := BuildReport(context.Background(), st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 1 || report.WindowSessionIDs[0] != ids[2] {
		t.Fatalf("unexpected window session ids: %v", report.WindowSessionIDs)
	}
	if len(report.DeckAggsAll) != 2 {
		t.Fatalf("expected 2 deck groups, got %+v", report.DeckAggsAll)
	}
	if len(report.DeckAggsWindow) != 1 || report.DeckAggsWindow[0].Decks != 1 {
		t.Fatalf("unexpected window deck groups: %+v", report.DeckAggsWindow)
	}
}

func TestRenderTextAndYAML(t *testing.T) {
	st, _ := seedStore(t)
	report, err := BuildReport(context.Background(), st, model.StatsConfig{CurveWindow: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	var text bytes.Buffer
	if err := RenderText(&text, report, 2, 60); err != nil {
		t.Fatalf("render text: %v", err)
	}
	for _, needle := range []string{"Summary", "Learning Curves", "By Shoe Size", "Recent Sessions"} {
		if !strings.Contains(text.String(), needle) {
			t.Fatalf("text report missing %q", needle)
		}
	}

	var out bytes.Buffer
	if err := RenderYAML(&out, report); err != nil {
		t.Fatalf("render yaml: %v", err)
	}
	for _, needle := range []string{"sessions:", "by_decks:", "mode: exam", "cards_dealt: 20"} {
		if !strings.Contains(out.String(), needle) {
			t.Fatalf("yaml report missing %q:\n%s", needle, out.String())
		}
	}
}
