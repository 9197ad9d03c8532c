package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/zencounter/internal/model"
)

func TestCardsPerMinute(t *testing.T) {
	if got := CardsPerMinute(104, 0); got != 0 {
		t.Fatalf("expected 0 for zero elapsed, got %v", got)
	}
	if got := CardsPerMinute(52, 30); math.Abs(got-104) > 1e-9 {
		t.Fatalf("expected 104 cards/min, got %v", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{0, 100, 100, 0}, 2)
	want := []float64{0, 50, 100, 50}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 50, 100}); got != " +@" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	line := Sparkline([]float64{0, 100})
	if line[0] != ' ' || line[1] != '@' {
		t.Fatalf("expected extremes to map to ends, got %q", line)
	}
	flat := Sparkline([]float64{3, 3, 3})
	if flat != "+++" {
		t.Fatalf("expected flat line, got %q", flat)
	}
}

func TestTail(t *testing.T) {
	if got := Tail([]float64{1, 2, 3, 4}, 2); len(got) != 2 || got[0] != 3 {
		t.Fatalf("unexpected tail %v", got)
	}
	if got := Tail([]float64{1}, 5); len(got) != 1 {
		t.Fatalf("unexpected tail %v", got)
	}
}

func sampleSessions() []model.SessionAggregate {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return []model.SessionAggregate{
		{SessionID: 1, EndedAt: base, Decks: 1, Mode: model.ModePractice, CardsDealt: 52, ActualCount: 0, UserCount: 0, Correct: true, ElapsedSec: 60},
		{SessionID: 2, EndedAt: base.Add(time.Hour), Decks: 2, Mode: model.ModeExam, CardsDealt: 104, ActualCount: -2, UserCount: 1, Correct: false, ElapsedSec: 120},
		{SessionID: 3, EndedAt: base.Add(2 * time.Hour), Decks: 2, Mode: model.ModeExam, CardsDealt: 104, ActualCount: 3, UserCount: 3, Correct: true, ElapsedSec: 60},
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sampleSessions()); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{
		"Sessions: 3 (2 exam)",
		"Accuracy: 66.67%",
		"Exam accuracy: 50.00%",
		"Cards dealt: 260",
		"Avg pace: 65.0 cards/min",
		"Best pace: 104.0 cards/min",
		"Time trained: 4:00",
	} {
		if !strings.Contains(out, needle) {
			t.Fatalf("summary missing %q:\n%s", needle, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No sessions found." {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderRecentNewestFirst(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderRecent(&buf, sampleSessions(), 2); err != nil {
		t.Fatalf("render recent: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, header and 2 rows, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "+3") || !strings.HasSuffix(strings.TrimRight(lines[2], " "), "ok") {
		t.Fatalf("expected newest session first, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "-2") || !strings.Contains(lines[3], "miss") {
		t.Fatalf("expected missed session second, got %q", lines[3])
	}
}

func TestRenderCurves(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCurves(&buf, sampleSessions(), 2, 40); err != nil {
		t.Fatalf("render curves: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Learning Curves (window 2)") || !strings.Contains(out, "Accuracy  |") || !strings.Contains(out, "Pace      |") {
		t.Fatalf("unexpected curves output:\n%s", out)
	}
	// Exams only: a miss then a hit averages to 50%; the practice session is ignored.
	if !strings.Contains(out, "Accuracy  | @| 50%") {
		t.Fatalf("expected exam-only accuracy curve:\n%s", out)
	}
}

func TestRenderCurvesWithoutExams(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCurves(&buf, sampleSessions()[:1], 2, 40); err != nil {
		t.Fatalf("render curves: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Accuracy  no exam sessions") || !strings.Contains(out, "Pace      |") {
		t.Fatalf("unexpected curves output:\n%s", out)
	}
}
