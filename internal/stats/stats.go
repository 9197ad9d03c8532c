// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/zencounter/internal/model"
	"github.com/verte-zerg/zencounter/internal/scoring"
)

const sparkChars = " .:-=+*#%@"

// CardsPerMinute computes dealing pace.
func CardsPerMinute(cards, elapsedSec int) float64 {
	if elapsedSec <= 0 {
		return 0
	}
	return float64(cards) / (float64(elapsedSec) / 60.0)
}

// Accuracy returns the share of correct sessions.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Tail keeps the last n values so a sparkline fits n columns.
func Tail(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

// RenderSummary prints a summary for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var correct, exams, examCorrect, cards, elapsed int
	bestPace := 0.0
	for _, s := range sessions {
		if s.Correct {
			correct++
		}
		if s.Mode == model.ModeExam {
			exams++
			if s.Correct {
				examCorrect++
			}
		}
		cards += s.CardsDealt
		elapsed += s.ElapsedSec
		if pace := CardsPerMinute(s.CardsDealt, s.ElapsedSec); pace > bestPace {
			bestPace = pace
		}
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d (%d exam)", len(sessions), exams),
		fmt.Sprintf("Accuracy: %.2f%%", Accuracy(correct, len(sessions))*100),
		fmt.Sprintf("Exam accuracy: %.2f%%", Accuracy(examCorrect, exams)*100),
		fmt.Sprintf("Cards dealt: %d", cards),
		fmt.Sprintf("Avg pace: %.1f cards/min", CardsPerMinute(cards, elapsed)),
		fmt.Sprintf("Best pace: %.1f cards/min", bestPace),
		fmt.Sprintf("Time trained: %s", scoring.FormatElapsed(elapsed)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints the exam accuracy curve and the pace curve as sparklines.
// Practice sessions are self-graded, so only exams feed the accuracy curve.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window, width int) error {
	if len(sessions) == 0 {
		return nil
	}
	var accs []float64
	paces := make([]float64, len(sessions))
	for i, s := range sessions {
		if s.Mode == model.ModeExam {
			acc := 0.0
			if s.Correct {
				acc = 100
			}
			accs = append(accs, acc)
		}
		paces[i] = CardsPerMinute(s.CardsDealt, s.ElapsedSec)
	}

	cols := width - 12
	if cols < 10 {
		cols = 10
	}
	paces = Tail(MovingAverage(paces, window), cols)

	if _, err := fmt.Fprintf(w, "Learning Curves (window %d)\n", window); err != nil {
		return err
	}
	if len(accs) == 0 {
		if _, err := fmt.Fprintln(w, "Accuracy  no exam sessions"); err != nil {
			return err
		}
	} else {
		accs = Tail(MovingAverage(accs, window), cols)
		if _, err := fmt.Fprintf(w, "Accuracy  |%s| %.0f%%\n", Sparkline(accs), accs[len(accs)-1]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Pace      |%s| %.1f/min\n", Sparkline(paces), paces[len(paces)-1]); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderDeckTable prints accuracy grouped by shoe size.
func RenderDeckTable(w io.Writer, aggs []model.DeckAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No deck stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "By Shoe Size"); err != nil {
		return err
	}
	tbl := newTable(
		column{title: "Decks", align: alignRight},
		column{title: "Sessions", align: alignRight},
		column{title: "Accuracy", align: alignRight},
		column{title: "Pace (cards/min)", align: alignRight},
	)
	for _, a := range aggs {
		tbl.addRow(
			fmt.Sprintf("%d", a.Decks),
			fmt.Sprintf("%d", a.Sessions),
			fmt.Sprintf("%.2f%%", Accuracy(a.Correct, a.Sessions)*100),
			fmt.Sprintf("%.1f", CardsPerMinute(a.CardsDealt, a.ElapsedSec)),
		)
	}
	return tbl.write(w)
}

// RenderRecent prints the most recent sessions, newest first.
func RenderRecent(w io.Writer, sessions []model.SessionAggregate, limit int) error {
	if len(sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Recent Sessions"); err != nil {
		return err
	}
	tbl := newTable(
		column{title: "Ended"},
		column{title: "Mode"},
		column{title: "Decks", align: alignRight},
		column{title: "Cards", align: alignRight},
		column{title: "Count", align: alignRight},
		column{title: "Answer", align: alignRight},
		column{title: "Time", align: alignRight},
		column{},
	)
	for i := len(sessions) - 1; i >= 0 && (limit <= 0 || len(tbl.rows) < limit); i-- {
		s := sessions[i]
		mark := "ok"
		if !s.Correct {
			mark = "miss"
		}
		tbl.addRow(
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			string(s.Mode),
			fmt.Sprintf("%d", s.Decks),
			fmt.Sprintf("%d", s.CardsDealt),
			scoring.FormatCount(s.ActualCount),
			scoring.FormatCount(s.UserCount),
			scoring.FormatElapsed(s.ElapsedSec),
			mark,
		)
	}
	return tbl.write(w)
}
