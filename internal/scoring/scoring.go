// Package scoring derives session results from engine state.
package scoring

import (
	"fmt"
	"time"

	"github.com/verte-zerg/zencounter/internal/model"
)

// Input is the part of a session a result is computed from.
type Input struct {
	RunningCount int
	CurrentIndex int
	Decks        int
	StartedAt    time.Time
	// EndedAt is the finish time, or the current time for a mid-session check.
	EndedAt time.Time
}

// Derive scores a session. A nil userCount counts as self-graded and matches the running count.
func Derive(in Input, userCount *int) model.SessionResult {
	user := in.RunningCount
	if userCount != nil {
		user = *userCount
	}
	return model.SessionResult{
		ActualCount: in.RunningCount,
		UserCount:   user,
		IsCorrect:   user == in.RunningCount,
		CardsDealt:  in.CurrentIndex + 1,
		DecksUsed:   in.Decks,
		TimeElapsed: ElapsedSeconds(in.StartedAt, in.EndedAt),
	}
}

// ElapsedSeconds returns whole seconds between start and end, never negative.
func ElapsedSeconds(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// FormatCount renders a count with an explicit sign.
func FormatCount(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

// FormatElapsed renders seconds as m:ss.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
