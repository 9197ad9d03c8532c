package engine

import (
	"time"

	"github.com/verte-zerg/zencounter/internal/deck"
	"github.com/verte-zerg/zencounter/internal/model"
	"github.com/verte-zerg/zencounter/internal/scoring"
)

// Active reports whether a session exists.
func (e *Engine) Active() bool {
	return e.sess != nil
}

// Status returns the session status and false when idle.
func (e *Engine) Status() (model.Status, bool) {
	if e.sess == nil {
		return "", false
	}
	return e.sess.status, true
}

// CurrentCard returns the last dealt card.
func (e *Engine) CurrentCard() (deck.Card, bool) {
	if e.sess == nil {
		return deck.Card{}, false
	}
	return e.sess.deck[e.sess.currentIndex], true
}

// CurrentIndex returns the index of the last dealt card, or -1 when idle.
func (e *Engine) CurrentIndex() int {
	if e.sess == nil {
		return -1
	}
	return e.sess.currentIndex
}

// CardsDealt returns how many cards have been revealed.
func (e *Engine) CardsDealt() int {
	if e.sess == nil {
		return 0
	}
	return e.sess.currentIndex + 1
}

// CardsRemaining returns how many cards are left in the shoe.
func (e *Engine) CardsRemaining() int {
	if e.sess == nil {
		return 0
	}
	return len(e.sess.deck) - (e.sess.currentIndex + 1)
}

// TotalCards returns the shoe size.
func (e *Engine) TotalCards() int {
	if e.sess == nil {
		return 0
	}
	return len(e.sess.deck)
}

// RunningCount returns the sum of Hi-Lo values dealt so far.
func (e *Engine) RunningCount() int {
	if e.sess == nil {
		return 0
	}
	return e.sess.runningCount
}

// CheckingCount reports whether a mid-session check result is being shown.
func (e *Engine) CheckingCount() bool {
	return e.checking
}

// Result returns the last check or finish result.
func (e *Engine) Result() (model.SessionResult, bool) {
	if e.result == nil {
		return model.SessionResult{}, false
	}
	return *e.result, true
}

// Settings returns the snapshot the session was started with.
func (e *Engine) Settings() (model.Settings, bool) {
	if e.sess == nil {
		return model.Settings{}, false
	}
	return e.sess.settings, true
}

// StartedAt returns the session start time.
func (e *Engine) StartedAt() time.Time {
	if e.sess == nil {
		return time.Time{}
	}
	return e.sess.startedAt
}

// EndedAt returns the finish time, zero until finished.
func (e *Engine) EndedAt() time.Time {
	if e.sess == nil {
		return time.Time{}
	}
	return e.sess.endedAt
}

// Elapsed returns whole seconds since start, frozen once finished.
func (e *Engine) Elapsed() int {
	if e.sess == nil {
		return 0
	}
	end := e.sess.endedAt
	if end.IsZero() {
		end = e.clock.Now()
	}
	return scoring.ElapsedSeconds(e.sess.startedAt, end)
}

// Verify recomputes the running count from the dealt cards and compares it.
func (e *Engine) Verify() bool {
	if e.sess == nil {
		return true
	}
	return deck.RunningCount(e.sess.deck[:e.sess.currentIndex+1]) == e.sess.runningCount
}
