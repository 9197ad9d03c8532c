// Package engine runs a Hi-Lo training session: dealing, running count, pause/check/finish.
//
// An Engine is owned by a single driver and is not safe for concurrent use.
// Commands never fail on a wrong state; they return false and leave the session untouched.
package engine

import (
	"fmt"
	"time"

	"github.com/verte-zerg/zencounter/internal/deck"
	"github.com/verte-zerg/zencounter/internal/model"
	"github.com/verte-zerg/zencounter/internal/scoring"
	"github.com/verte-zerg/zencounter/internal/settings"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// DeckSource builds the shoe for a new session.
type DeckSource func(numberOfDecks int) deck.Deck

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithRand sets the shuffle source.
func WithRand(src deck.Source) Option {
	return func(e *Engine) {
		e.rnd = src
	}
}

// WithDeckSource replaces shoe construction entirely.
func WithDeckSource(fn DeckSource) Option {
	return func(e *Engine) {
		e.deckSource = fn
	}
}

type session struct {
	status       model.Status
	deck         deck.Deck
	currentIndex int
	runningCount int
	startedAt    time.Time
	endedAt      time.Time
	settings     model.Settings
}

// Engine owns the current session and its last result.
type Engine struct {
	clock      Clock
	rnd        deck.Source
	deckSource DeckSource

	sess     *session
	result   *model.SessionResult
	checking bool
}

// New constructs an idle Engine.
func New(opts ...Option) *Engine {
	e := &Engine{clock: systemClock{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = deck.NewSource(0)
	}
	if e.deckSource == nil {
		e.deckSource = func(n int) deck.Deck {
			return deck.NewShoe(n, e.rnd)
		}
	}
	return e
}

// Start begins a new session from a settings snapshot, replacing any existing one.
// The first card is dealt immediately.
func (e *Engine) Start(s model.Settings) error {
	if err := settings.Validate(s); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	shoe := e.deckSource(s.NumberOfDecks)
	if len(shoe) == 0 {
		return fmt.Errorf("start session: %w: empty shoe", settings.ErrInvalidSettings)
	}
	e.sess = &session{
		status:       model.StatusPlaying,
		deck:         shoe,
		currentIndex: 0,
		runningCount: shoe[0].HiLo(),
		startedAt:    e.clock.Now(),
		settings:     s,
	}
	e.result = nil
	e.checking = false
	return nil
}

// DealNext reveals the next card while playing. On the last card it moves the
// session to deck_exhausted and leaves the index and count unchanged.
func (e *Engine) DealNext() bool {
	if !e.is(model.StatusPlaying) {
		return false
	}
	next := e.sess.currentIndex + 1
	if next >= len(e.sess.deck) {
		e.sess.status = model.StatusDeckExhausted
		return true
	}
	e.sess.currentIndex = next
	e.sess.runningCount += e.sess.deck[next].HiLo()
	return true
}

// Pause suspends a playing session.
func (e *Engine) Pause() bool {
	if !e.is(model.StatusPlaying) {
		return false
	}
	e.sess.status = model.StatusPaused
	return true
}

// Resume continues a paused session. It is a no-op while a check result is shown.
func (e *Engine) Resume() bool {
	if !e.is(model.StatusPaused) || e.checking {
		return false
	}
	e.sess.status = model.StatusPlaying
	return true
}

// CheckCount scores userCount against the current running count without ending the session.
func (e *Engine) CheckCount(userCount int) bool {
	if !e.is(model.StatusPaused) {
		return false
	}
	res := scoring.Derive(e.scoringInput(e.clock.Now()), &userCount)
	e.result = &res
	e.checking = true
	return true
}

// ContinueFromCheck discards the check result and leaves the session paused.
func (e *Engine) ContinueFromCheck() bool {
	if e.sess == nil || !e.checking {
		return false
	}
	e.checking = false
	e.result = nil
	e.sess.status = model.StatusPaused
	return true
}

// Finish ends the session and records the authoritative result. A nil userCount
// self-grades against the running count. Finishing twice is a no-op.
func (e *Engine) Finish(userCount *int) bool {
	if e.sess == nil {
		return false
	}
	switch e.sess.status {
	case model.StatusPlaying, model.StatusPaused, model.StatusDeckExhausted:
	default:
		return false
	}
	e.sess.endedAt = e.clock.Now()
	e.sess.status = model.StatusFinished
	res := scoring.Derive(e.scoringInput(e.sess.endedAt), userCount)
	e.result = &res
	e.checking = false
	return true
}

// Reset discards the session and any result.
func (e *Engine) Reset() {
	e.sess = nil
	e.result = nil
	e.checking = false
}

func (e *Engine) is(status model.Status) bool {
	return e.sess != nil && e.sess.status == status
}

func (e *Engine) scoringInput(end time.Time) scoring.Input {
	return scoring.Input{
		RunningCount: e.sess.runningCount,
		CurrentIndex: e.sess.currentIndex,
		Decks:        e.sess.settings.NumberOfDecks,
		StartedAt:    e.sess.startedAt,
		EndedAt:      end,
	}
}
