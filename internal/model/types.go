// Package model defines shared data structures.
package model

import "time"

// Settings defines training session parameters.
type Settings struct {
	NumberOfDecks    int
	CardSpeed        float64
	ShowCardValue    bool
	ShowRunningCount bool
}

// Status is the state of an active training session.
type Status string

const (
	StatusPlaying       Status = "playing"
	StatusPaused        Status = "paused"
	StatusDeckExhausted Status = "deck_exhausted"
	StatusFinished      Status = "finished"
)

// Mode records how a finished session was scored.
type Mode string

const (
	// ModePractice sessions end without a submitted count and are self-graded.
	ModePractice Mode = "practice"
	// ModeExam sessions are scored against a count entered by the learner.
	ModeExam Mode = "exam"
)

// SessionResult is the scored snapshot of a session.
type SessionResult struct {
	ActualCount int  `yaml:"actual_count"`
	UserCount   int  `yaml:"user_count"`
	IsCorrect   bool `yaml:"is_correct"`
	CardsDealt  int  `yaml:"cards_dealt"`
	DecksUsed   int  `yaml:"decks_used"`
	// TimeElapsed is in whole seconds.
	TimeElapsed int `yaml:"time_elapsed"`
}

// SessionRecord captures a finished session for the history store.
type SessionRecord struct {
	StartedAt time.Time
	EndedAt   time.Time
	CardSpeed float64
	Mode      Mode
	Result    SessionResult
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	Decks       int
	Mode        Mode
	CurveWindow int
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID   int64     `yaml:"id"`
	EndedAt     time.Time `yaml:"ended_at"`
	Decks       int       `yaml:"decks"`
	CardSpeed   float64   `yaml:"speed"`
	Mode        Mode      `yaml:"mode"`
	CardsDealt  int       `yaml:"cards_dealt"`
	ActualCount int       `yaml:"actual_count"`
	UserCount   int       `yaml:"user_count"`
	Correct     bool      `yaml:"correct"`
	ElapsedSec  int       `yaml:"elapsed_sec"`
}

// DeckAggregate aggregates sessions sharing a deck count.
type DeckAggregate struct {
	Decks      int `yaml:"decks"`
	Sessions   int `yaml:"sessions"`
	Correct    int `yaml:"correct"`
	CardsDealt int `yaml:"cards_dealt"`
	ElapsedSec int `yaml:"elapsed_sec"`
}
