// Package settings validates and holds training settings.
package settings

import (
	"errors"
	"fmt"
	"math"

	"github.com/verte-zerg/zencounter/internal/model"
)

const (
	MinDecks  = 1
	MaxDecks  = 8
	MinSpeed  = 0.5
	MaxSpeed  = 3.0
	SpeedStep = 0.5
	DeckStep  = 1
)

// ErrInvalidSettings reports a deck count or speed outside the allowed range.
var ErrInvalidSettings = errors.New("invalid settings")

// Defaults returns the factory settings.
func Defaults() model.Settings {
	return model.Settings{
		NumberOfDecks:    2,
		CardSpeed:        1.5,
		ShowCardValue:    true,
		ShowRunningCount: true,
	}
}

// Clamp limits v to [lo, hi].
func Clamp[T int | float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampDecks limits a deck count to the allowed range.
func ClampDecks(n int) int {
	return Clamp(n, MinDecks, MaxDecks)
}

// ClampSpeed limits a card speed to the allowed range and snaps it to the step grid.
func ClampSpeed(s float64) float64 {
	if math.IsNaN(s) {
		return Defaults().CardSpeed
	}
	snapped := math.Round(s/SpeedStep) * SpeedStep
	return Clamp(snapped, MinSpeed, MaxSpeed)
}

// Normalize returns s with every numeric field clamped.
func Normalize(s model.Settings) model.Settings {
	s.NumberOfDecks = ClampDecks(s.NumberOfDecks)
	s.CardSpeed = ClampSpeed(s.CardSpeed)
	return s
}

// Validate reports whether s is already inside the allowed ranges.
func Validate(s model.Settings) error {
	if s.NumberOfDecks < MinDecks || s.NumberOfDecks > MaxDecks {
		return fmt.Errorf("%w: decks must be between %d and %d, got %d", ErrInvalidSettings, MinDecks, MaxDecks, s.NumberOfDecks)
	}
	if math.IsNaN(s.CardSpeed) || s.CardSpeed < MinSpeed || s.CardSpeed > MaxSpeed {
		return fmt.Errorf("%w: speed must be between %.1f and %.1f, got %v", ErrInvalidSettings, MinSpeed, MaxSpeed, s.CardSpeed)
	}
	return nil
}
