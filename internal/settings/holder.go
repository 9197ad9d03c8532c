package settings

import (
	"fmt"
	"os"

	"github.com/verte-zerg/zencounter/internal/model"
)

// Store persists settings between runs.
type Store interface {
	Load() (model.Settings, error)
	Save(model.Settings) error
}

// Holder owns the live settings. Every mutation is clamped and saved.
type Holder struct {
	cur   model.Settings
	store Store
}

// NewHolder loads settings from store. A nil store keeps settings in memory only.
// A load error is returned as is; no holder is built that could save over the
// unreadable file.
func NewHolder(store Store) (*Holder, error) {
	h := &Holder{cur: Defaults(), store: store}
	if store == nil {
		return h, nil
	}
	loaded, err := store.Load()
	if err != nil {
		return nil, err
	}
	h.cur = Normalize(loaded)
	return h, nil
}

// Get returns a copy of the current settings.
func (h *Holder) Get() model.Settings {
	return h.cur
}

// Set replaces all settings after clamping.
func (h *Holder) Set(s model.Settings) {
	h.update(func(cur *model.Settings) { *cur = s })
}

// SetNumberOfDecks sets the deck count, clamped to range.
func (h *Holder) SetNumberOfDecks(n int) {
	h.update(func(cur *model.Settings) { cur.NumberOfDecks = n })
}

// IncrementDecks adds one deck up to the maximum.
func (h *Holder) IncrementDecks() {
	h.update(func(cur *model.Settings) { cur.NumberOfDecks += DeckStep })
}

// DecrementDecks removes one deck down to the minimum.
func (h *Holder) DecrementDecks() {
	h.update(func(cur *model.Settings) { cur.NumberOfDecks -= DeckStep })
}

// SetCardSpeed sets the reveal interval in seconds, clamped to range.
func (h *Holder) SetCardSpeed(s float64) {
	h.update(func(cur *model.Settings) { cur.CardSpeed = s })
}

// IncrementSpeed lengthens the reveal interval by one step.
func (h *Holder) IncrementSpeed() {
	h.update(func(cur *model.Settings) { cur.CardSpeed += SpeedStep })
}

// DecrementSpeed shortens the reveal interval by one step.
func (h *Holder) DecrementSpeed() {
	h.update(func(cur *model.Settings) { cur.CardSpeed -= SpeedStep })
}

// ToggleShowCardValue flips the card value helper.
func (h *Holder) ToggleShowCardValue() {
	h.update(func(cur *model.Settings) { cur.ShowCardValue = !cur.ShowCardValue })
}

// ToggleShowRunningCount flips the running count helper.
func (h *Holder) ToggleShowRunningCount() {
	h.update(func(cur *model.Settings) { cur.ShowRunningCount = !cur.ShowRunningCount })
}

// Reset restores defaults.
func (h *Holder) Reset() {
	h.update(func(cur *model.Settings) { *cur = Defaults() })
}

func (h *Holder) update(fn func(*model.Settings)) {
	next := h.cur
	fn(&next)
	h.cur = Normalize(next)
	if h.store == nil {
		return
	}
	if err := h.store.Save(h.cur); err != nil {
		logErrf("failed to save settings: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
