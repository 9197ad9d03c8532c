package deck

import (
	"math/rand/v2"
	"time"
)

// CardsPerDeck is the size of a standard deck.
const CardsPerDeck = 52

// Deck is an ordered shoe of cards.
type Deck []Card

// Source supplies uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG source. A zero seed is replaced by the current time.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Build concatenates numberOfDecks ordered 52-card decks.
func Build(numberOfDecks int) Deck {
	if numberOfDecks < 0 {
		numberOfDecks = 0
	}
	d := make(Deck, 0, CardsPerDeck*numberOfDecks)
	for i := 0; i < numberOfDecks; i++ {
		for _, s := range Suits {
			for _, r := range Ranks {
				d = append(d, NewCard(s, r))
			}
		}
	}
	return d
}

// Shuffle returns a Fisher-Yates permutation of d. The input is not modified.
func Shuffle(d Deck, src Source) Deck {
	out := make(Deck, len(d))
	copy(out, d)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NewShoe builds and shuffles numberOfDecks decks.
func NewShoe(numberOfDecks int, src Source) Deck {
	return Shuffle(Build(numberOfDecks), src)
}

// TotalCards returns the shoe size for a deck count.
func TotalCards(numberOfDecks int) int {
	return numberOfDecks * CardsPerDeck
}

// RunningCount sums the Hi-Lo values of cards.
func RunningCount(cards []Card) int {
	count := 0
	for _, c := range cards {
		count += c.HiLo()
	}
	return count
}
