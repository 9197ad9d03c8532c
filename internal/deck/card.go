// Package deck builds and shuffles shoes of playing cards for Hi-Lo counting.
package deck

// Suit is one of the four French suits.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists suits in build order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

var suitNames = [...]string{"hearts", "diamonds", "clubs", "spades"}

var suitSymbols = [...]string{"♥", "♦", "♣", "♠"}

func (s Suit) String() string {
	if s < Hearts || s > Spades {
		return "unknown"
	}
	return suitNames[s]
}

// Symbol returns the suit glyph.
func (s Suit) Symbol() string {
	if s < Hearts || s > Spades {
		return "?"
	}
	return suitSymbols[s]
}

// Red reports whether the suit is printed in red.
func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

// Rank is a card rank, Ace through King.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists ranks in build order.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

var rankLabels = [...]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

func (r Rank) String() string {
	if r < Ace || r > King {
		return "?"
	}
	return rankLabels[r]
}

// HiLoValue returns the Hi-Lo tag for a rank: +1 for 2-6, 0 for 7-9, -1 for 10 through Ace.
func HiLoValue(r Rank) int {
	switch {
	case r >= Two && r <= Six:
		return 1
	case r >= Seven && r <= Nine:
		return 0
	default:
		return -1
	}
}

// Card is an immutable playing card.
type Card struct {
	suit Suit
	rank Rank
	hiLo int
}

// NewCard constructs a card with its Hi-Lo value derived from rank.
func NewCard(s Suit, r Rank) Card {
	return Card{suit: s, rank: r, hiLo: HiLoValue(r)}
}

// Suit returns the card suit.
func (c Card) Suit() Suit { return c.suit }

// Rank returns the card rank.
func (c Card) Rank() Rank { return c.rank }

// HiLo returns the card's Hi-Lo value.
func (c Card) HiLo() int { return c.hiLo }

func (c Card) String() string {
	return c.rank.String() + c.suit.Symbol()
}
