package deck_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/zencounter/internal/deck"
)

func TestHiLoValueTable(t *testing.T) {
	expected := map[deck.Rank]int{
		deck.Ace: -1, deck.Two: 1, deck.Three: 1, deck.Four: 1, deck.Five: 1, deck.Six: 1,
		deck.Seven: 0, deck.Eight: 0, deck.Nine: 0,
		deck.Ten: -1, deck.Jack: -1, deck.Queen: -1, deck.King: -1,
	}
	for _, r := range deck.Ranks {
		assert.Equal(t, expected[r], deck.HiLoValue(r), "rank %s", r)
		assert.Equal(t, expected[r], deck.NewCard(deck.Spades, r).HiLo(), "card %s", r)
	}
}

func TestBuildSizesAndComposition(t *testing.T) {
	for n := 1; n <= 8; n++ {
		d := deck.Build(n)
		require.Len(t, d, 52*n)
		assert.Equal(t, deck.TotalCards(n), len(d))

		counts := map[deck.Card]int{}
		for _, c := range d {
			counts[c]++
		}
		assert.Len(t, counts, 52)
		for c, got := range counts {
			assert.Equal(t, n, got, "card %s", c)
		}
	}
}

func TestSingleDeckIsBalanced(t *testing.T) {
	assert.Equal(t, 0, deck.RunningCount(deck.Build(1)))
	assert.Equal(t, 0, deck.RunningCount(deck.Build(6)))
}

func TestShuffleIsPermutation(t *testing.T) {
	src := deck.NewSource(42)
	in := deck.Build(2)
	out := deck.Shuffle(in, src)

	require.Len(t, out, len(in))
	assert.ElementsMatch(t, in, out)
	assert.NotEqual(t, in, out, "shuffled order should differ from build order")
	assert.Equal(t, deck.Build(2), in, "input must not be modified")
}

func TestShuffleDeterministicForSeed(t *testing.T) {
	a := deck.NewShoe(1, deck.NewSource(7))
	b := deck.NewShoe(1, deck.NewSource(7))
	assert.Equal(t, a, b)
}

// Every permutation of three cards should appear with roughly equal frequency.
func TestShuffleUniformSmall(t *testing.T) {
	in := deck.Deck{
		deck.NewCard(deck.Hearts, deck.Two),
		deck.NewCard(deck.Hearts, deck.Seven),
		deck.NewCard(deck.Hearts, deck.King),
	}
	src := deck.NewSource(99)
	const rounds = 60000
	freq := map[string]int{}
	for i := 0; i < rounds; i++ {
		out := deck.Shuffle(in, src)
		freq[out[0].String()+out[1].String()+out[2].String()]++
	}
	require.Len(t, freq, 6)
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		assert.InDelta(t, rounds/6, freq[k], rounds/6*0.1, "permutation %s", k)
	}
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "10♠", deck.NewCard(deck.Spades, deck.Ten).String())
	assert.Equal(t, "A♥", deck.NewCard(deck.Hearts, deck.Ace).String())
	assert.True(t, deck.Diamonds.Red())
	assert.False(t, deck.Clubs.Red())
}
