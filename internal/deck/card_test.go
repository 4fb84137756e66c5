package deck

import (
	"testing"

	"github.com/lox/streetgames/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardString(t *testing.T) {
	tests := []struct {
		card     Card
		expected string
	}{
		{NewCard(Spades, Ace), "A♠"},
		{NewCard(Hearts, Ten), "T♥"},
		{NewCard(Diamonds, Two), "2♦"},
		{NewCard(Clubs, King), "K♣"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.card.String())
	}
}

func TestCardPredicates(t *testing.T) {
	assert.True(t, NewCard(Spades, Ace).IsAce())
	assert.True(t, NewCard(Spades, Queen).IsFaceCard())
	assert.False(t, NewCard(Spades, Ace).IsFaceCard())
	assert.Equal(t, 14, NewCard(Spades, Ace).Value())
}

func TestNewDeckHasAllCards(t *testing.T) {
	d := NewShuffled(randutil.New(1))

	seen := map[Card]bool{}
	for range Size {
		c, ok := d.Deal()
		require.True(t, ok)
		seen[c] = true
	}
	assert.Len(t, seen, Size)

	_, ok := d.Deal()
	assert.False(t, ok)
}

func TestShuffleIsSeedDeterministic(t *testing.T) {
	a := NewShuffled(randutil.New(99)).DealN(10)
	b := NewShuffled(randutil.New(99)).DealN(10)
	assert.Equal(t, a, b)
}

func TestDealNClampsToRemaining(t *testing.T) {
	d := NewStacked(NewCard(Spades, Two), NewCard(Spades, Three))
	cards := d.DealN(5)
	assert.Len(t, cards, 2)
	assert.Empty(t, d.DealN(1))
}
