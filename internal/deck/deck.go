package deck

import "github.com/lox/streetgames/internal/randutil"

// Size is the number of cards in a standard deck.
const Size = 52

// Deck represents a deck of playing cards
type Deck struct {
	cards []Card
	rng   randutil.Source
}

// New creates an unshuffled 52-card deck drawing randomness from rng.
func New(rng randutil.Source) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	d.fill()
	return d
}

// NewShuffled creates a full deck and shuffles it.
func NewShuffled(rng randutil.Source) *Deck {
	d := New(rng)
	d.Shuffle()
	return d
}

// NewStacked creates a deck that deals the given cards in order. Used to set up
// exact hands in tests.
func NewStacked(cards ...Card) *Deck {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Deck{cards: stacked}
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	randutil.Shuffle(d.rng, len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals up to n cards from the deck
func (d *Deck) DealN(n int) []Card {
	n = min(n, len(d.cards))
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards
}
