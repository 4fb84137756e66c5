package blackjack

import "github.com/lox/streetgames/internal/deck"

// CardPoints is a card's face value: number cards count their rank, faces ten, aces eleven
func CardPoints(c deck.Card) int {
	switch {
	case c.IsAce():
		return 11
	case c.IsFaceCard() || c.Rank == deck.Ten:
		return 10
	default:
		return int(c.Rank)
	}
}

// Points scores a hand, counting each ace as 1 instead of 11 while the hand would bust
func Points(hand []deck.Card) int {
	total, softAces := 0, 0
	for _, c := range hand {
		total += CardPoints(c)
		if c.IsAce() {
			softAces++
		}
	}
	for total > bustLimit && softAces > 0 {
		total -= 10
		softAces--
	}
	return total
}

// IsNatural reports a two-card 21
func IsNatural(hand []deck.Card) bool {
	return len(hand) == 2 && Points(hand) == bustLimit
}
