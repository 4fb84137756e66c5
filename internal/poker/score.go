package poker

import "github.com/lox/streetgames/internal/deck"

const (
	pairBonus   = 100
	tripleBonus = 500
)

// Score is the street game's simplified hand strength: the sum of card ranks,
// plus 100 for every pair and 500 for every three of a kind. Four of a kind
// counts as a three of a kind.
func Score(cards []deck.Card) int {
	var counts [deck.Ace + 1]int
	score := 0
	for _, c := range cards {
		score += c.Value()
		counts[c.Rank]++
	}
	for _, n := range counts {
		switch {
		case n >= 3:
			score += tripleBonus
		case n == 2:
			score += pairBonus
		}
	}
	return score
}
