package poker

import "github.com/lox/streetgames/internal/deck"

// Player is a seat at the table. NPC chip stacks persist across rounds.
type Player struct {
	Name       string
	Human      bool
	Chips      int
	Hole       []deck.Card
	CurrentBet int
	Folded     bool
}

func (p *Player) clearRound() {
	p.Hole = nil
	p.CurrentBet = 0
	p.Folded = false
}
