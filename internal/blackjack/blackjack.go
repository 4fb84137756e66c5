// Package blackjack implements a single-deck blackjack round against a dealer
// who draws to 17.
package blackjack

import (
	"time"

	"github.com/lox/streetgames/internal/deck"
	"github.com/lox/streetgames/internal/game"
	"github.com/lox/streetgames/internal/randutil"
)

const (
	bustLimit    = 21
	dealerStands = 17
)

// Phase is a node of the blackjack round
type Phase int

const (
	PhaseBetting Phase = iota
	PhasePlaying
	PhaseDealerTurn
	PhaseResult
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhasePlaying:
		return "playing"
	case PhaseDealerTurn:
		return "dealer_turn"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// Stage maps the phase onto the shared engine contract
func (p Phase) Stage() game.Stage {
	switch p {
	case PhaseBetting:
		return game.StageBetting
	case PhaseResult:
		return game.StageResult
	default:
		return game.StagePlaying
	}
}

// Outcome is how a finished round was decided
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomePlayerBust
	OutcomeDealerBust
	OutcomePlayerWins
	OutcomeDealerWins
	OutcomePush
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomePlayerBust:
		return "player_bust"
	case OutcomeDealerBust:
		return "dealer_bust"
	case OutcomePlayerWins:
		return "player_wins"
	case OutcomeDealerWins:
		return "dealer_wins"
	case OutcomePush:
		return "push"
	default:
		return "none"
	}
}

// Option configures a Blackjack engine during creation
type Option func(*Blackjack)

// WithShoe replaces the shuffled 52-card shoe built for every deal
func WithShoe(newShoe func() *deck.Deck) Option {
	return func(b *Blackjack) { b.newShoe = newShoe }
}

// Blackjack is one player against the dealer
type Blackjack struct {
	game.Wager

	newShoe func() *deck.Deck
	shoe    *deck.Deck
	phase   Phase
	player  []deck.Card
	dealer  []deck.Card
	outcome Outcome
}

// New creates a blackjack engine in the betting phase
func New(limits game.LimitSource, rng randutil.Source, opts ...Option) *Blackjack {
	b := &Blackjack{
		Wager:   game.NewWager(limits),
		newShoe: func() *deck.Deck { return deck.NewShuffled(rng) },
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements game.Engine
func (b *Blackjack) Name() string { return "blackjack" }

// Phase returns the current phase
func (b *Blackjack) Phase() Phase { return b.phase }

// Stage implements game.Engine
func (b *Blackjack) Stage() game.Stage { return b.phase.Stage() }

// PlayerHand returns a copy of the player's cards
func (b *Blackjack) PlayerHand() []deck.Card { return append([]deck.Card(nil), b.player...) }

// DealerHand returns a copy of the dealer's cards
func (b *Blackjack) DealerHand() []deck.Card { return append([]deck.Card(nil), b.dealer...) }

// PlayerPoints scores the player's hand
func (b *Blackjack) PlayerPoints() int { return Points(b.player) }

// DealerPoints scores the dealer's hand
func (b *Blackjack) DealerPoints() int { return Points(b.dealer) }

// Outcome reports how the round was decided, OutcomeNone before the result
func (b *Blackjack) Outcome() Outcome { return b.outcome }

// SetBet implements game.Engine
func (b *Blackjack) SetBet(amount int) {
	if b.phase == PhaseBetting {
		b.Place(amount)
	}
}

// Deal starts the round with two cards each, alternating player and dealer.
// A natural stands immediately.
func (b *Blackjack) Deal() {
	if b.phase != PhaseBetting {
		return
	}
	b.shoe = b.newShoe()
	for range 2 {
		b.draw(&b.player)
		b.draw(&b.dealer)
	}
	b.phase = PhasePlaying
	b.Commit()

	if IsNatural(b.player) {
		b.Stand()
	}
}

// Hit draws a card for the player and busts them over 21
func (b *Blackjack) Hit() {
	if b.phase != PhasePlaying {
		return
	}
	b.draw(&b.player)
	if Points(b.player) > bustLimit {
		b.outcome = OutcomePlayerBust
		b.phase = PhaseResult
	}
}

// Stand ends the player's turn; the dealer then draws out and the round resolves
func (b *Blackjack) Stand() {
	if b.phase != PhasePlaying {
		return
	}
	b.phase = PhaseDealerTurn
	for Points(b.dealer) < dealerStands {
		if !b.draw(&b.dealer) {
			break
		}
	}
	b.outcome = b.resolve()
	b.phase = PhaseResult
}

func (b *Blackjack) draw(hand *[]deck.Card) bool {
	card, ok := b.shoe.Deal()
	if ok {
		*hand = append(*hand, card)
	}
	return ok
}

func (b *Blackjack) resolve() Outcome {
	player, dealer := Points(b.player), Points(b.dealer)
	switch {
	case player > bustLimit:
		return OutcomePlayerBust
	case dealer > bustLimit:
		return OutcomeDealerBust
	case player > dealer:
		return OutcomePlayerWins
	case dealer > player:
		return OutcomeDealerWins
	default:
		return OutcomePush
	}
}

// Settle implements game.Engine. A winning natural pays 3:2, rounded down.
func (b *Blackjack) Settle() int {
	if b.phase != PhaseResult {
		return 0
	}
	bet := b.BetAmount()
	switch b.outcome {
	case OutcomePlayerWins, OutcomeDealerBust:
		if IsNatural(b.player) {
			return bet * 3 / 2
		}
		return bet
	case OutcomePush:
		return 0
	default:
		return -bet
	}
}

// Reset implements game.Engine
func (b *Blackjack) Reset() {
	b.Release()
	b.phase = PhaseBetting
	b.shoe = nil
	b.player = nil
	b.dealer = nil
	b.outcome = OutcomeNone
	b.UpdateLimits()
}

// Update implements game.Engine. Blackjack has no timed phases.
func (b *Blackjack) Update(time.Duration) {}
