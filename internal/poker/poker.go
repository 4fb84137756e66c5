// Package poker implements a three-handed, simplified hold'em round: one
// ante-sized bet per player, streets revealed in order, and a showdown decided
// by Score.
package poker

import (
	"time"

	"github.com/lox/streetgames/internal/deck"
	"github.com/lox/streetgames/internal/game"
	"github.com/lox/streetgames/internal/randutil"
)

const (
	DefaultNPCStack   = 1000
	DefaultFoldChance = 0.25

	npcCount  = 2
	humanSeat = 0
	noWinner  = -1
)

// Phase is a street of the round
type Phase int

const (
	PhaseBetting Phase = iota
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseResult
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhasePreFlop:
		return "pre_flop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
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

// Option configures a Poker engine during creation
type Option func(*Poker)

// WithShoe replaces the shuffled 52-card shoe built for every deal
func WithShoe(newShoe func() *deck.Deck) Option {
	return func(p *Poker) { p.newShoe = newShoe }
}

// WithNPCStack sets the chips an NPC starts with and is re-staked to when broke
func WithNPCStack(chips int) Option {
	return func(p *Poker) { p.npcStack = chips }
}

// WithFoldChance sets how likely an NPC without a pair folds on each street
func WithFoldChance(chance float64) Option {
	return func(p *Poker) { p.foldChance = chance }
}

// Poker is the human against two NPCs
type Poker struct {
	game.Wager

	rng        randutil.Source
	newShoe    func() *deck.Deck
	shoe       *deck.Deck
	npcStack   int
	foldChance float64

	phase     Phase
	players   []*Player
	community []deck.Card
	pot       int
	winner    int
}

// New creates a poker engine in the betting phase
func New(limits game.LimitSource, rng randutil.Source, opts ...Option) *Poker {
	p := &Poker{
		Wager:      game.NewWager(limits),
		rng:        rng,
		newShoe:    func() *deck.Deck { return deck.NewShuffled(rng) },
		npcStack:   DefaultNPCStack,
		foldChance: DefaultFoldChance,
		winner:     noWinner,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.players = []*Player{{Name: game.HumanName, Human: true}}
	for _, name := range game.NPCNames(npcCount) {
		p.players = append(p.players, &Player{Name: name, Chips: p.npcStack})
	}
	return p
}

// Name implements game.Engine
func (p *Poker) Name() string { return "poker" }

// Phase returns the current street
func (p *Poker) Phase() Phase { return p.phase }

// Stage implements game.Engine
func (p *Poker) Stage() game.Stage { return p.phase.Stage() }

// Players returns copies of the seats, human first
func (p *Poker) Players() []Player {
	out := make([]Player, len(p.players))
	for i, pl := range p.players {
		out[i] = *pl
		out[i].Hole = append([]deck.Card(nil), pl.Hole...)
	}
	return out
}

// Community returns a copy of the revealed board
func (p *Poker) Community() []deck.Card { return append([]deck.Card(nil), p.community...) }

// Pot returns the chips in the middle
func (p *Poker) Pot() int { return p.pot }

// Winner returns the winning seat index, or -1 before the showdown
func (p *Poker) Winner() int { return p.winner }

// ScoreOf scores a seat's hole cards together with the board
func (p *Poker) ScoreOf(seat int) int {
	if seat < 0 || seat >= len(p.players) {
		return 0
	}
	return Score(append(append([]deck.Card(nil), p.players[seat].Hole...), p.community...))
}

// SetBet implements game.Engine
func (p *Poker) SetBet(amount int) {
	if p.phase == PhaseBetting {
		p.Place(amount)
	}
}

// Deal collects the bet from every seat and deals two hole cards each
func (p *Poker) Deal() {
	if p.phase != PhaseBetting {
		return
	}
	bet := p.BetAmount()
	for _, pl := range p.players {
		if !pl.Human {
			if pl.Chips < bet {
				pl.Chips = max(p.npcStack, bet)
			}
			pl.Chips -= bet
		}
		pl.CurrentBet = bet
		p.pot += bet
	}

	p.shoe = p.newShoe()
	for range 2 {
		for _, pl := range p.players {
			if c, ok := p.shoe.Deal(); ok {
				pl.Hole = append(pl.Hole, c)
			}
		}
	}
	p.phase = PhasePreFlop
	p.Commit()
}

// Advance checks through to the next street. From the river it goes to showdown.
func (p *Poker) Advance() {
	switch p.phase {
	case PhasePreFlop:
		p.reveal(3, PhaseFlop)
	case PhaseFlop:
		p.reveal(1, PhaseTurn)
	case PhaseTurn:
		p.reveal(1, PhaseRiver)
	case PhaseRiver:
		p.showdown()
	}
}

// Fold gives up the human's hand; the NPCs still left play it out
func (p *Poker) Fold() {
	if p.phase.Stage() != game.StagePlaying {
		return
	}
	p.players[humanSeat].Folded = true
	p.showdown()
}

func (p *Poker) reveal(n int, next Phase) {
	p.community = append(p.community, p.shoe.DealN(n)...)
	p.phase = next
	p.npcDecisions()
}

// npcDecisions lets each NPC without a pair fold at random
func (p *Poker) npcDecisions() {
	remaining := 0
	for seat, pl := range p.players {
		if pl.Human || pl.Folded {
			continue
		}
		if p.ScoreOf(seat) < pairBonus && p.rng.Float64() < p.foldChance {
			pl.Folded = true
			continue
		}
		remaining++
	}
	if remaining == 0 {
		p.award(humanSeat)
	}
}

// showdown picks the highest score among seats still in; the first seat found wins ties
func (p *Poker) showdown() {
	best, bestScore := noWinner, -1
	for seat, pl := range p.players {
		if pl.Folded {
			continue
		}
		if s := p.ScoreOf(seat); s > bestScore {
			best, bestScore = seat, s
		}
	}
	p.award(best)
}

func (p *Poker) award(seat int) {
	p.winner = seat
	if seat != noWinner && !p.players[seat].Human {
		p.players[seat].Chips += p.pot
	}
	p.phase = PhaseResult
}

// Settle implements game.Engine
func (p *Poker) Settle() int {
	if p.phase != PhaseResult {
		return 0
	}
	human := p.players[humanSeat]
	if p.winner == humanSeat {
		return p.pot - human.CurrentBet
	}
	return -human.CurrentBet
}

// Reset implements game.Engine. NPC stacks carry over.
func (p *Poker) Reset() {
	p.Release()
	p.phase = PhaseBetting
	p.shoe = nil
	p.community = nil
	p.pot = 0
	p.winner = noWinner
	for _, pl := range p.players {
		pl.clearRound()
	}
	p.UpdateLimits()
}

// Update implements game.Engine. Streets advance on player input only.
func (p *Poker) Update(time.Duration) {}
