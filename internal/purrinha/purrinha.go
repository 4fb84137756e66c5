// Package purrinha implements the hidden-stones guessing game. Everyone hides
// up to three stones, then calls the table total; the closest call wins the pot.
package purrinha

import (
	"math"
	"time"

	"github.com/lox/streetgames/internal/game"
	"github.com/lox/streetgames/internal/randutil"
)

const (
	DefaultPlayers        = 4
	MinPlayers            = 2
	MaxPlayers            = 5
	MaxStones             = 3
	DefaultRevealInterval = 600 * time.Millisecond

	// npcOthersAverage is what an NPC assumes each other player is hiding
	npcOthersAverage = 1.5

	humanSeat = 0
	noWinner  = -1
)

// Phase is a node of the purrinha round
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseGuessing
	PhaseRevealing
	PhaseResult
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseGuessing:
		return "guessing"
	case PhaseRevealing:
		return "revealing"
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

// Player is a seat with its hidden stones and called total
type Player struct {
	Name     string
	Human    bool
	Stones   int
	Guess    int
	Revealed bool
}

// Option configures a Purrinha engine during creation
type Option func(*Purrinha)

// WithPlayers sets the table size, clamped to 2..5
func WithPlayers(n int) Option {
	return func(p *Purrinha) { p.playerCount = game.ClampInt(n, MinPlayers, MaxPlayers) }
}

// WithRevealInterval sets the pause between each hand opening
func WithRevealInterval(d time.Duration) Option {
	return func(p *Purrinha) {
		if d > 0 {
			p.revealInterval = d
		}
	}
}

// Purrinha is the human against one to four NPCs
type Purrinha struct {
	game.Wager

	rng            randutil.Source
	playerCount    int
	revealInterval time.Duration

	phase    Phase
	players  []*Player
	revealed int
	elapsed  time.Duration
	winner   int
}

// New creates a purrinha engine in the betting phase
func New(limits game.LimitSource, rng randutil.Source, opts ...Option) *Purrinha {
	p := &Purrinha{
		Wager:          game.NewWager(limits),
		rng:            rng,
		playerCount:    DefaultPlayers,
		revealInterval: DefaultRevealInterval,
		winner:         noWinner,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.players = []*Player{{Name: game.HumanName, Human: true}}
	for _, name := range game.NPCNames(p.playerCount - 1) {
		p.players = append(p.players, &Player{Name: name})
	}
	return p
}

// Name implements game.Engine
func (p *Purrinha) Name() string { return "purrinha" }

// Phase returns the current phase
func (p *Purrinha) Phase() Phase { return p.phase }

// Stage implements game.Engine
func (p *Purrinha) Stage() game.Stage { return p.phase.Stage() }

// PlayerCount returns the number of seats including the human
func (p *Purrinha) PlayerCount() int { return p.playerCount }

// Players returns copies of the seats, human first
func (p *Purrinha) Players() []Player {
	out := make([]Player, len(p.players))
	for i, pl := range p.players {
		out[i] = *pl
	}
	return out
}

// MaxGuess is the largest total the table can hold
func (p *Purrinha) MaxGuess() int { return MaxStones * p.playerCount }

// Total is the number of stones hidden across all hands
func (p *Purrinha) Total() int {
	total := 0
	for _, pl := range p.players {
		total += pl.Stones
	}
	return total
}

// Pot is every seat's stake
func (p *Purrinha) Pot() int { return p.BetAmount() * p.playerCount }

// Winner returns the winning seat, or -1 before the result
func (p *Purrinha) Winner() int { return p.winner }

// SetBet implements game.Engine
func (p *Purrinha) SetBet(amount int) {
	if p.phase == PhaseBetting {
		p.Place(amount)
	}
}

// ChooseStones hides the human's stones (clamped to 0..3) and the NPCs hide theirs
func (p *Purrinha) ChooseStones(n int) {
	if p.phase != PhaseBetting {
		return
	}
	for _, pl := range p.players {
		if pl.Human {
			pl.Stones = game.ClampInt(n, 0, MaxStones)
		} else {
			pl.Stones = p.rng.IntN(MaxStones + 1)
		}
	}
	p.phase = PhaseGuessing
	p.Commit()
}

// Guess calls the human's total (clamped to 0..MaxGuess). The NPCs then call
// in seat order, each avoiding totals already called, and the hands start opening.
func (p *Purrinha) Guess(total int) {
	if p.phase != PhaseGuessing {
		return
	}
	taken := make(map[int]bool, p.playerCount)
	for _, pl := range p.players {
		if pl.Human {
			pl.Guess = game.ClampInt(total, 0, p.MaxGuess())
		} else {
			pl.Guess = p.freeGuess(p.npcGuess(pl), taken)
		}
		taken[pl.Guess] = true
	}
	p.revealed = 0
	p.elapsed = 0
	p.phase = PhaseRevealing
}

// npcGuess is the NPC's own stones plus the expected stones of everyone else, give or take one
func (p *Purrinha) npcGuess(pl *Player) int {
	others := int(math.Round(npcOthersAverage * float64(p.playerCount-1)))
	jitter := p.rng.IntN(3) - 1
	return game.ClampInt(pl.Stones+others+jitter, 0, p.MaxGuess())
}

// freeGuess moves want up to the nearest untaken total, or down if none is left above
func (p *Purrinha) freeGuess(want int, taken map[int]bool) int {
	for g := want; g <= p.MaxGuess(); g++ {
		if !taken[g] {
			return g
		}
	}
	for g := want - 1; g >= 0; g-- {
		if !taken[g] {
			return g
		}
	}
	return want
}

// Update opens one hand per reveal interval; the round resolves when all are open
func (p *Purrinha) Update(dt time.Duration) {
	if p.phase != PhaseRevealing || dt <= 0 {
		return
	}
	p.elapsed += dt
	for p.elapsed >= p.revealInterval && p.revealed < len(p.players) {
		p.elapsed -= p.revealInterval
		p.players[p.revealed].Revealed = true
		p.revealed++
	}
	if p.revealed == len(p.players) {
		p.resolve()
	}
}

// resolve awards the first seat whose call is closest to the total
func (p *Purrinha) resolve() {
	total := p.Total()
	best := -1
	for seat, pl := range p.players {
		diff := abs(pl.Guess - total)
		if best < 0 || diff < best {
			best = diff
			p.winner = seat
		}
	}
	p.phase = PhaseResult
}

// Settle implements game.Engine
func (p *Purrinha) Settle() int {
	if p.phase != PhaseResult {
		return 0
	}
	if p.winner == humanSeat {
		return p.Pot() - p.BetAmount()
	}
	return -p.BetAmount()
}

// Reset implements game.Engine
func (p *Purrinha) Reset() {
	p.Release()
	p.phase = PhaseBetting
	p.revealed = 0
	p.elapsed = 0
	p.winner = noWinner
	for _, pl := range p.players {
		pl.Stones = 0
		pl.Guess = 0
		pl.Revealed = false
	}
	p.UpdateLimits()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
