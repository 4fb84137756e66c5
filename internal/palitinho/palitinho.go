// Package palitinho implements the matchstick draw: four players roll for
// turn order, then each pulls one of four sticks. Two sticks are broken and
// whoever pulls one loses their stake to the other two.
package palitinho

import (
	"cmp"
	"slices"
	"time"

	"github.com/lox/streetgames/internal/game"
	"github.com/lox/streetgames/internal/randutil"
)

const (
	Players          = 4
	BrokenSticks     = 2
	DefaultRollPause = time.Second

	// payoutUnit is the granularity winners are paid in
	payoutUnit = 10

	humanSeat = 0
	unpicked  = -1
)

// Phase is a node of the palitinho round
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseRolling
	PhasePicking
	PhaseResult
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseRolling:
		return "rolling"
	case PhasePicking:
		return "picking"
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

// Player is a seat with its turn-order roll and the stick it pulled
type Player struct {
	Name  string
	Human bool
	Roll  int
	Pick  int
	Loser bool
}

// Matchstick is one of the sticks on the table
type Matchstick struct {
	Broken   bool
	PickedBy int
}

// Option configures a Palitinho engine during creation
type Option func(*Palitinho)

// WithRollPause sets how long the turn-order dice stay on screen
func WithRollPause(d time.Duration) Option {
	return func(p *Palitinho) {
		if d > 0 {
			p.rollPause = d
		}
	}
}

// Palitinho is the human against three NPCs
type Palitinho struct {
	game.Wager

	rng       randutil.Source
	rollPause time.Duration

	phase   Phase
	players []*Player
	sticks  []Matchstick
	order   []int
	turn    int
	elapsed time.Duration
}

// New creates a palitinho engine in the betting phase
func New(limits game.LimitSource, rng randutil.Source, opts ...Option) *Palitinho {
	p := &Palitinho{
		Wager:     game.NewWager(limits),
		rng:       rng,
		rollPause: DefaultRollPause,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.players = []*Player{{Name: game.HumanName, Human: true, Pick: unpicked}}
	for _, name := range game.NPCNames(Players - 1) {
		p.players = append(p.players, &Player{Name: name, Pick: unpicked})
	}
	return p
}

// Name implements game.Engine
func (p *Palitinho) Name() string { return "palitinho" }

// Phase returns the current phase
func (p *Palitinho) Phase() Phase { return p.phase }

// Stage implements game.Engine
func (p *Palitinho) Stage() game.Stage { return p.phase.Stage() }

// Players returns copies of the seats, human first
func (p *Palitinho) Players() []Player {
	out := make([]Player, len(p.players))
	for i, pl := range p.players {
		out[i] = *pl
	}
	return out
}

// Matchsticks returns a copy of the sticks on the table
func (p *Palitinho) Matchsticks() []Matchstick { return slices.Clone(p.sticks) }

// TurnOrder returns seats in the order they pick
func (p *Palitinho) TurnOrder() []int { return slices.Clone(p.order) }

// CurrentTurn returns the seat due to pick, or -1 outside the picking phase
func (p *Palitinho) CurrentTurn() int {
	if p.phase != PhasePicking || p.turn >= len(p.order) {
		return -1
	}
	return p.order[p.turn]
}

// Pot is every seat's stake
func (p *Palitinho) Pot() int { return p.BetAmount() * Players }

// SetBet implements game.Engine
func (p *Palitinho) SetBet(amount int) {
	if p.phase == PhaseBetting {
		p.Place(amount)
	}
}

// ConfirmBet rolls for turn order and lays out the sticks, two of them broken
func (p *Palitinho) ConfirmBet() {
	if p.phase != PhaseBetting {
		return
	}
	p.order = make([]int, len(p.players))
	for seat, pl := range p.players {
		pl.Roll = randutil.Roll(p.rng)
		p.order[seat] = seat
	}
	// Higher roll goes first; equal rolls keep seat order.
	slices.SortStableFunc(p.order, func(a, b int) int {
		return cmp.Compare(p.players[b].Roll, p.players[a].Roll)
	})

	p.sticks = make([]Matchstick, Players)
	intact := make([]int, Players)
	for i := range p.sticks {
		p.sticks[i].PickedBy = unpicked
		intact[i] = i
	}
	for range BrokenSticks {
		k := p.rng.IntN(len(intact))
		p.sticks[intact[k]].Broken = true
		intact = slices.Delete(intact, k, k+1)
	}

	p.turn = 0
	p.elapsed = 0
	p.phase = PhaseRolling
	p.Commit()
}

// Update ends the roll pause, after which NPCs ahead of the human pick
func (p *Palitinho) Update(dt time.Duration) {
	if p.phase != PhaseRolling || dt <= 0 {
		return
	}
	p.elapsed += dt
	if p.elapsed >= p.rollPause {
		p.phase = PhasePicking
		p.playNPCs()
	}
}

// ChooseMatchstick pulls stick i for the human. Ignored out of turn or for a
// stick already pulled.
func (p *Palitinho) ChooseMatchstick(i int) {
	if p.CurrentTurn() != humanSeat || i < 0 || i >= len(p.sticks) || p.sticks[i].PickedBy != unpicked {
		return
	}
	p.take(i)
	p.playNPCs()
}

// playNPCs pulls a random remaining stick for each NPC until it is the human's turn
func (p *Palitinho) playNPCs() {
	for p.phase == PhasePicking {
		seat := p.CurrentTurn()
		if p.players[seat].Human {
			return
		}
		var free []int
		for i, s := range p.sticks {
			if s.PickedBy == unpicked {
				free = append(free, i)
			}
		}
		p.take(randutil.Pick(p.rng, free))
	}
}

func (p *Palitinho) take(i int) {
	seat := p.order[p.turn]
	p.sticks[i].PickedBy = seat
	p.players[seat].Pick = i
	p.players[seat].Loser = p.sticks[i].Broken
	p.turn++
	if p.turn == len(p.order) {
		p.phase = PhaseResult
	}
}

// Settle implements game.Engine. The two winners split the pot, rounded down to
// the payout unit.
func (p *Palitinho) Settle() int {
	if p.phase != PhaseResult {
		return 0
	}
	if p.players[humanSeat].Loser {
		return -p.BetAmount()
	}
	winners := Players - BrokenSticks
	payout := p.Pot() / (winners * payoutUnit) * payoutUnit
	return payout - p.BetAmount()
}

// Reset implements game.Engine
func (p *Palitinho) Reset() {
	p.Release()
	p.phase = PhaseBetting
	p.sticks = nil
	p.order = nil
	p.turn = 0
	p.elapsed = 0
	for _, pl := range p.players {
		pl.Roll = 0
		pl.Pick = unpicked
		pl.Loser = false
	}
	p.UpdateLimits()
}
