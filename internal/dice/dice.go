// Package dice implements the two-dice guessing game: everyone picks two
// faces, two dice are rolled, and the closest pick takes the table.
package dice

import (
	"time"

	"github.com/lox/streetgames/internal/game"
	"github.com/lox/streetgames/internal/randutil"
)

const (
	DefaultPlayers = 5
	MinPlayers     = 2
	MaxPlayers     = 6

	humanSeat = 0
	noWinner  = -1
)

// Phase is a node of the dice round
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseChoosing
	PhaseResult
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseChoosing:
		return "choosing"
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
	case PhaseChoosing:
		return game.StagePlaying
	default:
		return game.StageResult
	}
}

// Player is one seat and their two picks
type Player struct {
	Name  string
	Human bool
	Picks [2]int
	Score int
}

// Option configures a Dice engine during creation
type Option func(*Dice)

// WithPlayers sets the table size, clamped to 2..6
func WithPlayers(n int) Option {
	return func(d *Dice) { d.playerCount = game.ClampInt(n, MinPlayers, MaxPlayers) }
}

// Dice is the human against up to five NPCs
type Dice struct {
	game.Wager

	rng         randutil.Source
	playerCount int

	phase   Phase
	players []*Player
	roll    [2]int
	tied    []int
	winner  int
}

// New creates a dice engine in the betting phase
func New(limits game.LimitSource, rng randutil.Source, opts ...Option) *Dice {
	d := &Dice{
		Wager:       game.NewWager(limits),
		rng:         rng,
		playerCount: DefaultPlayers,
		winner:      noWinner,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.players = []*Player{{Name: game.HumanName, Human: true}}
	for _, name := range game.NPCNames(d.playerCount - 1) {
		d.players = append(d.players, &Player{Name: name})
	}
	return d
}

// Proximity is how far a pair of picks is from a roll: the smaller total
// distance over both ways of matching picks to dice. Zero is an exact hit.
func Proximity(d1, d2, p1, p2 int) int {
	return min(abs(d1-p1)+abs(d2-p2), abs(d1-p2)+abs(d2-p1))
}

// Name implements game.Engine
func (d *Dice) Name() string { return "dice" }

// Phase returns the current phase
func (d *Dice) Phase() Phase { return d.phase }

// Stage implements game.Engine
func (d *Dice) Stage() game.Stage { return d.phase.Stage() }

// PlayerCount returns the number of seats including the human
func (d *Dice) PlayerCount() int { return d.playerCount }

// Players returns copies of the seats, human first
func (d *Dice) Players() []Player {
	out := make([]Player, len(d.players))
	for i, p := range d.players {
		out[i] = *p
	}
	return out
}

// Roll returns the two dice, zero before the roll
func (d *Dice) Roll() [2]int { return d.roll }

// Winner returns the winning seat, or -1 before the result
func (d *Dice) Winner() int { return d.winner }

// Tied returns the seats that shared the best score, before the random pick among them
func (d *Dice) Tied() []int { return append([]int(nil), d.tied...) }

// SetBet implements game.Engine
func (d *Dice) SetBet(amount int) {
	if d.phase == PhaseBetting {
		d.Place(amount)
	}
}

// StartRound opens the choosing phase; NPCs pick their numbers at random
func (d *Dice) StartRound() {
	if d.phase != PhaseBetting {
		return
	}
	for _, p := range d.players {
		if !p.Human {
			p.Picks = [2]int{randutil.Roll(d.rng), randutil.Roll(d.rng)}
		}
	}
	d.phase = PhaseChoosing
	d.Commit()
}

// ChooseNumbers records the human's picks, clamped to 1..6, then rolls and resolves
func (d *Dice) ChooseNumbers(a, b int) {
	if d.phase != PhaseChoosing {
		return
	}
	d.players[humanSeat].Picks = [2]int{game.ClampInt(a, 1, 6), game.ClampInt(b, 1, 6)}
	d.roll = [2]int{randutil.Roll(d.rng), randutil.Roll(d.rng)}
	d.resolve()
	d.phase = PhaseResult
}

// resolve scores every seat and draws the winner uniformly among the best
func (d *Dice) resolve() {
	best := -1
	for seat, p := range d.players {
		p.Score = Proximity(d.roll[0], d.roll[1], p.Picks[0], p.Picks[1])
		switch {
		case best < 0 || p.Score < best:
			best = p.Score
			d.tied = []int{seat}
		case p.Score == best:
			d.tied = append(d.tied, seat)
		}
	}
	d.winner = d.tied[0]
	if len(d.tied) > 1 {
		d.winner = randutil.Pick(d.rng, d.tied)
	}
}

// Settle implements game.Engine. The winner collects every other seat's stake.
func (d *Dice) Settle() int {
	if d.phase != PhaseResult {
		return 0
	}
	if d.winner == humanSeat {
		return d.BetAmount() * (d.playerCount - 1)
	}
	return -d.BetAmount()
}

// Reset implements game.Engine
func (d *Dice) Reset() {
	d.Release()
	d.phase = PhaseBetting
	d.roll = [2]int{}
	d.tied = nil
	d.winner = noWinner
	for _, p := range d.players {
		p.Picks = [2]int{}
		p.Score = 0
	}
	d.UpdateLimits()
}

// Update implements game.Engine. Dice has no timed phases.
func (d *Dice) Update(time.Duration) {}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
