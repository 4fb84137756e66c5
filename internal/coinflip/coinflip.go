// Package coinflip implements heads or tails. The outcome is drawn the moment
// the player commits to a side; the spin that follows only animates it.
package coinflip

import (
	"math"
	"time"

	"github.com/lox/streetgames/internal/game"
	"github.com/lox/streetgames/internal/randutil"
)

const (
	DefaultSpinDuration = 2 * time.Second
	spinTurns           = 6
)

// Side is a face of the coin
type Side int

const (
	Heads Side = iota
	Tails
)

// String returns the string representation of the side
func (s Side) String() string {
	if s == Tails {
		return "tails"
	}
	return "heads"
}

// Phase is a node of the coin round
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseSpinning
	PhaseResult
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseSpinning:
		return "spinning"
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
	case PhaseSpinning:
		return game.StagePlaying
	default:
		return game.StageResult
	}
}

// Option configures a Coinflip engine during creation
type Option func(*Coinflip)

// WithSpinDuration sets how long the spin runs before the result shows
func WithSpinDuration(d time.Duration) Option {
	return func(c *Coinflip) {
		if d > 0 {
			c.spinDuration = d
		}
	}
}

// Coinflip is a single call against the house
type Coinflip struct {
	game.Wager

	rng          randutil.Source
	spinDuration time.Duration

	phase   Phase
	choice  Side
	outcome Side
	elapsed time.Duration
}

// New creates a coin engine in the betting phase
func New(limits game.LimitSource, rng randutil.Source, opts ...Option) *Coinflip {
	c := &Coinflip{
		Wager:        game.NewWager(limits),
		rng:          rng,
		spinDuration: DefaultSpinDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements game.Engine
func (c *Coinflip) Name() string { return "heads_or_tails" }

// Phase returns the current phase
func (c *Coinflip) Phase() Phase { return c.phase }

// Stage implements game.Engine
func (c *Coinflip) Stage() game.Stage { return c.phase.Stage() }

// Choice returns the side the player called
func (c *Coinflip) Choice() Side { return c.choice }

// Outcome returns the side that lands. It is fixed from ChooseSide onwards
// but only meaningful to show once the phase is PhaseResult.
func (c *Coinflip) Outcome() Side { return c.outcome }

// SetBet implements game.Engine
func (c *Coinflip) SetBet(amount int) {
	if c.phase == PhaseBetting {
		c.Place(amount)
	}
}

// ChooseSide calls a side, draws the outcome and starts the spin. A side
// other than Heads or Tails is ignored and the engine stays in betting.
func (c *Coinflip) ChooseSide(side Side) {
	if c.phase != PhaseBetting || (side != Heads && side != Tails) {
		return
	}
	c.choice = side
	c.outcome = Side(c.rng.IntN(2))
	c.elapsed = 0
	c.phase = PhaseSpinning
	c.Commit()
}

// Update advances the spin and lands the coin once the duration has passed
func (c *Coinflip) Update(dt time.Duration) {
	if c.phase != PhaseSpinning || dt <= 0 {
		return
	}
	c.elapsed = min(c.elapsed+dt, c.spinDuration)
	if c.elapsed >= c.spinDuration {
		c.phase = PhaseResult
	}
}

// Progress is the spin's completion in [0, 1]
func (c *Coinflip) Progress() float64 {
	switch c.phase {
	case PhaseBetting:
		return 0
	case PhaseResult:
		return 1
	}
	return float64(c.elapsed) / float64(c.spinDuration)
}

// Angle is the coin's rotation in radians. The spin decelerates
// quadratically and comes to rest on the outcome's face (heads at 0, tails at pi).
func (c *Coinflip) Angle() float64 {
	target := spinTurns * 2 * math.Pi
	if c.outcome == Tails {
		target += math.Pi
	}
	p := c.Progress()
	eased := 1 - (1-p)*(1-p)
	return target * eased
}

// Settle implements game.Engine
func (c *Coinflip) Settle() int {
	if c.phase != PhaseResult {
		return 0
	}
	if c.choice == c.outcome {
		return c.BetAmount()
	}
	return -c.BetAmount()
}

// Reset implements game.Engine
func (c *Coinflip) Reset() {
	c.Release()
	c.phase = PhaseBetting
	c.choice = Heads
	c.outcome = Heads
	c.elapsed = 0
	c.UpdateLimits()
}
