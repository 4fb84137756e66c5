package game

import (
	"time"

	"github.com/lox/streetgames/internal/ledger"
)

// Stage is the game-agnostic view of an engine's phase
type Stage int

const (
	// StageBetting is the sole initial and re-entry stage
	StageBetting Stage = iota
	// StagePlaying covers every phase between the start mutator and the result
	StagePlaying
	// StageResult is the sole terminal stage of a round
	StageResult
)

// String returns the string representation of the stage
func (s Stage) String() string {
	switch s {
	case StageBetting:
		return "betting"
	case StagePlaying:
		return "playing"
	case StageResult:
		return "result"
	default:
		return "unknown"
	}
}

// LimitSource supplies the current bet range. *ledger.Ledger implements it.
type LimitSource interface {
	BetLimits() ledger.Limits
}

// Engine is the shape every minigame satisfies
type Engine interface {
	// Name identifies the game, e.g. "blackjack"
	Name() string
	// Stage reports where the round is
	Stage() Stage
	BetAmount() int
	MinBet() int
	MaxBet() int
	// SetBet chooses the wager while betting, clamped into [MinBet, MaxBet]
	SetBet(amount int)
	// UpdateLimits re-reads the bet range and clamps the wager into it
	UpdateLimits()
	// Settle returns net profit (positive) or loss (negative or zero) for a
	// round in StageResult. It is a pure function of the terminal state.
	Settle() int
	// Reset clears round state and returns to StageBetting
	Reset()
	// Update advances time-driven phases by dt. Engines without timed phases ignore it.
	Update(dt time.Duration)
}

// StakeReturned is what an abandoned round gives back: the stake plus
// settlement once the round has finished, nothing before that.
func StakeReturned(e Engine) int {
	if e.Stage() != StageResult {
		return 0
	}
	return e.BetAmount() + e.Settle()
}

// AdjustBet moves the wager by delta, for +/- style controls. It goes through
// SetBet so the engine's betting-phase guard and clamping apply.
func AdjustBet(e Engine, delta int) {
	e.SetBet(e.BetAmount() + delta)
}
