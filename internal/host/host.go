// Package host drives any game.Engine against the ledger: it takes the stake,
// forwards clock ticks, credits the payout and announces each round.
package host

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/streetgames/internal/events"
	"github.com/lox/streetgames/internal/game"
	"github.com/lox/streetgames/internal/ledger"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotBetting        = errors.New("engine is not taking bets")
	ErrRoundNotStarted   = errors.New("no round in progress")
	ErrRoundUnfinished   = errors.New("round has not reached its result")
)

// Option configures a Host during creation
type Option func(*Host)

// WithClock sets the clock ticks are measured against
func WithClock(clock quartz.Clock) Option {
	return func(h *Host) { h.clock = clock }
}

// WithLogger sets the logger for round lifecycle messages
func WithLogger(logger *log.Logger) Option {
	return func(h *Host) { h.logger = logger }
}

// WithRoundIDs replaces the uuid round id generator
func WithRoundIDs(next func() string) Option {
	return func(h *Host) { h.nextID = next }
}

// Host owns one engine for as long as its minigame is open
type Host struct {
	ledger *ledger.Ledger
	bus    *events.Bus
	engine game.Engine
	clock  quartz.Clock
	logger *log.Logger
	nextID func() string

	round    string
	stake    int
	active   bool
	lastTick time.Time
}

// New creates a host for engine. bus may be nil.
func New(l *ledger.Ledger, bus *events.Bus, engine game.Engine, opts ...Option) *Host {
	h := &Host{
		ledger: l,
		bus:    bus,
		engine: engine,
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
		nextID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	engine.UpdateLimits()
	return h
}

// Engine returns the hosted engine
func (h *Host) Engine() game.Engine { return h.engine }

// Round returns the current round id, empty between rounds
func (h *Host) Round() string { return h.round }

// Active reports whether a stake is on the table
func (h *Host) Active() bool { return h.active }

// SetBet refreshes limits and chooses the wager. The stake of a round in
// progress cannot change.
func (h *Host) SetBet(amount int) error {
	if h.active {
		return ErrNotBetting
	}
	h.engine.UpdateLimits()
	h.engine.SetBet(amount)
	return nil
}

// PlaceBet takes the stake from the ledger and calls start, the engine's
// betting-phase mutator. If start leaves the engine in betting the stake is
// refunded and ErrRoundNotStarted returned.
func (h *Host) PlaceBet(start func()) error {
	if h.active || h.engine.Stage() != game.StageBetting {
		return ErrNotBetting
	}
	h.engine.UpdateLimits()
	stake := h.engine.BetAmount()
	if !h.ledger.CanAfford(stake) {
		return fmt.Errorf("%w: %s needs %d, balance is %d", ErrInsufficientFunds, h.engine.Name(), stake, h.ledger.Balance())
	}

	h.ledger.AddMoney(-stake)
	start()
	if h.engine.Stage() == game.StageBetting {
		h.ledger.AddMoney(stake)
		return ErrRoundNotStarted
	}

	h.round = h.nextID()
	h.stake = stake
	h.active = true
	h.lastTick = h.clock.Now()
	h.logger.Debug("Round started", "game", h.engine.Name(), "round", h.round, "stake", stake)
	h.emit(events.RoundStarted{RoundID: h.round, Game: h.engine.Name(), Stake: stake})
	return nil
}

// Tick forwards the time elapsed since the previous tick to the engine
func (h *Host) Tick() {
	if !h.active {
		return
	}
	now := h.clock.Now()
	dt := now.Sub(h.lastTick)
	h.lastTick = now
	h.engine.Update(dt)
}

// Advance forwards a fixed dt without consulting the clock. Headless play
// uses it to run rounds faster than real time.
func (h *Host) Advance(dt time.Duration) {
	if !h.active {
		return
	}
	h.lastTick = h.lastTick.Add(dt)
	h.engine.Update(dt)
}

// Settle credits stake plus settlement for a finished round and resets the
// engine. It returns the amount credited.
func (h *Host) Settle() (int, error) {
	if !h.active {
		return 0, ErrRoundNotStarted
	}
	if h.engine.Stage() != game.StageResult {
		return 0, fmt.Errorf("%w: %s", ErrRoundUnfinished, h.engine.Name())
	}
	net := h.engine.Settle()
	payout := h.stake + net
	h.finish(net, payout, false)
	return payout, nil
}

// Escape abandons the round. A finished round still pays out; an unfinished
// one forfeits the stake. It returns the amount credited.
func (h *Host) Escape() int {
	if !h.active {
		h.engine.Reset()
		return 0
	}
	finished := h.engine.Stage() == game.StageResult
	net := 0
	if finished {
		net = h.engine.Settle()
	}
	returned := game.StakeReturned(h.engine)
	h.finish(net, returned, !finished)
	return returned
}

func (h *Host) finish(net, payout int, abandoned bool) {
	if payout > 0 {
		h.ledger.AddMoney(payout)
	}
	h.logger.Debug("Round settled", "game", h.engine.Name(), "round", h.round,
		"stake", h.stake, "net", net, "payout", payout, "abandoned", abandoned)
	h.emit(events.RoundSettled{
		RoundID:   h.round,
		Game:      h.engine.Name(),
		Stake:     h.stake,
		Net:       net,
		Payout:    payout,
		Abandoned: abandoned,
	})

	h.round = ""
	h.stake = 0
	h.active = false
	h.engine.Reset()
}

func (h *Host) emit(e events.Event) {
	if h.bus != nil {
		h.bus.Emit(e)
	}
}
