// Package ledger is the single authority for the player's money. Every write
// is floor-aligned to the money unit, the high-water mark only ever rises,
// and effective changes are announced on the event bus.
package ledger

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lox/streetgames/internal/events"
)

// Limits is the allowed bet range derived from the high-water mark
type Limits struct {
	Min int
	Max int
}

// Clamp returns amount forced into [Min, Max]
func (l Limits) Clamp(amount int) int {
	return max(l.Min, min(amount, l.Max))
}

// Ledger holds the balance. The zero value is not usable; call New.
//
// Writes are serialized by writeMu through the MoneyChanged publish, so
// events arrive in write order even with concurrent writers. mu guards the
// fields and is released before publishing, so handlers may read the ledger.
// Handlers must not write to it.
type Ledger struct {
	writeMu   sync.Mutex
	mu        sync.Mutex
	cfg       Config
	balance   int
	highWater int
	bus       *events.Bus
}

// New creates a ledger at the configured starting balance. bus may be nil.
func New(cfg Config, bus *events.Bus) *Ledger {
	l := &Ledger{cfg: cfg, bus: bus}
	l.balance = l.align(cfg.StartingBalance)
	l.highWater = l.balance
	return l
}

// Config returns the money policy the ledger was built with
func (l *Ledger) Config() Config {
	return l.cfg
}

// Balance returns the current aligned balance
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// HighWater returns the greatest balance ever held
func (l *Ledger) HighWater() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.highWater
}

// SetBalance floor-aligns v and stores it
func (l *Ledger) SetBalance(v int) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.mu.Lock()
	ev, changed := l.store(v)
	l.mu.Unlock()

	if changed {
		l.publish(ev)
	}
}

// AddMoney adds delta (which may be negative) to the balance
func (l *Ledger) AddMoney(delta int) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.mu.Lock()
	ev, changed := l.store(l.balance + delta)
	l.mu.Unlock()

	if changed {
		l.publish(ev)
	}
}

// CanAfford reports whether the balance covers amount
func (l *Ledger) CanAfford(amount int) bool {
	return l.Balance() >= amount
}

// store must be called with mu held
func (l *Ledger) store(v int) (events.MoneyChanged, bool) {
	aligned := l.align(v)
	if aligned == l.balance {
		return events.MoneyChanged{}, false
	}
	delta := aligned - l.balance
	l.balance = aligned
	l.highWater = max(l.highWater, aligned)
	return events.MoneyChanged{Amount: aligned, Delta: delta}, true
}

// BetLimits derives the current bet range from the high-water mark
func (l *Ledger) BetLimits() Limits {
	return l.LimitsFor(l.HighWater())
}

// LimitsFor computes the bet range a given high-water mark would produce
func (l *Ledger) LimitsFor(highWater int) Limits {
	hw := decimal.NewFromInt(int64(highWater))
	bonusMin := int(hw.Mul(l.cfg.MinBonusRate).Floor().IntPart())
	bonusMax := int(hw.Mul(l.cfg.MaxBonusRate).Floor().IntPart())

	return Limits{
		Min: clamp(l.align(l.cfg.BaseMin+bonusMin), l.cfg.BaseMin, l.cfg.CapMin),
		Max: clamp(l.align(l.cfg.BaseMax+bonusMax), l.cfg.BaseMax, l.cfg.CapMax),
	}
}

// Reset restores the starting balance and high-water mark, then republishes
// the balance with a zero delta so consumers can resynchronise.
func (l *Ledger) Reset() {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.mu.Lock()
	l.balance = l.align(l.cfg.StartingBalance)
	l.highWater = l.balance
	ev := events.MoneyChanged{Amount: l.balance, Delta: 0}
	l.mu.Unlock()

	l.publish(ev)
}

func (l *Ledger) publish(ev events.MoneyChanged) {
	if l.bus != nil {
		l.bus.Emit(ev)
	}
}

// align rounds v down to a multiple of the money unit, toward negative infinity
func (l *Ledger) align(v int) int {
	unit := l.cfg.MoneyUnit
	q := v / unit
	if v%unit != 0 && v < 0 {
		q--
	}
	return q * unit
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
