package game

// Wager holds the bet amount and the limits it must respect. Engines embed it
// to share the clamping rules.
type Wager struct {
	limits    LimitSource
	amount    int
	min       int
	max       int
	committed bool
}

// NewWager creates a wager at the minimum of the current limits
func NewWager(limits LimitSource) Wager {
	w := Wager{limits: limits}
	w.UpdateLimits()
	w.amount = w.min
	return w
}

// BetAmount returns the current wager
func (w *Wager) BetAmount() int { return w.amount }

// MinBet returns the lower bet limit
func (w *Wager) MinBet() int { return w.min }

// MaxBet returns the upper bet limit
func (w *Wager) MaxBet() int { return w.max }

// UpdateLimits re-pulls limits. The wager is clamped into them only while it
// is uncommitted; a staked amount never moves.
func (w *Wager) UpdateLimits() {
	lim := w.limits.BetLimits()
	w.min, w.max = lim.Min, lim.Max
	if !w.committed {
		w.amount = lim.Clamp(w.amount)
	}
}

// Commit freezes the wager for the round. Engines call it when they leave
// the betting phase.
func (w *Wager) Commit() { w.committed = true }

// Release undoes Commit. Engines call it from Reset.
func (w *Wager) Release() { w.committed = false }

// Committed reports whether the wager is frozen for a round in progress
func (w *Wager) Committed() bool { return w.committed }

// Place sets the wager, clamped into range. Ignored once committed.
func (w *Wager) Place(amount int) {
	if w.committed {
		return
	}
	w.amount = max(w.min, min(amount, w.max))
}
