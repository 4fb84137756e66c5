package events

// Event is anything that can be published on a Bus
type Event interface {
	EventType() EventType
}

// MoneyChanged is published by the ledger whenever the aligned balance changes,
// and with a zero Delta when the ledger is reset.
type MoneyChanged struct {
	Amount int
	Delta  int
}

func (e MoneyChanged) EventType() EventType { return EventTypeMoneyChanged }

// RoundStarted is published when a stake has been deducted and the engine has
// left its betting phase.
type RoundStarted struct {
	RoundID string
	Game    string
	Stake   int
}

func (e RoundStarted) EventType() EventType { return EventTypeRoundStarted }

// RoundSettled is published once per round when the host credits the payout.
// Net is the engine settlement, Payout is what was credited back (Stake+Net
// for a finished round, zero for an abandoned one).
type RoundSettled struct {
	RoundID   string
	Game      string
	Stake     int
	Net       int
	Payout    int
	Abandoned bool
}

func (e RoundSettled) EventType() EventType { return EventTypeRoundSettled }
