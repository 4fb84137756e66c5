package events

// EventType represents an event kind with type safety
type EventType string

// EventType constants published by the ledger and the game host
const (
	EventTypeMoneyChanged EventType = "money_changed"
	EventTypeRoundStarted EventType = "round_started"
	EventTypeRoundSettled EventType = "round_settled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
