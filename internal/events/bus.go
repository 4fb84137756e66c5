package events

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Handler receives published events
type Handler func(Event)

// SubscriptionID identifies a registered handler so it can be removed with Off.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus delivers events synchronously, in subscription order, to every handler
// registered for the event's exact type at the time of Emit. A panicking
// handler is recovered and logged; the remaining handlers still run.
type Bus struct {
	mu       sync.Mutex
	handlers map[EventType][]subscription
	nextID   SubscriptionID
	logger   *log.Logger
}

// NewBus creates an empty bus. A nil logger discards output.
func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bus{
		handlers: make(map[EventType][]subscription),
		logger:   logger,
	}
}

// On registers handler for events of type et
func (b *Bus) On(et EventType, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[et] = append(b.handlers[et], subscription{id: b.nextID, handler: handler})
	return b.nextID
}

// Off removes a handler previously registered with On. Unknown ids are ignored.
func (b *Bus) Off(et EventType, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[et]
	for i, sub := range subs {
		if sub.id == id {
			b.handlers[et] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit delivers event to every handler registered for its type.
// Handlers may call On/Off while being delivered to; changes apply to the next Emit.
func (b *Bus) Emit(event Event) {
	b.mu.Lock()
	subs := b.handlers[event.EventType()]
	b.mu.Unlock()

	for _, sub := range subs {
		b.deliver(sub, event)
	}
}

func (b *Bus) deliver(sub subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event handler panicked", "event", event.EventType(), "subscription", sub.id, "panic", r)
		}
	}()
	sub.handler(event)
}

// Clear removes every handler
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = make(map[EventType][]subscription)
}

// Count returns the number of handlers registered for et
func (b *Bus) Count(et EventType) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.handlers[et])
}
