package input

import (
	"sync"
)

// Handler receives events from a Bus.
type Handler func(Event)

// Subscription is a live registration of a Handler on a Bus.
type Subscription struct {
	bus       *Bus
	typ       EventType
	handler   Handler
	cancelled bool
}

// Cancel removes the subscription. A cancelled handler is never invoked
// again, even by a Publish already in progress. Cancel is idempotent.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.bus.cancel(s)
}

// Type returns the event type the subscription listens to.
func (s *Subscription) Type() EventType {
	return s.typ
}

// Bus dispatches events to subscribers in subscription order.
// Handlers run synchronously on the publishing goroutine and may subscribe
// or cancel from inside a dispatch.
type Bus struct {
	mu   sync.Mutex
	subs map[EventType][]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[EventType][]*Subscription)}
}

// Subscribe registers h for events of type t.
func (b *Bus) Subscribe(t EventType, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &Subscription{bus: b, typ: t, handler: h}
	b.subs[t] = append(b.subs[t], s)
	return s
}

// Publish delivers e to every live subscriber of e.Type.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	snapshot := make([]*Subscription, len(b.subs[e.Type]))
	copy(snapshot, b.subs[e.Type])
	b.mu.Unlock()

	for _, s := range snapshot {
		b.mu.Lock()
		live := !s.cancelled
		b.mu.Unlock()
		if live {
			s.handler(e)
		}
	}
}

// Active returns the number of live subscriptions for t.
func (b *Bus) Active(t EventType) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[t])
}

func (b *Bus) cancel(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s.cancelled {
		return
	}
	s.cancelled = true
	list := b.subs[s.typ]
	for i, o := range list {
		if o == s {
			b.subs[s.typ] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
}
