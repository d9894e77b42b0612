package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

const defaultSubscriptionBuffer = 64

// Bus is an in-process publisher with channel subscriptions
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscription receives events until it is closed
type Subscription struct {
	bus  *Bus
	ch   chan Event
	once sync.Once
}

// Events returns the receive channel; it is closed when the subscription ends
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close detaches the subscription from the bus
func (s *Subscription) Close() {
	s.bus.remove(s)
}

// Subscribe registers a new subscriber
func (b *Bus) Subscribe() *Subscription {
	sub := &Subscription{bus: b, ch: make(chan Event, defaultSubscriptionBuffer)}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(sub.ch)
		return sub
	}
	b.subs[sub] = struct{}{}
	return sub
}

// Publish delivers to every subscriber. A subscriber whose buffer is full misses the event.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs {
		select {
		case sub.ch <- event:
		default:
			log.Warn().Str("event_type", event.Type).Msg("subscriber buffer full, dropping event")
		}
	}
	return nil
}

// Close ends every subscription
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		sub.once.Do(func() { close(sub.ch) })
		delete(b.subs, sub)
	}
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	sub.once.Do(func() { close(sub.ch) })
}
