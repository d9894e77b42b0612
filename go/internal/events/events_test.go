package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func mustEvent(t *testing.T, eventType string) Event {
	t.Helper()
	ev, err := NewEvent(eventType, uuid.New(), map[string]string{"k": "v"}, time.Now())
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	return ev
}

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus()
	a, b := bus.Subscribe(), bus.Subscribe()

	ev := mustEvent(t, TeamCreated)
	if err := bus.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	for _, sub := range []*Subscription{a, b} {
		select {
		case got := <-sub.Events():
			if got.ID != ev.ID {
				t.Errorf("got event %s, want %s", got.ID, ev.ID)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestSubscriptionCloseStopsDelivery(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe()
	sub.Close()
	sub.Close()

	_ = bus.Publish(context.Background(), mustEvent(t, TeamUpdated))
	if _, ok := <-sub.Events(); ok {
		t.Error("closed subscription should not receive events")
	}
}

func TestBusClose(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe()
	bus.Close()

	if _, ok := <-sub.Events(); ok {
		t.Error("bus close should close subscriptions")
	}
	late := bus.Subscribe()
	if _, ok := <-late.Events(); ok {
		t.Error("subscribing to a closed bus yields a closed channel")
	}
}

type errPublisher struct{ err error }

func (p errPublisher) Publish(ctx context.Context, event Event) error { return p.err }

func TestMultiPublisherReturnsFirstError(t *testing.T) {
	first := errors.New("first")
	bus := NewBus()
	sub := bus.Subscribe()
	m := MultiPublisher{errPublisher{first}, bus, errPublisher{errors.New("second")}}

	if err := m.Publish(context.Background(), mustEvent(t, InteractionSet)); !errors.Is(err, first) {
		t.Errorf("got %v, want first error", err)
	}
	if len(sub.Events()) != 1 {
		t.Error("publishers after a failure still receive the event")
	}
}

func TestEnvelope(t *testing.T) {
	ev := mustEvent(t, MutualMatchCreated)
	data, err := Envelope(ev)
	if err != nil {
		t.Fatalf("Envelope: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["eventType"] != MutualMatchCreated || decoded["eventId"] != ev.ID.String() {
		t.Errorf("unexpected envelope %v", decoded)
	}
	if Subject("teamtango.events", ev.Type) != "teamtango.events.match.mutual" {
		t.Error("unexpected subject")
	}
}
