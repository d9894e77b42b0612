// Package events carries change notifications for teams and interactions.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TeamCreated        = "team.created"
	TeamUpdated        = "team.updated"
	TeamDeactivated    = "team.deactivated"
	TeamReactivated    = "team.reactivated"
	TeamDeleted        = "team.deleted"
	InteractionSet     = "interaction.set"
	InteractionRemoved = "interaction.removed"
	MutualMatchCreated = "match.mutual"
	MutualMatchEnded   = "match.ended"
	LedgerReloaded     = "interactions.reloaded"
)

// Event is a change notification
type Event struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"event_type"`
	AggregateID uuid.UUID       `json:"aggregate_id"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Publisher delivers events to whoever is listening
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NewEvent marshals payload into an event
func NewEvent(eventType string, aggregateID uuid.UUID, payload any, at time.Time) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:          uuid.New(),
		Type:        eventType,
		AggregateID: aggregateID,
		Payload:     data,
		CreatedAt:   at.UTC(),
	}, nil
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }

// MultiPublisher fans an event out to several publishers and returns the first error
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, event Event) error {
	var firstErr error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
