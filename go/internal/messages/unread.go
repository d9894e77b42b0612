package messages

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/realtime"
	"github.com/rs/zerolog/log"
)

// UnreadTracker keeps unread message counts for a user's teams
type UnreadTracker struct {
	mu       sync.RWMutex
	ownTeams map[uuid.UUID]bool
	counts   map[uuid.UUID]int
	onChange func(teamID uuid.UUID, count int)
}

// NewUnreadTracker tracks the given teams starting from initial counts
func NewUnreadTracker(teamIDs []uuid.UUID, initial map[uuid.UUID]int) *UnreadTracker {
	t := &UnreadTracker{
		ownTeams: make(map[uuid.UUID]bool, len(teamIDs)),
		counts:   make(map[uuid.UUID]int, len(teamIDs)),
	}
	for _, id := range teamIDs {
		t.ownTeams[id] = true
		if n := initial[id]; n > 0 {
			t.counts[id] = n
		}
	}
	return t
}

// OnChange registers a callback run after a team's count changes
func (t *UnreadTracker) OnChange(fn func(teamID uuid.UUID, count int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// Apply updates counts for one event and reports whether anything changed
func (t *UnreadTracker) Apply(ev realtime.MessageEvent) bool {
	receiver := ev.Message.ReceiverTeamID

	t.mu.Lock()
	if !t.ownTeams[receiver] {
		t.mu.Unlock()
		return false
	}

	delta := 0
	switch ev.Op {
	case realtime.OpInsert:
		if !ev.Message.IsRead {
			delta = 1
		}
	case realtime.OpUpdate:
		wasUnread := ev.Old == nil || !ev.Old.IsRead
		if ev.Message.IsRead && wasUnread {
			delta = -1
		} else if !ev.Message.IsRead && ev.Old != nil && ev.Old.IsRead {
			delta = 1
		}
	case realtime.OpDelete:
		if !ev.Message.IsRead {
			delta = -1
		}
	}

	before := t.counts[receiver]
	after := before + delta
	if after < 0 {
		after = 0
	}
	t.counts[receiver] = after
	onChange := t.onChange
	t.mu.Unlock()

	if after == before {
		return false
	}
	if onChange != nil {
		onChange(receiver, after)
	}
	return true
}

// Run applies events from the subscription until it ends or ctx is done
func (t *UnreadTracker) Run(ctx context.Context, events <-chan realtime.MessageEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				log.Debug().Msg("message stream ended")
				return
			}
			t.Apply(ev)
		}
	}
}

// Count returns the unread count for a team
func (t *UnreadTracker) Count(teamID uuid.UUID) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counts[teamID]
}

// Total returns the unread count across all tracked teams
func (t *UnreadTracker) Total() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}
