// Package interactions keeps the like/dislike ledger for a user's teams and
// derives liked sets, relationships and mutual matches from it.
package interactions

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamtango/go/internal/events"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Store defines what the ledger needs from persistence
type Store interface {
	ListInteractions(ctx context.Context, teamIDs []uuid.UUID) ([]models.Interaction, error)
	UpsertInteraction(ctx context.Context, ownerID uuid.UUID, pair Pair, kind models.InteractionKind, at time.Time) (*models.Interaction, error)
	DeleteInteraction(ctx context.Context, ownerID uuid.UUID, pair Pair) error
	ListStats(ctx context.Context, teamIDs []uuid.UUID) ([]models.InteractionStats, error)
}

// Ledger is a snapshot of every interaction touching the owner's teams, keyed
// by ordered pair. The snapshot is reloaded from the store after each write.
type Ledger struct {
	store     Store
	clock     clockwork.Clock
	publisher events.Publisher
	changes   *events.Bus

	mu       sync.RWMutex
	ownerID  uuid.UUID
	ownTeams map[uuid.UUID]bool
	byPair   map[Pair]models.Interaction
	stats    map[uuid.UUID]models.InteractionStats
}

// NewLedger creates a ledger for ownerID's teams. Call Reload before reading.
func NewLedger(store Store, clock clockwork.Clock, publisher events.Publisher, ownerID uuid.UUID, teamIDs []uuid.UUID) *Ledger {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	l := &Ledger{
		store:     store,
		clock:     clock,
		publisher: publisher,
		changes:   events.NewBus(),
		ownerID:   ownerID,
		byPair:    make(map[Pair]models.Interaction),
		stats:     make(map[uuid.UUID]models.InteractionStats),
	}
	l.ownTeams = teamSet(teamIDs)
	return l
}

func teamSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// SetTeams replaces the owned team set and reloads
func (l *Ledger) SetTeams(ctx context.Context, teamIDs []uuid.UUID) error {
	l.mu.Lock()
	l.ownTeams = teamSet(teamIDs)
	l.mu.Unlock()
	return l.Reload(ctx)
}

// Subscribe returns a subscription notified after every successful reload
func (l *Ledger) Subscribe() *events.Subscription {
	return l.changes.Subscribe()
}

// Close ends all change subscriptions
func (l *Ledger) Close() {
	l.changes.Close()
}

// Reload replaces the snapshot with the store's current state
func (l *Ledger) Reload(ctx context.Context) error {
	teamIDs := l.teamIDs()
	if len(teamIDs) == 0 {
		l.mu.Lock()
		l.byPair = make(map[Pair]models.Interaction)
		l.stats = make(map[uuid.UUID]models.InteractionStats)
		l.mu.Unlock()
		l.notify(ctx)
		return nil
	}

	list, err := l.store.ListInteractions(ctx, teamIDs)
	if err != nil {
		return fmt.Errorf("failed to load interactions: %w", err)
	}
	stats, err := l.store.ListStats(ctx, teamIDs)
	if err != nil {
		return fmt.Errorf("failed to load interaction stats: %w", err)
	}

	byPair := make(map[Pair]models.Interaction, len(list))
	for _, i := range list {
		key := Pair{Acting: i.UserTeamID, Target: i.TargetTeamID}
		// keep the most recent row should the store ever return duplicates
		if prev, ok := byPair[key]; ok && prev.LastActivity().After(i.LastActivity()) {
			continue
		}
		byPair[key] = i
	}
	byTarget := make(map[uuid.UUID]models.InteractionStats, len(stats))
	for _, s := range stats {
		byTarget[s.TargetTeamID] = s
	}

	l.mu.Lock()
	l.byPair = byPair
	l.stats = byTarget
	l.mu.Unlock()

	l.notify(ctx)
	return nil
}

// SetInteraction records kind for (acting, target), overwriting any existing
// decision for that pair
func (l *Ledger) SetInteraction(ctx context.Context, acting, target uuid.UUID, kind models.InteractionKind) (*models.Interaction, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if acting == target {
		return nil, ErrSelfInteraction
	}
	if !l.owns(acting) {
		return nil, ErrNotOwnTeam
	}

	pair := Pair{Acting: acting, Target: target}
	wasMutual := l.IsMutualMatch(acting, target)

	saved, err := l.store.UpsertInteraction(ctx, l.ownerID, pair, kind, l.clock.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to set interaction: %w", err)
	}
	if err := l.Reload(ctx); err != nil {
		return nil, err
	}

	l.publish(ctx, events.InteractionSet, saved)
	l.publishMatchChange(ctx, pair, wasMutual)
	log.Info().
		Str("user_team_id", acting.String()).
		Str("target_team_id", target.String()).
		Str("kind", string(kind)).
		Msg("interaction set")
	return saved, nil
}

// RemoveInteraction deletes the pair's interaction. Removing an absent pair is a no-op.
func (l *Ledger) RemoveInteraction(ctx context.Context, acting, target uuid.UUID) error {
	if !l.owns(acting) {
		return ErrNotOwnTeam
	}
	existing, ok := l.GetInteraction(acting, target)
	if !ok {
		return nil
	}

	pair := Pair{Acting: acting, Target: target}
	wasMutual := l.IsMutualMatch(acting, target)

	if err := l.store.DeleteInteraction(ctx, l.ownerID, pair); err != nil {
		return fmt.Errorf("failed to remove interaction: %w", err)
	}
	if err := l.Reload(ctx); err != nil {
		return err
	}

	l.publish(ctx, events.InteractionRemoved, existing)
	l.publishMatchChange(ctx, pair, wasMutual)
	return nil
}

// GetInteraction returns the interaction for the ordered pair
func (l *Ledger) GetInteraction(acting, target uuid.UUID) (*models.Interaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.byPair[Pair{Acting: acting, Target: target}]
	if !ok {
		return nil, false
	}
	return &i, true
}

// LikedTargetIDs returns the teams liked by acting
func (l *Ledger) LikedTargetIDs(acting uuid.UUID) []uuid.UUID {
	return l.targetsOfKind(acting, models.InteractionLike)
}

// DislikedTargetIDs returns the teams disliked by acting
func (l *Ledger) DislikedTargetIDs(acting uuid.UUID) []uuid.UUID {
	return l.targetsOfKind(acting, models.InteractionDislike)
}

func (l *Ledger) targetsOfKind(acting uuid.UUID, kind models.InteractionKind) []uuid.UUID {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.ownTeams[acting] {
		return nil
	}
	var ids []uuid.UUID
	for pair, i := range l.byPair {
		if pair.Acting == acting && i.Kind == kind {
			ids = append(ids, pair.Target)
		}
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a].String() < ids[b].String() })
	return ids
}

// IsMutualMatch reports whether a and b like each other. This is the only
// mutual-match predicate; every other view derives from it.
func (l *Ledger) IsMutualMatch(a, b uuid.UUID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return isMutual(l.byPair, Pair{Acting: a, Target: b})
}

func isMutual(byPair map[Pair]models.Interaction, p Pair) bool {
	forward, ok1 := byPair[p]
	backward, ok2 := byPair[p.Reverse()]
	return ok1 && ok2 && forward.Kind == models.InteractionLike && backward.Kind == models.InteractionLike
}

// MutualMatches returns every team mutually matched with current
func (l *Ledger) MutualMatches(current uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID
	for _, r := range l.Relationships(current) {
		if r.Direction == DirectionMutual {
			ids = append(ids, r.OtherTeamID)
		}
	}
	return ids
}

// Relationships merges likes sent by and received by current into one entry
// per other team, most recent activity first
func (l *Ledger) Relationships(current uuid.UUID) []Relationship {
	l.mu.RLock()
	defer l.mu.RUnlock()

	byOther := make(map[uuid.UUID]*Relationship)
	for pair, i := range l.byPair {
		if i.Kind != models.InteractionLike {
			continue
		}
		var other uuid.UUID
		switch current {
		case pair.Acting:
			other = pair.Target
		case pair.Target:
			other = pair.Acting
		default:
			continue
		}

		rel, ok := byOther[other]
		if !ok {
			rel = &Relationship{OtherTeamID: other}
			byOther[other] = rel
		}
		interaction := i
		if pair.Acting == current {
			rel.Outgoing = &interaction
		} else {
			rel.Incoming = &interaction
		}
		if at := interaction.LastActivity(); at.After(rel.LastActivity) {
			rel.LastActivity = at
		}
	}

	out := make([]Relationship, 0, len(byOther))
	for other, rel := range byOther {
		switch {
		case isMutual(l.byPair, Pair{Acting: current, Target: other}):
			rel.Direction = DirectionMutual
		case rel.Outgoing != nil:
			rel.Direction = DirectionOutgoing
		default:
			rel.Direction = DirectionIncoming
		}
		out = append(out, *rel)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastActivity.Equal(out[j].LastActivity) {
			return out[i].LastActivity.After(out[j].LastActivity)
		}
		return out[i].OtherTeamID.String() < out[j].OtherTeamID.String()
	})
	return out
}

// Stats returns like/dislike counts received by target, zero when unknown
func (l *Ledger) Stats(target uuid.UUID) models.InteractionStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if s, ok := l.stats[target]; ok {
		return s
	}
	return models.InteractionStats{TargetTeamID: target}
}

func (l *Ledger) owns(teamID uuid.UUID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ownTeams[teamID]
}

func (l *Ledger) teamIDs() []uuid.UUID {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(l.ownTeams))
	for id := range l.ownTeams {
		ids = append(ids, id)
	}
	return ids
}

func (l *Ledger) notify(ctx context.Context) {
	ev, err := events.NewEvent(events.LedgerReloaded, l.ownerID, map[string]int{"interactions": l.size()}, l.clock.Now())
	if err != nil {
		return
	}
	_ = l.changes.Publish(ctx, ev)
}

func (l *Ledger) size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byPair)
}

func (l *Ledger) publishMatchChange(ctx context.Context, pair Pair, wasMutual bool) {
	isNow := l.IsMutualMatch(pair.Acting, pair.Target)
	if isNow == wasMutual {
		return
	}
	eventType := events.MutualMatchEnded
	if isNow {
		eventType = events.MutualMatchCreated
		log.Info().
			Str("team_a", pair.Acting.String()).
			Str("team_b", pair.Target.String()).
			Msg("mutual match")
	}
	l.publish(ctx, eventType, map[string]string{
		"team_a": pair.Acting.String(),
		"team_b": pair.Target.String(),
	})
}

func (l *Ledger) publish(ctx context.Context, eventType string, payload any) {
	ev, err := events.NewEvent(eventType, l.ownerID, payload, l.clock.Now())
	if err == nil {
		err = l.publisher.Publish(ctx, ev)
	}
	if err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish interaction event")
	}
}
