package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Section is a dashboard area with its own "new since" marker
type Section string

const (
	SectionLikes    Section = "likes"
	SectionDislikes Section = "dislikes"
	SectionRequests Section = "requests"
)

// LastViewed holds when each section was last opened
type LastViewed struct {
	Likes    *time.Time `json:"likes"`
	Dislikes *time.Time `json:"dislikes"`
	Requests *time.Time `json:"requests"`
}

// Get returns the marker for a section
func (lv LastViewed) Get(s Section) *time.Time {
	switch s {
	case SectionLikes:
		return lv.Likes
	case SectionDislikes:
		return lv.Dislikes
	case SectionRequests:
		return lv.Requests
	}
	return nil
}

// HasNewSince reports whether any timestamp is after since. With no marker,
// anything at all counts as new.
func HasNewSince(since *time.Time, timestamps []time.Time) bool {
	if since == nil {
		return len(timestamps) > 0
	}
	for _, ts := range timestamps {
		if ts.After(*since) {
			return true
		}
	}
	return false
}

// LastViewedStore persists LastViewed per user as JSON
type LastViewedStore struct {
	store Store
	clock clockwork.Clock
}

func NewLastViewedStore(store Store, clock clockwork.Clock) *LastViewedStore {
	return &LastViewedStore{store: store, clock: clock}
}

func lastViewedKey(userID uuid.UUID) string {
	return "dashboard_viewed:" + userID.String()
}

// Load returns the user's markers, empty when none were saved
func (s *LastViewedStore) Load(ctx context.Context, userID uuid.UUID) (LastViewed, error) {
	raw, ok, err := s.store.Get(ctx, lastViewedKey(userID))
	if err != nil || !ok {
		return LastViewed{}, err
	}
	var lv LastViewed
	if err := json.Unmarshal([]byte(raw), &lv); err != nil {
		return LastViewed{}, fmt.Errorf("failed to decode last viewed times: %w", err)
	}
	return lv, nil
}

// Mark sets a section's marker to now
func (s *LastViewedStore) Mark(ctx context.Context, userID uuid.UUID, section Section) (LastViewed, error) {
	lv, err := s.Load(ctx, userID)
	if err != nil {
		return LastViewed{}, err
	}

	now := s.clock.Now().UTC()
	switch section {
	case SectionLikes:
		lv.Likes = &now
	case SectionDislikes:
		lv.Dislikes = &now
	case SectionRequests:
		lv.Requests = &now
	default:
		return LastViewed{}, fmt.Errorf("unknown dashboard section %q", section)
	}

	data, err := json.Marshal(lv)
	if err != nil {
		return LastViewed{}, fmt.Errorf("failed to encode last viewed times: %w", err)
	}
	if err := s.store.Set(ctx, lastViewedKey(userID), string(data)); err != nil {
		return LastViewed{}, err
	}
	return lv, nil
}

// Reset forgets every marker for the user
func (s *LastViewedStore) Reset(ctx context.Context, userID uuid.UUID) error {
	return s.store.Delete(ctx, lastViewedKey(userID))
}
