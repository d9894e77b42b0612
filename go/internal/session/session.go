// Package session composes a user's team selection with discovery: the team
// they are viewing as decides the sports, coordinates and match reasons of a search.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/discovery"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/mcdev12/teamtango/go/internal/preferences"
)

// Teams is the slice of the teams app a session needs
type Teams interface {
	ListActiveUserTeams(ctx context.Context, ownerID uuid.UUID) ([]models.Team, error)
	UserSportIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
}

// Searcher runs discovery queries
type Searcher interface {
	Search(ctx context.Context, q discovery.Query) (*discovery.Result, error)
}

// Session is one user's discovery context
type Session struct {
	ownerID    uuid.UUID
	teams      Teams
	search     Searcher
	viewingAs  *preferences.ViewingAs
	lastViewed *preferences.LastViewedStore
}

func New(ownerID uuid.UUID, teams Teams, search Searcher, prefs preferences.Store, lastViewed *preferences.LastViewedStore) *Session {
	return &Session{
		ownerID:    ownerID,
		teams:      teams,
		search:     search,
		viewingAs:  preferences.NewViewingAs(prefs, ownerID),
		lastViewed: lastViewed,
	}
}

func (s *Session) ViewingAs() *preferences.ViewingAs {
	return s.viewingAs
}

// Discover searches for candidates on behalf of the selected team. The
// candidate sports are always the sports of the user's active teams.
func (s *Session) Discover(ctx context.Context, filters discovery.Filters) (*discovery.Result, error) {
	active, err := s.teams.ListActiveUserTeams(ctx, s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load viewer teams: %w", err)
	}

	if _, err := s.viewingAs.Validate(ctx, active); err != nil {
		return nil, err
	}

	sportIDs, err := s.teams.UserSportIDs(ctx, s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load viewer sports: %w", err)
	}

	q := discovery.Query{
		ViewerUserID:    s.ownerID,
		Filters:         filters,
		AllowedSportIDs: sportIDs,
	}
	if team, ok := s.viewingAs.SelectedTeam(active); ok {
		q.ViewerTeam = team
	}

	return s.search.Search(ctx, q)
}

// LastViewed returns when each dashboard section was last opened
func (s *Session) LastViewed(ctx context.Context) (preferences.LastViewed, error) {
	return s.lastViewed.Load(ctx, s.ownerID)
}

// MarkViewed records that a dashboard section was opened now
func (s *Session) MarkViewed(ctx context.Context, section preferences.Section) (preferences.LastViewed, error) {
	return s.lastViewed.Mark(ctx, s.ownerID, section)
}
