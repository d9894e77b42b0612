package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamtango/go/internal/discovery"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/mcdev12/teamtango/go/internal/preferences"
)

type stubTeams struct {
	active []models.Team
	err    error
}

func (s *stubTeams) ListActiveUserTeams(ctx context.Context, ownerID uuid.UUID) ([]models.Team, error) {
	return s.active, s.err
}

func (s *stubTeams) UserSportIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	for _, t := range s.active {
		if !seen[t.SportID] {
			seen[t.SportID] = true
			ids = append(ids, t.SportID)
		}
	}
	return ids, nil
}

type recordingSearcher struct {
	queries []discovery.Query
}

func (r *recordingSearcher) Search(ctx context.Context, q discovery.Query) (*discovery.Result, error) {
	r.queries = append(r.queries, q)
	return &discovery.Result{}, nil
}

func newSession(t *testing.T, teams *stubTeams) (*Session, *recordingSearcher, uuid.UUID) {
	t.Helper()
	owner := uuid.New()
	store := preferences.NewMemoryStore()
	search := &recordingSearcher{}
	s := New(owner, teams, search, store, preferences.NewLastViewedStore(store, clockwork.NewFakeClock()))
	return s, search, owner
}

func TestDiscover_UsesSelectedTeamAndOwnSports(t *testing.T) {
	soccer, hockey := uuid.New(), uuid.New()
	kickers := models.Team{ID: uuid.New(), Name: "Kickers", SportID: soccer, Active: true}
	pucks := models.Team{ID: uuid.New(), Name: "Pucks", SportID: hockey, Active: true}
	teams := &stubTeams{active: []models.Team{kickers, pucks}}

	s, search, owner := newSession(t, teams)
	ctx := context.Background()
	if err := s.ViewingAs().Select(ctx, pucks.ID); err != nil {
		t.Fatalf("Select: %v", err)
	}

	maxMiles := 25.0
	if _, err := s.Discover(ctx, discovery.Filters{MaxDistanceMiles: &maxMiles}); err != nil {
		t.Fatalf("Discover: %v", err)
	}

	q := search.queries[0]
	if q.ViewerUserID != owner {
		t.Errorf("viewer = %s, want owner", q.ViewerUserID)
	}
	if q.ViewerTeam == nil || q.ViewerTeam.ID != pucks.ID {
		t.Errorf("viewer team = %v, want selected team", q.ViewerTeam)
	}
	if len(q.AllowedSportIDs) != 2 {
		t.Errorf("allowed sports = %v, want both owned sports", q.AllowedSportIDs)
	}
	if q.Filters.MaxDistanceMiles == nil || *q.Filters.MaxDistanceMiles != 25 {
		t.Error("filters must be passed through")
	}
}

func TestDiscover_StaleSelectionFallsBackToFirstActive(t *testing.T) {
	kickers := models.Team{ID: uuid.New(), SportID: uuid.New(), Active: true}
	teams := &stubTeams{active: []models.Team{kickers}}

	s, search, _ := newSession(t, teams)
	ctx := context.Background()
	_ = s.ViewingAs().Select(ctx, uuid.New())

	if _, err := s.Discover(ctx, discovery.Filters{}); err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if vt := search.queries[0].ViewerTeam; vt == nil || vt.ID != kickers.ID {
		t.Errorf("viewer team = %v, want first active team", vt)
	}
	if s.ViewingAs().Selected() != kickers.ID {
		t.Error("stale selection should be replaced")
	}
}

func TestDiscover_NoTeams(t *testing.T) {
	s, search, _ := newSession(t, &stubTeams{})

	if _, err := s.Discover(context.Background(), discovery.Filters{}); err != nil {
		t.Fatalf("Discover: %v", err)
	}
	q := search.queries[0]
	if q.ViewerTeam != nil || len(q.AllowedSportIDs) != 0 {
		t.Errorf("user without teams must search with no viewer team and no sports, got %+v", q)
	}
}

func TestDiscover_TeamLoadError(t *testing.T) {
	s, search, _ := newSession(t, &stubTeams{err: errors.New("db down")})

	if _, err := s.Discover(context.Background(), discovery.Filters{}); err == nil {
		t.Fatal("expected error")
	}
	if len(search.queries) != 0 {
		t.Error("search must not run without viewer teams")
	}
}

func TestMarkViewed(t *testing.T) {
	s, _, _ := newSession(t, &stubTeams{})
	ctx := context.Background()

	if _, err := s.MarkViewed(ctx, preferences.SectionLikes); err != nil {
		t.Fatalf("MarkViewed: %v", err)
	}
	lv, err := s.LastViewed(ctx)
	if err != nil || lv.Likes == nil {
		t.Fatalf("LastViewed = %+v, %v", lv, err)
	}
}
