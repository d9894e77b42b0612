package preferences

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/rs/zerolog/log"
)

// ViewingAs tracks which of a user's teams is acting in discovery
type ViewingAs struct {
	store  Store
	userID uuid.UUID

	mu       sync.RWMutex
	selected uuid.UUID
}

func NewViewingAs(store Store, userID uuid.UUID) *ViewingAs {
	return &ViewingAs{store: store, userID: userID}
}

func (v *ViewingAs) key() string {
	return "viewing_as:" + v.userID.String()
}

// Selected returns the selected team id, or uuid.Nil
func (v *ViewingAs) Selected() uuid.UUID {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.selected
}

// SelectedTeam returns the selected team if it is among teams
func (v *ViewingAs) SelectedTeam(teams []models.Team) (*models.Team, bool) {
	id := v.Selected()
	if id == uuid.Nil {
		return nil, false
	}
	for i := range teams {
		if teams[i].ID == id {
			return &teams[i], true
		}
	}
	return nil, false
}

// Available returns the teams that can be selected
func Available(teams []models.Team) []models.Team {
	out := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if t.Active {
			out = append(out, t)
		}
	}
	return out
}

// Select persists teamID as the selection; uuid.Nil clears it
func (v *ViewingAs) Select(ctx context.Context, teamID uuid.UUID) error {
	if teamID == uuid.Nil {
		return v.Clear(ctx)
	}
	if err := v.store.Set(ctx, v.key(), teamID.String()); err != nil {
		return fmt.Errorf("failed to save viewing-as team: %w", err)
	}
	v.mu.Lock()
	v.selected = teamID
	v.mu.Unlock()
	return nil
}

// Initialize restores the saved selection if the user still owns that team,
// else selects the first active team
func (v *ViewingAs) Initialize(ctx context.Context, userTeams []models.Team) (uuid.UUID, error) {
	saved, ok, err := v.store.Get(ctx, v.key())
	if err != nil {
		log.Warn().Err(err).Msg("failed to read saved viewing-as team")
	}
	if ok {
		if id, err := uuid.Parse(saved); err == nil && containsTeam(userTeams, id) {
			v.mu.Lock()
			v.selected = id
			v.mu.Unlock()
			return id, nil
		}
	}

	for _, t := range userTeams {
		if t.Active {
			v.mu.Lock()
			v.selected = t.ID
			v.mu.Unlock()
			return t.ID, nil
		}
	}

	v.mu.Lock()
	v.selected = uuid.Nil
	v.mu.Unlock()
	return uuid.Nil, nil
}

// Validate re-initializes when the selection no longer exists or nothing is selected
func (v *ViewingAs) Validate(ctx context.Context, userTeams []models.Team) (uuid.UUID, error) {
	current := v.Selected()
	if current != uuid.Nil && containsTeam(userTeams, current) {
		return current, nil
	}
	if current == uuid.Nil && len(userTeams) == 0 {
		return uuid.Nil, nil
	}
	return v.Initialize(ctx, userTeams)
}

// Clear removes the selection
func (v *ViewingAs) Clear(ctx context.Context) error {
	v.mu.Lock()
	v.selected = uuid.Nil
	v.mu.Unlock()
	if err := v.store.Delete(ctx, v.key()); err != nil {
		return fmt.Errorf("failed to clear viewing-as team: %w", err)
	}
	return nil
}

func containsTeam(teams []models.Team, id uuid.UUID) bool {
	for _, t := range teams {
		if t.ID == id {
			return true
		}
	}
	return false
}
