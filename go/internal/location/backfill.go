package location

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/rs/zerolog/log"
)

// TeamStore is the persistence needed by the backfill
type TeamStore interface {
	ListTeamsMissingCoordinates(ctx context.Context, ownerID uuid.UUID) ([]models.Team, error)
	UpdateTeamLocation(ctx context.Context, ownerID, teamID uuid.UUID, res Resolution) error
}

// BackfillResult reports the outcome of a backfill batch
type BackfillResult struct {
	UpdatedCount int     `json:"updated_count"`
	FailedCount  int     `json:"failed_count"`
	SkippedCount int     `json:"skipped_count"`
	Errors       []error `json:"errors,omitempty"`
}

// Backfiller geocodes an owner's teams that still lack coordinates
type Backfiller struct {
	resolver *Resolver
	store    TeamStore
}

func NewBackfiller(resolver *Resolver, store TeamStore) *Backfiller {
	return &Backfiller{
		resolver: resolver,
		store:    store,
	}
}

// Backfill processes teams one at a time so every lookup goes through the
// shared rate limit. Teams already marked geocoding_failed are not returned by
// the store. A single team's failure is counted and the batch continues.
// Once ctx is done the remaining teams are left untouched and uncounted.
func (b *Backfiller) Backfill(ctx context.Context, ownerID uuid.UUID) (*BackfillResult, error) {
	teams, err := b.store.ListTeamsMissingCoordinates(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams missing coordinates: %w", err)
	}

	result := &BackfillResult{}
	for i, team := range teams {
		if ctx.Err() != nil {
			log.Warn().
				Str("owner_id", ownerID.String()).
				Int("remaining", len(teams)-i).
				Msg("coordinate backfill interrupted")
			break
		}
		if team.GeocodingFailed {
			result.SkippedCount++
			continue
		}

		res := b.resolver.ResolveLocation(ctx, team.City, team.State)
		if !res.Attempted() {
			result.SkippedCount++
			continue
		}

		if err := b.store.UpdateTeamLocation(ctx, ownerID, team.ID, res); err != nil {
			log.Warn().Err(err).Str("team_id", team.ID.String()).Msg("failed to persist team location")
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Errorf("team %s: %w", team.ID, err))
			continue
		}

		if res.GeocodingFailed {
			result.FailedCount++
		} else {
			result.UpdatedCount++
		}
	}

	log.Info().
		Str("owner_id", ownerID.String()).
		Int("teams", len(teams)).
		Int("updated", result.UpdatedCount).
		Int("failed", result.FailedCount).
		Int("skipped", result.SkippedCount).
		Msg("coordinate backfill completed")

	return result, nil
}
