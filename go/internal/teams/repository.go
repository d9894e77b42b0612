package teams

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mcdev12/teamtango/go/internal/location"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/mcdev12/teamtango/go/internal/sqlutil"
)

const (
	selectTeamSQL = `SELECT ` + TeamColumns + ` FROM teams t LEFT JOIN sports s ON s.id = t.sport_id`

	insertTeamSQL = `
		INSERT INTO teams (
		  id, user_id, name, sport_id, age_group, skill_level, phone, city, state, zip,
		  home_venue, venue_address, description, latitude, longitude, geocoded_at,
		  geocoding_failed, active, created_at, updated_at
		) VALUES (
		  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$19
		)`

	updateTeamSQL = `
		UPDATE teams SET
		  name = $3, sport_id = $4, age_group = $5, skill_level = $6, phone = $7,
		  city = $8, state = $9, zip = $10, home_venue = $11, venue_address = $12,
		  description = $13, logo_url = $14, latitude = $15, longitude = $16,
		  geocoded_at = $17, geocoding_failed = $18, updated_at = $19
		WHERE id = $1 AND user_id = $2`

	updateLocationSQL = `
		UPDATE teams SET latitude = $3, longitude = $4, geocoded_at = $5, geocoding_failed = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2`

	setActiveSQL  = `UPDATE teams SET active = $3, updated_at = now() WHERE id = $1 AND user_id = $2`
	setLogoSQL    = `UPDATE teams SET logo_url = $3, updated_at = now() WHERE id = $1 AND user_id = $2`
	deleteTeamSQL = `DELETE FROM teams WHERE id = $1 AND user_id = $2`
)

// Repository implements team data access operations. Every mutation is
// guarded by the owning user id.
type Repository struct {
	db sqlutil.DBTX
}

// NewRepository creates a new teams repository
func NewRepository(db sqlutil.DBTX) *Repository {
	return &Repository{
		db: db,
	}
}

// CreateTeam inserts the team as given
func (r *Repository) CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error) {
	_, err := r.db.Exec(ctx, insertTeamSQL,
		team.ID, team.UserID, team.Name, team.SportID, team.AgeGroup, string(team.SkillLevel), team.Phone,
		team.City, team.State, team.Zip, sqlutil.NullIfEmpty(team.HomeVenue), team.VenueAddress, team.Description,
		team.Latitude, team.Longitude, team.GeocodedAt, team.GeocodingFailed, team.Active, team.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return r.GetTeam(ctx, team.ID)
}

// GetTeam retrieves a team by ID
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := ScanTeam(r.db.QueryRow(ctx, selectTeamSQL+` WHERE t.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// ListTeamsByOwner retrieves every team owned by the user, newest first
func (r *Repository) ListTeamsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Team, error) {
	rows, err := r.db.Query(ctx, selectTeamSQL+` WHERE t.user_id = $1 ORDER BY t.created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user teams: %w", err)
	}
	teams, err := CollectTeams(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list user teams: %w", err)
	}
	return teams, nil
}

// ListTeamsMissingCoordinates returns the owner's teams with no coordinates
// that have not already failed geocoding
func (r *Repository) ListTeamsMissingCoordinates(ctx context.Context, ownerID uuid.UUID) ([]models.Team, error) {
	rows, err := r.db.Query(ctx, selectTeamSQL+`
		WHERE t.user_id = $1
		  AND (t.latitude IS NULL OR t.longitude IS NULL)
		  AND t.geocoding_failed = false
		ORDER BY t.created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams missing coordinates: %w", err)
	}
	teams, err := CollectTeams(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams missing coordinates: %w", err)
	}
	return teams, nil
}

// ListOwnersMissingCoordinates returns owners with at least one team that
// still needs geocoding
func (r *Repository) ListOwnersMissingCoordinates(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT user_id FROM teams
		WHERE (latitude IS NULL OR longitude IS NULL)
		  AND geocoding_failed = false`)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners missing coordinates: %w", err)
	}
	owners, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to list owners missing coordinates: %w", err)
	}
	return owners, nil
}

// UpdateTeam writes every mutable column of the team
func (r *Repository) UpdateTeam(ctx context.Context, ownerID uuid.UUID, team *models.Team) (*models.Team, error) {
	tag, err := r.db.Exec(ctx, updateTeamSQL,
		team.ID, ownerID, team.Name, team.SportID, team.AgeGroup, string(team.SkillLevel), team.Phone,
		team.City, team.State, team.Zip, sqlutil.NullIfEmpty(team.HomeVenue), team.VenueAddress, team.Description,
		team.LogoURL, team.Latitude, team.Longitude, team.GeocodedAt, team.GeocodingFailed, team.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrTeamNotFound
	}
	return r.GetTeam(ctx, team.ID)
}

// UpdateTeamLocation stores a location resolution
func (r *Repository) UpdateTeamLocation(ctx context.Context, ownerID, teamID uuid.UUID, res location.Resolution) error {
	return r.guardedExec(ctx, "update team location", updateLocationSQL,
		teamID, ownerID, res.Latitude, res.Longitude, res.GeocodedAt, res.GeocodingFailed)
}

// SetActive flips the active flag
func (r *Repository) SetActive(ctx context.Context, ownerID, teamID uuid.UUID, active bool) error {
	return r.guardedExec(ctx, "set team active", setActiveSQL, teamID, ownerID, active)
}

// SetLogoURL stores or clears the logo URL
func (r *Repository) SetLogoURL(ctx context.Context, ownerID, teamID uuid.UUID, logoURL *string) error {
	return r.guardedExec(ctx, "set team logo", setLogoSQL, teamID, ownerID, logoURL)
}

// DeleteTeam hard-deletes a team
func (r *Repository) DeleteTeam(ctx context.Context, ownerID, teamID uuid.UUID) error {
	return r.guardedExec(ctx, "delete team", deleteTeamSQL, teamID, ownerID)
}

func (r *Repository) guardedExec(ctx context.Context, op, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamNotFound
	}
	return nil
}
