package teams

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamtango/go/internal/events"
	"github.com/mcdev12/teamtango/go/internal/location"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/rs/zerolog/log"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeamsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Team, error)
	UpdateTeam(ctx context.Context, ownerID uuid.UUID, team *models.Team) (*models.Team, error)
	SetActive(ctx context.Context, ownerID, teamID uuid.UUID, active bool) error
	SetLogoURL(ctx context.Context, ownerID, teamID uuid.UUID, logoURL *string) error
	DeleteTeam(ctx context.Context, ownerID, teamID uuid.UUID) error
}

// SportLookup resolves sport names
type SportLookup interface {
	GetByName(name string) (models.Sport, error)
}

// LocationResolver geocodes a city and state
type LocationResolver interface {
	ResolveLocation(ctx context.Context, city, state string) location.Resolution
}

// LogoStore stores team logo images
type LogoStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	DeleteTeamLogos(ctx context.Context, ownerID, teamID uuid.UUID) error
}

// App handles teams business logic
type App struct {
	repo      TeamsRepository
	sports    SportLookup
	resolver  LocationResolver
	logos     LogoStore
	publisher events.Publisher
	clock     clockwork.Clock
}

// NewApp creates a new teams App. logos may be nil when no bucket is configured.
func NewApp(repo TeamsRepository, sports SportLookup, resolver LocationResolver, logos LogoStore, publisher events.Publisher, clock clockwork.Clock) *App {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &App{
		repo:      repo,
		sports:    sports,
		resolver:  resolver,
		logos:     logos,
		publisher: publisher,
		clock:     clock,
	}
}

// CreateTeam validates the request, geocodes the location and inserts an
// active team. A failed logo upload does not fail the create.
func (a *App) CreateTeam(ctx context.Context, ownerID uuid.UUID, req CreateTeamRequest) (*models.Team, error) {
	if err := a.validateCreateTeamRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	sport, err := a.sports.GetByName(req.Sport)
	if err != nil {
		return nil, err
	}

	res := a.resolver.ResolveLocation(ctx, req.City, req.State)
	now := a.clock.Now().UTC()

	team, err := a.repo.CreateTeam(ctx, &models.Team{
		ID:              uuid.New(),
		UserID:          ownerID,
		Name:            strings.TrimSpace(req.Name),
		SportID:         sport.ID,
		AgeGroup:        req.AgeGroup,
		SkillLevel:      req.SkillLevel,
		Phone:           req.Phone,
		City:            strings.TrimSpace(req.City),
		State:           strings.TrimSpace(req.State),
		Zip:             req.Zip,
		HomeVenue:       strings.TrimSpace(req.HomeVenue),
		VenueAddress:    req.VenueAddress,
		Description:     req.Description,
		Latitude:        res.Latitude,
		Longitude:       res.Longitude,
		GeocodedAt:      res.GeocodedAt,
		GeocodingFailed: res.GeocodingFailed,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if req.Logo != nil {
		logoURL, err := a.uploadLogo(ctx, ownerID, team.ID, req.Logo)
		if err != nil {
			log.Warn().Err(err).Str("team_id", team.ID.String()).Msg("logo upload failed, team created without logo")
		} else if err := a.repo.SetLogoURL(ctx, ownerID, team.ID, &logoURL); err != nil {
			log.Warn().Err(err).Str("team_id", team.ID.String()).Msg("failed to update team with logo URL")
		} else {
			team.LogoURL = &logoURL
		}
	}

	a.publish(ctx, events.TeamCreated, team.ID, team)
	log.Info().
		Str("team_id", team.ID.String()).
		Str("name", team.Name).
		Str("geocoding", string(team.GeocodingStatus())).
		Msg("created team")
	return team, nil
}

// GetTeam retrieves a team by ID
func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := a.repo.GetTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// ListUserTeams retrieves every team the user owns
func (a *App) ListUserTeams(ctx context.Context, ownerID uuid.UUID) ([]models.Team, error) {
	teams, err := a.repo.ListTeamsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user teams: %w", err)
	}
	return teams, nil
}

// ListActiveUserTeams retrieves the user's active teams
func (a *App) ListActiveUserTeams(ctx context.Context, ownerID uuid.UUID) ([]models.Team, error) {
	teams, err := a.ListUserTeams(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	active := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if t.Active {
			active = append(active, t)
		}
	}
	return active, nil
}

// UserSportIDs returns the distinct sports played by the user's active teams
func (a *App) UserSportIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	teams, err := a.ListActiveUserTeams(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(teams))
	var ids []uuid.UUID
	for _, t := range teams {
		if !seen[t.SportID] {
			seen[t.SportID] = true
			ids = append(ids, t.SportID)
		}
	}
	return ids, nil
}

// UpdateTeam applies the request to an owned team. Location is geocoded again
// only when city or state changed, or the team has no coordinates.
func (a *App) UpdateTeam(ctx context.Context, ownerID, teamID uuid.UUID, req UpdateTeamRequest) (*models.Team, error) {
	if err := a.validateUpdateTeamRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := a.ownedTeam(ctx, ownerID, teamID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Sport != nil {
		sport, err := a.sports.GetByName(*req.Sport)
		if err != nil {
			return nil, err
		}
		updated.SportID = sport.ID
		updated.Sport = &sport
	}
	applyUpdate(&updated, req)

	if location.NeedsRegeocode(existing, updated.City, updated.State) {
		res := a.resolver.ResolveLocation(ctx, updated.City, updated.State)
		updated.Latitude = res.Latitude
		updated.Longitude = res.Longitude
		updated.GeocodedAt = res.GeocodedAt
		updated.GeocodingFailed = res.GeocodingFailed
	}

	if req.Logo != nil {
		logoURL, err := a.uploadLogo(ctx, ownerID, teamID, req.Logo)
		if err != nil {
			return nil, fmt.Errorf("logo upload failed: %w", err)
		}
		updated.LogoURL = &logoURL
	} else if req.DeleteLogo {
		a.deleteLogoObjects(ctx, ownerID, teamID)
		updated.LogoURL = nil
	}

	updated.UpdatedAt = a.clock.Now().UTC()
	team, err := a.repo.UpdateTeam(ctx, ownerID, &updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	a.publish(ctx, events.TeamUpdated, team.ID, team)
	log.Info().Str("team_id", team.ID.String()).Str("name", team.Name).Msg("updated team")
	return team, nil
}

// DeleteLogo removes the team's logo objects and clears its URL
func (a *App) DeleteLogo(ctx context.Context, ownerID, teamID uuid.UUID) error {
	if _, err := a.ownedTeam(ctx, ownerID, teamID); err != nil {
		return err
	}
	if a.logos != nil {
		if err := a.logos.DeleteTeamLogos(ctx, ownerID, teamID); err != nil {
			return fmt.Errorf("failed to delete logo: %w", err)
		}
	}
	if err := a.repo.SetLogoURL(ctx, ownerID, teamID, nil); err != nil {
		return fmt.Errorf("failed to clear logo: %w", err)
	}
	return nil
}

// DeactivateTeam hides the team from discovery
func (a *App) DeactivateTeam(ctx context.Context, ownerID, teamID uuid.UUID) error {
	if err := a.repo.SetActive(ctx, ownerID, teamID, false); err != nil {
		return fmt.Errorf("failed to deactivate team: %w", err)
	}
	a.publish(ctx, events.TeamDeactivated, teamID, map[string]string{"team_id": teamID.String()})
	log.Info().Str("team_id", teamID.String()).Msg("deactivated team")
	return nil
}

// ReactivateTeam makes a deactivated team discoverable again
func (a *App) ReactivateTeam(ctx context.Context, ownerID, teamID uuid.UUID) error {
	if err := a.repo.SetActive(ctx, ownerID, teamID, true); err != nil {
		return fmt.Errorf("failed to reactivate team: %w", err)
	}
	a.publish(ctx, events.TeamReactivated, teamID, map[string]string{"team_id": teamID.String()})
	log.Info().Str("team_id", teamID.String()).Msg("reactivated team")
	return nil
}

// DeleteTeam hard-deletes an owned team and its logo objects
func (a *App) DeleteTeam(ctx context.Context, ownerID, teamID uuid.UUID) error {
	if err := a.repo.DeleteTeam(ctx, ownerID, teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	a.deleteLogoObjects(ctx, ownerID, teamID)
	a.publish(ctx, events.TeamDeleted, teamID, map[string]string{"team_id": teamID.String()})
	log.Info().Str("team_id", teamID.String()).Msg("deleted team")
	return nil
}

func (a *App) ownedTeam(ctx context.Context, ownerID, teamID uuid.UUID) (*models.Team, error) {
	team, err := a.repo.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if team.UserID != ownerID {
		return nil, ErrTeamNotFound
	}
	return team, nil
}

func (a *App) uploadLogo(ctx context.Context, ownerID, teamID uuid.UUID, logo *LogoUpload) (string, error) {
	if a.logos == nil {
		return "", errors.New("logo storage is not configured")
	}
	if err := validateLogo(logo); err != nil {
		return "", err
	}
	return a.logos.Upload(ctx, LogoKey(ownerID, teamID, logo.FileName), logo.ContentType, logo.Body)
}

func (a *App) deleteLogoObjects(ctx context.Context, ownerID, teamID uuid.UUID) {
	if a.logos == nil {
		return
	}
	if err := a.logos.DeleteTeamLogos(ctx, ownerID, teamID); err != nil {
		log.Warn().Err(err).Str("team_id", teamID.String()).Msg("failed to delete logo objects")
	}
}

func (a *App) publish(ctx context.Context, eventType string, teamID uuid.UUID, payload any) {
	ev, err := events.NewEvent(eventType, teamID, payload, a.clock.Now())
	if err == nil {
		err = a.publisher.Publish(ctx, ev)
	}
	if err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish team event")
	}
}

func applyUpdate(team *models.Team, req UpdateTeamRequest) {
	if req.Name != nil {
		team.Name = strings.TrimSpace(*req.Name)
	}
	if req.AgeGroup != nil {
		team.AgeGroup = *req.AgeGroup
	}
	if req.SkillLevel != nil {
		team.SkillLevel = *req.SkillLevel
	}
	if req.Phone != nil {
		team.Phone = req.Phone
	}
	if req.City != nil {
		team.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		team.State = strings.TrimSpace(*req.State)
	}
	if req.Zip != nil {
		team.Zip = *req.Zip
	}
	if req.HomeVenue != nil {
		team.HomeVenue = strings.TrimSpace(*req.HomeVenue)
	}
	if req.VenueAddress != nil {
		team.VenueAddress = req.VenueAddress
	}
	if req.Description != nil {
		team.Description = req.Description
	}
}

// validateCreateTeamRequest validates create team request
func (a *App) validateCreateTeamRequest(req CreateTeamRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return invalid("name", "is required")
	}
	if strings.TrimSpace(req.Sport) == "" {
		return invalid("sport", "is required")
	}
	if strings.TrimSpace(req.AgeGroup) == "" {
		return invalid("age_group", "is required")
	}
	if !req.SkillLevel.Valid() {
		return invalid("skill_level", fmt.Sprintf("unknown skill level %q", req.SkillLevel))
	}
	return nil
}

// validateUpdateTeamRequest validates update team request
func (a *App) validateUpdateTeamRequest(req UpdateTeamRequest) error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return invalid("name", "cannot be empty")
	}
	if req.AgeGroup != nil && strings.TrimSpace(*req.AgeGroup) == "" {
		return invalid("age_group", "cannot be empty")
	}
	if req.SkillLevel != nil && !req.SkillLevel.Valid() {
		return invalid("skill_level", fmt.Sprintf("unknown skill level %q", *req.SkillLevel))
	}
	return nil
}
