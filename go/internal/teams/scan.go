package teams

import (
	"github.com/jackc/pgx/v5"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/mcdev12/teamtango/go/internal/sqlutil"
)

// TeamColumns selects a team joined with its sport, aliased t and s
const TeamColumns = `t.id, t.user_id, t.name, t.sport_id, s.name, t.age_group, t.skill_level,
	t.phone, t.city, t.state, t.zip, t.home_venue, t.venue_address, t.description, t.logo_url,
	t.latitude, t.longitude, t.geocoded_at, t.geocoding_failed, t.active, t.created_at, t.updated_at`

// ScanTeam reads a row selected with TeamColumns. Extra destinations are
// scanned after the team columns.
func ScanTeam(row pgx.Row, extra ...any) (*models.Team, error) {
	var (
		t          models.Team
		sportName  *string
		ageGroup   *string
		skillLevel *string
		city       *string
		state      *string
		zip        *string
		homeVenue  *string
	)

	dest := []any{
		&t.ID, &t.UserID, &t.Name, &t.SportID, &sportName, &ageGroup, &skillLevel,
		&t.Phone, &city, &state, &zip, &homeVenue, &t.VenueAddress, &t.Description, &t.LogoURL,
		&t.Latitude, &t.Longitude, &t.GeocodedAt, &t.GeocodingFailed, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	t.AgeGroup = sqlutil.FromStringPtr(ageGroup, "")
	t.SkillLevel = models.SkillLevel(sqlutil.FromStringPtr(skillLevel, ""))
	t.City = sqlutil.FromStringPtr(city, "")
	t.State = sqlutil.FromStringPtr(state, "")
	t.Zip = sqlutil.FromStringPtr(zip, "")
	t.HomeVenue = sqlutil.FromStringPtr(homeVenue, "")
	if sportName != nil {
		t.Sport = &models.Sport{ID: t.SportID, Name: *sportName}
	}
	return &t, nil
}

// CollectTeams scans every row with ScanTeam
func CollectTeams(rows pgx.Rows) ([]models.Team, error) {
	defer rows.Close()

	var out []models.Team
	for rows.Next() {
		t, err := ScanTeam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
