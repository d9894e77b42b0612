package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/mcdev12/teamtango/go/internal/sqlutil"
	"github.com/mcdev12/teamtango/go/internal/teams"
)

const nearbyTeamsSQL = `
	SELECT ` + teams.TeamColumns + `, nt.distance_miles
	FROM find_nearby_teams(
	  user_lat => $1,
	  user_lng => $2,
	  max_distance_miles => $3,
	  sport_ids => $4::uuid[],
	  exclude_user_id => $5,
	  filter_age_group => $6,
	  filter_skill_level => $7,
	  filter_city => $8,
	  filter_state => $9,
	  filter_sport_name => $10
	) nt
	JOIN teams t ON t.id = nt.id
	LEFT JOIN sports s ON s.id = t.sport_id
	WHERE t.active = true
	ORDER BY nt.distance_miles`

// Repository runs discovery queries against Postgres
type Repository struct {
	db sqlutil.DBTX
}

// NewRepository creates a new discovery repository
func NewRepository(db sqlutil.DBTX) *Repository {
	return &Repository{
		db: db,
	}
}

// SearchTeams applies the base constraints and filters without distance
func (r *Repository) SearchTeams(ctx context.Context, p SearchParams) ([]models.Team, error) {
	sql, args := buildSearchSQL(p)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search teams: %w", err)
	}
	found, err := teams.CollectTeams(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to search teams: %w", err)
	}
	return found, nil
}

// NearbyTeams calls the find_nearby_teams geospatial ranking function
func (r *Repository) NearbyTeams(ctx context.Context, p NearbyParams) ([]NearbyTeam, error) {
	rows, err := r.db.Query(ctx, nearbyTeamsSQL,
		p.Latitude, p.Longitude, p.MaxDistanceMiles, sqlutil.UUIDStrings(p.SportIDs), p.ExcludeUserID,
		sqlutil.NullIfEmpty(p.AgeGroup), sqlutil.NullIfEmpty(string(p.SkillLevel)),
		sqlutil.NullIfEmpty(p.City), sqlutil.NullIfEmpty(p.State), sqlutil.NullIfEmpty(p.SportName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby teams: %w", err)
	}
	defer rows.Close()

	var out []NearbyTeam
	for rows.Next() {
		var distance float64
		t, err := teams.ScanTeam(rows, &distance)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nearby team: %w", err)
		}
		out = append(out, NearbyTeam{Team: *t, DistanceMiles: distance})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to find nearby teams: %w", err)
	}
	return out, nil
}

func buildSearchSQL(p SearchParams) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + teams.TeamColumns + ` FROM teams t LEFT JOIN sports s ON s.id = t.sport_id
	WHERE t.user_id <> $1 AND t.active = true AND t.sport_id = ANY($2::uuid[])`)
	args := []any{p.ExcludeUserID, sqlutil.UUIDStrings(p.SportIDs)}

	where := func(clause string, arg any) {
		args = append(args, arg)
		fmt.Fprintf(&sb, " AND "+clause, len(args))
	}
	if p.SportID != nil {
		where("t.sport_id = $%d", *p.SportID)
	}
	if p.AgeGroup != "" {
		where("t.age_group = $%d", p.AgeGroup)
	}
	if p.SkillLevel != "" {
		where("t.skill_level = $%d", string(p.SkillLevel))
	}
	if p.City != "" {
		where("t.city ILIKE $%d", containsPattern(p.City))
	}
	if p.State != "" {
		where("t.state ILIKE $%d", containsPattern(p.State))
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}
	args = append(args, limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE substring pattern with wildcards escaped
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}
