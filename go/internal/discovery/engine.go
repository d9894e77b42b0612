// Package discovery finds candidate teams for a viewer, scoped to the sports
// the viewer plays and optionally bounded by distance.
package discovery

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/geo"
	"github.com/mcdev12/teamtango/go/internal/location"
	"github.com/mcdev12/teamtango/go/internal/matching"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Store runs the two discovery queries
type Store interface {
	SearchTeams(ctx context.Context, p SearchParams) ([]models.Team, error)
	NearbyTeams(ctx context.Context, p NearbyParams) ([]NearbyTeam, error)
}

// SportLookup resolves the sport filter by name
type SportLookup interface {
	GetByName(name string) (models.Sport, error)
}

// LocationResolver supplies viewer coordinates when the viewer team has none stored
type LocationResolver interface {
	ResolveLocation(ctx context.Context, city, state string) location.Resolution
}

// Engine executes discovery searches
type Engine struct {
	store    Store
	sports   SportLookup
	resolver LocationResolver
	limit    int
}

// NewEngine creates a discovery engine. resolver may be nil.
func NewEngine(store Store, sports SportLookup, resolver LocationResolver, limit int) *Engine {
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}
	return &Engine{
		store:    store,
		sports:   sports,
		resolver: resolver,
		limit:    limit,
	}
}

// Search returns candidates for the viewer. With a max distance and known
// viewer coordinates the geospatial function filters and ranks; if it fails
// the plain search runs instead, annotated with distances but not filtered by
// them, and the result is flagged DistanceFallback.
func (e *Engine) Search(ctx context.Context, q Query) (*Result, error) {
	allowed := make(map[uuid.UUID]bool, len(q.AllowedSportIDs))
	for _, id := range q.AllowedSportIDs {
		allowed[id] = true
	}
	if len(allowed) == 0 {
		log.Debug().Str("user_id", q.ViewerUserID.String()).Msg("viewer plays no sports, nothing to discover")
		return &Result{Candidates: []Candidate{}}, nil
	}

	params := SearchParams{
		ExcludeUserID: q.ViewerUserID,
		SportIDs:      q.AllowedSportIDs,
		AgeGroup:      q.Filters.AgeGroup,
		SkillLevel:    q.Filters.SkillLevel,
		City:          q.Filters.City,
		State:         q.Filters.State,
		Limit:         e.limit,
	}

	var sportName string
	if q.Filters.Sport != "" {
		sport, err := e.sports.GetByName(q.Filters.Sport)
		if err != nil {
			return nil, err
		}
		if !allowed[sport.ID] {
			return &Result{Candidates: []Candidate{}}, nil
		}
		params.SportID = &sport.ID
		sportName = sport.Name
	}

	lat, lng := e.viewerCoordinates(ctx, q)
	result := &Result{}

	if q.Filters.MaxDistanceMiles != nil && (lat == nil || lng == nil) {
		log.Warn().Str("user_id", q.ViewerUserID.String()).Msg("viewer has no coordinates, distance filter not applied")
		result.DistanceFallback = true
	} else if q.Filters.MaxDistanceMiles != nil {
		nearby, err := e.store.NearbyTeams(ctx, NearbyParams{
			SearchParams:     params,
			Latitude:         *lat,
			Longitude:        *lng,
			MaxDistanceMiles: *q.Filters.MaxDistanceMiles,
			SportName:        sportName,
		})
		if err == nil {
			for _, n := range nearby {
				d := n.DistanceMiles
				if d > *q.Filters.MaxDistanceMiles {
					continue
				}
				result.Candidates = append(result.Candidates, Candidate{Team: n.Team, DistanceMiles: &d})
			}
			return e.finish(q, allowed, result), nil
		}
		log.Warn().Err(err).Str("user_id", q.ViewerUserID.String()).Msg("distance search failed, falling back to unfiltered search")
		result.DistanceFallback = true
	}

	found, err := e.store.SearchTeams(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search teams: %w", err)
	}
	for _, t := range found {
		c := Candidate{Team: t}
		if lat != nil && lng != nil {
			d, err := geo.HaversineMiles(lat, lng, t.Latitude, t.Longitude)
			if err != nil {
				log.Warn().Err(err).Str("team_id", t.ID.String()).Msg("invalid candidate coordinates")
			}
			c.DistanceMiles = d
		}
		result.Candidates = append(result.Candidates, c)
	}
	return e.finish(q, allowed, result), nil
}

// finish drops anything violating the base constraints, sorts by distance and
// attaches match reasons
func (e *Engine) finish(q Query, allowed map[uuid.UUID]bool, result *Result) *Result {
	kept := make([]Candidate, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		if !c.Team.Active || c.Team.UserID == q.ViewerUserID || !allowed[c.Team.SportID] {
			continue
		}
		if q.ViewerTeam != nil {
			c.Reasons = matching.ScoreMatch(q.ViewerTeam, &c.Team)
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i].DistanceMiles, kept[j].DistanceMiles
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})

	result.Candidates = kept
	return result
}

func (e *Engine) viewerCoordinates(ctx context.Context, q Query) (*float64, *float64) {
	if q.ViewerLatitude != nil && q.ViewerLongitude != nil {
		return q.ViewerLatitude, q.ViewerLongitude
	}
	v := q.ViewerTeam
	if v == nil {
		return nil, nil
	}
	if v.HasCoordinates() {
		return v.Latitude, v.Longitude
	}
	if e.resolver == nil || v.GeocodingFailed {
		return nil, nil
	}
	res := e.resolver.ResolveLocation(ctx, v.City, v.State)
	return res.Latitude, res.Longitude
}
