package discovery

import (
	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/models"
)

// DefaultCandidateLimit caps the non-geospatial search
const DefaultCandidateLimit = 50

// Filters are the optional, conjunctive search filters
type Filters struct {
	Sport            string            `json:"sport,omitempty"`
	AgeGroup         string            `json:"age_group,omitempty"`
	SkillLevel       models.SkillLevel `json:"skill_level,omitempty"`
	City             string            `json:"city,omitempty"`
	State            string            `json:"state,omitempty"`
	MaxDistanceMiles *float64          `json:"max_distance,omitempty"`
}

// Query is one discovery search on behalf of a viewer
type Query struct {
	ViewerUserID    uuid.UUID
	Filters         Filters
	AllowedSportIDs []uuid.UUID
	ViewerLatitude  *float64
	ViewerLongitude *float64
	// ViewerTeam, when set, is used for match reasons and as the coordinate
	// source when no explicit viewer coordinates are given.
	ViewerTeam *models.Team
}

// Candidate is a discovered team with its distance and match reasons
type Candidate struct {
	Team          models.Team          `json:"team"`
	DistanceMiles *float64             `json:"distance_miles"`
	Reasons       []models.MatchReason `json:"match_reasons,omitempty"`
}

// Result is an ordered candidate list. DistanceFallback is set when a
// distance-bounded search could not run and results are not distance filtered.
type Result struct {
	Candidates       []Candidate `json:"candidates"`
	DistanceFallback bool        `json:"distance_fallback"`
}

// SearchParams are passed to the plain team search
type SearchParams struct {
	ExcludeUserID uuid.UUID
	SportIDs      []uuid.UUID
	SportID       *uuid.UUID
	AgeGroup      string
	SkillLevel    models.SkillLevel
	City          string
	State         string
	Limit         int
}

// NearbyParams are passed to the geospatial ranking function
type NearbyParams struct {
	SearchParams
	Latitude         float64
	Longitude        float64
	MaxDistanceMiles float64
	SportName        string
}

// NearbyTeam is a row returned by the geospatial ranking function
type NearbyTeam struct {
	Team          models.Team
	DistanceMiles float64
}
