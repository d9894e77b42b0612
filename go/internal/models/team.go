package models

import (
	"time"

	"github.com/google/uuid"
)

// SkillLevel is the ordered skill rating of a team
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "Beginner"
	SkillLevelIntermediate SkillLevel = "Intermediate"
	SkillLevelAdvanced     SkillLevel = "Advanced"
	SkillLevelElite        SkillLevel = "Elite"
)

// skillOrder is the ordinal ranking used for skill comparisons
var skillOrder = []SkillLevel{
	SkillLevelBeginner,
	SkillLevelIntermediate,
	SkillLevelAdvanced,
	SkillLevelElite,
}

// Ordinal returns the position of the skill level in the ordering, or -1 if unknown
func (s SkillLevel) Ordinal() int {
	for i, level := range skillOrder {
		if level == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the known skill levels
func (s SkillLevel) Valid() bool {
	return s.Ordinal() >= 0
}

// GeocodingStatus describes whether a team's coordinates have been resolved
type GeocodingStatus string

const (
	GeocodingStatusPending   GeocodingStatus = "pending"
	GeocodingStatusSucceeded GeocodingStatus = "succeeded"
	GeocodingStatusFailed    GeocodingStatus = "failed"
)

// Team represents a recreational team owned by a user
type Team struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	Name            string     `json:"name"`
	SportID         uuid.UUID  `json:"sport_id"`
	Sport           *Sport     `json:"sport,omitempty"`
	AgeGroup        string     `json:"age_group"`
	SkillLevel      SkillLevel `json:"skill_level"`
	Phone           *string    `json:"phone,omitempty"`
	City            string     `json:"city"`
	State           string     `json:"state"`
	Zip             string     `json:"zip"`
	HomeVenue       string     `json:"home_venue"`
	VenueAddress    *string    `json:"venue_address,omitempty"`
	Description     *string    `json:"description,omitempty"`
	LogoURL         *string    `json:"logo_url,omitempty"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	GeocodedAt      *time.Time `json:"geocoded_at,omitempty"`
	GeocodingFailed bool       `json:"geocoding_failed"`
	Active          bool       `json:"active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// HasCoordinates reports whether both latitude and longitude are set
func (t *Team) HasCoordinates() bool {
	return t.Latitude != nil && t.Longitude != nil
}

// HasHomeVenue reports whether the team can host games
func (t *Team) HasHomeVenue() bool {
	return t.HomeVenue != ""
}

// GeocodingStatus derives the geocoding state from the stored location fields
func (t *Team) GeocodingStatus() GeocodingStatus {
	switch {
	case t.HasCoordinates():
		return GeocodingStatusSucceeded
	case t.GeocodingFailed:
		return GeocodingStatusFailed
	default:
		return GeocodingStatusPending
	}
}

// SportName returns the joined sport name or an empty string
func (t *Team) SportName() string {
	if t.Sport == nil {
		return ""
	}
	return t.Sport.Name
}
