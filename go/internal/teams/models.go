package teams

import (
	"io"

	"github.com/mcdev12/teamtango/go/internal/models"
)

// LogoUpload is an image submitted with a create or update
type LogoUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CreateTeamRequest represents the data needed to create a new team
type CreateTeamRequest struct {
	Name         string            `json:"name"`
	Sport        string            `json:"sport"`
	AgeGroup     string            `json:"age_group"`
	SkillLevel   models.SkillLevel `json:"skill_level"`
	Phone        *string           `json:"phone,omitempty"`
	City         string            `json:"city"`
	State        string            `json:"state"`
	Zip          string            `json:"zip"`
	HomeVenue    string            `json:"home_venue"`
	VenueAddress *string           `json:"venue_address,omitempty"`
	Description  *string           `json:"description,omitempty"`
	Logo         *LogoUpload       `json:"-"`
}

// UpdateTeamRequest represents the data that can be updated for a team.
// Nil fields are left unchanged.
type UpdateTeamRequest struct {
	Name         *string            `json:"name,omitempty"`
	Sport        *string            `json:"sport,omitempty"`
	AgeGroup     *string            `json:"age_group,omitempty"`
	SkillLevel   *models.SkillLevel `json:"skill_level,omitempty"`
	Phone        *string            `json:"phone,omitempty"`
	City         *string            `json:"city,omitempty"`
	State        *string            `json:"state,omitempty"`
	Zip          *string            `json:"zip,omitempty"`
	HomeVenue    *string            `json:"home_venue,omitempty"`
	VenueAddress *string            `json:"venue_address,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Logo         *LogoUpload        `json:"-"`
	DeleteLogo   bool               `json:"delete_logo,omitempty"`
}
