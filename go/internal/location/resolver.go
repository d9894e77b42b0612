// Package location decides when team coordinates must be (re)computed and
// folds geocode results into the team's stored location fields.
package location

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamtango/go/internal/geocoding"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Geocoder is what the resolver needs from the geocoding service
type Geocoder interface {
	Geocode(ctx context.Context, address string) *geocoding.Result
}

// Resolution holds the location fields persisted on a team
type Resolution struct {
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	GeocodedAt      *time.Time `json:"geocoded_at"`
	GeocodingFailed bool       `json:"geocoding_failed"`
}

// Attempted reports whether a geocode call was made for this resolution
func (r Resolution) Attempted() bool {
	return r.GeocodedAt != nil || r.GeocodingFailed
}

// Resolver turns a city/state pair into stored coordinates
type Resolver struct {
	geocoder Geocoder
	clock    clockwork.Clock
}

func NewResolver(geocoder Geocoder, clock clockwork.Clock) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		clock:    clock,
	}
}

// ResolveLocation geocodes "city, state". Missing city or state is a no-op,
// not a failure: every field comes back empty and GeocodingFailed is false.
func (r *Resolver) ResolveLocation(ctx context.Context, city, state string) Resolution {
	city, state = strings.TrimSpace(city), strings.TrimSpace(state)
	if city == "" || state == "" {
		return Resolution{}
	}

	address := fmt.Sprintf("%s, %s", city, state)
	result := r.geocoder.Geocode(ctx, address)
	if result == nil || !result.Success || result.Latitude == nil || result.Longitude == nil {
		log.Warn().Str("address", address).Msg("could not geocode team location")
		return Resolution{GeocodingFailed: true}
	}

	now := r.clock.Now().UTC()
	lat, lng := *result.Latitude, *result.Longitude
	return Resolution{
		Latitude:   &lat,
		Longitude:  &lng,
		GeocodedAt: &now,
	}
}

// NeedsRegeocode reports whether an update must trigger a new geocode:
// the city or state changed, or the team has no coordinates yet.
func NeedsRegeocode(existing *models.Team, city, state string) bool {
	if !existing.HasCoordinates() {
		return true
	}
	return !strings.EqualFold(strings.TrimSpace(existing.City), strings.TrimSpace(city)) ||
		!strings.EqualFold(strings.TrimSpace(existing.State), strings.TrimSpace(state))
}
