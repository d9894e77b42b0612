// Package geocoding_client contains the HTTP clients for the address lookup providers.
package geocoding_client

import "errors"

// ErrNoResults is returned when a provider answers but finds nothing
var ErrNoResults = errors.New("no results found")

// ErrNotConfigured is returned by providers that require an API key that is missing
var ErrNotConfigured = errors.New("provider not configured")

// Location is the first result of a provider lookup
type Location struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
	City             string  `json:"city,omitempty"`
	State            string  `json:"state,omitempty"`
	Country          string  `json:"country,omitempty"`
	Confidence       float64 `json:"confidence"`
}

// Provider names as used in configuration
const (
	ProviderNominatim = "nominatim"
	ProviderMapBox    = "mapbox"
	ProviderGoogle    = "google"
)

const defaultConfidence = 0.5
