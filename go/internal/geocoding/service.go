// Package geocoding resolves free-text locations into coordinates by trying
// the configured providers in priority order.
package geocoding

import (
	"context"

	"github.com/mcdev12/teamtango/go/clients/geocoding_client"
	"github.com/mcdev12/teamtango/go/internal/geo"
	"github.com/rs/zerolog/log"
)

// Provider is a single address lookup backend
type Provider interface {
	Name() string
	Lookup(ctx context.Context, address string) (*geocoding_client.Location, error)
}

// Cache stores successful results keyed by normalized address
type Cache interface {
	Get(ctx context.Context, address string) (*Result, error)
	Set(ctx context.Context, address string, result *Result) error
}

// Result is the outcome of a geocode call. A failed lookup has Success=false
// and nil coordinates; it is absence of data, not an error.
type Result struct {
	Success          bool     `json:"success"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Confidence       float64  `json:"confidence"`
	Provider         string   `json:"provider,omitempty"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Country          string   `json:"country,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// Failed builds the tagged failure result
func Failed(reason string) *Result {
	return &Result{Success: false, Error: reason}
}

// Service tries each provider in order; the first with valid coordinates wins
type Service struct {
	providers []Provider
	limiter   *RateLimiter
	cache     Cache
}

type Option func(*Service)

// WithCache puts a read-through cache in front of the providers
func WithCache(cache Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func NewService(providers []Provider, limiter *RateLimiter, opts ...Option) *Service {
	s := &Service{
		providers: providers,
		limiter:   limiter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Geocode never returns an error; provider failures are logged and skipped
func (s *Service) Geocode(ctx context.Context, address string) *Result {
	normalized := NormalizeAddress(address)
	if normalized == "" {
		return Failed("empty address")
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, normalized)
		if err != nil {
			log.Warn().Err(err).Str("address", normalized).Msg("geocode cache read failed")
		} else if cached != nil {
			return cached
		}
	}

	for _, provider := range s.providers {
		result, err := s.tryProvider(ctx, provider, normalized)
		if err != nil {
			log.Warn().
				Err(err).
				Str("provider", provider.Name()).
				Str("address", normalized).
				Msg("geocoding failed, trying next provider")
			continue
		}
		if result == nil {
			continue
		}

		log.Debug().
			Str("provider", provider.Name()).
			Str("address", normalized).
			Float64("latitude", *result.Latitude).
			Float64("longitude", *result.Longitude).
			Msg("geocoded address")

		if s.cache != nil {
			if err := s.cache.Set(ctx, normalized, result); err != nil {
				log.Warn().Err(err).Str("address", normalized).Msg("geocode cache write failed")
			}
		}
		return result
	}

	log.Warn().Str("address", normalized).Int("providers", len(s.providers)).Msg("all geocoding providers failed")
	return Failed("all geocoding providers failed")
}

func (s *Service) tryProvider(ctx context.Context, provider Provider, address string) (*Result, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	loc, err := provider.Lookup(ctx, address)
	if err != nil {
		return nil, err
	}
	if loc == nil || !geo.ValidCoordinates(loc.Latitude, loc.Longitude) {
		log.Warn().Str("provider", provider.Name()).Msg("provider returned invalid coordinates")
		return nil, nil
	}

	lat, lng := loc.Latitude, loc.Longitude
	return &Result{
		Success:          true,
		Latitude:         &lat,
		Longitude:        &lng,
		Confidence:       loc.Confidence,
		Provider:         provider.Name(),
		FormattedAddress: loc.FormattedAddress,
		City:             loc.City,
		State:            loc.State,
		Country:          loc.Country,
	}, nil
}
