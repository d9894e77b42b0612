package appconfig

import (
	"os"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamtango/go/clients/geocoding_client"
	"github.com/mcdev12/teamtango/go/internal/geocoding"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Providers builds the enabled geocoding providers in configured order. Keys
// come from MAPBOX_API_KEY and GOOGLE_MAPS_API_KEY.
func Providers(cfg *Config) []geocoding.Provider {
	enabled := cfg.Geocoding.EnabledProviders
	if len(enabled) == 0 {
		enabled = []string{
			geocoding_client.ProviderNominatim,
			geocoding_client.ProviderMapBox,
			geocoding_client.ProviderGoogle,
		}
	}
	countries := cfg.Geocoding.Countries
	if len(countries) == 0 {
		countries = []string{"us", "ca"}
	}
	userAgent := cfg.Geocoding.UserAgent
	if userAgent == "" {
		userAgent = "TeamTango/1.0"
	}

	var providers []geocoding.Provider
	for _, name := range enabled {
		switch strings.ToLower(name) {
		case geocoding_client.ProviderNominatim:
			providers = append(providers, geocoding_client.NewNominatimClient("", userAgent, countries))
		case geocoding_client.ProviderMapBox:
			providers = append(providers, geocoding_client.NewMapBoxClient("", os.Getenv("MAPBOX_API_KEY"), countries))
		case geocoding_client.ProviderGoogle:
			providers = append(providers, geocoding_client.NewGoogleClient("", os.Getenv("GOOGLE_MAPS_API_KEY"), countries))
		default:
			log.Warn().Str("provider", name).Msg("unknown geocoding provider, skipping")
			continue
		}
		log.Info().Str("provider", name).Msg("enabled geocoding provider")
	}

	return providers
}

// NewGeocoder builds the rate-limited geocoding service, cached in Redis when rdb is set
func NewGeocoder(cfg *Config, clock clockwork.Clock, rdb *redis.Client) *geocoding.Service {
	rateLimit := cfg.Geocoding.RateLimit
	if rateLimit <= 0 {
		rateLimit = geocoding.DefaultRateLimit
	}

	var opts []geocoding.Option
	if rdb != nil {
		opts = append(opts, geocoding.WithCache(geocoding.NewRedisCache(rdb, cfg.Geocoding.CacheTTL)))
	}
	return geocoding.NewService(Providers(cfg), geocoding.NewRateLimiter(clock, rateLimit), opts...)
}

