package geocoding_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/mcdev12/teamtango/go/clients"
)

const googleBaseURL = "https://maps.googleapis.com"

// GoogleClient queries the paid Google Maps geocoding API
type GoogleClient struct {
	*clients.BaseClient
	apiKey    string
	countries []string
}

func NewGoogleClient(baseURL, apiKey string, countries []string) *GoogleClient {
	if baseURL == "" {
		baseURL = googleBaseURL
	}
	return &GoogleClient{
		BaseClient: clients.NewBaseClient(baseURL),
		apiKey:     apiKey,
		countries:  countries,
	}
}

type googleAddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type googleResult struct {
	FormattedAddress  string                   `json:"formatted_address"`
	AddressComponents []googleAddressComponent `json:"address_components"`
	Geometry          struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

type googleResponse struct {
	Status  string         `json:"status"`
	Results []googleResult `json:"results"`
}

func (c *GoogleClient) Name() string {
	return ProviderGoogle
}

func (c *GoogleClient) Lookup(ctx context.Context, address string) (*Location, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("google: %w", ErrNotConfigured)
	}

	query := url.Values{}
	query.Set("address", address)
	query.Set("key", c.apiKey)
	if len(c.countries) > 0 {
		components := make([]string, len(c.countries))
		for i, cc := range c.countries {
			components[i] = "country:" + strings.ToUpper(cc)
		}
		query.Set("components", strings.Join(components, "|"))
	}

	body, err := c.Get(ctx, "/maps/api/geocode/json", query)
	if err != nil {
		return nil, fmt.Errorf("google request failed: %w", err)
	}

	var response googleResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal google response: %w", err)
	}
	if response.Status == "ZERO_RESULTS" {
		return nil, ErrNoResults
	}
	if response.Status != "OK" || len(response.Results) == 0 {
		return nil, fmt.Errorf("google geocoding failed: %s", response.Status)
	}

	result := response.Results[0]
	return &Location{
		Latitude:         result.Geometry.Location.Lat,
		Longitude:        result.Geometry.Location.Lng,
		FormattedAddress: result.FormattedAddress,
		City:             findComponent(result.AddressComponents, "locality", false),
		State:            findComponent(result.AddressComponents, "administrative_area_level_1", true),
		Country:          findComponent(result.AddressComponents, "country", false),
		Confidence:       1.0,
	}, nil
}

func findComponent(components []googleAddressComponent, kind string, short bool) string {
	for _, comp := range components {
		if slices.Contains(comp.Types, kind) {
			if short {
				return comp.ShortName
			}
			return comp.LongName
		}
	}
	return ""
}
