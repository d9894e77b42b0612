package geocoding_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mcdev12/teamtango/go/clients"
)

const mapboxBaseURL = "https://api.mapbox.com"

// MapBoxClient queries the MapBox places API (free tier)
type MapBoxClient struct {
	*clients.BaseClient
	apiKey    string
	countries []string
}

func NewMapBoxClient(baseURL, apiKey string, countries []string) *MapBoxClient {
	if baseURL == "" {
		baseURL = mapboxBaseURL
	}
	return &MapBoxClient{
		BaseClient: clients.NewBaseClient(baseURL),
		apiKey:     apiKey,
		countries:  countries,
	}
}

type mapboxContext struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type mapboxFeature struct {
	Center    []float64       `json:"center"`
	PlaceName string          `json:"place_name"`
	Text      string          `json:"text"`
	Relevance *float64        `json:"relevance"`
	Context   []mapboxContext `json:"context"`
}

type mapboxResponse struct {
	Features []mapboxFeature `json:"features"`
}

func (c *MapBoxClient) Name() string {
	return ProviderMapBox
}

func (c *MapBoxClient) Lookup(ctx context.Context, address string) (*Location, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("mapbox: %w", ErrNotConfigured)
	}

	query := url.Values{}
	query.Set("access_token", c.apiKey)
	query.Set("limit", "1")
	query.Set("types", "place,locality")
	if len(c.countries) > 0 {
		query.Set("country", strings.Join(c.countries, ","))
	}

	endpoint := "/geocoding/v5/mapbox.places/" + url.PathEscape(address) + ".json"
	body, err := c.Get(ctx, endpoint, query)
	if err != nil {
		return nil, fmt.Errorf("mapbox request failed: %w", err)
	}

	var response mapboxResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mapbox response: %w", err)
	}
	if len(response.Features) == 0 {
		return nil, ErrNoResults
	}

	feature := response.Features[0]
	if len(feature.Center) != 2 {
		return nil, fmt.Errorf("mapbox feature has malformed center: %v", feature.Center)
	}

	confidence := defaultConfidence
	if feature.Relevance != nil {
		confidence = *feature.Relevance
	}

	loc := &Location{
		// center is [longitude, latitude]
		Latitude:         feature.Center[1],
		Longitude:        feature.Center[0],
		FormattedAddress: feature.PlaceName,
		City:             feature.Text,
		Confidence:       confidence,
	}
	for _, entry := range feature.Context {
		switch {
		case strings.HasPrefix(entry.ID, "region"):
			loc.State = entry.Text
		case strings.HasPrefix(entry.ID, "country"):
			loc.Country = entry.Text
		}
	}

	return loc, nil
}
