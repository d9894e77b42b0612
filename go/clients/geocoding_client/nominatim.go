package geocoding_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mcdev12/teamtango/go/clients"
)

const nominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimClient queries the free OpenStreetMap Nominatim service
type NominatimClient struct {
	*clients.BaseClient
	countries []string
}

// NewNominatimClient creates a client. Nominatim requires an identifying User-Agent.
func NewNominatimClient(baseURL, userAgent string, countries []string) *NominatimClient {
	if baseURL == "" {
		baseURL = nominatimBaseURL
	}
	client := &NominatimClient{
		BaseClient: clients.NewBaseClient(baseURL),
		countries:  countries,
	}
	client.SetHeader("User-Agent", userAgent)
	return client
}

type nominatimAddress struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type nominatimResult struct {
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	DisplayName string           `json:"display_name"`
	Importance  *float64         `json:"importance"`
	Address     nominatimAddress `json:"address"`
}

func (c *NominatimClient) Name() string {
	return ProviderNominatim
}

func (c *NominatimClient) Lookup(ctx context.Context, address string) (*Location, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("addressdetails", "1")
	if len(c.countries) > 0 {
		query.Set("countrycodes", strings.Join(c.countries, ","))
	}

	body, err := c.Get(ctx, "/search", query)
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid nominatim latitude %q: %w", first.Lat, err)
	}
	lng, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid nominatim longitude %q: %w", first.Lon, err)
	}

	confidence := defaultConfidence
	if first.Importance != nil {
		confidence = *first.Importance
	}

	return &Location{
		Latitude:         lat,
		Longitude:        lng,
		FormattedAddress: first.DisplayName,
		City:             firstNonEmpty(first.Address.City, first.Address.Town, first.Address.Village),
		State:            first.Address.State,
		Country:          first.Address.Country,
		Confidence:       confidence,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
