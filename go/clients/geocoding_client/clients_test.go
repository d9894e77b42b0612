package geocoding_client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNominatimLookup(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Austin, TX" || q.Get("limit") != "1" || q.Get("countrycodes") != "us,ca" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "TeamTango/1.0" {
			t.Errorf("missing user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`[{"lat":"30.2672","lon":"-97.7431","display_name":"Austin, Travis County, Texas, USA","importance":0.82,"address":{"town":"Austin","state":"Texas","country":"United States"}}]`))
	})

	client := NewNominatimClient(srv.URL, "TeamTango/1.0", []string{"us", "ca"})
	loc, err := client.Lookup(context.Background(), "Austin, TX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Latitude != 30.2672 || loc.Longitude != -97.7431 {
		t.Errorf("unexpected coordinates %f,%f", loc.Latitude, loc.Longitude)
	}
	if loc.City != "Austin" || loc.State != "Texas" {
		t.Errorf("unexpected locality %q/%q", loc.City, loc.State)
	}
	if loc.Confidence != 0.82 {
		t.Errorf("confidence = %f, want 0.82", loc.Confidence)
	}
}

func TestNominatimLookup_NoResults(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := NewNominatimClient(srv.URL, "ua", nil).Lookup(context.Background(), "Nowhereville, ZZ")
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestNominatimLookup_ServerError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := NewNominatimClient(srv.URL, "ua", nil).Lookup(context.Background(), "Austin, TX"); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestMapBoxLookup(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocoding/v5/mapbox.places/Austin, TX.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("access_token") != "key" {
			t.Errorf("missing access token")
		}
		w.Write([]byte(`{"features":[{"center":[-97.74,30.27],"place_name":"Austin, Texas, United States","text":"Austin","relevance":1,"context":[{"id":"region.123","text":"Texas"},{"id":"country.9","text":"United States"}]}]}`))
	})

	loc, err := NewMapBoxClient(srv.URL, "key", []string{"us"}).Lookup(context.Background(), "Austin, TX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Latitude != 30.27 || loc.Longitude != -97.74 {
		t.Errorf("center must map to lat/lng, got %f,%f", loc.Latitude, loc.Longitude)
	}
	if loc.State != "Texas" || loc.Country != "United States" {
		t.Errorf("unexpected context %q/%q", loc.State, loc.Country)
	}
}

func TestMapBoxLookup_NotConfigured(t *testing.T) {
	_, err := NewMapBoxClient("http://unused.invalid", "", nil).Lookup(context.Background(), "Austin, TX")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestGoogleLookup(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("components") != "country:US|country:CA" {
			t.Errorf("unexpected components %q", r.URL.Query().Get("components"))
		}
		w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"Austin, TX, USA","geometry":{"location":{"lat":30.2672,"lng":-97.7431}},"address_components":[{"long_name":"Austin","short_name":"Austin","types":["locality","political"]},{"long_name":"Texas","short_name":"TX","types":["administrative_area_level_1","political"]}]}]}`))
	})

	loc, err := NewGoogleClient(srv.URL, "key", []string{"us", "ca"}).Lookup(context.Background(), "Austin, TX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.State != "TX" || loc.City != "Austin" || loc.Confidence != 1.0 {
		t.Errorf("unexpected location %+v", loc)
	}
}

func TestGoogleLookup_BadStatus(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"REQUEST_DENIED","results":[]}`))
	})

	if _, err := NewGoogleClient(srv.URL, "key", nil).Lookup(context.Background(), "Austin, TX"); err == nil {
		t.Fatal("expected error for REQUEST_DENIED")
	}
}

func TestKeyedLookup_NetworkErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close()

	tests := []struct {
		name   string
		lookup func() error
	}{
		{"mapbox", func() error {
			_, err := NewMapBoxClient(srv.URL, "SECRET-MAPBOX-KEY", []string{"us"}).Lookup(context.Background(), "Austin, TX")
			return err
		}},
		{"google", func() error {
			_, err := NewGoogleClient(srv.URL, "SECRET-GOOGLE-KEY", []string{"us"}).Lookup(context.Background(), "Austin, TX")
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lookup()
			if err == nil {
				t.Fatal("expected error from closed server")
			}
			if strings.Contains(err.Error(), "SECRET-") {
				t.Errorf("api key leaked in error: %v", err)
			}
		})
	}
}
