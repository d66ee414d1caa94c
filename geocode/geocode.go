// Package geocode wraps the Geoapify forward-geocoding API. Every failure
// mode degrades to "no coordinate": a listing write must never be blocked by
// the provider.
package geocode

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/nahid-dev/local_business_directory/backend/models"
)

const defaultBaseURL = "https://api.geoapify.com/v1"

// addressCountry is appended to every geocoder input string.
const addressCountry = "Bangladesh"

// Outcome classifies a geocoding attempt.
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeNotFound
	OutcomeTransportError
)

// Result is a geocoding attempt's outcome plus coordinates when found.
type Result struct {
	Outcome Outcome
	Lng     float64
	Lat     float64
}

// Coordinate maps the result onto the write path's policy: only a found
// result attaches geo data, every failure-ish outcome attaches none.
func (r Result) Coordinate() *models.GeoPoint {
	if r.Outcome != OutcomeFound {
		return nil
	}
	return models.NewGeoPoint(r.Lng, r.Lat)
}

// BuildAddress renders a location as geocoder input: "area, city, Bangladesh"
// with absent components skipped. Empty when neither area nor city is set;
// callers skip geocoding then.
func BuildAddress(loc models.ListingLocation) string {
	var parts []string
	if loc.Area != "" {
		parts = append(parts, loc.Area)
	}
	if loc.City != "" {
		parts = append(parts, loc.City)
	}
	if len(parts) == 0 {
		return ""
	}
	parts = append(parts, addressCountry)
	return strings.Join(parts, ", ")
}

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient reads GEOAPIFY_API_KEY from the environment. A missing key is
// tolerated; every lookup then reports not found.
func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		APIKey:     os.Getenv("GEOAPIFY_API_KEY"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type geocodeResponse struct {
	Results []struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"results"`
}

// Geocode resolves a free-text address. An empty address short-circuits to
// not found without touching the network. No retry and no internal rate
// limiting; bulk callers space their own requests.
func (c *Client) Geocode(ctx context.Context, address string) Result {
	if strings.TrimSpace(address) == "" {
		return Result{Outcome: OutcomeNotFound}
	}
	if c.APIKey == "" {
		log.Println("GEOAPIFY_API_KEY not set, skipping geocoding")
		return Result{Outcome: OutcomeNotFound}
	}

	requestURL := c.BaseURL + "/geocode/search?text=" + url.QueryEscape(address) +
		"&format=json&apiKey=" + url.QueryEscape(c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		log.Printf("Error building geocode request: %v", err)
		return Result{Outcome: OutcomeTransportError}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Printf("Error geocoding address: %v", err)
		return Result{Outcome: OutcomeTransportError}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Geocoding API error: %s", resp.Status)
		return Result{Outcome: OutcomeNotFound}
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("Error decoding geocode response: %v", err)
		return Result{Outcome: OutcomeTransportError}
	}

	if len(payload.Results) == 0 {
		return Result{Outcome: OutcomeNotFound}
	}

	first := payload.Results[0]
	return Result{Outcome: OutcomeFound, Lng: first.Lon, Lat: first.Lat}
}
