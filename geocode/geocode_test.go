package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nahid-dev/local_business_directory/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAddress(t *testing.T) {
	tests := []struct {
		name string
		loc  models.ListingLocation
		want string
	}{
		{"area and city", models.ListingLocation{City: "Dhaka", Area: "Gulshan"}, "Gulshan, Dhaka, Bangladesh"},
		{"city only", models.ListingLocation{City: "Dhaka"}, "Dhaka, Bangladesh"},
		{"area only", models.ListingLocation{Area: "Gulshan"}, "Gulshan, Bangladesh"},
		{"empty", models.ListingLocation{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildAddress(tt.loc))
		})
	}
}

func newTestClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		HTTPClient: &http.Client{Timeout: time.Second},
	}
}

func TestGeocodeEmptyAddressSkipsNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.Geocode(context.Background(), "   ")

	assert.Equal(t, OutcomeNotFound, result.Outcome)
	assert.False(t, called)
}

func TestGeocodeMissingAPIKey(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	client.APIKey = ""

	result := client.Geocode(context.Background(), "Gulshan, Dhaka, Bangladesh")
	assert.Equal(t, OutcomeNotFound, result.Outcome)
}

func TestGeocodeFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Gulshan, Dhaka, Bangladesh", r.URL.Query().Get("text"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"lon":90.41,"lat":23.79},{"lon":1,"lat":1}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.Geocode(context.Background(), "Gulshan, Dhaka, Bangladesh")

	assert.Equal(t, OutcomeFound, result.Outcome)
	assert.Equal(t, 90.41, result.Lng)
	assert.Equal(t, 23.79, result.Lat)

	geo := result.Coordinate()
	require.NotNil(t, geo)
	assert.Equal(t, "Point", geo.Type)
	assert.Equal(t, []float64{90.41, 23.79}, geo.Coordinates)
}

func TestGeocodeEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	result := newTestClient(server.URL).Geocode(context.Background(), "Nowhere")
	assert.Equal(t, OutcomeNotFound, result.Outcome)
	assert.Nil(t, result.Coordinate())
}

func TestGeocodeProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	result := newTestClient(server.URL).Geocode(context.Background(), "Dhaka")
	assert.Equal(t, OutcomeNotFound, result.Outcome)
	assert.Nil(t, result.Coordinate())
}

func TestGeocodeTransportError(t *testing.T) {
	// Nothing listens here; the request fails at the transport layer.
	result := newTestClient("http://127.0.0.1:1").Geocode(context.Background(), "Dhaka")
	assert.Equal(t, OutcomeTransportError, result.Outcome)
	assert.Nil(t, result.Coordinate())
}
