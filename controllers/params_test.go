package controllers

import (
	"net/url"
	"testing"

	"github.com/nahid-dev/local_business_directory/backend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := parsePagination(url.Values{})
		require.NoError(t, err)
		assert.Equal(t, store.Pagination{Page: 1, Limit: store.DefaultLimit}, p)
	})

	t.Run("explicit values", func(t *testing.T) {
		p, err := parsePagination(url.Values{"page": {"3"}, "limit": {"20"}})
		require.NoError(t, err)
		assert.Equal(t, store.Pagination{Page: 3, Limit: 20}, p)
	})

	t.Run("malformed page rejected", func(t *testing.T) {
		_, err := parsePagination(url.Values{"page": {"abc"}})
		assert.Error(t, err)
	})

	t.Run("negative limit rejected", func(t *testing.T) {
		_, err := parsePagination(url.Values{"limit": {"-5"}})
		assert.Error(t, err)
	})
}

func TestParseListingFilter(t *testing.T) {
	query := url.Values{
		"search":   {"barber"},
		"category": {"Haircut"},
		"city":     {"Dhaka"},
		"area":     {"Gulshan"},
	}
	f := parseListingFilter(query)
	assert.Equal(t, store.ListingFilter{
		Search:   "barber",
		Category: "Haircut",
		City:     "Dhaka",
		Area:     "Gulshan",
	}, f)
}

func TestParseMapFilter(t *testing.T) {
	t.Run("prices optional", func(t *testing.T) {
		f, err := parseMapFilter(url.Values{"category": {"Laundry"}})
		require.NoError(t, err)
		assert.Equal(t, "Laundry", f.Category)
		assert.Nil(t, f.MinPrice)
		assert.Nil(t, f.MaxPrice)
	})

	t.Run("prices parsed", func(t *testing.T) {
		f, err := parseMapFilter(url.Values{"minPrice": {"100"}, "maxPrice": {"500.5"}})
		require.NoError(t, err)
		require.NotNil(t, f.MinPrice)
		require.NotNil(t, f.MaxPrice)
		assert.Equal(t, 100.0, *f.MinPrice)
		assert.Equal(t, 500.5, *f.MaxPrice)
	})

	t.Run("malformed price rejected", func(t *testing.T) {
		_, err := parseMapFilter(url.Values{"minPrice": {"cheap"}})
		assert.Error(t, err)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := parseMapFilter(url.Values{"maxPrice": {"-10"}})
		assert.Error(t, err)
	})

	t.Run("non-finite prices rejected", func(t *testing.T) {
		// ParseFloat accepts these; they must not reach the query.
		for _, raw := range []string{"NaN", "Inf", "+Inf", "-Inf"} {
			_, err := parseMapFilter(url.Values{"minPrice": {raw}})
			assert.Error(t, err, raw)
		}
	})
}
