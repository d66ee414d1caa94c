package controllers

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/nahid-dev/local_business_directory/backend/store"
)

// Query param parsing happens once here, at the boundary. The core only ever
// sees typed filter structs.

func parseNonNegativeInt(query url.Values, key string, fallback int) (int, error) {
	raw := query.Get(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s value: %q", key, raw)
	}
	return value, nil
}

func parsePriceParam(query url.Values, key string) (*float64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return nil, fmt.Errorf("invalid %s value: %q", key, raw)
	}
	return &value, nil
}

func parseListingFilter(query url.Values) store.ListingFilter {
	return store.ListingFilter{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		City:     query.Get("city"),
		Area:     query.Get("area"),
	}
}

func parsePagination(query url.Values) (store.Pagination, error) {
	page, err := parseNonNegativeInt(query, "page", 1)
	if err != nil {
		return store.Pagination{}, err
	}
	limit, err := parseNonNegativeInt(query, "limit", store.DefaultLimit)
	if err != nil {
		return store.Pagination{}, err
	}
	return store.Pagination{Page: page, Limit: limit}, nil
}

func parseMapFilter(query url.Values) (store.MapFilter, error) {
	minPrice, err := parsePriceParam(query, "minPrice")
	if err != nil {
		return store.MapFilter{}, err
	}
	maxPrice, err := parsePriceParam(query, "maxPrice")
	if err != nil {
		return store.MapFilter{}, err
	}
	return store.MapFilter{
		ListingFilter: parseListingFilter(query),
		MinPrice:      minPrice,
		MaxPrice:      maxPrice,
	}, nil
}
