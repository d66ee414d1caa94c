package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/nahid-dev/local_business_directory/backend/config"
	"github.com/nahid-dev/local_business_directory/backend/models"
	"github.com/nahid-dev/local_business_directory/backend/store"
	"github.com/redis/go-redis/v9"
)

type mapPage struct {
	Listings        []models.MapListing `json:"listings"`
	MissingGeoCount int64               `json:"missingGeoCount"`
}

// GetMapListings serves the map view: geocoded listings only, reshaped, with
// a count of matches excluded for missing coordinates.
func GetMapListings(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filter, err := parseMapFilter(query)
		if err != nil {
			log.Printf("Invalid map filter params: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sort := store.MapSortMode(query.Get("sort"))

		cacheKey := generateCacheKey("map", "anon", query)
		cachedData, err := redisClient.Get(r.Context(), cacheKey).Result()
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cachedData))
			return
		}
		if err != redis.Nil {
			log.Printf("Redis GET error for key %s: %v", cacheKey, err)
		}

		listings, missingGeoCount, err := store.QueryForMap(r.Context(), config.ListingCollection, filter, sort)
		if err != nil {
			log.Printf("Error querying map listings with filter %+v: %v", filter, err)
			http.Error(w, "Error fetching map listings", http.StatusInternalServerError)
			return
		}

		resultBytes, err := json.Marshal(models.APIResponse{
			Success: true,
			Data:    mapPage{Listings: listings, MissingGeoCount: missingGeoCount},
		})
		if err != nil {
			log.Printf("Failed to serialize map listings: %v", err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}

		if err := redisClient.Set(r.Context(), cacheKey, resultBytes, 10*time.Minute).Err(); err != nil {
			log.Printf("Failed to cache response for key %s: %v", cacheKey, err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}
