package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/nahid-dev/local_business_directory/backend/config"
	"github.com/nahid-dev/local_business_directory/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

type adminStats struct {
	Users          int64 `json:"users"`
	TotalListings  int64 `json:"totalListings"`
	ActiveListings int64 `json:"activeListings"`
}

// GetAdminStats reports directory-wide counts. Admin-gated at the route.
func GetAdminStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var stats adminStats

		g, gctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			stats.Users, err = config.UserCollection.CountDocuments(gctx, bson.M{})
			return err
		})
		g.Go(func() error {
			var err error
			stats.TotalListings, err = config.ListingCollection.CountDocuments(gctx, bson.M{})
			return err
		})
		g.Go(func() error {
			var err error
			stats.ActiveListings, err = config.ListingCollection.CountDocuments(gctx, bson.M{"isActive": true})
			return err
		})
		if err := g.Wait(); err != nil {
			log.Printf("Error computing admin stats: %v", err)
			http.Error(w, "Error computing stats", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: stats})
	}
}
