package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/nahid-dev/local_business_directory/backend/config"
	"github.com/nahid-dev/local_business_directory/backend/models"
	"github.com/nahid-dev/local_business_directory/backend/store"
)

func GetCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := store.QueryCategories(r.Context(), config.CategoryCollection)
		if err != nil {
			log.Printf("Error fetching categories: %v", err)
			http.Error(w, "Error fetching categories", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Data:    map[string]interface{}{"categories": categories},
		})
	}
}

func GetLocations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locations, err := store.QueryLocations(r.Context(), config.LocationCollection)
		if err != nil {
			log.Printf("Error fetching locations: %v", err)
			http.Error(w, "Error fetching locations", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Data:    map[string]interface{}{"locations": locations},
		})
	}
}
