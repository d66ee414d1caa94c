package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/nahid-dev/local_business_directory/backend/config"
	"github.com/nahid-dev/local_business_directory/backend/models"
	"github.com/nahid-dev/local_business_directory/backend/store"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func ToggleBookmark(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		listingID := mux.Vars(r)["id"]
		listingObjID, err := primitive.ObjectIDFromHex(listingID)
		if err != nil {
			log.Printf("Invalid listing ID %s: %v", listingID, err)
			http.Error(w, "Invalid listing ID", http.StatusBadRequest)
			return
		}

		err = config.ListingCollection.FindOne(r.Context(), bson.M{"_id": listingObjID}).Err()
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Listing not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error checking listing %s: %v", listingID, err)
			http.Error(w, "Error checking listing", http.StatusInternalServerError)
			return
		}

		bookmarked, err := store.ToggleBookmark(r.Context(), config.BookmarkCollection, userID, listingObjID)
		if err != nil {
			log.Printf("Error toggling bookmark for listing %s: %v", listingID, err)
			http.Error(w, "Error toggling bookmark", http.StatusInternalServerError)
			return
		}

		// Cached listing pages embed this user's bookmark flags.
		go func(identity string) {
			deleteUserListingCache(redisClient, identity)
		}(userID.Hex())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Data:    map[string]bool{"bookmarked": bookmarked},
		})
	}
}

func GetBookmarks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		pipeline := mongo.Pipeline{
			{
				{Key: "$match", Value: bson.M{"user": userID}},
			},
			{
				{Key: "$sort", Value: bson.M{"createdAt": -1}},
			},
			{
				{Key: "$lookup", Value: bson.M{
					"from":         "listings",
					"localField":   "listing",
					"foreignField": "_id",
					"as":           "listingDetails",
				}},
			},
			{
				{Key: "$unwind", Value: "$listingDetails"},
			},
			{
				{Key: "$replaceRoot", Value: bson.M{"newRoot": "$listingDetails"}},
			},
			{
				{Key: "$match", Value: bson.M{"isActive": true}},
			},
		}

		cursor, err := config.BookmarkCollection.Aggregate(r.Context(), pipeline)
		if err != nil {
			log.Println("Failed to fetch bookmarked listings ", err)
			http.Error(w, "Failed to fetch bookmarked listings", http.StatusInternalServerError)
			return
		}
		defer cursor.Close(r.Context())

		var listings []models.Listing
		if err := cursor.All(r.Context(), &listings); err != nil {
			log.Println("Failed to decode bookmarked listings ", err)
			http.Error(w, "Failed to decode bookmarked listings", http.StatusInternalServerError)
			return
		}
		for i := range listings {
			listings[i].IsBookmarked = true
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Data:    listings,
		})
	}
}
