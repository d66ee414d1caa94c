package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/nahid-dev/local_business_directory/backend/config"
	"github.com/nahid-dev/local_business_directory/backend/geocode"
	"github.com/nahid-dev/local_business_directory/backend/models"
	"github.com/nahid-dev/local_business_directory/backend/store"
	"github.com/gorilla/mux"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type listingPage struct {
	Listings   []models.Listing `json:"listings"`
	Pagination store.PageInfo   `json:"pagination"`
}

func validateListing(listing *models.Listing) error {
	if listing.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !models.IsValidCategory(listing.Category) {
		return fmt.Errorf("invalid category: %q", listing.Category)
	}
	if listing.Location.City == "" || listing.Location.Area == "" {
		return fmt.Errorf("location city and area are required")
	}
	if listing.ShortDescription == "" || len(listing.ShortDescription) > 200 {
		return fmt.Errorf("short description is required and must be at most 200 characters")
	}
	if listing.Description == "" {
		return fmt.Errorf("description is required")
	}
	if listing.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	for _, entry := range append(append([]models.PricedItem{}, listing.Services...), listing.MenuItems...) {
		if entry.Price < 0 {
			return fmt.Errorf("prices must be non-negative")
		}
	}
	if listing.Rating < 0 {
		return fmt.Errorf("rating must be non-negative")
	}
	if listing.ReviewCount < 0 {
		return fmt.Errorf("review count must be non-negative")
	}
	return nil
}

// fetchAuthorizedListing loads a listing and checks the caller may mutate it.
// Returns http status 0 on success.
func fetchAuthorizedListing(r *http.Request, listingID string) (*models.Listing, int, string) {
	userID, ok := callerID(r)
	if !ok {
		return nil, http.StatusUnauthorized, "User ID missing in context"
	}

	objID, err := primitive.ObjectIDFromHex(listingID)
	if err != nil {
		return nil, http.StatusBadRequest, "Invalid listing ID"
	}

	var listing models.Listing
	err = config.ListingCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&listing)
	if err == mongo.ErrNoDocuments {
		return nil, http.StatusNotFound, "Listing not found"
	}
	if err != nil {
		log.Printf("Error fetching listing %s: %v", listingID, err)
		return nil, http.StatusInternalServerError, "Error fetching listing"
	}

	if listing.Owner != userID && callerRole(r) != models.RoleAdmin {
		return nil, http.StatusForbidden, "Not authorized to modify this listing"
	}
	return &listing, 0, ""
}

func GetListings(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		pagination, err := parsePagination(query)
		if err != nil {
			log.Printf("Invalid pagination params: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter := parseListingFilter(query)
		sort := store.SortMode(query.Get("sort"))

		identity := "anon"
		userID, authenticated := callerID(r)
		if authenticated {
			identity = userID.Hex()
		}

		cacheKey := generateCacheKey("list", identity, query)
		cachedData, err := redisClient.Get(r.Context(), cacheKey).Result()
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cachedData))
			return
		}
		if err != redis.Nil {
			log.Printf("Redis GET error for key %s: %v", cacheKey, err)
		}

		listings, pageInfo, err := store.QueryListings(r.Context(), config.ListingCollection, filter, pagination, sort)
		if err != nil {
			log.Printf("Error querying listings with filter %+v: %v", filter, err)
			http.Error(w, "Error fetching listings", http.StatusInternalServerError)
			return
		}

		if authenticated {
			if err := store.AnnotateBookmarks(r.Context(), config.BookmarkCollection, userID, listings); err != nil {
				log.Printf("Error annotating bookmarks for user %s: %v", identity, err)
			}
		}

		resultBytes, err := json.Marshal(models.APIResponse{
			Success: true,
			Data:    listingPage{Listings: listings, Pagination: pageInfo},
		})
		if err != nil {
			log.Printf("Failed to serialize listings: %v", err)
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

func GetListing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(listingID)
		if err != nil {
			log.Printf("Invalid listing ID %s: %v", listingID, err)
			http.Error(w, "Invalid listing ID", http.StatusBadRequest)
			return
		}

		var listing models.Listing
		err = config.ListingCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&listing)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Listing not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error fetching listing %s: %v", listingID, err)
			http.Error(w, "Error fetching listing", http.StatusInternalServerError)
			return
		}

		if userID, ok := callerID(r); ok {
			bookmarked, err := store.IsBookmarked(r.Context(), config.BookmarkCollection, userID, listing.ID)
			if err != nil {
				log.Printf("Error checking bookmark for listing %s: %v", listingID, err)
			} else {
				listing.IsBookmarked = bookmarked
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: listing})
	}
}

func CreateListing(redisClient *redis.Client, geoClient *geocode.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var listing models.Listing
		if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
			log.Printf("Invalid request body: %v", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := validateListing(&listing); err != nil {
			log.Printf("Listing validation failed: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		listing.ID = primitive.NewObjectID()
		listing.Owner = userID
		listing.IsActive = true
		listing.CreatedAt = time.Now()
		listing.UpdatedAt = listing.CreatedAt

		// A failed geocode never blocks the write; the listing just carries
		// no coordinates.
		if address := geocode.BuildAddress(listing.Location); address != "" {
			listing.Geo = geoClient.Geocode(r.Context(), address).Coordinate()
		}

		if err := store.UpsertLocation(r.Context(), config.LocationCollection, listing.Location); err != nil {
			log.Printf("Failed to upsert location %+v: %v", listing.Location, err)
		}

		if _, err := config.ListingCollection.InsertOne(r.Context(), listing); err != nil {
			log.Printf("Insert failed: %v", err)
			http.Error(w, "Failed to create listing", http.StatusInternalServerError)
			return
		}

		go func() {
			deleteListingCache(redisClient)
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: listing})
	}
}

type listingUpdate struct {
	Name             *string                 `json:"name"`
	Category         *string                 `json:"category"`
	Location         *models.ListingLocation `json:"location"`
	ShortDescription *string                 `json:"shortDescription"`
	Description      *string                 `json:"description"`
	Phone            *string                 `json:"phone"`
	Hours            *string                 `json:"hours"`
	ImageURL         *string                 `json:"imageUrl"`
	IsActive         *bool                   `json:"isActive"`
	Services         *[]models.PricedItem    `json:"services"`
	MenuItems        *[]models.PricedItem    `json:"menuItems"`
	Rating           *float64                `json:"rating"`
	ReviewCount      *int                    `json:"reviewCount"`
	Popularity       *float64                `json:"popularity"`
}

func (u listingUpdate) validate() error {
	if u.Name != nil && *u.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if u.Category != nil && !models.IsValidCategory(*u.Category) {
		return fmt.Errorf("invalid category: %q", *u.Category)
	}
	if u.Location != nil && (u.Location.City == "" || u.Location.Area == "") {
		return fmt.Errorf("location city and area are required")
	}
	if u.ShortDescription != nil && (*u.ShortDescription == "" || len(*u.ShortDescription) > 200) {
		return fmt.Errorf("short description must be 1-200 characters")
	}
	if u.Services != nil {
		for _, entry := range *u.Services {
			if entry.Price < 0 {
				return fmt.Errorf("prices must be non-negative")
			}
		}
	}
	if u.MenuItems != nil {
		for _, entry := range *u.MenuItems {
			if entry.Price < 0 {
				return fmt.Errorf("prices must be non-negative")
			}
		}
	}
	if u.Rating != nil && *u.Rating < 0 {
		return fmt.Errorf("rating must be non-negative")
	}
	if u.ReviewCount != nil && *u.ReviewCount < 0 {
		return fmt.Errorf("review count must be non-negative")
	}
	return nil
}

func (u listingUpdate) changes() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.ShortDescription != nil {
		set["shortDescription"] = *u.ShortDescription
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Phone != nil {
		set["phone"] = *u.Phone
	}
	if u.Hours != nil {
		set["hours"] = *u.Hours
	}
	if u.ImageURL != nil {
		set["imageUrl"] = *u.ImageURL
	}
	if u.IsActive != nil {
		set["isActive"] = *u.IsActive
	}
	if u.Services != nil {
		set["services"] = *u.Services
	}
	if u.MenuItems != nil {
		set["menuItems"] = *u.MenuItems
	}
	if u.Rating != nil {
		set["rating"] = *u.Rating
	}
	if u.ReviewCount != nil {
		set["reviewCount"] = *u.ReviewCount
	}
	if u.Popularity != nil {
		set["popularity"] = *u.Popularity
	}
	return set
}

func UpdateListing(redisClient *redis.Client, geoClient *geocode.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID := mux.Vars(r)["id"]
		listing, status, message := fetchAuthorizedListing(r, listingID)
		if status != 0 {
			log.Printf("Update rejected for listing %s: %s", listingID, message)
			http.Error(w, message, status)
			return
		}

		var update listingUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.Printf("Invalid update data: %v", err)
			http.Error(w, "Invalid update data", http.StatusBadRequest)
			return
		}
		if err := update.validate(); err != nil {
			log.Printf("Update validation failed for listing %s: %v", listingID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		set := update.changes()
		set["updatedAt"] = time.Now()

		// A changed address means the old coordinates no longer apply:
		// re-geocode, and fall back to no geo when the lookup fails.
		if update.Location != nil {
			var geo *models.GeoPoint
			if address := geocode.BuildAddress(*update.Location); address != "" {
				geo = geoClient.Geocode(r.Context(), address).Coordinate()
			}
			set["geo"] = geo

			if err := store.UpsertLocation(r.Context(), config.LocationCollection, *update.Location); err != nil {
				log.Printf("Failed to upsert location %+v: %v", *update.Location, err)
			}
		}

		_, err := config.ListingCollection.UpdateOne(r.Context(), bson.M{"_id": listing.ID}, bson.M{"$set": set})
		if err != nil {
			log.Printf("Update failed for listing %s: %v", listingID, err)
			http.Error(w, "Update failed", http.StatusInternalServerError)
			return
		}

		go func() {
			deleteListingCache(redisClient)
		}()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Message: "Listing updated successfully"})
	}
}

func DeleteListing(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID := mux.Vars(r)["id"]
		listing, status, message := fetchAuthorizedListing(r, listingID)
		if status != 0 {
			log.Printf("Delete rejected for listing %s: %s", listingID, message)
			http.Error(w, message, status)
			return
		}

		if _, err := config.ListingCollection.DeleteOne(r.Context(), bson.M{"_id": listing.ID}); err != nil {
			log.Printf("Delete failed for listing %s: %v", listingID, err)
			http.Error(w, "Delete failed", http.StatusInternalServerError)
			return
		}

		go func() {
			deleteListingCache(redisClient)
		}()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Message: "Listing deleted successfully"})
	}
}

func GetMyListings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		listings, err := store.QueryOwnerListings(r.Context(), config.ListingCollection, userID)
		if err != nil {
			log.Printf("Error fetching listings for owner %s: %v", userID.Hex(), err)
			http.Error(w, "Error fetching listings", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: listings})
	}
}
