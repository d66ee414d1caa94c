package routes

import (
	"github.com/nahid-dev/local_business_directory/backend/controllers"
	"github.com/nahid-dev/local_business_directory/backend/geocode"
	"github.com/nahid-dev/local_business_directory/backend/middleware"
	"github.com/nahid-dev/local_business_directory/backend/models"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

func Routes(router *mux.Router, redisClient *redis.Client, geoClient *geocode.Client) {
	// Auth routes
	router.HandleFunc("/register", controllers.RegisterUser()).Methods("POST")
	router.HandleFunc("/login", controllers.LoginUser()).Methods("POST")

	// Public reads. Optional auth so bookmark flags show up for signed-in
	// callers; these must be registered before the authenticated subrouter.
	router.Handle("/api/listings", middleware.OptionalAuth(controllers.GetListings(redisClient))).Methods("GET")
	router.Handle("/api/listings/{id}", middleware.OptionalAuth(controllers.GetListing())).Methods("GET")
	router.HandleFunc("/api/map/listings", controllers.GetMapListings(redisClient)).Methods("GET")
	router.HandleFunc("/api/meta/categories", controllers.GetCategories()).Methods("GET")
	router.HandleFunc("/api/meta/locations", controllers.GetLocations()).Methods("GET")

	// Routes that require authentication
	authenticated := router.PathPrefix("/api").Subrouter()
	authenticated.Use(middleware.AuthMiddleware)

	// Listing routes
	authenticated.HandleFunc("/listings", controllers.CreateListing(redisClient, geoClient)).Methods("POST")
	authenticated.HandleFunc("/listings/{id}", controllers.UpdateListing(redisClient, geoClient)).Methods("PUT")
	authenticated.HandleFunc("/listings/{id}", controllers.DeleteListing(redisClient)).Methods("DELETE")
	authenticated.HandleFunc("/users/me/listings", controllers.GetMyListings()).Methods("GET")

	// Bookmark routes
	authenticated.HandleFunc("/bookmarks", controllers.GetBookmarks()).Methods("GET")
	authenticated.HandleFunc("/bookmarks/{id}", controllers.ToggleBookmark(redisClient)).Methods("POST")

	// Admin routes
	admin := authenticated.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/stats", controllers.GetAdminStats()).Methods("GET")
}
