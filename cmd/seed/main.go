// Seeds the category and location catalogs the meta endpoints serve.
// Idempotent: every write is an upsert, so re-running changes nothing.
package main

import (
	"context"
	"log"

	"github.com/nahid-dev/local_business_directory/backend/config"
	"github.com/nahid-dev/local_business_directory/backend/models"
	"github.com/nahid-dev/local_business_directory/backend/store"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var categories = []models.Category{
	{Key: "Haircut", Label: "Haircut & Salon"},
	{Key: "Laundry", Label: "Laundry Services"},
	{Key: "Electronics", Label: "Electronics & Repair"},
	{Key: "Fashion", Label: "Fashion & Clothing"},
	{Key: "Market", Label: "Market & Grocery"},
}

var locations = []models.ListingLocation{
	{City: "Dhaka", Area: "Gulshan"},
	{City: "Dhaka", Area: "Dhanmondi"},
	{City: "Dhaka", Area: "Banani"},
	{City: "Dhaka", Area: "Uttara"},
	{City: "Dhaka", Area: "Mirpur"},
	{City: "Chittagong", Area: "Agrabad"},
	{City: "Chittagong", Area: "Pahartali"},
	{City: "Sylhet", Area: "Zindabazar"},
	{City: "Sylhet", Area: "Dargah Gate"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	client, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer config.CloseDBConnection(client)

	config.InitCollections(client)
	ctx := context.Background()

	for _, category := range categories {
		_, err := config.CategoryCollection.UpdateOne(ctx,
			bson.M{"key": category.Key},
			bson.M{"$set": bson.M{"label": category.Label}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			log.Fatalf("Failed to seed category %q: %v", category.Key, err)
		}
	}
	log.Printf("Seeded %d categories", len(categories))

	for _, location := range locations {
		if err := store.UpsertLocation(ctx, config.LocationCollection, location); err != nil {
			log.Fatalf("Failed to seed location %s, %s: %v", location.Area, location.City, err)
		}
	}
	log.Printf("Seeded %d locations", len(locations))
}
