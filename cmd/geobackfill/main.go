// Backfills coordinates for active listings that were created before
// geocoding existed or whose lookups failed. Runs as a single-threaded batch
// with a fixed delay between provider requests.
package main

import (
	"context"
	"log"
	"time"

	"github.com/nahid-dev/local_business_directory/backend/config"
	"github.com/nahid-dev/local_business_directory/backend/geocode"
	"github.com/nahid-dev/local_business_directory/backend/models"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
)

// ~5 requests per second, well under the provider's free tier limit.
const requestDelay = 200 * time.Millisecond

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
	geoClient := geocode.NewClient()
	ctx := context.Background()

	query := bson.M{
		"$or": bson.A{
			bson.M{"geo.coordinates": bson.M{"$exists": false}},
			bson.M{"geo.coordinates": nil},
			bson.M{"geo.coordinates": bson.A{}},
		},
		"isActive": true,
	}

	cursor, err := config.ListingCollection.Find(ctx, query)
	if err != nil {
		log.Fatalf("Failed to query listings missing coordinates: %v", err)
	}

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		log.Fatalf("Failed to decode listings: %v", err)
	}

	log.Printf("Found %d listings missing coordinates", len(listings))
	if len(listings) == 0 {
		return
	}

	var successCount, failCount, skippedCount int

	for i, listing := range listings {
		address := geocode.BuildAddress(listing.Location)
		if address == "" {
			log.Printf("[%d/%d] Skipping %q, no usable address", i+1, len(listings), listing.Name)
			skippedCount++
			continue
		}

		log.Printf("[%d/%d] Geocoding %q (%s)", i+1, len(listings), listing.Name, address)

		result := geoClient.Geocode(ctx, address)
		if geo := result.Coordinate(); geo != nil {
			_, err := config.ListingCollection.UpdateOne(ctx,
				bson.M{"_id": listing.ID},
				bson.M{"$set": bson.M{"geo": geo}},
			)
			if err != nil {
				log.Printf("Failed to update listing %s: %v", listing.ID.Hex(), err)
				failCount++
			} else {
				log.Printf("Resolved to [%v, %v]", geo.Coordinates[0], geo.Coordinates[1])
				successCount++
			}
		} else {
			log.Printf("Failed to geocode %q", listing.Name)
			failCount++
		}

		if i < len(listings)-1 {
			time.Sleep(requestDelay)
		}
	}

	log.Printf("Backfill complete: %d succeeded, %d failed, %d skipped, %d total",
		successCount, failCount, skippedCount, len(listings))
}
