package store

import (
	"context"

	"github.com/nahid-dev/local_business_directory/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertLocation records a (city, area) pair in the location catalog. The
// conditional write makes a concurrent duplicate insert a no-op rather than a
// unique-index failure.
func UpsertLocation(ctx context.Context, coll *mongo.Collection, loc models.ListingLocation) error {
	if loc.City == "" || loc.Area == "" {
		return nil
	}

	filter := bson.M{"city": loc.City, "area": loc.Area}
	update := bson.M{"$setOnInsert": bson.M{"city": loc.City, "area": loc.Area}}
	_, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// QueryLocations returns the catalog ordered by city then area.
func QueryLocations(ctx context.Context, coll *mongo.Collection) ([]models.Location, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "city", Value: 1}, {Key: "area", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var locations []models.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []models.Location{}
	}
	return locations, nil
}

// QueryCategories returns the category catalog ordered by label.
func QueryCategories(ctx context.Context, coll *mongo.Collection) ([]models.Category, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "label", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}
