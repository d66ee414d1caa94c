package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection     *mongo.Collection
	ListingCollection  *mongo.Collection
	BookmarkCollection *mongo.Collection
	LocationCollection *mongo.Collection
	CategoryCollection *mongo.Collection
)

func ConnectDB() (*mongo.Client, error) {
	MONGO_URI := os.Getenv("MONGOURI")
	if MONGO_URI == "" {
		return nil, fmt.Errorf("MONGOURI not set in environment")
	}

	clientOptions := options.Client().ApplyURI(MONGO_URI)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %v", err)
	}

	log.Println("Connected to MongoDB")
	return client, nil
}

func InitCollections(client *mongo.Client) {
	dbName := os.Getenv("DB")
	UserCollection = client.Database(dbName).Collection("users")
	ListingCollection = client.Database(dbName).Collection("listings")
	BookmarkCollection = client.Database(dbName).Collection("bookmarks")
	LocationCollection = client.Database(dbName).Collection("locations")
	CategoryCollection = client.Database(dbName).Collection("categories")
}

// EnsureIndexes creates the indexes the query engine depends on: the text
// index backing relevance search, the unique constraints on (city, area) and
// (user, listing), and the 2dsphere index on listing geo.
func EnsureIndexes(ctx context.Context) error {
	listingIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "shortDescription", Value: "text"},
				{Key: "description", Value: "text"},
			},
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "location.city", Value: 1},
				{Key: "location.area", Value: 1},
			},
		},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "geo", Value: "2dsphere"}}, Options: options.Index().SetSparse(true)},
	}
	if _, err := ListingCollection.Indexes().CreateMany(ctx, listingIndexes); err != nil {
		return fmt.Errorf("creating listing indexes: %v", err)
	}

	locationIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "city", Value: 1}, {Key: "area", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := LocationCollection.Indexes().CreateOne(ctx, locationIndex); err != nil {
		return fmt.Errorf("creating location index: %v", err)
	}

	bookmarkIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "listing", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}
	if _, err := BookmarkCollection.Indexes().CreateMany(ctx, bookmarkIndexes); err != nil {
		return fmt.Errorf("creating bookmark indexes: %v", err)
	}

	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := UserCollection.Indexes().CreateOne(ctx, userIndex); err != nil {
		return fmt.Errorf("creating user index: %v", err)
	}

	return nil
}

func CloseDBConnection(client *mongo.Client) {
	if err := client.Disconnect(context.TODO()); err != nil {
		log.Fatalf("Error closing database connection: %v", err)
	}
	log.Println("MongoDB connection closed")
}
