package store

import (
	"context"
	"time"

	"github.com/nahid-dev/local_business_directory/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AnnotateBookmarks sets IsBookmarked on each listing the given user has
// bookmarked. One $in query covers the whole page; order and membership of
// the slice are untouched.
func AnnotateBookmarks(ctx context.Context, coll *mongo.Collection, userID primitive.ObjectID, listings []models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	listingIDs := make([]primitive.ObjectID, 0, len(listings))
	for _, listing := range listings {
		listingIDs = append(listingIDs, listing.ID)
	}

	filter := bson.M{
		"user":    userID,
		"listing": bson.M{"$in": listingIDs},
	}
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	bookmarked := make(map[primitive.ObjectID]bool)
	for cursor.Next(ctx) {
		var bookmark models.Bookmark
		if err := cursor.Decode(&bookmark); err != nil {
			return err
		}
		bookmarked[bookmark.Listing] = true
	}
	if err := cursor.Err(); err != nil {
		return err
	}

	for i := range listings {
		if bookmarked[listings[i].ID] {
			listings[i].IsBookmarked = true
		}
	}
	return nil
}

// IsBookmarked reports whether the user has bookmarked a single listing.
func IsBookmarked(ctx context.Context, coll *mongo.Collection, userID, listingID primitive.ObjectID) (bool, error) {
	err := coll.FindOne(ctx, bson.M{"user": userID, "listing": listingID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ToggleBookmark flips the bookmark state for (user, listing) and returns the
// resulting state. A duplicate-key race on insert means another toggle won;
// the net state is bookmarked either way, so it is not an error.
func ToggleBookmark(ctx context.Context, coll *mongo.Collection, userID, listingID primitive.ObjectID) (bool, error) {
	var existing models.Bookmark
	err := coll.FindOne(ctx, bson.M{"user": userID, "listing": listingID}).Decode(&existing)
	if err == nil {
		if _, err := coll.DeleteOne(ctx, bson.M{"_id": existing.ID}); err != nil {
			return false, err
		}
		return false, nil
	}
	if err != mongo.ErrNoDocuments {
		return false, err
	}

	bookmark := models.Bookmark{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Listing:   listingID,
		CreatedAt: time.Now(),
	}
	if _, err := coll.InsertOne(ctx, bookmark); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}
