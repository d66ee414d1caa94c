package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestToggleBookmarkFlipsAndFlipsBack(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	userID := primitive.NewObjectID()
	listingID := primitive.NewObjectID()

	mt.Run("toggle on then off", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		// No bookmark yet: the toggle inserts one.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)
		bookmarked, err := ToggleBookmark(context.Background(), mt.Coll, userID, listingID)
		assert.NoError(mt, err)
		assert.True(mt, bookmarked)

		// Bookmark present: the toggle deletes it, back to the original state.
		existing := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "user", Value: userID},
			{Key: "listing", Value: listingID},
			{Key: "createdAt", Value: time.Now()},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, existing),
			mtest.CreateSuccessResponse(),
		)
		bookmarked, err = ToggleBookmark(context.Background(), mt.Coll, userID, listingID)
		assert.NoError(mt, err)
		assert.False(mt, bookmarked)
	})

	mt.Run("duplicate insert means already bookmarked", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		// A concurrent toggle won the insert race; the unique index rejects
		// ours. Net state is bookmarked, not an error.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error",
			}),
		)
		bookmarked, err := ToggleBookmark(context.Background(), mt.Coll, userID, listingID)
		assert.NoError(mt, err)
		assert.True(mt, bookmarked)
	})
}
