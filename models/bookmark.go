package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookmark joins a user to a listing. The (user, listing) pair carries a
// unique index so a duplicate toggle cannot persist twice.
type Bookmark struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Listing   primitive.ObjectID `bson:"listing" json:"listing"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
