package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Location is a catalog entry of a valid (city, area) pair, unique on the
// pair. Filter UIs read this catalog; listing creation upserts into it.
type Location struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	City string             `bson:"city" json:"city"`
	Area string             `bson:"area" json:"area"`
}
