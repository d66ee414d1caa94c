package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category keys accepted for a listing. Filter values outside this set simply
// match nothing; they are not an error.
var CategoryKeys = []string{"Haircut", "Laundry", "Electronics", "Fashion", "Market"}

func IsValidCategory(key string) bool {
	for _, k := range CategoryKeys {
		if k == key {
			return true
		}
	}
	return false
}

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude] — the
// ordering map consumers rely on.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(lng, lat float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// PricedItem is one entry of a listing's services or menuItems.
type PricedItem struct {
	Label string  `bson:"label" json:"label"`
	Price float64 `bson:"price" json:"price"`
}

type ListingLocation struct {
	City string `bson:"city" json:"city"`
	Area string `bson:"area" json:"area"`
}

type Listing struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Owner            primitive.ObjectID `bson:"owner" json:"owner"`
	Name             string             `bson:"name" json:"name"`
	Category         string             `bson:"category" json:"category"`
	Location         ListingLocation    `bson:"location" json:"location"`
	ShortDescription string             `bson:"shortDescription" json:"shortDescription"`
	Description      string             `bson:"description" json:"description"`
	Phone            string             `bson:"phone" json:"phone"`
	Hours            string             `bson:"hours,omitempty" json:"hours,omitempty"`
	ImageURL         string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	Geo              *GeoPoint          `bson:"geo,omitempty" json:"geo,omitempty"`
	Services         []PricedItem       `bson:"services,omitempty" json:"services,omitempty"`
	MenuItems        []PricedItem       `bson:"menuItems,omitempty" json:"menuItems,omitempty"`
	Rating           float64            `bson:"rating,omitempty" json:"rating,omitempty"`
	ReviewCount      int                `bson:"reviewCount,omitempty" json:"reviewCount,omitempty"`
	Popularity       float64            `bson:"popularity,omitempty" json:"popularity,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
	IsBookmarked     bool               `bson:"-" json:"isBookmarked,omitempty"`
	TextScore        float64            `bson:"score,omitempty" json:"-"`
}

// MapListing is the reduced shape served to the map view. Descriptive fields
// are intentionally left out of the payload.
type MapListing struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Address     string             `json:"address"`
	Geo         *GeoPoint          `json:"geo"`
	PriceHint   *float64           `json:"priceHint"`
	Rating      float64            `json:"rating"`
	ReviewCount int                `json:"reviewCount"`
	ImageURL    string             `json:"imageUrl,omitempty"`
}
