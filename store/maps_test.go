package store

import (
	"testing"

	"github.com/nahid-dev/local_business_directory/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildMapQueryRequiresGeoPresence(t *testing.T) {
	query := BuildMapQuery(MapFilter{})

	assert.Equal(t, true, query["isActive"])
	and, ok := query["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, and, 1)
	assert.Equal(t,
		bson.M{"geo.coordinates": bson.M{"$exists": true, "$type": "array", "$ne": bson.A{}}},
		and[0])
}

func TestBuildMapQueryWithPriceRange(t *testing.T) {
	query := BuildMapQuery(MapFilter{
		ListingFilter: ListingFilter{Category: "Haircut"},
		MinPrice:      floatPtr(100),
		MaxPrice:      floatPtr(500),
	})

	assert.Equal(t, "Haircut", query["category"])
	and, ok := query["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, and, 2)

	expectedRange := bson.M{"$gte": 100.0, "$lte": 500.0}
	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"services": bson.M{"$elemMatch": bson.M{"price": expectedRange}}},
		bson.M{"menuItems": bson.M{"$elemMatch": bson.M{"price": expectedRange}}},
	}}, and[1])
}

func TestBuildMapQueryOneSidedPrice(t *testing.T) {
	query := BuildMapQuery(MapFilter{MinPrice: floatPtr(50)})
	and := query["$and"].([]bson.M)
	require.Len(t, and, 2)

	rng := bson.M{"$gte": 50.0}
	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"services": bson.M{"$elemMatch": bson.M{"price": rng}}},
		bson.M{"menuItems": bson.M{"$elemMatch": bson.M{"price": rng}}},
	}}, and[1])
}

func TestBuildMissingGeoQueryMirrorsFilters(t *testing.T) {
	f := MapFilter{
		ListingFilter: ListingFilter{Category: "Laundry", City: "Dhaka"},
		MaxPrice:      floatPtr(300),
	}
	missing := BuildMissingGeoQuery(f)

	assert.Equal(t, true, missing["isActive"])
	assert.Equal(t, "Laundry", missing["category"])
	assert.Equal(t, "Dhaka", missing["location.city"])

	and, ok := missing["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, and, 2)
	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"geo.coordinates": bson.M{"$exists": false}},
		bson.M{"geo.coordinates": nil},
		bson.M{"geo.coordinates": bson.A{}},
	}}, and[0])
}

func TestPriceHint(t *testing.T) {
	t.Run("nil when no priced entries", func(t *testing.T) {
		assert.Nil(t, PriceHint(nil, nil))
	})

	t.Run("minimum across both collections", func(t *testing.T) {
		services := []models.PricedItem{{Label: "Cut", Price: 300}, {Label: "Shave", Price: 150}}
		menu := []models.PricedItem{{Label: "Tea", Price: 20}}
		hint := PriceHint(services, menu)
		require.NotNil(t, hint)
		assert.Equal(t, 20.0, *hint)
	})

	t.Run("zero price entries yield zero, not nil", func(t *testing.T) {
		hint := PriceHint([]models.PricedItem{{Label: "Consultation", Price: 0}}, nil)
		require.NotNil(t, hint)
		assert.Equal(t, 0.0, *hint)
	})

	t.Run("single collection", func(t *testing.T) {
		hint := PriceHint(nil, []models.PricedItem{{Label: "Biryani", Price: 180}})
		require.NotNil(t, hint)
		assert.Equal(t, 180.0, *hint)
	})
}

func TestComposeMapAddress(t *testing.T) {
	assert.Equal(t, "Gulshan, Dhaka", ComposeMapAddress(models.ListingLocation{City: "Dhaka", Area: "Gulshan"}))
	assert.Equal(t, "Dhaka", ComposeMapAddress(models.ListingLocation{City: "Dhaka"}))
	assert.Equal(t, "Gulshan", ComposeMapAddress(models.ListingLocation{Area: "Gulshan"}))
	assert.Equal(t, "", ComposeMapAddress(models.ListingLocation{}))
}

func TestReshapeForMap(t *testing.T) {
	id := primitive.NewObjectID()
	listing := models.Listing{
		ID:          id,
		Name:        "Style Studio",
		Category:    "Haircut",
		Location:    models.ListingLocation{City: "Dhaka", Area: "Gulshan"},
		Description: "A long description that must not reach the map payload",
		Geo:         models.NewGeoPoint(90.41, 23.79),
		Services:    []models.PricedItem{{Label: "Cut", Price: 250}},
		Rating:      4.5,
		ReviewCount: 37,
		ImageURL:    "https://example.com/studio.jpg",
	}

	shaped := ReshapeForMap(listing)

	assert.Equal(t, id, shaped.ID)
	assert.Equal(t, "Style Studio", shaped.Name)
	assert.Equal(t, "Haircut", shaped.Category)
	assert.Equal(t, "Gulshan, Dhaka", shaped.Address)
	require.NotNil(t, shaped.Geo)
	// Longitude first, the GeoJSON ordering map consumers depend on.
	assert.Equal(t, []float64{90.41, 23.79}, shaped.Geo.Coordinates)
	require.NotNil(t, shaped.PriceHint)
	assert.Equal(t, 250.0, *shaped.PriceHint)
	assert.Equal(t, 4.5, shaped.Rating)
	assert.Equal(t, 37, shaped.ReviewCount)
	assert.Equal(t, "https://example.com/studio.jpg", shaped.ImageURL)
}

func TestReshapeForMapWithoutPrices(t *testing.T) {
	shaped := ReshapeForMap(models.Listing{Name: "No Menu", Geo: models.NewGeoPoint(90.4, 23.8)})
	assert.Nil(t, shaped.PriceHint)
}
