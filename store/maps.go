package store

import (
	"context"
	"strings"

	"github.com/nahid-dev/local_business_directory/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// Geo presence mirrors the backfill query: a listing is geocoded when its
// coordinates array exists and is non-empty, missing otherwise.
func geoPresentCondition() bson.M {
	return bson.M{"geo.coordinates": bson.M{"$exists": true, "$type": "array", "$ne": bson.A{}}}
}

func geoMissingCondition() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"geo.coordinates": bson.M{"$exists": false}},
		bson.M{"geo.coordinates": nil},
		bson.M{"geo.coordinates": bson.A{}},
	}}
}

// priceCondition matches listings where any services or menuItems entry falls
// inside the requested range. Listings without priced entries cannot match.
func priceCondition(min, max *float64) bson.M {
	rng := bson.M{}
	if min != nil {
		rng["$gte"] = *min
	}
	if max != nil {
		rng["$lte"] = *max
	}
	return bson.M{"$or": bson.A{
		bson.M{"services": bson.M{"$elemMatch": bson.M{"price": rng}}},
		bson.M{"menuItems": bson.M{"$elemMatch": bson.M{"price": rng}}},
	}}
}

func buildMapQuery(f MapFilter, geoCondition bson.M) bson.M {
	query := BuildListingQuery(f.ListingFilter)

	andConditions := []bson.M{geoCondition}
	if f.priceActive() {
		andConditions = append(andConditions, priceCondition(f.MinPrice, f.MaxPrice))
	}
	query["$and"] = andConditions

	return query
}

// BuildMapQuery is the primary map query: every filter plus geo presence.
func BuildMapQuery(f MapFilter) bson.M {
	return buildMapQuery(f, geoPresentCondition())
}

// BuildMissingGeoQuery matches listings excluded from the map only for
// lacking coordinates.
func BuildMissingGeoQuery(f MapFilter) bson.M {
	return buildMapQuery(f, geoMissingCondition())
}

// PriceHint is the minimum price across a listing's priced entries, nil when
// it has none. Which sub-collection an entry came from does not matter.
func PriceHint(services, menuItems []models.PricedItem) *float64 {
	var min *float64
	for _, entries := range [][]models.PricedItem{services, menuItems} {
		for _, entry := range entries {
			if min == nil || entry.Price < *min {
				price := entry.Price
				min = &price
			}
		}
	}
	return min
}

// ComposeMapAddress renders "area, city", skipping blank components.
func ComposeMapAddress(loc models.ListingLocation) string {
	parts := make([]string, 0, 2)
	if loc.Area != "" {
		parts = append(parts, loc.Area)
	}
	if loc.City != "" {
		parts = append(parts, loc.City)
	}
	return strings.Join(parts, ", ")
}

// ReshapeForMap reduces a listing to the map payload shape.
func ReshapeForMap(listing models.Listing) models.MapListing {
	return models.MapListing{
		ID:          listing.ID,
		Name:        listing.Name,
		Category:    listing.Category,
		Address:     ComposeMapAddress(listing.Location),
		Geo:         listing.Geo,
		PriceHint:   PriceHint(listing.Services, listing.MenuItems),
		Rating:      listing.Rating,
		ReviewCount: listing.ReviewCount,
		ImageURL:    listing.ImageURL,
	}
}

// QueryForMap executes the primary geo-constrained query and, alongside it,
// counts matches excluded for missing coordinates.
func QueryForMap(ctx context.Context, coll *mongo.Collection, f MapFilter, requested MapSortMode) ([]models.MapListing, int64, error) {
	mode := ResolveMapSort(requested)
	findOptions := options.Find().SetSort(mapSortSpec(mode))

	var listings []models.Listing
	var missingGeoCount int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cursor, err := coll.Find(gctx, BuildMapQuery(f), findOptions)
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &listings)
	})
	g.Go(func() error {
		var err error
		missingGeoCount, err = coll.CountDocuments(gctx, BuildMissingGeoQuery(f))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	mapListings := make([]models.MapListing, 0, len(listings))
	for _, listing := range listings {
		mapListings = append(mapListings, ReshapeForMap(listing))
	}
	return mapListings, missingGeoCount, nil
}
