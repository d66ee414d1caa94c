package store

import (
	"context"

	"github.com/nahid-dev/local_business_directory/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// BuildListingQuery turns a filter into the find document. Category, city and
// area are exact matches; search activates the collection's text index.
func BuildListingQuery(f ListingFilter) bson.M {
	query := bson.M{"isActive": true}

	if f.Search != "" {
		query["$text"] = bson.M{"$search": f.Search}
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.City != "" {
		query["location.city"] = f.City
	}
	if f.Area != "" {
		query["location.area"] = f.Area
	}

	return query
}

// QueryListings runs a filtered, sorted, paginated listing query plus the
// matching count. A page past the end comes back as an empty slice with the
// same PageInfo.
func QueryListings(ctx context.Context, coll *mongo.Collection, f ListingFilter, p Pagination, requested SortMode) ([]models.Listing, PageInfo, error) {
	p = p.Clamp()
	query := BuildListingQuery(f)
	mode := ResolveSort(requested, f.Search != "")

	findOptions := options.Find().
		SetSort(sortSpec(mode)).
		SetSkip(int64((p.Page - 1) * p.Limit)).
		SetLimit(int64(p.Limit))
	if mode == SortRelevance {
		findOptions.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
	}

	var listings []models.Listing
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cursor, err := coll.Find(gctx, query, findOptions)
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &listings)
	})
	g.Go(func() error {
		var err error
		total, err = coll.CountDocuments(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, PageInfo{}, err
	}

	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, NewPageInfo(p, total), nil
}

// QueryOwnerListings returns every listing owned by the given user, newest
// first, active or not.
func QueryOwnerListings(ctx context.Context, coll *mongo.Collection, owner primitive.ObjectID) ([]models.Listing, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{"owner": owner}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, nil
}
