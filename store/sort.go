package store

import "go.mongodb.org/mongo-driver/bson"

// SortMode orders a listing query.
type SortMode string

const (
	SortNewest       SortMode = "newest"
	SortAlphabetical SortMode = "az"
	SortRelevance    SortMode = "relevance"
)

// ResolveSort maps a requested mode onto the effective one. Relevance is only
// meaningful while a text search is active; without one it falls back to
// newest. An empty or unknown request resolves to relevance when searching,
// newest otherwise.
func ResolveSort(requested SortMode, searchActive bool) SortMode {
	switch requested {
	case SortNewest, SortAlphabetical:
		return requested
	}
	if searchActive {
		return SortRelevance
	}
	return SortNewest
}

func sortSpec(mode SortMode) bson.D {
	switch mode {
	case SortAlphabetical:
		return bson.D{{Key: "name", Value: 1}}
	case SortRelevance:
		return bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// MapSortMode orders a map aggregation query.
type MapSortMode string

const (
	MapSortRating  MapSortMode = "rating"
	MapSortPopular MapSortMode = "popular"
	MapSortNewest  MapSortMode = "newest"
)

// ResolveMapSort defaults unknown or empty requests to rating.
func ResolveMapSort(requested MapSortMode) MapSortMode {
	switch requested {
	case MapSortRating, MapSortPopular, MapSortNewest:
		return requested
	}
	return MapSortRating
}

func mapSortSpec(mode MapSortMode) bson.D {
	switch mode {
	case MapSortPopular:
		return bson.D{{Key: "popularity", Value: -1}}
	case MapSortNewest:
		return bson.D{{Key: "createdAt", Value: -1}}
	default:
		return bson.D{{Key: "rating", Value: -1}, {Key: "reviewCount", Value: -1}}
	}
}
