package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/url"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// generateCacheKey keys a response by scope, caller identity and the sorted
// query params. The identity matters (bookmark flags make the same query
// differ per user) and stays outside the hash so one user's keys can be
// dropped without touching the rest.
func generateCacheKey(scope, identity string, queryParams url.Values) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		values := queryParams[key]
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return "listings:" + scope + ":" + identity + ":" + hex.EncodeToString(sum[:])
}

// deleteListingCache drops every cached listing and map response. Runs after
// any listing mutation.
func deleteListingCache(redisClient *redis.Client) {
	deleteCachePattern(redisClient, "listings:*")
}

// deleteUserListingCache drops one user's cached listing pages. Runs after a
// bookmark toggle, which changes that user's flags and nobody else's.
func deleteUserListingCache(redisClient *redis.Client, identity string) {
	deleteCachePattern(redisClient, "listings:list:"+identity+":*")
}

func deleteCachePattern(redisClient *redis.Client, scanPattern string) {
	ctx := context.Background()
	const scanCount = 100

	var keysToDelete []string
	var cursor uint64
	var err error

	for {
		var currentKeys []string
		currentKeys, cursor, err = redisClient.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			log.Printf("Error during Redis SCAN for pattern '%s': %v", scanPattern, err)
			return
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := redisClient.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, execErr := pipe.Exec(ctx); execErr != nil {
		log.Printf("Error deleting %d listing cache keys: %v", len(keysToDelete), execErr)
	} else {
		log.Printf("Listing cache invalidated, deleted %d keys matching '%s'", len(keysToDelete), scanPattern)
	}
}
