package config

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// InitRedis connects the response-cache client. The cache is load-bearing
// enough (every listing and map read goes through it) that an unreachable
// Redis is fatal at startup rather than discovered per request.
func InitRedis() *redis.Client {
	redisOnce.Do(func() {
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}

		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})

		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", addr, err)
		}
		log.Printf("Connected to Redis at %s", addr)
	})
	return redisClient
}
