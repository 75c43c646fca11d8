package initializers

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// GetRedisClient returns the shared redis client, or nil when REDIS_URL is
// not configured. Callers must treat a nil client as "cache disabled".
func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Error parsing redis connection string: %s", err.Error())
		return nil
	}
	redisClient = redis.NewClient(opt)
	return redisClient
}

// NewRedisClient replaces the shared redis instance with a custom client.
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}
