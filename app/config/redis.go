package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// RDB is nil when no Redis is configured; callers must treat the cache as
// optional and fall through to the database.
var RDB *redis.Client

var Ctx = context.Background()

// InitRedis connects to Redis if REDIS_ADDR is set. The dashboard cache is
// purely an optimization, so a missing or unreachable Redis only logs.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, dashboard caching disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := client.Ping(Ctx).Err(); err != nil {
		log.Printf("Redis connection failed, continuing without cache: %v", err)
		return
	}

	RDB = client
	log.Println("Redis connected successfully")
}
