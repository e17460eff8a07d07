package rdx

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func Connect() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := Conn.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")
}

func RdxHset(ctx context.Context, hash, key, value string) error {
	return Conn.HSet(ctx, hash, key, value).Err()
}

func RdxHget(ctx context.Context, hash, key string) (string, error) {
	return Conn.HGet(ctx, hash, key).Result()
}

func RdxHdel(ctx context.Context, hash, key string) error {
	return Conn.HDel(ctx, hash, key).Err()
}

// Publish sends a payload to a pub/sub channel. Callers treat failures as
// best-effort.
func Publish(ctx context.Context, channel string, payload []byte) error {
	return Conn.Publish(ctx, channel, payload).Err()
}
