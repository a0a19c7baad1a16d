package testutil

// Package testutil holds shared helpers for integration-style tests.

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetTestRedisAddr returns the Redis address for integration tests.
// Defaults to localhost:6379; TEST_REDIS_ADDR overrides.
func GetTestRedisAddr() string {
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// SetupTestRedis creates a Redis client for testing. Tests are skipped when
// Redis is not reachable, unless REQUIRE_TEST_REDIS is set.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: GetTestRedisAddr(),
		DB:   1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if os.Getenv("REQUIRE_TEST_REDIS") != "" {
			t.Fatalf("Redis required but not available: %v", err)
		}
		t.Skipf("Redis not available for testing: %v", err)
	}

	return client
}
