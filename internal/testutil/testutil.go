// Package testutil provides shared helpers for tests that need live
// infrastructure.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisAddrEnv overrides the Redis address used by integration tests.
const redisAddrEnv = "SHOPFRONT_TEST_REDIS_ADDR"

// SetupTestRedis creates a Redis client for testing, pointed at an
// isolated database index. Tests are skipped when no server is
// reachable, unless SHOPFRONT_TEST_REQUIRE_REDIS=true makes absence
// fatal (CI).
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv(redisAddrEnv)
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("warning: close redis client after ping error: %v", cerr)
		}
		if os.Getenv("SHOPFRONT_TEST_REQUIRE_REDIS") == "true" {
			t.Fatalf("Redis not available for testing at %s: %v", addr, err)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("warning: close redis test client: %v", err)
		}
	})
	return client
}
