package tokenstore

import (
	"context"
	"fmt"
	"log"
	"time"

	"tedumasters/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// The token store holds the deny list of revoked token IDs. A logged-out
// token's jti lives here until the token would have expired anyway.

// Store is the deny-list backend. Connect installs the Redis-backed store;
// tests install their own with Use.
type Store interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

var (
	RDB    *redis.Client
	active Store
)

const revokedKeyPrefix = "revoked_token:"

// Use swaps the backend the package functions delegate to.
func Use(s Store) {
	active = s
}

func Connect() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Successfully connected to Redis!")
	active = &redisStore{client: RDB}
}

func Close() {
	if RDB != nil {
		RDB.Close()
		fmt.Println("Redis connection closed.")
	}
	active = nil
}

// Revoke adds the token ID to the deny list for the remaining token lifetime.
// A non-positive ttl means the token is already expired and needs no entry.
// With no store configured nothing is ever revoked.
func Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if active == nil || ttl <= 0 {
		return nil
	}
	return active.Revoke(ctx, jti, ttl)
}

// IsRevoked reports whether the token ID is on the deny list.
func IsRevoked(ctx context.Context, jti string) (bool, error) {
	if active == nil {
		return false, nil
	}
	return active.IsRevoked(ctx, jti)
}

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return s.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (s *redisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
