package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache defines the key-value operations the features rely on.
// This is a port that can be implemented by different providers (Redis, in-memory, etc.).
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the specified TTL. TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// AddToSet adds members to the set stored at key.
	AddToSet(ctx context.Context, key string, members ...string) error

	// RemoveFromSet removes members from the set stored at key.
	RemoveFromSet(ctx context.Context, key string, members ...string) error

	// IsSetMember reports whether member belongs to the set stored at key.
	IsSetMember(ctx context.Context, key string, member string) (bool, error)

	// SetMembers lists the members of the set stored at key.
	SetMembers(ctx context.Context, key string) ([]string, error)

	// Ping checks if the cache service is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}
