package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"order-portal/internal/core/cache"
	"order-portal/internal/features/cart/domain"
)

const cartKeyPrefix = "cart:"

// RedisCartRepository implements ports.CartRepository on top of the cache port.
type RedisCartRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisCartRepository creates a RedisCartRepository. Carts expire after ttl
// without changes; zero keeps them forever.
func NewRedisCartRepository(c cache.Cache, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{
		cache: c,
		ttl:   ttl,
	}
}

func cartKey(clientID uint) string {
	return cartKeyPrefix + strconv.FormatUint(uint64(clientID), 10)
}

// Get loads the stored cart of a client.
func (r *RedisCartRepository) Get(ctx context.Context, clientID uint) (*domain.Cart, error) {
	data, err := r.cache.Get(ctx, cartKey(clientID))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart from cache: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	if cart.Lines == nil {
		cart.Lines = []domain.Line{}
	}
	return &cart, nil
}

// Save stores the cart and refreshes its expiry.
func (r *RedisCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.cache.Set(ctx, cartKey(cart.ClientID), data, r.ttl); err != nil {
		return fmt.Errorf("failed to save cart to cache: %w", err)
	}
	return nil
}

// Delete removes the stored cart.
func (r *RedisCartRepository) Delete(ctx context.Context, clientID uint) error {
	if err := r.cache.Delete(ctx, cartKey(clientID)); err != nil {
		return fmt.Errorf("failed to delete cart from cache: %w", err)
	}
	return nil
}
