package adapters

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"order-portal/internal/core/cache"
	"order-portal/internal/core/logger"

	"go.uber.org/zap"
)

const favoritesKeyPrefix = "favorites:"

// RedisFavoritesRepository implements ports.FavoritesRepository with one Redis
// set of product ids per owner.
type RedisFavoritesRepository struct {
	cache cache.Cache
}

// NewRedisFavoritesRepository creates a new RedisFavoritesRepository.
func NewRedisFavoritesRepository(c cache.Cache) *RedisFavoritesRepository {
	return &RedisFavoritesRepository{
		cache: c,
	}
}

func favoritesKey(owner string) string {
	return favoritesKeyPrefix + owner
}

func member(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}

// GetFavorite reports whether productID is in the owner's set.
func (r *RedisFavoritesRepository) GetFavorite(ctx context.Context, owner string, productID uint) (bool, error) {
	ok, err := r.cache.IsSetMember(ctx, favoritesKey(owner), member(productID))
	if err != nil {
		return false, fmt.Errorf("failed to read favorite: %w", err)
	}
	return ok, nil
}

// SetFavorite adds or removes productID from the owner's set.
func (r *RedisFavoritesRepository) SetFavorite(ctx context.Context, owner string, productID uint, favorite bool) error {
	var err error
	if favorite {
		err = r.cache.AddToSet(ctx, favoritesKey(owner), member(productID))
	} else {
		err = r.cache.RemoveFromSet(ctx, favoritesKey(owner), member(productID))
	}
	if err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

// ListFavorites returns the owner's product ids in ascending order.
func (r *RedisFavoritesRepository) ListFavorites(ctx context.Context, owner string) ([]uint, error) {
	members, err := r.cache.SetMembers(ctx, favoritesKey(owner))
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil || id == 0 {
			logger.Get().Warn("Skipping malformed favorite", zap.String("owner", owner), zap.String("member", m))
			continue
		}
		ids = append(ids, uint(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
