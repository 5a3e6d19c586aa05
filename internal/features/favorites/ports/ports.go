package ports

import (
	"context"

	catalog "order-portal/internal/features/catalog/domain"
)

// FavoritesService defines the primary port for favorite operations.
type FavoritesService interface {
	GetFavorite(ctx context.Context, owner string, productID uint) (bool, error)
	SetFavorite(ctx context.Context, owner string, productID uint, favorite bool) error
	ListFavorites(ctx context.Context, owner string) ([]uint, error)
}

// FavoritesRepository defines the secondary port for favorite storage.
type FavoritesRepository interface {
	GetFavorite(ctx context.Context, owner string, productID uint) (bool, error)
	SetFavorite(ctx context.Context, owner string, productID uint, favorite bool) error
	ListFavorites(ctx context.Context, owner string) ([]uint, error)
}

// ProductReader checks that a product exists before it is marked.
type ProductReader interface {
	GetByID(ctx context.Context, id uint) (*catalog.Product, error)
}
