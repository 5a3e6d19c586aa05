package ports

import (
	"context"

	"order-portal/internal/features/catalog/domain"
)

// ProductService defines the primary port for catalog operations.
type ProductService interface {
	List(ctx context.Context, filter domain.Filter, favoritesOf string) ([]domain.Product, error)
	Get(ctx context.Context, id uint) (*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id uint) error
}

// ProductRepository defines the secondary port for product storage.
type ProductRepository interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.Product, error)
	GetByID(ctx context.Context, id uint) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint) error
}

// FavoritesReader lists the product ids an owner marked as favorite.
type FavoritesReader interface {
	ListFavorites(ctx context.Context, owner string) ([]uint, error)
}
