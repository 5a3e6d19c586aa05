package service

import (
	"context"
	"errors"

	"order-portal/internal/core/apperror"
	catalog "order-portal/internal/features/catalog/domain"
	"order-portal/internal/features/favorites/domain"
	"order-portal/internal/features/favorites/ports"
)

// FavoritesServiceImpl implements ports.FavoritesService.
type FavoritesServiceImpl struct {
	repo     ports.FavoritesRepository
	products ports.ProductReader
}

// NewFavoritesService creates a new FavoritesServiceImpl.
func NewFavoritesService(repo ports.FavoritesRepository, products ports.ProductReader) *FavoritesServiceImpl {
	return &FavoritesServiceImpl{
		repo:     repo,
		products: products,
	}
}

// GetFavorite reports whether the owner marked the product.
func (s *FavoritesServiceImpl) GetFavorite(ctx context.Context, owner string, productID uint) (bool, error) {
	owner, err := domain.NormalizeOwner(owner)
	if err != nil {
		return false, apperror.Validation(err, err.Error())
	}

	ok, err := s.repo.GetFavorite(ctx, owner, productID)
	if err != nil {
		return false, apperror.Wrap(apperror.CodeDependency, err, "reading favorite")
	}
	return ok, nil
}

// SetFavorite marks or unmarks a product. Only existing products can be marked;
// unmarking works for deleted products too.
func (s *FavoritesServiceImpl) SetFavorite(ctx context.Context, owner string, productID uint, favorite bool) error {
	owner, err := domain.NormalizeOwner(owner)
	if err != nil {
		return apperror.Validation(err, err.Error())
	}

	if favorite {
		if _, err := s.products.GetByID(ctx, productID); err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return apperror.NotFound(err, err.Error())
			}
			return apperror.Internal(err, "fetching product")
		}
	}

	if err := s.repo.SetFavorite(ctx, owner, productID, favorite); err != nil {
		return apperror.Wrap(apperror.CodeDependency, err, "saving favorite")
	}
	return nil
}

// ListFavorites returns the owner's favorite product ids.
func (s *FavoritesServiceImpl) ListFavorites(ctx context.Context, owner string) ([]uint, error) {
	owner, err := domain.NormalizeOwner(owner)
	if err != nil {
		return nil, apperror.Validation(err, err.Error())
	}

	ids, err := s.repo.ListFavorites(ctx, owner)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeDependency, err, "listing favorites")
	}
	return ids, nil
}
