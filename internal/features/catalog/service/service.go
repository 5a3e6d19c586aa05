package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"order-portal/internal/core/apperror"
	"order-portal/internal/features/catalog/domain"
	"order-portal/internal/features/catalog/ports"
)

// ProductServiceImpl implements ports.ProductService.
type ProductServiceImpl struct {
	repo      ports.ProductRepository
	favorites ports.FavoritesReader
}

// NewProductService creates a new ProductServiceImpl. favorites may be nil,
// in which case favorites filtering is rejected.
func NewProductService(repo ports.ProductRepository, favorites ports.FavoritesReader) *ProductServiceImpl {
	return &ProductServiceImpl{
		repo:      repo,
		favorites: favorites,
	}
}

// List returns the products matching filter. A non-empty favoritesOf limits
// the result to that owner's favorites.
func (s *ProductServiceImpl) List(ctx context.Context, filter domain.Filter, favoritesOf string) ([]domain.Product, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, apperror.Validation(domain.ErrInvalidCategory, domain.ErrInvalidCategory.Error())
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperror.Validation(domain.ErrInvalidStatus, domain.ErrInvalidStatus.Error())
	}

	if owner := strings.TrimSpace(favoritesOf); owner != "" {
		if s.favorites == nil {
			return nil, apperror.New(apperror.CodeValidation, "favorites filtering is not available")
		}
		ids, err := s.favorites.ListFavorites(ctx, owner)
		if err != nil {
			return nil, apperror.Wrap(apperror.CodeDependency, err, "reading favorites")
		}
		if ids == nil {
			ids = []uint{}
		}
		filter.IDs = ids
	}

	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err, "listing products")
	}
	return products, nil
}

// Get returns a single product.
func (s *ProductServiceImpl) Get(ctx context.Context, id uint) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err, "fetching product")
	}
	return product, nil
}

// Save creates the product when it has no id, otherwise updates it.
func (s *ProductServiceImpl) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	product.Normalize()
	if err := product.Validate(); err != nil {
		return nil, apperror.Validation(err, err.Error())
	}

	var err error
	if product.ID == 0 {
		err = s.repo.Create(ctx, product)
	} else {
		err = s.repo.Update(ctx, product)
	}
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("saving product %s", product.SKU))
	}
	return product, nil
}

// Delete removes a product that no order references.
func (s *ProductServiceImpl) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err, "deleting product")
	}
	return nil
}

func mapError(err error, op string) error {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return apperror.NotFound(err, err.Error())
	case errors.Is(err, domain.ErrDuplicateSKU), errors.Is(err, domain.ErrProductInUse):
		return apperror.Conflict(err, err.Error())
	default:
		return apperror.Internal(err, op)
	}
}
