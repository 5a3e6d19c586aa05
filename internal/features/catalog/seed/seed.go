// Package seed loads the base catalog into the product store.
package seed

import (
	"context"
	"fmt"

	"order-portal/internal/features/catalog/domain"
)

// Repository is the subset of the product store the seeder writes through.
type Repository interface {
	FindBySKUs(ctx context.Context, skus []string) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
}

// Result counts what a run changed.
type Result struct {
	Created int
	Updated int
}

// BaseProducts returns the products every fresh installation starts with.
func BaseProducts() []domain.Product {
	return []domain.Product{
		{
			SKU:         "47201-04150",
			Brand:       "Toyota",
			Description: "Tacoma 13/16",
			Category:    domain.CategoryBrakeMaster,
			Status:      domain.StatusAvailable,
			Images:      []string{"/img/ejemplo1.png"},
		},
		{
			SKU:         "47201-60460",
			Brand:       "Toyota",
			Description: `22R 1"`,
			Category:    domain.CategoryBrakeMaster,
			Status:      domain.StatusAvailable,
			Images:      []string{"/img/prueba2.png"},
		},
	}
}

// Run upserts products by SKU. Existing rows keep their id and creation time
// and get every other field overwritten, so running it twice is a no-op.
func Run(ctx context.Context, repo Repository, products []domain.Product) (Result, error) {
	var res Result

	skus := make([]string, 0, len(products))
	for i := range products {
		products[i].Normalize()
		if err := products[i].Validate(); err != nil {
			return res, fmt.Errorf("product %q: %w", products[i].SKU, err)
		}
		skus = append(skus, products[i].SKU)
	}

	existing, err := repo.FindBySKUs(ctx, skus)
	if err != nil {
		return res, err
	}
	ids := make(map[string]uint, len(existing))
	for _, p := range existing {
		ids[p.SKU] = p.ID
	}

	for i := range products {
		p := &products[i]
		if id, ok := ids[p.SKU]; ok {
			p.ID = id
			if err := repo.Update(ctx, p); err != nil {
				return res, fmt.Errorf("updating %s: %w", p.SKU, err)
			}
			res.Updated++
			continue
		}
		if err := repo.Create(ctx, p); err != nil {
			return res, fmt.Errorf("creating %s: %w", p.SKU, err)
		}
		ids[p.SKU] = p.ID
		res.Created++
	}
	return res, nil
}
