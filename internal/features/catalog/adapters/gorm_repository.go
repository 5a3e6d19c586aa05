package adapters

import (
	"context"
	"fmt"
	"strings"

	"order-portal/internal/core/database"
	"order-portal/internal/core/database/models"
	"order-portal/internal/features/catalog/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProductRepository implements ports.ProductRepository on the relational store.
type GormProductRepository struct {
	db *database.Client
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *database.Client) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List returns the products matching filter ordered by id.
func (r *GormProductRepository) List(ctx context.Context, filter domain.Filter) ([]domain.Product, error) {
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return []domain.Product{}, nil
	}

	q := r.db.DB(ctx).Model(&models.Product{})
	if text := strings.ToLower(strings.TrimSpace(filter.Query)); text != "" {
		like := likePattern(text)
		q = q.Where(`LOWER(sku) LIKE ? ESCAPE '\' OR LOWER(brand) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`,
			like, like, like)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", string(filter.Category))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.IDs != nil {
		q = q.Where("id IN ?", filter.IDs)
	}

	var rows []models.Product
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, toDomain(&rows[i]))
	}
	return products, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likePattern builds a substring LIKE pattern in which wildcards typed by the
// user match literally.
func likePattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

// GetByID returns domain.ErrProductNotFound when id is unknown.
func (r *GormProductRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var row models.Product
	if err := r.db.DB(ctx).First(&row, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("fetching product %d: %w", id, err)
	}
	p := toDomain(&row)
	return &p, nil
}

// FindBySKUs fetches the products whose SKU is in skus with a single query.
func (r *GormProductRepository) FindBySKUs(ctx context.Context, skus []string) ([]domain.Product, error) {
	if len(skus) == 0 {
		return []domain.Product{}, nil
	}
	var rows []models.Product
	if err := r.db.DB(ctx).Where("sku IN ?", skus).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetching products by sku: %w", err)
	}
	products := make([]domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, toDomain(&rows[i]))
	}
	return products, nil
}

// Create inserts product and fills its id and timestamps.
func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	row := toModel(product)
	if err := r.db.DB(ctx).Create(&row).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("creating product: %w", err)
	}
	*product = toDomain(&row)
	return nil
}

// Update overwrites every field of an existing product.
func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, product.ID).Error; err != nil {
			if database.IsNotFound(err) {
				return domain.ErrProductNotFound
			}
			return fmt.Errorf("fetching product %d: %w", product.ID, err)
		}

		row := toModel(product)
		row.CreatedAt = existing.CreatedAt
		if err := tx.Save(&row).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return domain.ErrDuplicateSKU
			}
			return fmt.Errorf("updating product %d: %w", product.ID, err)
		}
		*product = toDomain(&row)
		return nil
	})
}

// Delete removes a product that no order item references.
func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.Select("id").First(&existing, id).Error; err != nil {
			if database.IsNotFound(err) {
				return domain.ErrProductNotFound
			}
			return fmt.Errorf("fetching product %d: %w", id, err)
		}

		var refs int64
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("counting order items for product %d: %w", id, err)
		}
		if refs > 0 {
			return domain.ErrProductInUse
		}

		if err := tx.Delete(&models.Product{}, id).Error; err != nil {
			if database.IsForeignKeyViolation(err) {
				return domain.ErrProductInUse
			}
			return fmt.Errorf("deleting product %d: %w", id, err)
		}
		return nil
	})
}

func toDomain(row *models.Product) domain.Product {
	p := domain.Product{
		ID:          row.ID,
		SKU:         row.SKU,
		Brand:       row.Brand,
		Description: row.Description,
		Category:    domain.Category(row.Category),
		Status:      domain.Status(row.Status),
		ETA:         row.ETA,
		Images:      row.Images,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if row.Price.Valid {
		price := row.Price.Decimal
		p.Price = &price
	}
	return p
}

func toModel(p *domain.Product) models.Product {
	row := models.Product{
		ID:          p.ID,
		SKU:         p.SKU,
		Brand:       p.Brand,
		Description: p.Description,
		Category:    string(p.Category),
		Status:      string(p.Status),
		ETA:         p.ETA,
		Images:      p.Images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Price != nil {
		row.Price = decimal.NullDecimal{Decimal: *p.Price, Valid: true}
	}
	return row
}
