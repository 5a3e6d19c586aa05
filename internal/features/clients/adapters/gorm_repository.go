package adapters

import (
	"context"
	"fmt"

	"order-portal/internal/core/database"
	"order-portal/internal/core/database/models"
	"order-portal/internal/features/clients/domain"

	"gorm.io/gorm"
)

// GormClientRepository implements ports.ClientRepository on the relational store.
type GormClientRepository struct {
	db *database.Client
}

// NewGormClientRepository creates a new GormClientRepository.
func NewGormClientRepository(db *database.Client) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// List returns every client ordered by id.
func (r *GormClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	var rows []models.Client
	if err := r.db.DB(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	clients := make([]domain.Client, 0, len(rows))
	for i := range rows {
		clients = append(clients, toDomain(&rows[i]))
	}
	return clients, nil
}

// GetByID returns domain.ErrClientNotFound when id is unknown.
func (r *GormClientRepository) GetByID(ctx context.Context, id uint) (*domain.Client, error) {
	var row models.Client
	if err := r.db.DB(ctx).First(&row, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("fetching client %d: %w", id, err)
	}
	c := toDomain(&row)
	return &c, nil
}

// FirstActive returns domain.ErrNoActiveClient when every client is inactive.
func (r *GormClientRepository) FirstActive(ctx context.Context) (*domain.Client, error) {
	var row models.Client
	if err := r.db.DB(ctx).Where("active = ?", true).Order("id ASC").First(&row).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, domain.ErrNoActiveClient
		}
		return nil, fmt.Errorf("fetching first active client: %w", err)
	}
	c := toDomain(&row)
	return &c, nil
}

// Create inserts client and fills its id and timestamps.
func (r *GormClientRepository) Create(ctx context.Context, client *domain.Client) error {
	row := toModel(client)
	if err := r.db.DB(ctx).Create(&row).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("creating client: %w", err)
	}
	*client = toDomain(&row)
	return nil
}

// Update overwrites every field of an existing client.
func (r *GormClientRepository) Update(ctx context.Context, client *domain.Client) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		var existing models.Client
		if err := tx.First(&existing, client.ID).Error; err != nil {
			if database.IsNotFound(err) {
				return domain.ErrClientNotFound
			}
			return fmt.Errorf("fetching client %d: %w", client.ID, err)
		}

		row := toModel(client)
		row.CreatedAt = existing.CreatedAt
		if err := tx.Save(&row).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return domain.ErrDuplicateCode
			}
			return fmt.Errorf("updating client %d: %w", client.ID, err)
		}
		*client = toDomain(&row)
		return nil
	})
}

// Delete removes a client without orders.
func (r *GormClientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		var existing models.Client
		if err := tx.Select("id").First(&existing, id).Error; err != nil {
			if database.IsNotFound(err) {
				return domain.ErrClientNotFound
			}
			return fmt.Errorf("fetching client %d: %w", id, err)
		}

		var refs int64
		if err := tx.Model(&models.Order{}).Where("client_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("counting orders for client %d: %w", id, err)
		}
		if refs > 0 {
			return domain.ErrClientInUse
		}

		if err := tx.Delete(&models.Client{}, id).Error; err != nil {
			if database.IsForeignKeyViolation(err) {
				return domain.ErrClientInUse
			}
			return fmt.Errorf("deleting client %d: %w", id, err)
		}
		return nil
	})
}

func toDomain(row *models.Client) domain.Client {
	return domain.Client{
		ID:          row.ID,
		Code:        row.Code,
		Name:        row.Name,
		Active:      row.Active,
		BranchCount: domain.NormalizeBranchCount(row.BranchCount),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toModel(c *domain.Client) models.Client {
	return models.Client{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Active:      c.Active,
		BranchCount: c.BranchCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
