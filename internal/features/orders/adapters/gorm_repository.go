package adapters

import (
	"context"
	"fmt"
	"time"

	"order-portal/internal/core/database"
	"order-portal/internal/core/database/models"
	clients "order-portal/internal/features/clients/domain"
	"order-portal/internal/features/orders/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository on the relational store.
type GormOrderRepository struct {
	db *database.Client
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *database.Client) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order header then its items in one transaction.
func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		row := models.Order{
			ClientID: order.ClientID,
			Comment:  order.Comment,
			Device:   order.Device,
			Status:   string(order.Status),
		}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return fmt.Errorf("creating order: %w", err)
		}

		items, err := createItems(tx, row.ID, order.Items)
		if err != nil {
			return err
		}

		order.ID = row.ID
		order.CreatedAt = row.CreatedAt
		order.UpdatedAt = row.UpdatedAt
		order.Items = items
		return nil
	})
}

// GetByID loads the order with its client and items.
func (r *GormOrderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	var row models.Order
	if err := withDetails(r.db.DB(ctx)).First(&row, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("fetching order %d: %w", id, err)
	}
	order := toDomain(&row)
	return &order, nil
}

// List returns orders newest first, ties broken by id.
func (r *GormOrderRepository) List(ctx context.Context, clientID *uint) ([]domain.Order, error) {
	q := withDetails(r.db.DB(ctx))
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}

	var rows []models.Order
	if err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, toDomain(&rows[i]))
	}
	return orders, nil
}

// UpdateStatus runs a single conditional update. When no row matches it tells
// a missing order apart from one whose status already changed.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.Status) error {
	db := r.db.DB(ctx)
	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return fmt.Errorf("updating order %d status: %w", id, res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}
	return missingOrStale(db, id, domain.ErrConcurrentUpdate)
}

// ReplaceItems swaps the items of a pending order in one transaction.
func (r *GormOrderRepository) ReplaceItems(ctx context.Context, id uint, items []domain.Item) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", id, string(domain.StatusPending)).
			Update("updated_at", time.Now())
		if res.Error != nil {
			return fmt.Errorf("locking order %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return missingOrStale(tx, id, domain.ErrNotEditable)
		}

		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("deleting items of order %d: %w", id, err)
		}
		_, err := createItems(tx, id, items)
		return err
	})
}

// DeleteShipped removes the items, then the order, in one transaction.
func (r *GormOrderRepository) DeleteShipped(ctx context.Context, id uint) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		var row models.Order
		if err := tx.Select("id", "status").First(&row, id).Error; err != nil {
			if database.IsNotFound(err) {
				return domain.ErrOrderNotFound
			}
			return fmt.Errorf("fetching order %d: %w", id, err)
		}
		if domain.Status(row.Status) != domain.StatusShipped {
			return domain.ErrNotDeletable
		}

		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("deleting items of order %d: %w", id, err)
		}

		res := tx.Where("id = ? AND status = ?", id, string(domain.StatusShipped)).Delete(&models.Order{})
		if res.Error != nil {
			return fmt.Errorf("deleting order %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotDeletable
		}
		return nil
	})
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Client").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

func missingOrStale(db *gorm.DB, id uint, stale error) error {
	var count int64
	if err := db.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("checking order %d: %w", id, err)
	}
	if count == 0 {
		return domain.ErrOrderNotFound
	}
	return stale
}

func createItems(tx *gorm.DB, orderID uint, items []domain.Item) ([]domain.Item, error) {
	if len(items) == 0 {
		return []domain.Item{}, nil
	}

	rows := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, models.OrderItem{
			OrderID:    orderID,
			ProductID:  it.ProductID,
			SKU:        it.SKU,
			QuantityA:  it.A,
			QuantityB:  it.B,
			QuantityC:  it.C,
			Type:       string(it.Type),
			StatusText: it.StatusText,
			ETAText:    it.ETAText,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("creating items of order %d: %w", orderID, err)
	}

	out := make([]domain.Item, 0, len(rows))
	for i := range rows {
		out = append(out, itemToDomain(&rows[i]))
	}
	return out, nil
}

func toDomain(row *models.Order) domain.Order {
	order := domain.Order{
		ID:        row.ID,
		ClientID:  row.ClientID,
		Comment:   row.Comment,
		Device:    row.Device,
		Status:    domain.Status(row.Status),
		Items:     make([]domain.Item, 0, len(row.Items)),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Client.ID != 0 {
		order.Client = &clients.Client{
			ID:          row.Client.ID,
			Code:        row.Client.Code,
			Name:        row.Client.Name,
			Active:      row.Client.Active,
			BranchCount: clients.NormalizeBranchCount(row.Client.BranchCount),
			CreatedAt:   row.Client.CreatedAt,
			UpdatedAt:   row.Client.UpdatedAt,
		}
	}
	for i := range row.Items {
		order.Items = append(order.Items, itemToDomain(&row.Items[i]))
	}
	return order
}

func itemToDomain(row *models.OrderItem) domain.Item {
	return domain.Item{
		ID:        row.ID,
		ProductID: row.ProductID,
		SKU:       row.SKU,
		Quantities: domain.Quantities{
			A: row.QuantityA,
			B: row.QuantityB,
			C: row.QuantityC,
		},
		Type:       domain.ItemType(row.Type),
		StatusText: row.StatusText,
		ETAText:    row.ETAText,
	}
}
