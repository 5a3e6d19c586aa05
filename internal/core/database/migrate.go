package database

import (
	"context"
	"fmt"

	"order-portal/internal/core/database/models"
	"order-portal/internal/core/logger"
)

// AutoMigrate creates or updates the schema for every persisted model.
func (c *Client) AutoMigrate(ctx context.Context) error {
	if err := c.DB(ctx).AutoMigrate(
		&models.Client{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Get().Info("Database schema migrated")
	return nil
}
