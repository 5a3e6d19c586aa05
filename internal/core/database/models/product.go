package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog row.
type Product struct {
	ID          uint                `gorm:"column:id;primaryKey"`
	SKU         string              `gorm:"column:sku;size:64;not null;uniqueIndex"`
	Brand       string              `gorm:"column:brand;not null"`
	Description string              `gorm:"column:description;not null"`
	Category    string              `gorm:"column:category;size:32;not null;index"`
	Status      string              `gorm:"column:status;size:32;not null;index"`
	ETA         *string             `gorm:"column:eta"`
	Price       decimal.NullDecimal `gorm:"column:price;type:numeric(12,2)"`
	Images      []string            `gorm:"column:images;type:text;serializer:json"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }
