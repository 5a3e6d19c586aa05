package models

import "time"

// Order is the order header. Items are deleted explicitly before the order,
// the cascade only covers databases where foreign keys are enforced.
type Order struct {
	ID        uint        `gorm:"column:id;primaryKey"`
	ClientID  uint        `gorm:"column:client_id;not null;index"`
	Client    Client      `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	Comment   *string     `gorm:"column:comment"`
	Device    *string     `gorm:"column:device"`
	Status    string      `gorm:"column:status;size:16;not null;index"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots a product line at order time.
type OrderItem struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	OrderID    uint      `gorm:"column:order_id;not null;index"`
	ProductID  uint      `gorm:"column:product_id;not null;index"`
	SKU        string    `gorm:"column:sku;size:64;not null"`
	QuantityA  int       `gorm:"column:quantity_a;not null"`
	QuantityB  int       `gorm:"column:quantity_b;not null"`
	QuantityC  int       `gorm:"column:quantity_c;not null"`
	Type       string    `gorm:"column:type;size:16;not null"`
	StatusText *string   `gorm:"column:status_text"`
	ETAText    *string   `gorm:"column:eta_text"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (OrderItem) TableName() string { return "order_items" }
