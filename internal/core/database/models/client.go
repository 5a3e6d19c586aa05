package models

import "time"

// Client is a registered buyer account.
type Client struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	Code        string    `gorm:"column:code;size:64;not null;uniqueIndex"`
	Name        string    `gorm:"column:name;not null"`
	Active      bool      `gorm:"column:active;not null"`
	BranchCount int       `gorm:"column:branch_count;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Client) TableName() string { return "clients" }
