package domain

import (
	"errors"
	"strings"
	"time"

	labels "order-portal/internal/features/labels/domain"

	"github.com/shopspring/decimal"
)

// Status is the stock situation of a product.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusLowStock   Status = "low-stock"
	StatusOutOfStock Status = "out-of-stock"
	// StatusIncoming marks stock on its way; orders for it are reservations.
	StatusIncoming Status = "incoming"
)

// Category is the part family of a product.
type Category string

const (
	CategoryBrakeMaster  Category = "brake_master"
	CategoryClutchMaster Category = "clutch_master"
	CategoryBrakeSlave   Category = "brake_slave"
	CategoryClutchSlave  Category = "clutch_slave"
	CategoryBrakePads    Category = "brake_pads"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSKU    = errors.New("product with that SKU already exists")
	ErrProductInUse    = errors.New("product is referenced by existing orders")
	ErrInvalidStatus   = errors.New("invalid product status")
	ErrInvalidCategory = errors.New("invalid product category")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrMissingField    = errors.New("sku, brand and description are required")
)

// StatusLabels is the display table for product statuses.
var StatusLabels = []labels.Label{
	{Value: string(StatusAvailable), Label: "Available"},
	{Value: string(StatusLowStock), Label: "Low stock"},
	{Value: string(StatusOutOfStock), Label: "Out of stock"},
	{Value: string(StatusIncoming), Label: "Incoming"},
}

// CategoryLabels is the display table for product categories.
var CategoryLabels = []labels.Label{
	{Value: string(CategoryBrakeMaster), Label: "Brake master cylinder"},
	{Value: string(CategoryClutchMaster), Label: "Clutch master cylinder"},
	{Value: string(CategoryBrakeSlave), Label: "Brake slave cylinder"},
	{Value: string(CategoryClutchSlave), Label: "Clutch slave cylinder"},
	{Value: string(CategoryBrakePads), Label: "Brake pads"},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := labels.Lookup(StatusLabels, string(s))
	return ok
}

// Label returns the display text of s, or s itself when unknown.
func (s Status) Label() string {
	if l, ok := labels.Lookup(StatusLabels, string(s)); ok {
		return l
	}
	return string(s)
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := labels.Lookup(CategoryLabels, string(c))
	return ok
}

// Label returns the display text of c, or c itself when unknown.
func (c Category) Label() string {
	if l, ok := labels.Lookup(CategoryLabels, string(c)); ok {
		return l
	}
	return string(c)
}

// Product is a catalog entry.
type Product struct {
	ID          uint             `json:"id"`
	SKU         string           `json:"sku"`
	Brand       string           `json:"brand"`
	Description string           `json:"description"`
	Category    Category         `json:"category"`
	Status      Status           `json:"status"`
	ETA         *string          `json:"eta"`
	Price       *decimal.Decimal `json:"price"`
	Images      []string         `json:"images"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Normalize trims text fields, drops blank images and clears the ETA unless
// the product is incoming.
func (p *Product) Normalize() {
	p.SKU = strings.TrimSpace(p.SKU)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Description = strings.TrimSpace(p.Description)

	if p.ETA != nil {
		eta := strings.TrimSpace(*p.ETA)
		p.ETA = &eta
		if eta == "" {
			p.ETA = nil
		}
	}
	if p.Status != StatusIncoming {
		p.ETA = nil
	}

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	p.Images = images
}

// Validate checks a normalized product.
func (p *Product) Validate() error {
	if p.SKU == "" || p.Brand == "" || p.Description == "" {
		return ErrMissingField
	}
	if !p.Category.Valid() {
		return ErrInvalidCategory
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if p.Price != nil && p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Orderable reports whether the product can be put in a cart.
func (p *Product) Orderable() bool {
	return p.Status != StatusOutOfStock
}

// Filter narrows a product listing. Zero values match everything.
type Filter struct {
	// Query is matched case-insensitively against SKU, brand and description.
	Query    string
	Category Category
	Status   Status
	// IDs restricts the result when non-nil. An empty non-nil slice matches nothing.
	IDs []uint
}
