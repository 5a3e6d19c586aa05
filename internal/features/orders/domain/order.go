package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	catalog "order-portal/internal/features/catalog/domain"
	clients "order-portal/internal/features/clients/domain"
	labels "order-portal/internal/features/labels/domain"
)

// Status represents the current state of an order.
type Status string

const (
	// StatusPending is the initial state; items may still be revised.
	StatusPending Status = "pending"
	// StatusPreparing indicates the order is being picked.
	StatusPreparing Status = "preparing"
	// StatusShipped is terminal.
	StatusShipped Status = "shipped"
)

// ItemType tells regular stock apart from reservations of incoming stock.
type ItemType string

const (
	ItemTypeNormal      ItemType = "normal"
	ItemTypeReservation ItemType = "reservation"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("empty order")
	ErrNegativeQuantity  = errors.New("quantities cannot be negative")
	ErrQuantityTooLarge  = errors.New("quantity exceeds the maximum of 2147483647")
	ErrNoValidQuantities = errors.New("no valid quantities")
	ErrUnknownSKU        = errors.New("unknown SKU")
	ErrOutOfStock        = errors.New("out of stock")
	ErrClientRequired    = errors.New("client id is required")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConcurrentUpdate  = errors.New("order was modified concurrently")
	ErrNotDeletable      = errors.New("only shipped orders can be deleted")
	ErrNotEditable       = errors.New("only pending orders can be revised")
)

// StatusLabels is the display table for order statuses.
var StatusLabels = []labels.Label{
	{Value: string(StatusPending), Label: "Pending"},
	{Value: string(StatusPreparing), Label: "Preparing"},
	{Value: string(StatusShipped), Label: "Shipped"},
}

// ItemTypeLabels is the display table for order item types.
var ItemTypeLabels = []labels.Label{
	{Value: string(ItemTypeNormal), Label: "Normal"},
	{Value: string(ItemTypeReservation), Label: "Reservation"},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := labels.Lookup(StatusLabels, string(s))
	return ok
}

// Label returns the display text of s.
func (s Status) Label() string {
	if l, ok := labels.Lookup(StatusLabels, string(s)); ok {
		return l
	}
	return string(s)
}

// Next returns the only status s may move to. Shipped has no successor.
func (s Status) Next() (Status, error) {
	switch s {
	case StatusPending:
		return StatusPreparing, nil
	case StatusPreparing:
		return StatusShipped, nil
	}
	return "", ErrInvalidTransition
}

// ItemTypeFor derives the item type from the product status.
func ItemTypeFor(status catalog.Status) ItemType {
	if status == catalog.StatusIncoming {
		return ItemTypeReservation
	}
	return ItemTypeNormal
}

// Order represents a client order.
type Order struct {
	ID        uint            `json:"id"`
	ClientID  uint            `json:"client_id"`
	Client    *clients.Client `json:"client,omitempty"`
	Comment   *string         `json:"comment"`
	Device    *string         `json:"device"`
	Status    Status          `json:"status"`
	Items     []Item          `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Item is an order line pinned to a product, with status and ETA snapshots
// taken when the order was placed.
type Item struct {
	ID        uint   `json:"id"`
	ProductID uint   `json:"product_id"`
	SKU       string `json:"sku"`
	Quantities
	Type       ItemType `json:"type"`
	StatusText *string  `json:"status_text"`
	ETAText    *string  `json:"eta_text"`
}

// Line is a requested order line.
type Line struct {
	SKU string `json:"sku"`
	Quantities
}

// Draft is the input of order creation.
type Draft struct {
	// ClientID may be nil only when the default-client fallback is enabled.
	ClientID *uint
	Comment  *string
	Device   *string
	Lines    []Line
}

// UnknownSKUError lists SKUs that are not in the catalog.
type UnknownSKUError struct {
	SKUs []string
}

func (e *UnknownSKUError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownSKU, strings.Join(e.SKUs, ", "))
}

// Is makes errors.Is(err, ErrUnknownSKU) match.
func (e *UnknownSKUError) Is(target error) bool {
	return target == ErrUnknownSKU
}

// OutOfStockError lists SKUs that cannot be ordered right now.
type OutOfStockError struct {
	SKUs []string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOutOfStock, strings.Join(e.SKUs, ", "))
}

// Is makes errors.Is(err, ErrOutOfStock) match.
func (e *OutOfStockError) Is(target error) bool {
	return target == ErrOutOfStock
}

// TrimOptional trims s and maps blank text to nil.
func TrimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// FilterLines rejects an empty list and negative or oversized quantities, then
// drops lines with nothing to deliver.
func FilterLines(lines []Line) ([]Line, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	kept := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.HasNegative() {
			return nil, ErrNegativeQuantity
		}
		if l.ExceedsMax() {
			return nil, ErrQuantityTooLarge
		}
		l.SKU = strings.TrimSpace(l.SKU)
		if !l.IsZero() {
			kept = append(kept, l)
		}
	}

	if len(kept) == 0 {
		return nil, ErrNoValidQuantities
	}
	return kept, nil
}

// DistinctSKUs returns the SKUs referenced by lines in first-seen order.
func DistinctSKUs(lines []Line) []string {
	seen := make(map[string]struct{}, len(lines))
	skus := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.SKU]; ok {
			continue
		}
		seen[l.SKU] = struct{}{}
		skus = append(skus, l.SKU)
	}
	return skus
}

// IndexProducts maps SKU to product and fails with *UnknownSKUError when a
// line references a SKU missing from products.
func IndexProducts(lines []Line, products []catalog.Product) (map[string]catalog.Product, error) {
	bySKU := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		bySKU[p.SKU] = p
	}

	var missing []string
	for _, sku := range DistinctSKUs(lines) {
		if _, ok := bySKU[sku]; !ok {
			missing = append(missing, sku)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &UnknownSKUError{SKUs: missing}
	}
	return bySKU, nil
}

// BuildItems turns lines into items for a client with branchCount locations.
// Quantities of disabled branches are zeroed and lines left empty are dropped.
// Out-of-stock products fail the whole build with *OutOfStockError.
func BuildItems(lines []Line, bySKU map[string]catalog.Product, branchCount int) ([]Item, error) {
	if err := checkOrderable(lines, bySKU); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		product, ok := bySKU[l.SKU]
		if !ok {
			return nil, &UnknownSKUError{SKUs: []string{l.SKU}}
		}

		qty := l.Quantities.Masked(branchCount)
		if qty.IsZero() {
			continue
		}

		statusText := product.Status.Label()
		var etaText *string
		if product.Status == catalog.StatusIncoming {
			etaText = TrimOptional(product.ETA)
		}

		items = append(items, Item{
			ProductID:  product.ID,
			SKU:        product.SKU,
			Quantities: qty,
			Type:       ItemTypeFor(product.Status),
			StatusText: &statusText,
			ETAText:    etaText,
		})
	}

	if len(items) == 0 {
		return nil, ErrNoValidQuantities
	}
	return items, nil
}

func checkOrderable(lines []Line, bySKU map[string]catalog.Product) error {
	var blocked []string
	for _, sku := range DistinctSKUs(lines) {
		product, ok := bySKU[sku]
		if ok && !product.Orderable() {
			blocked = append(blocked, sku)
		}
	}
	if len(blocked) > 0 {
		sort.Strings(blocked)
		return &OutOfStockError{SKUs: blocked}
	}
	return nil
}
